package markettable

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketScope/internal/model"
)

func symbols(rows []model.PoolAsset) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Symbol())
	}
	return out
}

func rowSymbols(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.PoolAsset.Symbol())
	}
	return out
}

func TestBuildWithHrefs(t *testing.T) {
	builder := NewBuilder(NewRowRouter(DefaultRoutes, corePoolAddress, ""), nil)

	table, err := builder.Build(Props{
		Pools:        testPools(),
		Columns:      []ColumnKey{ColumnAsset, ColumnSupplyApyLtv, ColumnLiquidity},
		InitialOrder: &InitialOrder{OrderBy: ColumnSupplyApyLtv, OrderDirection: OrderDesc},
		MarketType:   MarketTypeSupply,
	})
	require.NoError(t, err)

	require.NotNil(t, table.InitialOrder)
	assert.Equal(t, ColumnSupplyApyLtv, table.InitialOrder.OrderBy.Key)
	assert.Equal(t, []string{"USDT", "BNB", "ANKR"}, rowSymbols(table.Rows))

	for _, row := range table.Rows {
		assert.NotEmpty(t, row.Href)
		assert.Nil(t, row.Operation)
	}
	assert.Equal(t, "/core-pool/market/0xfD5840Cd36d94D7229439859C0112a4185BC0255", table.Rows[0].Href)
	assert.Equal(t, "market-table-row-supply-0xfD5840Cd36d94D7229439859C0112a4185BC0255", table.Rows[0].Key)

	assert.Equal(t, []string{"Asset", "Supply APY / LTV", "Liquidity"}, table.Headers())
	assert.Equal(t, "USDT", table.Cells(table.Rows[0])[0])
}

func TestBuildWithOperationModal(t *testing.T) {
	builder := NewBuilder(NewRowRouter(DefaultRoutes, corePoolAddress, ""), nil)

	table, err := builder.Build(Props{
		Pools:                        testPools(),
		Columns:                      []ColumnKey{ColumnAsset, ColumnBorrowApyLtv},
		OpenOperationModalOnRowClick: true,
		MarketType:                   MarketTypeBorrow,
	})
	require.NoError(t, err)

	assert.Nil(t, table.InitialOrder)
	assert.Equal(t, []string{"BNB", "USDT", "ANKR"}, rowSymbols(table.Rows))
	for _, row := range table.Rows {
		assert.Empty(t, row.Href)
		require.NotNil(t, row.Operation)
		assert.Equal(t, TabBorrow, row.Operation.InitialActiveTabIndex)
		assert.Equal(t, row.PoolAsset.Pool.ComptrollerAddress, row.Operation.PoolComptrollerAddress)
	}
}

func TestBuildUnresolvableInitialOrder(t *testing.T) {
	builder := NewBuilder(NewRowRouter(DefaultRoutes, corePoolAddress, ""), nil)

	table, err := builder.Build(Props{
		Pools:        testPools(),
		Columns:      []ColumnKey{ColumnAsset},
		InitialOrder: &InitialOrder{OrderBy: ColumnLiquidity, OrderDirection: OrderAsc},
	})
	require.NoError(t, err)
	assert.Nil(t, table.InitialOrder)
	assert.Equal(t, []string{"BNB", "USDT", "ANKR"}, rowSymbols(table.Rows))
}

func TestBuildUnknownColumn(t *testing.T) {
	builder := NewBuilder(NewRowRouter(DefaultRoutes, corePoolAddress, ""), nil)

	_, err := builder.Build(Props{Pools: testPools(), Columns: []ColumnKey{"mystery"}})
	assert.True(t, errors.Is(err, ErrUnknownColumn))
}

func TestBuildDuplicateRow(t *testing.T) {
	pools := testPools()
	pools[1].Assets = append(pools[1].Assets, pools[0].Assets[0])

	builder := NewBuilder(NewRowRouter(DefaultRoutes, corePoolAddress, ""), nil)
	_, err := builder.Build(Props{Pools: pools, Columns: []ColumnKey{ColumnAsset}})
	assert.True(t, errors.Is(err, ErrDuplicateRow))
}

func TestBuildRejectsPoolWithoutComptroller(t *testing.T) {
	pools := testPools()
	pools[1].ComptrollerAddress = ""

	builder := NewBuilder(NewRowRouter(DefaultRoutes, corePoolAddress, ""), nil)
	for _, modal := range []bool{false, true} {
		_, err := builder.Build(Props{Pools: pools, Columns: []ColumnKey{ColumnAsset}, OpenOperationModalOnRowClick: modal})
		assert.True(t, errors.Is(err, ErrMissingComptroller))
	}

	// a pool without markets yields no rows, so it needs no comptroller
	pools = testPools()
	pools[2].ComptrollerAddress = ""
	_, err := builder.Build(Props{Pools: pools, Columns: []ColumnKey{ColumnAsset}})
	assert.NoError(t, err)
}

func TestTableLookups(t *testing.T) {
	builder := NewBuilder(NewRowRouter(DefaultRoutes, corePoolAddress, ""), nil)
	table, err := builder.Build(Props{Pools: testPools(), Columns: []ColumnKey{ColumnAsset, ColumnCollateral}})
	require.NoError(t, err)

	column, ok := table.Column(ColumnCollateral)
	require.True(t, ok)
	assert.NotNil(t, column.OnClick)

	_, ok = table.Column(ColumnPrice)
	assert.False(t, ok)

	row, ok := table.FindRow("0x53728fd51060a85ac41974c6c3eb1dae42776723")
	require.True(t, ok)
	assert.Equal(t, "ANKR", row.PoolAsset.Symbol())
}
