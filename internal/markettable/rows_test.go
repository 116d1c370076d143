package markettable

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketScope/internal/model"
)

func TestDerivePoolAssets(t *testing.T) {
	pools := testPools()
	rows := DerivePoolAssets(pools)

	total := 0
	for _, pool := range pools {
		total += len(pool.Assets)
	}
	require.Len(t, rows, total)

	var got []string
	for _, row := range rows {
		got = append(got, row.VToken.Address)
	}
	want := []string{
		"0xA07c5b74C9B40447a954e1466938b865b6BBea36",
		"0xfD5840Cd36d94D7229439859C0112a4185BC0255",
		"0x53728FD51060a85ac41974C6C3Eb1DaE42776723",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("row order mismatch (-want +got):\n%s", diff)
	}

	assert.Same(t, &pools[0], rows[0].Pool)
	assert.Same(t, &pools[0], rows[1].Pool)
	assert.Same(t, &pools[1], rows[2].Pool)
}

func TestDerivePoolAssetsSkipsEmptyPool(t *testing.T) {
	pools := []model.Pool{
		{ComptrollerAddress: "0xAAA", Assets: []model.Asset{{VToken: model.VToken{Address: "0x1"}}}},
		{ComptrollerAddress: "0xBBB"},
	}

	rows := DerivePoolAssets(pools)
	require.Len(t, rows, 1)
	assert.Equal(t, "0xAAA", rows[0].Pool.ComptrollerAddress)
	assert.Equal(t, "0x1", rows[0].VToken.Address)
}

func TestDerivePoolAssetsEmpty(t *testing.T) {
	assert.Empty(t, DerivePoolAssets(nil))
}

func TestDerivePoolAssetsCopiesAssets(t *testing.T) {
	pools := testPools()
	rows := DerivePoolAssets(pools)

	rows[0].IsCollateralOfUser = true
	assert.False(t, pools[0].Assets[0].IsCollateralOfUser)
}

func TestRowKey(t *testing.T) {
	row := DerivePoolAssets(testPools())[0]

	supplyKey := RowKey(MarketTypeSupply, row)
	borrowKey := RowKey(MarketTypeBorrow, row)

	assert.Equal(t, "market-table-row-supply-0xA07c5b74C9B40447a954e1466938b865b6BBea36", supplyKey)
	assert.NotEqual(t, supplyKey, borrowKey)
}

func TestParseMarketType(t *testing.T) {
	got, err := ParseMarketType("borrow")
	require.NoError(t, err)
	assert.Equal(t, MarketTypeBorrow, got)

	got, err = ParseMarketType("")
	require.NoError(t, err)
	assert.Equal(t, MarketTypeNone, got)

	_, err = ParseMarketType("lend")
	assert.Error(t, err)
}
