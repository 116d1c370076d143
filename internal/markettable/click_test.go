package markettable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialActiveTab(t *testing.T) {
	assert.Equal(t, TabSupply, InitialActiveTab([]ColumnKey{ColumnSupplyApyLtv, ColumnLiquidity}))
	assert.Equal(t, TabSupply, InitialActiveTab([]ColumnKey{ColumnAsset, ColumnLabeledSupplyApyLtv}))
	assert.Equal(t, TabBorrow, InitialActiveTab([]ColumnKey{ColumnBorrowApyLtv}))
	assert.Equal(t, TabBorrow, InitialActiveTab(nil))

	assert.Equal(t, 0, int(TabSupply))
	assert.Equal(t, 2, int(TabBorrow))
	assert.Equal(t, "borrow", TabBorrow.String())
}

func TestRowClick(t *testing.T) {
	row := DerivePoolAssets(testPools())[2]

	req := RowClick(row, []ColumnKey{ColumnSupplyApyLtv, ColumnLiquidity})
	assert.Equal(t, row.VToken, req.VToken)
	assert.Equal(t, isolatedPoolAddress, req.PoolComptrollerAddress)
	assert.Equal(t, TabSupply, req.InitialActiveTabIndex)

	req = RowClick(row, []ColumnKey{ColumnBorrowApyLtv})
	assert.Equal(t, TabBorrow, req.InitialActiveTabIndex)
}
