package markettable

import (
	"slices"

	"marketScope/internal/model"
)

// OperationTab is a tab of the operation modal, by position. RowClick only
// ever opens TabSupply or TabBorrow.
type OperationTab int

const (
	TabSupply OperationTab = iota
	TabWithdraw
	TabBorrow
	TabRepay
)

func (t OperationTab) String() string {
	switch t {
	case TabSupply:
		return "supply"
	case TabWithdraw:
		return "withdraw"
	case TabBorrow:
		return "borrow"
	case TabRepay:
		return "repay"
	default:
		return "unknown"
	}
}

// supplyColumns mark a table as a supply context; any other table opens the
// modal on the borrow tab.
var supplyColumns = []ColumnKey{ColumnSupplyApyLtv, ColumnLabeledSupplyApyLtv}

// OperationModalRequest asks the operation modal to open for a market.
type OperationModalRequest struct {
	VToken                 model.VToken `json:"v_token"`
	PoolComptrollerAddress string       `json:"pool_comptroller_address"`
	InitialActiveTabIndex  OperationTab `json:"initial_active_tab_index"`
}

// InitialActiveTab picks the modal tab for a table configured with columnKeys.
func InitialActiveTab(columnKeys []ColumnKey) OperationTab {
	for _, key := range supplyColumns {
		if slices.Contains(columnKeys, key) {
			return TabSupply
		}
	}
	return TabBorrow
}

// RowClick builds the operation modal request for a clicked row.
func RowClick(row model.PoolAsset, columnKeys []ColumnKey) OperationModalRequest {
	comptroller := ""
	if row.Pool != nil {
		comptroller = row.Pool.ComptrollerAddress
	}
	return OperationModalRequest{
		VToken:                 row.VToken,
		PoolComptrollerAddress: comptroller,
		InitialActiveTabIndex:  InitialActiveTab(columnKeys),
	}
}
