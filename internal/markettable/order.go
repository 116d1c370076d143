package markettable

import (
	"fmt"
	"slices"

	"marketScope/internal/model"
)

// OrderDirection is the sort direction of a table.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// ParseOrderDirection validates a direction string.
func ParseOrderDirection(input string) (OrderDirection, error) {
	switch OrderDirection(input) {
	case OrderAsc, OrderDesc:
		return OrderDirection(input), nil
	default:
		return "", fmt.Errorf("invalid order direction: %s", input)
	}
}

// InitialOrder is a requested default sort.
type InitialOrder struct {
	OrderBy        ColumnKey
	OrderDirection OrderDirection
}

// ResolvedOrder is an initial order bound to a resolved column.
type ResolvedOrder struct {
	OrderBy        *Column
	OrderDirection OrderDirection
}

// ResolveInitialOrder binds requested to the column with the same key. It
// returns nil when nothing was requested or the key is not among columns.
func ResolveInitialOrder(columns []Column, requested *InitialOrder) *ResolvedOrder {
	if requested == nil {
		return nil
	}
	for i := range columns {
		if columns[i].Key == requested.OrderBy {
			return &ResolvedOrder{
				OrderBy:        &columns[i],
				OrderDirection: requested.OrderDirection,
			}
		}
	}
	return nil
}

// SortPoolAssets orders rows in place using order. Equal rows keep their
// relative order; a nil order or unsortable column leaves rows untouched.
func SortPoolAssets(rows []model.PoolAsset, order *ResolvedOrder) {
	if order == nil || order.OrderBy == nil || !order.OrderBy.Sortable() {
		return
	}
	compare := order.OrderBy.Compare
	slices.SortStableFunc(rows, func(a, b model.PoolAsset) int {
		if order.OrderDirection == OrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
}
