package markettable

import (
	"errors"
	"fmt"
	"strings"

	"marketScope/internal/model"
	"marketScope/internal/ui"
)

var (
	ErrDuplicateRow       = errors.New("duplicate row key")
	ErrMissingComptroller = errors.New("pool has no comptroller address")
)

// Props configures one market table instance.
type Props struct {
	Pools                        []model.Pool
	Columns                      []ColumnKey
	InitialOrder                 *InitialOrder
	OpenOperationModalOnRowClick bool
	MarketType                   MarketType
}

// Row is a rendered table row. Exactly one of Href and Operation is set.
type Row struct {
	Key       string
	PoolAsset model.PoolAsset
	Href      string
	Operation *OperationModalRequest
}

// Table is the resolved market table.
type Table struct {
	Columns      []Column
	Rows         []Row
	InitialOrder *ResolvedOrder
}

// Builder assembles tables for one chain.
type Builder struct {
	router             *RowRouter
	collateralOnChange CollateralChangeFunc
}

func NewBuilder(router *RowRouter, collateralOnChange CollateralChangeFunc) *Builder {
	return &Builder{
		router:             router,
		collateralOnChange: collateralOnChange,
	}
}

// Build derives rows from props.Pools, resolves columns and the initial
// order, sorts rows and attaches the row action.
func (b *Builder) Build(props Props) (*Table, error) {
	columns, err := GenerateColumns(props.Columns, b.collateralOnChange)
	if err != nil {
		return nil, err
	}
	initialOrder := ResolveInitialOrder(columns, props.InitialOrder)

	poolAssets := DerivePoolAssets(props.Pools)
	SortPoolAssets(poolAssets, initialOrder)

	seen := make(map[string]struct{}, len(poolAssets))
	rows := make([]Row, 0, len(poolAssets))
	for _, poolAsset := range poolAssets {
		if poolAsset.Pool == nil || strings.TrimSpace(poolAsset.Pool.ComptrollerAddress) == "" {
			return nil, fmt.Errorf("%w: market %s", ErrMissingComptroller, poolAsset.VToken.Address)
		}
		id := strings.ToLower(RowKey(props.MarketType, poolAsset))
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRow, RowKey(props.MarketType, poolAsset))
		}
		seen[id] = struct{}{}

		row := Row{
			Key:       RowKey(props.MarketType, poolAsset),
			PoolAsset: poolAsset,
		}
		if props.OpenOperationModalOnRowClick {
			req := RowClick(poolAsset, props.Columns)
			row.Operation = &req
		} else {
			row.Href = b.router.Href(poolAsset)
		}
		rows = append(rows, row)
	}

	return &Table{
		Columns:      columns,
		Rows:         rows,
		InitialOrder: initialOrder,
	}, nil
}

// Headers renders the column labels as table headers.
func (t *Table) Headers() []string {
	headers := make([]string, 0, len(t.Columns))
	for _, column := range t.Columns {
		headers = append(headers, column.Label.Resolve(ui.RenderContext{RenderedInHeader: true}))
	}
	return headers
}

// Cells renders row through every column accessor.
func (t *Table) Cells(row Row) []string {
	cells := make([]string, 0, len(t.Columns))
	for _, column := range t.Columns {
		cells = append(cells, column.Accessor(row.PoolAsset))
	}
	return cells
}

// Column returns the resolved column for key.
func (t *Table) Column(key ColumnKey) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Key == key {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// FindRow returns the row whose vToken matches address.
func (t *Table) FindRow(vTokenAddress string) (Row, bool) {
	for _, row := range t.Rows {
		if strings.EqualFold(row.PoolAsset.VToken.Address, vTokenAddress) {
			return row, true
		}
	}
	return Row{}, false
}
