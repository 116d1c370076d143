package markettable

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"marketScope/internal/model"
	"marketScope/internal/ui"
)

// ColumnKey identifies one renderable column.
type ColumnKey string

const (
	ColumnAsset               ColumnKey = "asset"
	ColumnPool                ColumnKey = "pool"
	ColumnSupplyApyLtv        ColumnKey = "supplyApyLtv"
	ColumnLabeledSupplyApyLtv ColumnKey = "labeledSupplyApyLtv"
	ColumnBorrowApy           ColumnKey = "borrowApy"
	ColumnLabeledBorrowApy    ColumnKey = "labeledBorrowApy"
	ColumnBorrowApyLtv        ColumnKey = "borrowApyLtv"
	ColumnCollateral          ColumnKey = "collateral"
	ColumnSupplyBalance       ColumnKey = "supplyBalance"
	ColumnBorrowBalance       ColumnKey = "borrowBalance"
	ColumnUserSupplyBalance   ColumnKey = "userSupplyBalance"
	ColumnUserBorrowBalance   ColumnKey = "userBorrowBalance"
	ColumnUserWalletBalance   ColumnKey = "userWalletBalance"
	ColumnUserPercentOfLimit  ColumnKey = "userPercentOfLimit"
	ColumnLiquidity           ColumnKey = "liquidity"
	ColumnPrice               ColumnKey = "price"
)

var ErrUnknownColumn = errors.New("unknown column")

// CollateralChangeFunc is invoked when the user toggles collateral on a row.
type CollateralChangeFunc func(ctx context.Context, row model.PoolAsset)

// Column is a resolved column definition.
type Column struct {
	Key      ColumnKey
	Label    ui.Label
	Accessor func(row model.PoolAsset) string
	// Compare orders rows ascending; nil when the column is not sortable.
	Compare func(a, b model.PoolAsset) int
	// OnClick is only set on the collateral column.
	OnClick func(ctx context.Context, row model.PoolAsset)
}

// Sortable reports whether rows can be ordered by the column.
func (c Column) Sortable() bool {
	return c.Compare != nil
}

type columnFactory func(onChange CollateralChangeFunc) Column

var columnFactories = map[ColumnKey]columnFactory{
	ColumnAsset: static(Column{
		Label:    ui.Literal("Asset"),
		Accessor: func(row model.PoolAsset) string { return row.Symbol() },
		Compare:  func(a, b model.PoolAsset) int { return compareStrings(a.Symbol(), b.Symbol()) },
	}),
	ColumnPool: static(Column{
		Label:    ui.Literal("Pool"),
		Accessor: func(row model.PoolAsset) string { return poolName(row) },
		Compare:  func(a, b model.PoolAsset) int { return compareStrings(poolName(a), poolName(b)) },
	}),
	ColumnSupplyApyLtv: static(Column{
		Label: ui.Literal("Supply APY / LTV"),
		Accessor: func(row model.PoolAsset) string {
			return formatPercentage(row.SupplyAPYPercentage) + " / " + formatPercentage(ltv(row))
		},
		Compare: byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.SupplyAPYPercentage }),
	}),
	ColumnLabeledSupplyApyLtv: static(Column{
		Label: ui.Computed(func(ctx ui.RenderContext) string {
			if ctx.RenderedInHeader {
				return "Supply APY / LTV"
			}
			return "Supply"
		}),
		Accessor: func(row model.PoolAsset) string {
			return "APY " + formatPercentage(row.SupplyAPYPercentage) + " / LTV " + formatPercentage(ltv(row))
		},
		Compare: byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.SupplyAPYPercentage }),
	}),
	ColumnBorrowApy: static(Column{
		Label:    ui.Literal("Borrow APY"),
		Accessor: func(row model.PoolAsset) string { return formatPercentage(row.BorrowAPYPercentage) },
		Compare:  byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.BorrowAPYPercentage }),
	}),
	ColumnLabeledBorrowApy: static(Column{
		Label: ui.Computed(func(ctx ui.RenderContext) string {
			if ctx.RenderedInHeader {
				return "Borrow APY"
			}
			return "Borrow"
		}),
		Accessor: func(row model.PoolAsset) string { return "APY " + formatPercentage(row.BorrowAPYPercentage) },
		Compare:  byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.BorrowAPYPercentage }),
	}),
	ColumnBorrowApyLtv: static(Column{
		Label: ui.Literal("Borrow APY / LTV"),
		Accessor: func(row model.PoolAsset) string {
			return formatPercentage(row.BorrowAPYPercentage) + " / " + formatPercentage(ltv(row))
		},
		Compare: byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.BorrowAPYPercentage }),
	}),
	ColumnCollateral: collateralColumn,
	ColumnSupplyBalance: static(Column{
		Label:    ui.Literal("Total supplied"),
		Accessor: func(row model.PoolAsset) string { return formatCentsToReadableValue(row.SupplyBalanceCents) },
		Compare:  byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.SupplyBalanceCents }),
	}),
	ColumnBorrowBalance: static(Column{
		Label:    ui.Literal("Total borrowed"),
		Accessor: func(row model.PoolAsset) string { return formatCentsToReadableValue(row.BorrowBalanceCents) },
		Compare:  byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.BorrowBalanceCents }),
	}),
	ColumnUserSupplyBalance: static(Column{
		Label:    ui.Literal("Supplied"),
		Accessor: func(row model.PoolAsset) string { return formatTokens(row.UserSupplyBalanceTokens, row.Symbol()) },
		Compare:  byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.UserSupplyBalanceCents }),
	}),
	ColumnUserBorrowBalance: static(Column{
		Label:    ui.Literal("Borrowed"),
		Accessor: func(row model.PoolAsset) string { return formatTokens(row.UserBorrowBalanceTokens, row.Symbol()) },
		Compare:  byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.UserBorrowBalanceCents }),
	}),
	ColumnUserWalletBalance: static(Column{
		Label:    ui.Literal("Wallet balance"),
		Accessor: func(row model.PoolAsset) string { return formatTokens(row.UserWalletBalanceTokens, row.Symbol()) },
		Compare:  byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.UserWalletBalanceCents }),
	}),
	ColumnUserPercentOfLimit: static(Column{
		Label: ui.Computed(func(ctx ui.RenderContext) string {
			if ctx.RenderedInHeader {
				return "% of limit"
			}
			return "Percentage of limit"
		}),
		Accessor: func(row model.PoolAsset) string { return formatPercentage(userPercentOfLimit(row)) },
		Compare:  byDecimal(userPercentOfLimit),
	}),
	ColumnLiquidity: static(Column{
		Label:    ui.Literal("Liquidity"),
		Accessor: func(row model.PoolAsset) string { return formatCentsToReadableValue(row.LiquidityCents) },
		Compare:  byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.LiquidityCents }),
	}),
	ColumnPrice: static(Column{
		Label:    ui.Literal("Price"),
		Accessor: func(row model.PoolAsset) string { return formatCentsToReadableValue(row.TokenPriceCents) },
		Compare:  byDecimal(func(row model.PoolAsset) decimal.Decimal { return row.TokenPriceCents }),
	}),
}

// ParseColumnKey validates a column key string.
func ParseColumnKey(input string) (ColumnKey, error) {
	key := ColumnKey(strings.TrimSpace(input))
	if _, ok := columnFactories[key]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, input)
	}
	return key, nil
}

// ParseColumnKeys validates a list of column key strings, keeping their order.
func ParseColumnKeys(inputs []string) ([]ColumnKey, error) {
	keys := make([]ColumnKey, 0, len(inputs))
	for _, input := range inputs {
		key, err := ParseColumnKey(input)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// GenerateColumns resolves keys into columns, one per key in the same order.
// An unknown key fails the whole resolution.
func GenerateColumns(keys []ColumnKey, collateralOnChange CollateralChangeFunc) ([]Column, error) {
	columns := make([]Column, 0, len(keys))
	for _, key := range keys {
		factory, ok := columnFactories[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
		}
		column := factory(collateralOnChange)
		column.Key = key
		columns = append(columns, column)
	}
	return columns, nil
}

func static(column Column) columnFactory {
	return func(CollateralChangeFunc) Column {
		return column
	}
}

func collateralColumn(onChange CollateralChangeFunc) Column {
	return Column{
		Label: ui.Literal("Collateral"),
		Accessor: func(row model.PoolAsset) string {
			if row.CollateralFactor.IsZero() {
				return placeholder
			}
			if row.IsCollateralOfUser {
				return "on"
			}
			return "off"
		},
		Compare: func(a, b model.PoolAsset) int {
			if c := compareBools(a.IsCollateralOfUser, b.IsCollateralOfUser); c != 0 {
				return c
			}
			return a.CollateralFactor.Cmp(b.CollateralFactor)
		},
		OnClick: func(ctx context.Context, row model.PoolAsset) {
			if onChange != nil {
				onChange(ctx, row)
			}
		},
	}
}

func byDecimal(value func(row model.PoolAsset) decimal.Decimal) func(a, b model.PoolAsset) int {
	return func(a, b model.PoolAsset) int {
		return value(a).Cmp(value(b))
	}
}

func ltv(row model.PoolAsset) decimal.Decimal {
	return row.CollateralFactor.Mul(hundred)
}

func poolName(row model.PoolAsset) string {
	if row.Pool == nil {
		return ""
	}
	return row.Pool.Name
}

func userPercentOfLimit(row model.PoolAsset) decimal.Decimal {
	if row.Pool == nil || row.Pool.UserBorrowLimitCents.IsZero() {
		return decimal.Zero
	}
	return row.UserBorrowBalanceCents.Div(row.Pool.UserBorrowLimitCents).Mul(hundred)
}
