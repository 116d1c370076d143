package accountdata

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"marketScope/internal/chain"
	"marketScope/internal/model"
)

// Action is the operation whose effect on the account is previewed.
type Action string

const (
	ActionSupply   Action = "supply"
	ActionWithdraw Action = "withdraw"
	ActionBorrow   Action = "borrow"
	ActionRepay    Action = "repay"
)

// SafeBorrowLimitPercentage is the share of the borrow limit considered safe
// to use.
const SafeBorrowLimitPercentage = 80

var (
	ErrAssetNotInPool       = errors.New("asset not in pool")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrAmountExceedsBalance = errors.New("amount exceeds user balance")
)

var (
	hundred     = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromInt(365)
	safeShare   = decimal.NewFromInt(SafeBorrowLimitPercentage).Div(hundred)
)

// ParseAction validates an action string.
func ParseAction(input string) (Action, error) {
	switch Action(input) {
	case ActionSupply, ActionWithdraw, ActionBorrow, ActionRepay:
		return Action(input), nil
	default:
		return "", fmt.Errorf("invalid action: %s", input)
	}
}

// Figures are the account totals of one pool.
type Figures struct {
	SupplyBalanceCents        decimal.Decimal `json:"supply_balance_cents"`
	BorrowBalanceCents        decimal.Decimal `json:"borrow_balance_cents"`
	BorrowLimitCents          decimal.Decimal `json:"borrow_limit_cents"`
	SafeBorrowLimitCents      decimal.Decimal `json:"safe_borrow_limit_cents"`
	BorrowLimitUsedPercentage decimal.Decimal `json:"borrow_limit_used_percentage"`
	YearlyEarningsCents       decimal.Decimal `json:"yearly_earnings_cents"`
	DailyEarningsCents        decimal.Decimal `json:"daily_earnings_cents"`
	NetAPYPercentage          decimal.Decimal `json:"net_apy_percentage"`
	AboveSafeLimit            bool            `json:"above_safe_limit"`
	AboveLimit                bool            `json:"above_limit"`
}

// Summary is the account data panel for one market and action. Hypothetical
// is nil when the amount is zero.
type Summary struct {
	PoolName      string          `json:"pool_name"`
	VTokenAddress string          `json:"v_token_address"`
	Symbol        string          `json:"symbol"`
	Action        Action          `json:"action"`
	AmountTokens  decimal.Decimal `json:"amount_tokens"`
	Current       Figures         `json:"current"`
	Hypothetical  *Figures        `json:"hypothetical,omitempty"`
}

// Compute previews the account of pool after applying action with
// amountTokens of asset. The pool's borrow limit is taken as the current one
// and moves by the collateral factor when the asset is collateral.
func Compute(pool model.Pool, asset model.Asset, action Action, amountTokens decimal.Decimal) (Summary, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return Summary{}, err
	}
	if amountTokens.IsNegative() {
		return Summary{}, ErrNegativeAmount
	}

	index := assetIndex(pool, asset.VToken.Address)
	if index < 0 {
		return Summary{}, fmt.Errorf("%w: %s in %s", ErrAssetNotInPool, asset.VToken.Address, pool.Name)
	}

	summary := Summary{
		PoolName:      pool.Name,
		VTokenAddress: asset.VToken.Address,
		Symbol:        asset.Symbol(),
		Action:        action,
		AmountTokens:  amountTokens,
		Current:       figures(pool.Assets, pool.UserBorrowLimitCents),
	}
	if amountTokens.IsZero() {
		return summary, nil
	}

	target := pool.Assets[index]
	amountCents := amountTokens.Mul(target.TokenPriceCents)
	limit := pool.UserBorrowLimitCents

	switch action {
	case ActionSupply:
		target.UserSupplyBalanceTokens = target.UserSupplyBalanceTokens.Add(amountTokens)
		target.UserSupplyBalanceCents = target.UserSupplyBalanceCents.Add(amountCents)
		if target.IsCollateralOfUser {
			limit = limit.Add(amountCents.Mul(target.CollateralFactor))
		}
	case ActionWithdraw:
		if amountTokens.GreaterThan(target.UserSupplyBalanceTokens) {
			return Summary{}, fmt.Errorf("%w: withdraw %s %s", ErrAmountExceedsBalance, amountTokens, target.Symbol())
		}
		target.UserSupplyBalanceTokens = target.UserSupplyBalanceTokens.Sub(amountTokens)
		target.UserSupplyBalanceCents = target.UserSupplyBalanceCents.Sub(amountCents)
		if target.IsCollateralOfUser {
			limit = limit.Sub(amountCents.Mul(target.CollateralFactor))
		}
	case ActionBorrow:
		target.UserBorrowBalanceTokens = target.UserBorrowBalanceTokens.Add(amountTokens)
		target.UserBorrowBalanceCents = target.UserBorrowBalanceCents.Add(amountCents)
	case ActionRepay:
		if amountTokens.GreaterThan(target.UserBorrowBalanceTokens) {
			return Summary{}, fmt.Errorf("%w: repay %s %s", ErrAmountExceedsBalance, amountTokens, target.Symbol())
		}
		target.UserBorrowBalanceTokens = target.UserBorrowBalanceTokens.Sub(amountTokens)
		target.UserBorrowBalanceCents = target.UserBorrowBalanceCents.Sub(amountCents)
	}

	assets := append([]model.Asset(nil), pool.Assets...)
	assets[index] = target
	hypothetical := figures(assets, limit)
	summary.Hypothetical = &hypothetical

	return summary, nil
}

// Locate finds the pool and asset of a vToken among pools.
func Locate(pools []model.Pool, vTokenAddress string) (model.Pool, model.Asset, bool) {
	for _, pool := range pools {
		if i := assetIndex(pool, vTokenAddress); i >= 0 {
			return pool, pool.Assets[i], true
		}
	}
	return model.Pool{}, model.Asset{}, false
}

func assetIndex(pool model.Pool, vTokenAddress string) int {
	for i, asset := range pool.Assets {
		if chain.AreAddressesEqual(asset.VToken.Address, vTokenAddress) {
			return i
		}
	}
	return -1
}

func figures(assets []model.Asset, borrowLimitCents decimal.Decimal) Figures {
	f := Figures{BorrowLimitCents: borrowLimitCents}

	for _, asset := range assets {
		f.SupplyBalanceCents = f.SupplyBalanceCents.Add(asset.UserSupplyBalanceCents)
		f.BorrowBalanceCents = f.BorrowBalanceCents.Add(asset.UserBorrowBalanceCents)

		earned := asset.UserSupplyBalanceCents.Mul(asset.SupplyAPYPercentage).Div(hundred)
		paid := asset.UserBorrowBalanceCents.Mul(asset.BorrowAPYPercentage).Div(hundred)
		f.YearlyEarningsCents = f.YearlyEarningsCents.Add(earned).Sub(paid)
	}

	f.DailyEarningsCents = f.YearlyEarningsCents.Div(daysPerYear)
	f.SafeBorrowLimitCents = borrowLimitCents.Mul(safeShare)

	if f.SupplyBalanceCents.IsPositive() {
		f.NetAPYPercentage = f.YearlyEarningsCents.Div(f.SupplyBalanceCents).Mul(hundred)
	}
	if borrowLimitCents.IsPositive() {
		f.BorrowLimitUsedPercentage = f.BorrowBalanceCents.Div(borrowLimitCents).Mul(hundred)
	}
	f.AboveSafeLimit = f.BorrowBalanceCents.GreaterThan(f.SafeBorrowLimitCents)
	f.AboveLimit = f.BorrowBalanceCents.GreaterThan(borrowLimitCents)

	return f
}
