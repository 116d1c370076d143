package model

import "github.com/shopspring/decimal"

// Token is an ERC20 token descriptor.
type Token struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// VToken is the market token minted when supplying the underlying token.
type VToken struct {
	Address         string `json:"address"`
	Symbol          string `json:"symbol"`
	Decimals        uint8  `json:"decimals"`
	UnderlyingToken Token  `json:"underlying_token"`
}

// Asset is one market inside a pool. Figures arrive pre-computed.
type Asset struct {
	VToken                  VToken          `json:"v_token"`
	TokenPriceCents         decimal.Decimal `json:"token_price_cents"`
	SupplyAPYPercentage     decimal.Decimal `json:"supply_apy_percentage"`
	BorrowAPYPercentage     decimal.Decimal `json:"borrow_apy_percentage"`
	CollateralFactor        decimal.Decimal `json:"collateral_factor"`
	LiquidityCents          decimal.Decimal `json:"liquidity_cents"`
	SupplyBalanceCents      decimal.Decimal `json:"supply_balance_cents"`
	BorrowBalanceCents      decimal.Decimal `json:"borrow_balance_cents"`
	UserSupplyBalanceTokens decimal.Decimal `json:"user_supply_balance_tokens"`
	UserSupplyBalanceCents  decimal.Decimal `json:"user_supply_balance_cents"`
	UserBorrowBalanceTokens decimal.Decimal `json:"user_borrow_balance_tokens"`
	UserBorrowBalanceCents  decimal.Decimal `json:"user_borrow_balance_cents"`
	UserWalletBalanceTokens decimal.Decimal `json:"user_wallet_balance_tokens"`
	UserWalletBalanceCents  decimal.Decimal `json:"user_wallet_balance_cents"`
	IsCollateralOfUser      bool            `json:"is_collateral_of_user"`
}

// Symbol returns the underlying token symbol.
func (a Asset) Symbol() string {
	return a.VToken.UnderlyingToken.Symbol
}
