package model

import "github.com/shopspring/decimal"

// Pool groups lending markets sharing one comptroller contract.
type Pool struct {
	ChainID              uint64          `json:"chain_id,omitempty"`
	Name                 string          `json:"name"`
	ComptrollerAddress   string          `json:"comptroller_address"`
	IsIsolated           bool            `json:"is_isolated"`
	UserBorrowLimitCents decimal.Decimal `json:"user_borrow_limit_cents"`
	Assets               []Asset         `json:"assets"`
}
