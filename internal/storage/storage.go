package storage

import (
	"context"
	"errors"

	"marketScope/internal/chain"
	"marketScope/internal/model"
)

var ErrPoolsNotFound = errors.New("no pools for chain")

// PoolSource supplies the pools of a chain, assets already populated.
type PoolSource interface {
	LoadPools(ctx context.Context, chainID chain.ChainID) ([]model.Pool, error)
}
