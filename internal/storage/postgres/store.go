package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"marketScope/internal/chain"
	"marketScope/internal/model"
	"marketScope/internal/storage"
)

// Schema creates the tables backing the pool source.
const Schema = `
CREATE TABLE IF NOT EXISTS pools (
	chain_id BIGINT NOT NULL,
	comptroller_address TEXT NOT NULL,
	name TEXT NOT NULL,
	is_isolated BOOLEAN NOT NULL DEFAULT false,
	user_borrow_limit_cents NUMERIC NOT NULL DEFAULT 0,
	position INT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, comptroller_address)
);
CREATE TABLE IF NOT EXISTS pool_assets (
	chain_id BIGINT NOT NULL,
	comptroller_address TEXT NOT NULL,
	v_token_address TEXT NOT NULL,
	position INT NOT NULL,
	data JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, comptroller_address, v_token_address)
);
`

// Store provides Postgres persistence for pools.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates missing tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Schema)
	return err
}

// UpsertPools replaces the pools of a chain and their assets, keeping order.
func (s *Store) UpsertPools(ctx context.Context, chainID chain.ChainID, pools []model.Pool) error {
	if len(pools) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for position, pool := range pools {
		comptroller := normalizeAddress(pool.ComptrollerAddress)
		batch.Queue(`
			INSERT INTO pools (
				chain_id, comptroller_address, name, is_isolated, user_borrow_limit_cents, position, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, now())
			ON CONFLICT (chain_id, comptroller_address)
			DO UPDATE SET
				name = EXCLUDED.name,
				is_isolated = EXCLUDED.is_isolated,
				user_borrow_limit_cents = EXCLUDED.user_borrow_limit_cents,
				position = EXCLUDED.position,
				updated_at = now()
		`,
			int64(chainID),
			comptroller,
			pool.Name,
			pool.IsIsolated,
			pool.UserBorrowLimitCents.String(),
			position,
		)
		batch.Queue(`DELETE FROM pool_assets WHERE chain_id = $1 AND comptroller_address = $2`, int64(chainID), comptroller)

		for assetPosition, asset := range pool.Assets {
			data, err := json.Marshal(asset)
			if err != nil {
				return fmt.Errorf("marshal asset %s: %w", asset.VToken.Address, err)
			}
			batch.Queue(`
				INSERT INTO pool_assets (chain_id, comptroller_address, v_token_address, position, data, updated_at)
				VALUES ($1, $2, $3, $4, $5, now())
			`,
				int64(chainID),
				comptroller,
				normalizeAddress(asset.VToken.Address),
				assetPosition,
				data,
			)
		}
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadPools returns the pools of chainID in stored order.
func (s *Store) LoadPools(ctx context.Context, chainID chain.ChainID) ([]model.Pool, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT comptroller_address, name, is_isolated, user_borrow_limit_cents::text
		FROM pools WHERE chain_id = $1
		ORDER BY position, comptroller_address
	`, int64(chainID))
	if err != nil {
		return nil, fmt.Errorf("query pools: %w", err)
	}

	var pools []model.Pool
	index := make(map[string]int)
	for rows.Next() {
		var pool model.Pool
		var limit string
		if err := rows.Scan(&pool.ComptrollerAddress, &pool.Name, &pool.IsIsolated, &limit); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan pool: %w", err)
		}
		pool.ChainID = uint64(chainID)
		if pool.UserBorrowLimitCents, err = decimal.NewFromString(limit); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parse borrow limit: %w", err)
		}
		index[pool.ComptrollerAddress] = len(pools)
		pools = append(pools, pool)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query pools: %w", err)
	}
	if len(pools) == 0 {
		return nil, fmt.Errorf("%w: %d", storage.ErrPoolsNotFound, chainID)
	}

	assetRows, err := s.pool.Query(ctx, `
		SELECT comptroller_address, data
		FROM pool_assets WHERE chain_id = $1
		ORDER BY comptroller_address, position
	`, int64(chainID))
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	defer assetRows.Close()

	for assetRows.Next() {
		var comptroller string
		var data []byte
		if err := assetRows.Scan(&comptroller, &data); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		i, ok := index[comptroller]
		if !ok {
			continue
		}
		var asset model.Asset
		if err := json.Unmarshal(data, &asset); err != nil {
			return nil, fmt.Errorf("decode asset: %w", err)
		}
		pools[i].Assets = append(pools[i].Assets, asset)
	}
	if err := assetRows.Err(); err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}

	return pools, nil
}

func normalizeAddress(address string) string {
	if parsed, err := chain.ParseAddress(address); err == nil {
		return parsed.Hex()
	}
	return strings.TrimSpace(address)
}

var _ storage.PoolSource = (*Store)(nil)
