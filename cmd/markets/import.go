package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marketScope/internal/chain"
	"marketScope/internal/config"
	"marketScope/internal/storage"
	"marketScope/internal/storage/postgres"
	rediscache "marketScope/internal/storage/redis"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a pools JSONL file into Postgres",
		RunE:  runImport,
	}

	cmd.Flags().String("in", "", "input pools JSONL")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
	cmd.Flags().String("rpc", "", "optional RPC URL used to fill missing underlying token symbols")
	cmd.Flags().String("redis-addr", "", "optional Redis address whose pool snapshot is dropped after the import")
	addChainFlags(cmd)

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadImport(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input file is required")
	}
	chainID := chain.ChainID(cfg.Chain.ChainID)
	if _, err := chain.GetMetadata(chainID); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pools, err := storage.NewFileSource(cfg.In).LoadPools(ctx, chainID)
	if err != nil {
		return err
	}

	if cfg.RPCURL != "" {
		client, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return fmt.Errorf("connect rpc: %w", err)
		}
		defer client.Close()

		enricher := &chain.TokenEnricher{
			Caller: client,
			Cache:  chain.NewTokenCache(),
			Logger: logger,
		}
		if err := enricher.EnrichPools(ctx, pools); err != nil {
			return err
		}
	}

	store, err := postgres.NewStore(ctx, cfg.PGDSN)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := store.UpsertPools(ctx, chainID, pools); err != nil {
		return err
	}

	if cfg.RedisAddr != "" {
		client, err := rediscache.NewClient(ctx, cfg.RedisAddr, logger)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()

		if err := rediscache.NewCache(client, store, 0, logger).Invalidate(ctx, chainID); err != nil {
			return fmt.Errorf("invalidate pool snapshot: %w", err)
		}
	}

	logger.Info("import done",
		zap.String("in", cfg.In),
		zap.Uint64("chain_id", uint64(chainID)),
		zap.Int("pools", len(pools)),
		zap.Bool("snapshot_invalidated", cfg.RedisAddr != ""),
	)
	return nil
}
