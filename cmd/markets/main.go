package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"marketScope/internal/chain"
	"marketScope/internal/config"
	"marketScope/internal/server"
	"marketScope/internal/storage"
	"marketScope/internal/storage/postgres"
	rediscache "marketScope/internal/storage/redis"
)

func main() {
	root := &cobra.Command{
		Use:          "markets",
		Short:        "Lending market tables",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	root.AddCommand(newServeCmd())
	root.AddCommand(newTableCmd())
	root.AddCommand(newRouteCmd())
	root.AddCommand(newToggleCmd())
	root.AddCommand(newChainsCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newAccountDataCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("pools-file", "", "pools JSONL file")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN (takes precedence over pools-file)")
	cmd.Flags().String("redis-addr", "", "optional Redis address for pool snapshots")
}

func addChainFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("chain-id", uint64(chain.BSCMainnet), "chain id")
	cmd.Flags().String("core-pool-comptroller", "", "override the core pool comptroller address")
	cmd.Flags().String("staked-eth-pool-comptroller", "", "override the staked ETH pool comptroller address")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// openPoolSource picks Postgres or the pools file and optionally fronts it
// with the Redis cache. The returned func releases every connection.
func openPoolSource(ctx context.Context, cfg config.SourceConfig, logger *zap.Logger) (storage.PoolSource, func(), error) {
	var (
		source  storage.PoolSource
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch {
	case cfg.PGDSN != "":
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, store.Close)
		source = store
	case cfg.PoolsFile != "":
		source = storage.NewFileSource(cfg.PoolsFile)
	default:
		return nil, nil, fmt.Errorf("pools-file or pg-dsn is required")
	}

	if cfg.RedisAddr != "" {
		client, err := rediscache.NewClient(ctx, cfg.RedisAddr, logger)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		source = rediscache.NewCache(client, source, cfg.RedisTTL, logger)
	}

	return source, closeAll, nil
}

// metadataFunc applies the configured comptroller overrides to the
// configured chain only.
func metadataFunc(cfg config.ChainConfig) server.MetadataFunc {
	return func(id chain.ChainID) (chain.Metadata, error) {
		meta, err := chain.GetMetadata(id)
		if err != nil {
			return chain.Metadata{}, err
		}
		if uint64(id) == cfg.ChainID {
			meta = meta.WithOverrides(cfg.CorePoolComptroller, cfg.StakedEthPoolComptroller)
		}
		return meta, nil
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
