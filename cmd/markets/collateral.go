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
	"marketScope/internal/collateral"
	"marketScope/internal/config"
	"marketScope/internal/markettable"
	"marketScope/internal/notify"
	"marketScope/internal/storage"
)

func newToggleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle-collateral",
		Short: "Record an enter/exit market intent for one market",
		RunE:  runToggle,
	}

	cmd.Flags().String("v-token", "", "vToken address of the market")
	cmd.Flags().String("intents-out", "./data/collateral_intents.jsonl", "collateral intents JSONL")
	addSourceFlags(cmd)
	addChainFlags(cmd)

	return cmd
}

func runToggle(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadToggle(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.VToken == "" {
		return fmt.Errorf("v-token is required")
	}

	meta, err := metadataFunc(cfg.Chain)(chain.ChainID(cfg.Chain.ChainID))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := openPoolSource(ctx, cfg.Source, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	pools, err := source.LoadPools(ctx, meta.ChainID)
	if err != nil {
		return fmt.Errorf("load pools: %w", err)
	}
	for i := range pools {
		pools[i].ChainID = uint64(meta.ChainID)
	}

	display := notify.NewDisplay(1, logger)
	toggler := collateral.NewToggler(meta.ChainID, storage.NewJsonlStorage(cfg.IntentsOut), logger)
	handler := markettable.NewCollateralHandler(toggler, display, logger)

	builder := markettable.NewBuilder(markettable.NewRowRouterForChain(markettable.DefaultRoutes, meta), handler.HandleChange)
	table, err := builder.Build(markettable.Props{
		Pools:   pools,
		Columns: []markettable.ColumnKey{markettable.ColumnCollateral},
	})
	if err != nil {
		return err
	}

	row, ok := table.FindRow(cfg.VToken)
	if !ok {
		return fmt.Errorf("market not found: %s", cfg.VToken)
	}

	column, _ := table.Column(markettable.ColumnCollateral)
	column.OnClick(ctx, row.PoolAsset)
	handler.Wait()

	if notices := display.Recent(); len(notices) > 0 {
		return fmt.Errorf("toggle collateral: %s", notices[0].Detail)
	}

	logger.Info("collateral intent recorded",
		zap.String("pool", row.PoolAsset.Pool.Name),
		zap.String("v_token", row.PoolAsset.VToken.Address),
		zap.Bool("was_collateral", row.PoolAsset.IsCollateralOfUser),
		zap.String("out", cfg.IntentsOut),
	)
	return nil
}
