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
	"marketScope/internal/markettable"
	"marketScope/internal/render"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the market table of a chain",
		RunE:  runTable,
	}

	addTableFlags(cmd)
	cmd.Flags().Bool("targets", false, "show the row href or operation modal tab")

	return cmd
}

func newRouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route <vTokenAddress>",
		Short: "Print where a click on a market row leads",
		Args:  cobra.ExactArgs(1),
		RunE:  runRoute,
	}

	addTableFlags(cmd)

	return cmd
}

func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("columns", nil, "column keys (comma-separated)")
	cmd.Flags().String("order-by", "", "initial order column key")
	cmd.Flags().String("order-direction", "desc", "initial order direction (asc, desc)")
	cmd.Flags().String("market-type", "", "market type (supply, borrow)")
	cmd.Flags().Bool("open-operation-modal", false, "open the operation modal on row click instead of navigating")
	addSourceFlags(cmd)
	addChainFlags(cmd)
}

func runTable(cmd *cobra.Command, _ []string) error {
	table, logger, err := buildTable(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	showTargets, _ := cmd.Flags().GetBool("targets")
	fmt.Fprintln(cmd.OutOrStdout(), render.Table(table, render.Options{ShowTargets: showTargets}))
	return nil
}

func runRoute(cmd *cobra.Command, args []string) error {
	table, logger, err := buildTable(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	row, ok := table.FindRow(args[0])
	if !ok {
		return fmt.Errorf("market not found: %s", args[0])
	}
	fmt.Fprintln(cmd.OutOrStdout(), render.Target(row))
	return nil
}

// buildTable loads pools and assembles the table described by the command's
// configuration. Collateral toggling is not available from these commands.
func buildTable(cmd *cobra.Command) (*markettable.Table, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadTable(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	props, err := tableProps(cfg)
	if err != nil {
		return nil, nil, err
	}

	meta, err := metadataFunc(cfg.Chain)(chain.ChainID(cfg.Chain.ChainID))
	if err != nil {
		return nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := openPoolSource(ctx, cfg.Source, logger)
	if err != nil {
		return nil, nil, err
	}
	defer closeSource()

	props.Pools, err = source.LoadPools(ctx, meta.ChainID)
	if err != nil {
		return nil, nil, fmt.Errorf("load pools: %w", err)
	}

	builder := markettable.NewBuilder(markettable.NewRowRouterForChain(markettable.DefaultRoutes, meta), nil)
	table, err := builder.Build(props)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("table built",
		zap.Uint64("chain_id", uint64(meta.ChainID)),
		zap.Int("pools", len(props.Pools)),
		zap.Int("rows", len(table.Rows)),
		zap.Int("columns", len(table.Columns)),
	)

	return table, logger, nil
}

func tableProps(cfg config.TableConfig) (markettable.Props, error) {
	columns, err := markettable.ParseColumnKeys(cfg.Columns)
	if err != nil {
		return markettable.Props{}, err
	}

	props := markettable.Props{
		Columns:                      columns,
		OpenOperationModalOnRowClick: cfg.OpenOperationModalOnRowClick,
	}

	if props.MarketType, err = markettable.ParseMarketType(cfg.MarketType); err != nil {
		return markettable.Props{}, err
	}

	if cfg.OrderBy != "" {
		key, err := markettable.ParseColumnKey(cfg.OrderBy)
		if err != nil {
			return markettable.Props{}, err
		}
		direction, err := markettable.ParseOrderDirection(cfg.OrderDirection)
		if err != nil {
			return markettable.Props{}, err
		}
		props.InitialOrder = &markettable.InitialOrder{OrderBy: key, OrderDirection: direction}
	}

	return props, nil
}
