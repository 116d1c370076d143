package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marketScope/internal/accountdata"
	"marketScope/internal/chain"
	"marketScope/internal/config"
	"marketScope/internal/render"
)

func newAccountDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account-data <vTokenAddress>",
		Short: "Preview account figures after supplying, withdrawing, borrowing or repaying",
		Args:  cobra.ExactArgs(1),
		RunE:  runAccountData,
	}

	cmd.Flags().String("action", "supply", "action (supply, withdraw, borrow, repay)")
	cmd.Flags().String("amount", "0", "amount in tokens")
	addSourceFlags(cmd)
	addChainFlags(cmd)

	return cmd
}

func runAccountData(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadAccountData(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	action, err := accountdata.ParseAction(cfg.Action)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(cfg.AmountTokens)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := openPoolSource(ctx, cfg.Source, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	chainID := chain.ChainID(cfg.Chain.ChainID)
	pools, err := source.LoadPools(ctx, chainID)
	if err != nil {
		return fmt.Errorf("load pools: %w", err)
	}

	pool, asset, ok := accountdata.Locate(pools, args[0])
	if !ok {
		return fmt.Errorf("market not found: %s", args[0])
	}

	summary, err := accountdata.Compute(pool, asset, action, amount)
	if err != nil {
		return err
	}

	logger.Debug("account data computed",
		zap.String("pool", pool.Name),
		zap.String("v_token", asset.VToken.Address),
		zap.String("action", string(action)),
		zap.String("amount", amount.String()),
	)

	fmt.Fprintln(cmd.OutOrStdout(), render.AccountData(summary))
	return nil
}
