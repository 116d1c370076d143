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
	"marketScope/internal/ui"
)

func newChainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chains",
		Short: "List supported chains, optionally verifying an RPC endpoint",
		RunE:  runChains,
	}

	cmd.Flags().String("rpc", "", "RPC URL to verify against the selected chain")
	addChainFlags(cmd)

	return cmd
}

func runChains(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadChains(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	selected := chain.ChainID(cfg.Chain.ChainID)
	options := chain.SelectOptions()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "selected: %s\n", ui.ButtonText(options, selected, "unknown"))
	for _, option := range options {
		marker := " "
		if option.Value == selected {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %d\t%s\n", marker, option.Value, option.Label)
	}

	if cfg.RPCURL == "" {
		return nil
	}

	meta, err := metadataFunc(cfg.Chain)(selected)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer client.Close()

	if err := client.Verify(ctx, meta); err != nil {
		return err
	}

	logger.Info("rpc verified",
		zap.Uint64("chain_id", uint64(meta.ChainID)),
		zap.String("core_pool_comptroller", meta.CorePoolComptrollerContractAddress),
		zap.String("staked_eth_pool_comptroller", meta.StakedEthPoolComptrollerContractAddress),
	)
	return nil
}
