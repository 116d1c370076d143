package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"marketScope/internal/chain"
	"marketScope/internal/collateral"
	"marketScope/internal/config"
	"marketScope/internal/markettable"
	"marketScope/internal/notify"
	"marketScope/internal/server"
	"marketScope/internal/storage"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve market tables over HTTP",
		RunE:  runServe,
	}

	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().String("intents-out", "./data/collateral_intents.jsonl", "collateral intents JSONL")
	cmd.Flags().Duration("redis-ttl", 30*time.Second, "pool snapshot TTL")
	addSourceFlags(cmd)
	addChainFlags(cmd)

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadServe(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := openPoolSource(ctx, cfg.Source, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	display := notify.NewDisplay(0, logger)
	toggler := collateral.NewToggler(chain.ChainID(cfg.Chain.ChainID), storage.NewJsonlStorage(cfg.IntentsOut), logger)
	handler := markettable.NewCollateralHandler(toggler, display, logger)

	controller := &server.Controller{
		Source:     source,
		Metadata:   metadataFunc(cfg.Chain),
		Routes:     markettable.DefaultRoutes,
		Collateral: handler,
		Display:    display,
		Logger:     logger,
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           controller.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("serve start",
		zap.String("addr", cfg.Addr),
		zap.Uint64("chain_id", cfg.Chain.ChainID),
		zap.Bool("postgres", cfg.Source.PGDSN != ""),
		zap.Bool("redis", cfg.Source.RedisAddr != ""),
		zap.String("intents_out", cfg.IntentsOut),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		handler.Wait()
		logger.Info("serve stopped")
		return err
	})

	return g.Wait()
}
