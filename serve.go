// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/chain-vote/cliparse"
	"github.com/danielhkuo/chain-vote/middleware"
	"github.com/danielhkuo/chain-vote/router"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	return configCommand("serve", "Serve the voting API (default)", serveRun)
}

func serveRun(cmd *cobra.Command, cfg cliparse.Config) error {
	logger := commonRun(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	contract, defaultVoter, closeLedger, err := openLedger(ctx, cfg, true)
	if err != nil {
		slog.Error("ledger connection failed", "ledger", cfg.Ledger, "error", err)
		return err
	}
	defer closeLedger()
	cfg.DefaultVoter = defaultVoter

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	svc := newService(contract, cfg, logger, reg)

	// Connection test: the ledger must answer before we accept traffic
	candidates, err := svc.ListCandidates(ctx)
	if err != nil {
		slog.Error("Connection test failed", "ledger", cfg.Ledger, "error", err)
		return fmt.Errorf("connection test failed: %w", err)
	}
	slog.Info("Connected to ledger", "ledger", cfg.Ledger, "candidates", candidates)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(router.NewRouter(svc, cfg, reg)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "ledger", cfg.Ledger)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed")
	return nil
}
