// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/chain-vote/cliparse"
	"github.com/danielhkuo/chain-vote/db"
)

func provisionCommand() *cobra.Command {
	return configCommand("provision", "Create the SQL ballot store and register candidates", provisionRun)
}

// provisionRun registers the candidate set once. Contract candidates are fixed
// at deployment, so only the SQL backends can be provisioned here.
func provisionRun(cmd *cobra.Command, cfg cliparse.Config) error {
	commonRun(cfg)

	if cfg.Ledger != cliparse.LedgerPostgres && cfg.Ledger != cliparse.LedgerSQLite {
		return fmt.Errorf("provision needs a postgres or sqlite ledger, got %q", cfg.Ledger)
	}

	candidates, err := cfg.ResolveCandidates()
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.Ledger, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(conn); err != nil {
		return err
	}

	err = db.NewStore(conn).RegisterCandidates(cmd.Context(), candidates)
	if errors.Is(err, db.ErrAlreadyProvisioned) {
		slog.Error("Ballot store already provisioned", "ledger", cfg.Ledger)
		return err
	}
	if err != nil {
		slog.Error("Candidate registration failed", "error", err)
		return err
	}

	slog.Info("Candidates registered", "ledger", cfg.Ledger, "candidates", candidates)
	return nil
}
