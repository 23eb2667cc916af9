// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/chain-vote/cliparse"
	"github.com/danielhkuo/chain-vote/db"
	"github.com/danielhkuo/chain-vote/ethcontract"
	"github.com/danielhkuo/chain-vote/ledger"
	"github.com/danielhkuo/chain-vote/voting"
)

// openLedger connects the configured backend. When needSender is set and no
// default voter is configured, Ethereum's first node account becomes the
// default voter. Read-only callers pass false so that nodes without accounts
// still work.
func openLedger(ctx context.Context, cfg cliparse.Config, needSender bool) (contract ledger.Contract, defaultVoter string, closeFn func(), err error) {
	defaultVoter = cfg.DefaultVoter

	switch cfg.Ledger {
	case cliparse.LedgerEthereum:
		client, err := ethcontract.Dial(ctx, cfg.RPCURL, cfg.ContractAddress)
		if err != nil {
			return nil, "", nil, err
		}
		if needSender && defaultVoter == "" {
			account, err := client.DefaultAccount(ctx)
			if err != nil {
				client.Close()
				return nil, "", nil, fmt.Errorf("failed to read node accounts: %w", err)
			}
			defaultVoter = account
		}
		slog.Info("Connected to Ethereum node", "rpc_url", cfg.RPCURL, "contract", cfg.ContractAddress)
		return client, defaultVoter, client.Close, nil

	case cliparse.LedgerPostgres, cliparse.LedgerSQLite:
		conn, err := db.Open(cfg.Ledger, cfg.DatabaseURL)
		if err != nil {
			return nil, "", nil, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, "", nil, err
		}
		slog.Info("Database schema ready", "type", cfg.Ledger)
		return db.NewStore(conn), defaultVoter, func() { conn.Close() }, nil

	case cliparse.LedgerMemory:
		candidates, err := cfg.ResolveCandidates()
		if err != nil {
			return nil, "", nil, err
		}
		slog.Warn("Using in-memory ledger; votes are lost on exit", "candidates", len(candidates))
		return ledger.NewMemory(candidates...), defaultVoter, func() {}, nil

	default:
		return nil, "", nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger)
	}
}

// newService stacks the gateway and voting service over contract
func newService(contract ledger.Contract, cfg cliparse.Config, logger *slog.Logger, reg prometheus.Registerer) *voting.Service {
	gateway := ledger.NewGateway(contract, ledger.Options{
		Timeout:       cfg.LedgerTimeout,
		MaxCandidates: cfg.MaxCandidates,
		Registerer:    reg,
		Logger:        logger,
	})
	return voting.NewService(gateway, voting.Options{
		Logger:     logger,
		LogSalt:    cfg.LogSalt,
		Registerer: reg,
	})
}
