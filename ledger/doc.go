// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger adapts an external ballot ledger for the voting service.

# Contract

Contract is the set of primitives the ledger exposes:

  - CandidateAt: candidate by index, fails past the last one
  - IsValidCandidate: membership in the registered set
  - TotalVotesFor: per-candidate tally
  - HasVoted: per-voter flag
  - VoteFor: atomic "not voted → voted, tally + 1"

Implementations live in ethcontract (Ethereum JSON-RPC), db (PostgreSQL or
SQLite) and this package (Memory).

# Gateway

Gateway wraps a Contract with per-call timeouts, error classification and
latency metrics:

	gw := ledger.NewGateway(contract, ledger.Options{
		Timeout:    15 * time.Second,
		Registerer: registry,
	})
	candidates, err := gw.ListCandidates(ctx)

ListCandidates walks indexes from 0 and stops at the first failed lookup,
bounded by MaxCandidates. Transport failures and timeouts surface as
models.ErrLedgerUnavailable; a refused ballot surfaces as ErrRejected.
*/
package ledger
