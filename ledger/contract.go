// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
)

var (
	// ErrNoCandidate is returned by CandidateAt past the last registered index.
	ErrNoCandidate = errors.New("no candidate at index")
	// ErrRejected is returned by VoteFor when the ledger refuses the ballot
	// at its atomic check-then-set step.
	ErrRejected = errors.New("vote rejected by ledger")
)

// Receipt identifies an accepted ballot on the ledger. TxHash is empty for
// stores that have no transaction identifiers.
type Receipt struct {
	TxHash string
}

// Contract is the set of primitives an external ballot ledger exposes.
//
// VoteFor must check that voter has not voted, mark it as voted and increment
// the candidate's tally as one atomic operation.
type Contract interface {
	CandidateAt(ctx context.Context, index uint64) (string, error)
	IsValidCandidate(ctx context.Context, name string) (bool, error)
	TotalVotesFor(ctx context.Context, name string) (uint64, error)
	HasVoted(ctx context.Context, voter string) (bool, error)
	VoteFor(ctx context.Context, candidate, voter string) (Receipt, error)
}
