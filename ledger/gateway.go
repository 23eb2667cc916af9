// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/chain-vote/models"
)

const (
	DefaultTimeout       = 15 * time.Second
	DefaultMaxCandidates = 1024
)

// Options tunes a Gateway. Zero values select the defaults.
type Options struct {
	Timeout       time.Duration
	MaxCandidates int
	Registerer    prometheus.Registerer
	Logger        *slog.Logger
}

// Gateway adapts a Contract into the list/tally/vote operations used by the
// voting service. It holds no ledger state and is safe for concurrent use.
type Gateway struct {
	contract      Contract
	timeout       time.Duration
	maxCandidates int
	metrics       *gatewayMetrics
	logger        *slog.Logger
}

func NewGateway(contract Contract, opts Options) *Gateway {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = DefaultMaxCandidates
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		contract:      contract,
		timeout:       opts.Timeout,
		maxCandidates: opts.MaxCandidates,
		metrics:       newGatewayMetrics(opts.Registerer),
		logger:        logger,
	}
}

// ListCandidates reads candidates by ascending index until the first lookup
// failure. The failing index is the length of the list.
func (g *Gateway) ListCandidates(ctx context.Context) ([]string, error) {
	candidates := []string{}
	for i := 0; i < g.maxCandidates; i++ {
		var name string
		err := g.call(ctx, "candidate_at", func(ctx context.Context) error {
			var err error
			name, err = g.contract.CandidateAt(ctx, uint64(i))
			return err
		})
		if err != nil {
			// A cancelled caller or a timed-out lookup did not observe the
			// end of the list.
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, ctx.Err())
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: candidate %d: %v", models.ErrLedgerUnavailable, i, err)
			}
			g.logger.Debug("candidate list ended", "index", i, "error", err)
			return candidates, nil
		}
		candidates = append(candidates, name)
	}
	return nil, fmt.Errorf("%w: more than %d candidates", models.ErrLedgerUnavailable, g.maxCandidates)
}

// IsValidCandidate reports whether name is registered on the ledger.
func (g *Gateway) IsValidCandidate(ctx context.Context, name string) (bool, error) {
	var valid bool
	err := g.call(ctx, "is_valid_candidate", func(ctx context.Context) error {
		var err error
		valid, err = g.contract.IsValidCandidate(ctx, name)
		return err
	})
	if err != nil {
		return false, classify(err)
	}
	return valid, nil
}

// GetTally returns the vote count of a registered candidate.
func (g *Gateway) GetTally(ctx context.Context, name string) (uint64, error) {
	valid, err := g.IsValidCandidate(ctx, name)
	if err != nil {
		return 0, err
	}
	if !valid {
		return 0, fmt.Errorf("%w: %s", models.ErrInvalidCandidate, name)
	}

	var votes uint64
	err = g.call(ctx, "total_votes_for", func(ctx context.Context) error {
		var err error
		votes, err = g.contract.TotalVotesFor(ctx, name)
		return err
	})
	if err != nil {
		return 0, classify(err)
	}
	return votes, nil
}

func (g *Gateway) HasVoted(ctx context.Context, voter string) (bool, error) {
	var voted bool
	err := g.call(ctx, "has_voted", func(ctx context.Context) error {
		var err error
		voted, err = g.contract.HasVoted(ctx, voter)
		return err
	})
	if err != nil {
		return false, classify(err)
	}
	return voted, nil
}

// SubmitVote passes the ballot to the ledger. Atomicity of the voter's
// check-then-set is the ledger's responsibility.
func (g *Gateway) SubmitVote(ctx context.Context, candidate, voter string) (Receipt, error) {
	var receipt Receipt
	err := g.call(ctx, "vote_for", func(ctx context.Context) error {
		var err error
		receipt, err = g.contract.VoteFor(ctx, candidate, voter)
		return err
	})
	if err != nil {
		return Receipt{}, classify(err)
	}
	return receipt, nil
}

func (g *Gateway) call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	g.metrics.observe(op, err, time.Since(start))
	return err
}

// classify keeps errors that carry a user-facing meaning and folds everything
// else (transport, timeout, decoding) into ErrLedgerUnavailable.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrRejected),
		errors.Is(err, models.ErrInvalidCandidate),
		errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrLedgerUnavailable):
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrLedgerUnavailable, err)
}
