// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/chain-vote/auth"
	"github.com/danielhkuo/chain-vote/ledger"
	"github.com/danielhkuo/chain-vote/models"
)

// Gateway is the ledger surface the service depends on.
type Gateway interface {
	ListCandidates(ctx context.Context) ([]string, error)
	IsValidCandidate(ctx context.Context, name string) (bool, error)
	GetTally(ctx context.Context, name string) (uint64, error)
	HasVoted(ctx context.Context, voter string) (bool, error)
	SubmitVote(ctx context.Context, candidate, voter string) (ledger.Receipt, error)
}

type Options struct {
	Logger *slog.Logger
	// LogSalt keys the voter address hashes written to logs.
	LogSalt    string
	Registerer prometheus.Registerer
}

// Service enforces candidate validity and one vote per voter in front of
// the ledger. It keeps no state between calls.
type Service struct {
	gateway Gateway
	logger  *slog.Logger
	logSalt string
	metrics *serviceMetrics
}

func NewService(gateway Gateway, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gateway: gateway,
		logger:  logger,
		logSalt: opts.LogSalt,
		metrics: newServiceMetrics(opts.Registerer),
	}
}

// CastVote validates the ballot and submits it to the ledger.
//
// The HasVoted check only gives early feedback. Two racing ballots from one
// voter can both pass it; the ledger's atomic check-then-set decides which is
// accepted, and the loser is reported as models.ErrAlreadyVoted.
func (s *Service) CastVote(ctx context.Context, candidate, voter string) (ledger.Receipt, error) {
	receipt, err := s.castVote(ctx, candidate, voter)
	s.metrics.observeVote(err)
	return receipt, err
}

func (s *Service) castVote(ctx context.Context, candidate, voter string) (ledger.Receipt, error) {
	candidate = strings.TrimSpace(candidate)
	voter = NormalizeVoter(voter)
	if candidate == "" {
		return ledger.Receipt{}, fmt.Errorf("%w: candidate is required", models.ErrInvalidInput)
	}
	if voter == "" {
		return ledger.Receipt{}, fmt.Errorf("%w: voter address is required", models.ErrInvalidInput)
	}
	voterHash := auth.HashAddress(voter, s.logSalt)

	valid, err := s.gateway.IsValidCandidate(ctx, candidate)
	if err != nil {
		s.logger.Error("candidate validity check failed", "candidate", candidate, "error", err)
		return ledger.Receipt{}, err
	}
	if !valid {
		s.logger.Info("vote for unregistered candidate", "candidate", candidate, "voter_hash", voterHash)
		return ledger.Receipt{}, fmt.Errorf("%w: %s", models.ErrInvalidCandidate, candidate)
	}

	voted, err := s.gateway.HasVoted(ctx, voter)
	if err != nil {
		s.logger.Error("voter status check failed", "voter_hash", voterHash, "error", err)
		return ledger.Receipt{}, err
	}
	if voted {
		s.logger.Info("repeat vote refused", "voter_hash", voterHash)
		return ledger.Receipt{}, fmt.Errorf("%w: %s", models.ErrAlreadyVoted, voter)
	}

	receipt, err := s.gateway.SubmitVote(ctx, candidate, voter)
	if errors.Is(err, ledger.ErrRejected) {
		s.logger.Info("vote rejected by ledger", "voter_hash", voterHash, "error", err)
		return ledger.Receipt{}, fmt.Errorf("%w: %v", models.ErrAlreadyVoted, err)
	}
	if err != nil {
		s.logger.Error("vote submission failed", "candidate", candidate, "voter_hash", voterHash, "error", err)
		return ledger.Receipt{}, err
	}

	s.logger.Info("vote accepted", "candidate", candidate, "voter_hash", voterHash, "tx_hash", receipt.TxHash)
	return receipt, nil
}

// GetResults reads the tally of each candidate in order. An empty list means
// every registered candidate. Any failed read fails the whole call so that a
// partial snapshot is never returned.
func (s *Service) GetResults(ctx context.Context, candidates []string) ([]models.CandidateTally, error) {
	if len(candidates) == 0 {
		var err error
		candidates, err = s.gateway.ListCandidates(ctx)
		if err != nil {
			return nil, err
		}
	}

	results := make([]models.CandidateTally, 0, len(candidates))
	for _, candidate := range candidates {
		votes, err := s.gateway.GetTally(ctx, candidate)
		if err != nil {
			s.logger.Error("tally read failed", "candidate", candidate, "error", err)
			if errors.Is(err, models.ErrLedgerUnavailable) {
				return nil, fmt.Errorf("tally for %q: %w", candidate, err)
			}
			return nil, fmt.Errorf("%w: tally for %q: %v", models.ErrLedgerUnavailable, candidate, err)
		}
		results = append(results, models.CandidateTally{Candidate: candidate, Votes: votes})
	}
	return results, nil
}

func (s *Service) ListCandidates(ctx context.Context) ([]string, error) {
	return s.gateway.ListCandidates(ctx)
}

// GetTally returns one candidate's tally; unregistered names fail with
// models.ErrInvalidCandidate.
func (s *Service) GetTally(ctx context.Context, candidate string) (uint64, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return 0, fmt.Errorf("%w: candidate is required", models.ErrInvalidInput)
	}
	return s.gateway.GetTally(ctx, candidate)
}

func (s *Service) HasVoted(ctx context.Context, voter string) (bool, error) {
	voter = NormalizeVoter(voter)
	if voter == "" {
		return false, fmt.Errorf("%w: voter address is required", models.ErrInvalidInput)
	}
	return s.gateway.HasVoted(ctx, voter)
}

// NormalizeVoter trims the address and, for 20-byte hex addresses, returns
// the checksummed form so that case variants identify the same voter.
func NormalizeVoter(voter string) string {
	voter = strings.TrimSpace(voter)
	if common.IsHexAddress(voter) {
		return common.HexToAddress(voter).Hex()
	}
	return voter
}
