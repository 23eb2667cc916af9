// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/chain-vote/auth"
	"github.com/danielhkuo/chain-vote/cliparse"
	"github.com/danielhkuo/chain-vote/ledger"
	"github.com/danielhkuo/chain-vote/middleware"
	"github.com/danielhkuo/chain-vote/models"
	"github.com/danielhkuo/chain-vote/voting"
)

// Service is the voting surface served over HTTP. *voting.Service
// satisfies it.
type Service interface {
	CastVote(ctx context.Context, candidate, voter string) (ledger.Receipt, error)
	GetResults(ctx context.Context, candidates []string) ([]models.CandidateTally, error)
	ListCandidates(ctx context.Context) ([]string, error)
	GetTally(ctx context.Context, candidate string) (uint64, error)
	HasVoted(ctx context.Context, voter string) (bool, error)
}

type VotingHandler struct {
	svc Service
	cfg cliparse.Config
}

func NewVotingHandler(svc Service, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{svc: svc, cfg: cfg}
}

// CastVote handles POST /api/vote
// A missing "from" falls back to the configured default voter.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	// Parse request
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindInvalidInput, "Invalid JSON")
		return
	}

	candidate := strings.TrimSpace(req.Candidate)
	if candidate == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindInvalidInput, "Candidate name is required")
		return
	}

	voter := strings.TrimSpace(req.From)
	if voter == "" {
		voter = h.cfg.DefaultVoter
	}
	if voter == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindInvalidInput, "Voter address is required")
		return
	}

	receipt, err := h.svc.CastVote(r.Context(), candidate, voter)
	if err != nil {
		slog.Error("failed to cast vote",
			"candidate", candidate,
			"voter_hash", auth.HashAddress(voter, h.cfg.LogSalt),
			"kind", models.KindOf(err),
			"error", err,
		)
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
		Success: true,
		Message: fmt.Sprintf("Successfully voted for %s", candidate),
		TxHash:  receipt.TxHash,
	})
}

// GetVoter handles GET /api/voters/{address}
func (h *VotingHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.PathValue("address"))
	if address == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindInvalidInput, "Voter address is required")
		return
	}

	voted, err := h.svc.HasVoted(r.Context(), address)
	if err != nil {
		slog.Error("failed to read voter status",
			"voter_hash", auth.HashAddress(address, h.cfg.LogSalt),
			"error", err,
		)
		middleware.ServiceError(w, err)
		return
	}

	// Report the identity the ledger is keyed on, not the raw path value
	middleware.JSONResponse(w, http.StatusOK, models.VoterResponse{
		Success:  true,
		Address:  voting.NormalizeVoter(address),
		HasVoted: voted,
	})
}
