// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/chain-vote/cliparse"
	"github.com/danielhkuo/chain-vote/middleware"
	"github.com/danielhkuo/chain-vote/models"
)

type ResultsHandler struct {
	svc Service
	cfg cliparse.Config
}

func NewResultsHandler(svc Service, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{svc: svc, cfg: cfg}
}

// ListCandidates handles GET /api/candidates
func (h *ResultsHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.svc.ListCandidates(r.Context())
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidatesResponse{
		Success:    true,
		Candidates: candidates,
	})
}

// GetVotes handles GET /api/votes?candidate=NAME
func (h *ResultsHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	candidate := strings.TrimSpace(r.URL.Query().Get("candidate"))
	if candidate == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindInvalidInput, "Candidate name is required")
		return
	}

	votes, err := h.svc.GetTally(r.Context(), candidate)
	if err != nil {
		slog.Error("failed to read tally", "candidate", candidate, "error", err)
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotesResponse{
		Success: true,
		Votes:   votes,
	})
}

// GetResults handles GET /api/results
// Repeated ?candidate= parameters select and order the candidates; without
// them every registered candidate is reported in ledger order.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	var candidates []string
	for _, c := range r.URL.Query()["candidate"] {
		if c = strings.TrimSpace(c); c != "" {
			candidates = append(candidates, c)
		}
	}

	results, err := h.svc.GetResults(r.Context(), candidates)
	if err != nil {
		slog.Error("failed to compute results", "candidates", len(candidates), "error", err)
		middleware.ServiceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Success: true,
		Results: results,
	})
}
