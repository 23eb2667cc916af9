// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/chain-vote/cliparse"
	"github.com/danielhkuo/chain-vote/handlers"
	"github.com/danielhkuo/chain-vote/middleware"
)

// Banner is served at / when no web directory is configured
const Banner = "chain-vote API v1"

// NewRouter registers every endpoint. Metrics are read from gatherer, or the
// default registry when it is nil.
func NewRouter(svc handlers.Service, cfg cliparse.Config, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	logged := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(cfg.LogSalt, next)
	}

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(svc, cfg)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Ledger queries
	mux.HandleFunc("GET /api/candidates", logged(resultsHandler.ListCandidates))
	mux.HandleFunc("GET /api/votes", logged(resultsHandler.GetVotes))
	mux.HandleFunc("GET /api/results", logged(resultsHandler.GetResults))
	mux.HandleFunc("GET /api/voters/{address}", logged(votingHandler.GetVoter))

	// Voting
	mux.HandleFunc("POST /api/vote", logged(votingHandler.CastVote))

	// Root endpoint, or the static client when configured
	if cfg.WebDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.WebDir)))
	} else {
		mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(Banner))
		})
	}

	return mux
}
