// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the chain-vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg, registry)

# Endpoints

Health and metrics:

	GET /health  - Liveness
	GET /metrics - Prometheus exposition from the given gatherer

Ledger queries:

	GET /api/candidates          - Registered candidates in ledger order
	GET /api/votes?candidate=    - One candidate's tally
	GET /api/results             - Every tally, optionally ?candidate=a&candidate=b
	GET /api/voters/{address}    - Whether an address has voted

Voting:

	POST /api/vote - Cast a ballot {candidate, from}

Root:

	GET / - Static client from cfg.WebDir, otherwise a banner

# Handler Initialization

The router creates handler instances with dependency injection:

	votingHandler := handlers.NewVotingHandler(svc, cfg)
	resultsHandler := handlers.NewResultsHandler(svc, cfg)

API routes are wrapped with middleware.WithLogging; /health and /metrics
are not.
*/
package router
