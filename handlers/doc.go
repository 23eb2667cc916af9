// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the chain-vote API.

# Handler Types

Each handler is a struct with a voting service and config:

  - VotingHandler: vote submission and voter status
  - ResultsHandler: candidate listing, single tallies and results

Handlers are created via constructor functions that accept a Service and
Config:

	votingHandler := handlers.NewVotingHandler(svc, cfg)

Service is implemented by *voting.Service.

# Voting Flow

	POST /api/vote              → CastVote {candidate, from}
	GET  /api/voters/{address}  → GetVoter

A request without "from" votes as cfg.DefaultVoter. A voter may vote once;
later attempts fail with kind already_voted, including two racing requests
of which the ledger accepts exactly one.

# Results

	GET /api/candidates                 → ListCandidates (ledger order)
	GET /api/votes?candidate=NAME       → GetVotes
	GET /api/results[?candidate=NAME..] → GetResults

GetResults is all or nothing: one failed tally fails the whole listing.

# Error Responses

Errors are JSON with success=false, a message and a kind:

	{"success": false, "error": "already voted: 0x...", "kind": "already_voted"}

Malformed input (missing candidate, bad JSON) is 400; every other failure is
500.
*/
package handlers
