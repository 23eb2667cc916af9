// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and error types for the API.

# Request Types

  - CastVoteRequest: candidate, from

# Response Types

Every response carries a success flag:

  - CandidatesResponse: candidates
  - VotesResponse: votes
  - CastVoteResponse: message, tx_hash
  - ResultsResponse: results ([]CandidateTally, in request order)
  - VoterResponse: address, has_voted
  - ErrorResponse: error, kind

# Error Kinds

Failures are carried as sentinel errors and reported with a kind:

	ErrInvalidInput      → "invalid_input"
	ErrInvalidCandidate  → "invalid_candidate"
	ErrAlreadyVoted      → "already_voted"
	ErrLedgerUnavailable → "ledger_unavailable"

Use KindOf to classify a (possibly wrapped) error:

	kind := models.KindOf(err)
*/
package models
