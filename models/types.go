// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Request types

type CastVoteRequest struct {
	Candidate string `json:"candidate"`
	From      string `json:"from"`
}

// Response types

type CandidatesResponse struct {
	Success    bool     `json:"success"`
	Candidates []string `json:"candidates"`
}

type VotesResponse struct {
	Success bool   `json:"success"`
	Votes   uint64 `json:"votes"`
}

type CastVoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TxHash  string `json:"tx_hash,omitempty"`
}

type ResultsResponse struct {
	Success bool             `json:"success"`
	Results []CandidateTally `json:"results"`
}

type VoterResponse struct {
	Success  bool   `json:"success"`
	Address  string `json:"address"`
	HasVoted bool   `json:"has_voted"`
}

// Domain types

// CandidateTally is one row of a results listing.
type CandidateTally struct {
	Candidate string `json:"candidate"`
	Votes     uint64 `json:"votes"`
}

// Error response

type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   string    `json:"error"`
	Kind    ErrorKind `json:"kind,omitempty"`
}
