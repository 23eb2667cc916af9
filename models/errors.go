// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// ErrorKind is the machine-readable failure class reported to API clients.
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"
	KindInvalidCandidate  ErrorKind = "invalid_candidate"
	KindAlreadyVoted      ErrorKind = "already_voted"
	KindLedgerUnavailable ErrorKind = "ledger_unavailable"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidCandidate  = errors.New("invalid candidate")
	ErrAlreadyVoted      = errors.New("already voted")
	ErrLedgerUnavailable = errors.New("ledger unavailable")
)

// KindOf classifies err. Anything that is not one of the user-correctable
// errors is reported as a ledger failure.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInvalidCandidate):
		return KindInvalidCandidate
	case errors.Is(err, ErrAlreadyVoted):
		return KindAlreadyVoted
	default:
		return KindLedgerUnavailable
	}
}
