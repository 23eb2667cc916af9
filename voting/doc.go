// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting holds the vote policy in front of the ledger.

# Casting a Vote

	svc := voting.NewService(gateway, voting.Options{Logger: logger})
	receipt, err := svc.CastVote(ctx, "Alice", "0x1234...")

CastVote runs, in order:

 1. non-empty candidate and voter (models.ErrInvalidInput, no ledger call)
 2. ledger validity check (models.ErrInvalidCandidate)
 3. HasVoted pre-check (models.ErrAlreadyVoted)
 4. submission; a ledger rejection is also models.ErrAlreadyVoted

The pre-check is advisory. One vote per voter is guaranteed by the ledger's
atomic check-then-set, which holds across processes sharing the ledger.

# Results

	results, err := svc.GetResults(ctx, []string{"Alice", "Bob"})

Results keep the order of the input. Any failed tally read fails the whole
call with models.ErrLedgerUnavailable.

# Metrics

chainvote_votes_total counts vote requests by outcome (accepted or an error
kind).
*/
package voting
