// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/chain-vote/ledger"
	"github.com/danielhkuo/chain-vote/models"
)

var ErrAlreadyProvisioned = errors.New("candidates already registered")

// Store is a relational ballot ledger. The voter primary key and the
// enclosing transaction make VoteFor an atomic check-then-set.
type Store struct {
	db *sql.DB
}

var _ ledger.Contract = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RegisterCandidates stores the fixed candidate set in order. It fails with
// ErrAlreadyProvisioned if any candidate exists.
func (s *Store) RegisterCandidates(ctx context.Context, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("%w: empty candidate name", models.ErrInvalidInput)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate candidate %q", models.ErrInvalidInput, name)
		}
		seen[name] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidate`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count candidates: %w", err)
	}
	if count > 0 {
		return ErrAlreadyProvisioned
	}

	for i, name := range names {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO candidate (list_index, name, votes)
			VALUES ($1, $2, 0)
		`, i, strings.TrimSpace(name))
		if err != nil {
			return fmt.Errorf("failed to insert candidate %q: %w", name, err)
		}
	}

	return tx.Commit()
}

func (s *Store) CandidateAt(ctx context.Context, index uint64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT name FROM candidate WHERE list_index = $1
	`, int64(index)).Scan(&name)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: %d", ledger.ErrNoCandidate, index)
	}
	if err != nil {
		return "", fmt.Errorf("failed to query candidate: %w", err)
	}
	return name, nil
}

func (s *Store) IsValidCandidate(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM candidate WHERE name = $1)
	`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query candidate: %w", err)
	}
	return exists, nil
}

func (s *Store) TotalVotesFor(ctx context.Context, name string) (uint64, error) {
	var votes int64
	err := s.db.QueryRowContext(ctx, `
		SELECT votes FROM candidate WHERE name = $1
	`, name).Scan(&votes)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: %s", models.ErrInvalidCandidate, name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query tally: %w", err)
	}
	return uint64(votes), nil
}

func (s *Store) HasVoted(ctx context.Context, voter string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM voter WHERE address = $1)
	`, voter).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query voter: %w", err)
	}
	return exists, nil
}

// VoteFor marks voter as voted and increments the candidate's tally in one
// transaction. A concurrent insert of the same voter blocks on the primary
// key and then inserts nothing.
func (s *Store) VoteFor(ctx context.Context, candidate, voter string) (ledger.Receipt, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO voter (address) VALUES ($1)
		ON CONFLICT (address) DO NOTHING
	`, voter)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to insert voter: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return ledger.Receipt{}, err
	} else if n == 0 {
		return ledger.Receipt{}, fmt.Errorf("%w: %s has already voted", ledger.ErrRejected, voter)
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE candidate SET votes = votes + 1 WHERE name = $1
	`, candidate)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to update tally: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return ledger.Receipt{}, err
	} else if n == 0 {
		return ledger.Receipt{}, fmt.Errorf("%w: %s", models.ErrInvalidCandidate, candidate)
	}

	if err := tx.Commit(); err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to commit vote: %w", err)
	}
	return ledger.Receipt{}, nil
}
