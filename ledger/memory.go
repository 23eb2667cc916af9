// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/danielhkuo/chain-vote/models"
)

// Memory is an in-process Contract. The candidate set is fixed at
// construction; VoteFor serialises check-then-set under a mutex.
type Memory struct {
	mu         sync.Mutex
	candidates []string
	tallies    map[string]uint64
	voters     map[string]bool
}

// NewMemory registers candidates in order. Repeated names keep their first
// position.
func NewMemory(candidates ...string) *Memory {
	m := &Memory{
		tallies: make(map[string]uint64, len(candidates)),
		voters:  make(map[string]bool),
	}
	for _, name := range candidates {
		if _, ok := m.tallies[name]; ok {
			continue
		}
		m.candidates = append(m.candidates, name)
		m.tallies[name] = 0
	}
	return m
}

func (m *Memory) CandidateAt(ctx context.Context, index uint64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if index >= uint64(len(m.candidates)) {
		return "", fmt.Errorf("%w: %d", ErrNoCandidate, index)
	}
	return m.candidates[index], nil
}

func (m *Memory) IsValidCandidate(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tallies[name]
	return ok, nil
}

func (m *Memory) TotalVotesFor(ctx context.Context, name string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	votes, ok := m.tallies[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", models.ErrInvalidCandidate, name)
	}
	return votes, nil
}

func (m *Memory) HasVoted(ctx context.Context, voter string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.voters[voter], nil
}

func (m *Memory) VoteFor(ctx context.Context, candidate, voter string) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tallies[candidate]; !ok {
		return Receipt{}, fmt.Errorf("%w: %s", models.ErrInvalidCandidate, candidate)
	}
	if m.voters[voter] {
		return Receipt{}, fmt.Errorf("%w: %s has already voted", ErrRejected, voter)
	}
	m.voters[voter] = true
	m.tallies[candidate]++
	return Receipt{}, nil
}
