// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/chain-vote/cliparse"
	"github.com/danielhkuo/chain-vote/db"
	"github.com/danielhkuo/chain-vote/ledger"
	"github.com/danielhkuo/chain-vote/voting"
)

// TestDBURLEnv names the variable holding a PostgreSQL URL for the
// Postgres-backed tests. They are skipped when it is unset.
const TestDBURLEnv = "TEST_DATABASE_URL"

// TestCandidates is the default ballot used by handler tests
var TestCandidates = []string{"Alice", "Bob", "Charlie"}

// Test voter addresses
const (
	VoterA = "0x1111111111111111111111111111111111111111"
	VoterB = "0x2222222222222222222222222222222222222222"
	VoterC = "0x3333333333333333333333333333333333333333"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8080,
		Ledger:        cliparse.LedgerMemory,
		LedgerTimeout: 2 * time.Second,
		MaxCandidates: cliparse.DefaultMaxCandidates,
		LogSalt:       "test-log-salt",
	}
}

// NewService wires a voting service over contract with unregistered metrics
func NewService(contract ledger.Contract) *voting.Service {
	cfg := GetTestConfig()
	gateway := ledger.NewGateway(contract, ledger.Options{
		Timeout:       cfg.LedgerTimeout,
		MaxCandidates: cfg.MaxCandidates,
	})
	return voting.NewService(gateway, voting.Options{LogSalt: cfg.LogSalt})
}

// NewMemoryService returns a service over a fresh in-memory ledger
func NewMemoryService(t *testing.T, candidates ...string) (*voting.Service, *ledger.Memory) {
	t.Helper()
	if len(candidates) == 0 {
		candidates = TestCandidates
	}
	mem := ledger.NewMemory(candidates...)
	return NewService(mem), mem
}

// SetupTestStore creates a SQLite ballot store in a temp dir with the
// candidates registered
func SetupTestStore(t *testing.T, candidates ...string) *db.Store {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, "file:"+filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return provision(t, conn, candidates)
}

// SetupPostgresStore creates a fresh PostgreSQL ballot store, skipping the
// test when TEST_DATABASE_URL is unset
func SetupPostgresStore(t *testing.T, candidates ...string) *db.Store {
	t.Helper()

	url := os.Getenv(TestDBURLEnv)
	if url == "" {
		t.Skipf("%s not set", TestDBURLEnv)
	}

	conn, err := db.Open(db.TypePostgres, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Clean up tables before each test
	if _, err := conn.Exec(`
		DROP TABLE IF EXISTS voter CASCADE;
		DROP TABLE IF EXISTS candidate CASCADE;
	`); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}

	return provision(t, conn, candidates)
}

func provision(t *testing.T, conn *sql.DB, candidates []string) *db.Store {
	t.Helper()

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if len(candidates) == 0 {
		candidates = TestCandidates
	}
	store := db.NewStore(conn)
	if err := store.RegisterCandidates(context.Background(), candidates); err != nil {
		t.Fatalf("Failed to register candidates: %v", err)
	}
	return store
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
