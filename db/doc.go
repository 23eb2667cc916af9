// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db implements the ballot ledger on PostgreSQL or SQLite.

# Connecting

	conn, err := db.Open(db.TypeSQLite, "file:ledger.db")
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}
	store := db.NewStore(conn)

CreateSchema is safe to call multiple times - it uses IF NOT EXISTS.

# Tables

  - candidate: list_index, name (unique), votes
  - voter: address (primary key), voted_at

# Provisioning

Candidates are registered once, in order:

	err := store.RegisterCandidates(ctx, []string{"Alice", "Bob"})

A second call fails with ErrAlreadyProvisioned.

# Voting

Store implements ledger.Contract. VoteFor inserts the voter and increments the
tally in one transaction; a repeat voter inserts no row and the transaction
is rolled back with ledger.ErrRejected.
*/
package db
