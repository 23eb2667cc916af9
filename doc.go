// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the chain-vote API server.

chain-vote relays single-choice votes to a ledger: a Voting contract on an
Ethereum network, or a PostgreSQL or SQLite ballot store with the same
one-vote-per-address guarantee. The ledger is the only source of truth; the
server keeps no vote state.

# Starting the Server

Against a local Ethereum node (Ganache on 7545 by default):

	CONTRACT_ADDRESS=0x... go run .

Against SQLite:

	go run . provision -l sqlite -d file:ballots.db --candidates Alice,Bob
	go run . serve -l sqlite -d file:ballots.db -p 8080

# Commands

  - serve (default): connect to the ledger, list candidates as a connection
    test, then serve HTTP until SIGINT or SIGTERM
  - provision: create the SQL schema and register the candidate set once
  - results: print every candidate's tally

All commands take the flags described in package cliparse and fall back to
environment variables and a .env file.

# Architecture

  - router: Route definitions using Go 1.22+ routing
  - handlers: HTTP request handlers (voting, results)
  - middleware: CORS, request logging, JSON helpers
  - voting: One-vote and candidate-validity policy
  - ledger: Gateway over a ledger Contract, plus an in-memory Contract
  - ethcontract: Contract over Ethereum JSON-RPC
  - db: Contract over PostgreSQL or SQLite
  - models: Request/response types and error kinds
  - auth: Random IDs and salted hashes for logs
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
