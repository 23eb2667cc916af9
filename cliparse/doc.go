// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - Ledger: ethereum, postgres, sqlite or memory (default: ethereum)
  - RPCURL: Ethereum JSON-RPC endpoint (default: http://127.0.0.1:7545)
  - ContractAddress: deployed Voting contract (required for ethereum)
  - DatabaseURL: SQL ballot store (required for postgres and sqlite)
  - DefaultVoter: address used when a vote request has no "from"
  - LedgerTimeout: bound on every ledger call (default: 15s)
  - MaxCandidates: bound on candidate enumeration (default: 1024)
  - WebDir: static client files served at /
  - LogSalt: secret for hashed addresses in logs (random when unset)
  - Candidates / CandidatesFile: seed list for the memory ledger and provision

# CLI Flags

	-p                  Server port
	-l, --ledger        Ledger backend
	--rpc-url           Ethereum JSON-RPC URL
	--contract          Voting contract address
	-d                  Database URL
	--default-voter     Fallback voter address
	--ledger-timeout    Ledger call timeout
	--max-candidates    Candidate enumeration bound
	--web-dir           Static file directory
	--log-salt          Log hashing salt
	--candidates        Comma separated candidate names
	--candidates-file   YAML candidate list
	--env-file          Environment file (default: .env)
	--debug             Debug logging

# Environment Variables

The env file is loaded first (a missing file is ignored; variables already
set win). Flags then fall back to environment variables:

	PORT             → -p
	LEDGER_BACKEND   → --ledger
	RPC_URL          → --rpc-url
	CONTRACT_ADDRESS → --contract
	DATABASE_URL     → -d
	DEFAULT_VOTER    → --default-voter
	LEDGER_TIMEOUT   → --ledger-timeout
	MAX_CANDIDATES   → --max-candidates
	WEB_DIR          → --web-dir
	LOG_SALT         → --log-salt
	CANDIDATES       → --candidates
	CANDIDATES_FILE  → --candidates-file
	DEBUG            → --debug

CLI flags take precedence over environment variables.

# Candidates File

	candidates:
	  - Karthik
	  - Sadwik

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	names, err := cfg.ResolveCandidates()
*/
package cliparse
