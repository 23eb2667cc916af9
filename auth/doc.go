// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides random identifiers and privacy-preserving hashes.

# Random IDs

	id, err := auth.GenerateID(16) // 32 hex chars

Used for the per-process log salt when none is configured.

# Log Hashing

Client IPs and voter addresses never appear in logs in the clear:

	ipHash := auth.HashIP(clientIP, cfg.LogSalt)
	voterHash := auth.HashAddress(voter, cfg.LogSalt)

Both are HMAC-SHA256 truncated to 16 hex characters. The same input and salt
always produce the same hash, so one client's requests can be correlated.
HashAddress lowercases the address first.
*/
package auth
