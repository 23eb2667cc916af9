// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(cfg.LogSalt, handler))

Logs request start (request_id, method, path, hashed remote) and completion
(duration_ms). The request id is taken from X-Request-ID when the client sends
one, otherwise a UUID is generated, and it is echoed in the response header.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers Content-Type, X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, models.KindInvalidInput, "message")

Service errors carry their own status and kind:

	if err != nil {
		middleware.ServiceError(w, err)
		return
	}

ErrInvalidInput maps to 400. Every other failure maps to 500; the kind field
(invalid_candidate, already_voted, ledger_unavailable) tells them apart.

Parse JSON request bodies:

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.KindInvalidInput, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Only its salted hash is ever logged.
*/
package middleware
