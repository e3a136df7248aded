// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Session Guards

Protect voter and admin routes:

	mux.HandleFunc("POST /vote", middleware.WithLogging(
		middleware.RequireVoter(cfg.JWTSecret, votingHandler.CastVote)))
	mux.HandleFunc("GET /admin/users", middleware.WithLogging(
		middleware.RequireAdmin(cfg.JWTSecret, adminHandler.ListUsers)))

RequireVoter answers 401 for missing or invalid tokens and 403 for a valid
token carrying the wrong role. RequireAdmin answers a uniform 403 for every
failure so the admin surface does not confirm which part of the check
failed. On success the verified claims ride the request context:

	claims, ok := middleware.ClaimsFromContext(r)

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PATCH, DELETE, OPTIONS with headers
Content-Type, Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
