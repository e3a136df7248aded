// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Ballot Hub API server.

Ballot Hub is a voter-integrity service: approved voters log in with a
password plus an emailed one-time code, vote in time-windowed elections,
and are guaranteed at most one counted vote per election by a
storage-level unique constraint rather than application bookkeeping.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." --jwt-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Secret for session tokens and OTP hashing

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - ADMIN_USERNAME / ADMIN_PASSWORD: Bootstrap admin account, seeded once
  - SMTP_HOST, SMTP_PORT, SMTP_USERNAME, SMTP_PASSWORD, MAIL_FROM:
    Email delivery; codes are logged to the console when unset
  - BCRYPT_COST, TOKEN_TTL_HOURS, OTP_LENGTH, OTP_TTL_MINUTES,
    SWEEP_INTERVAL_MINUTES: Tuning knobs with sensible defaults

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, elections, voting, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Session guards, CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Password hashing, token signing, OTP primitives
  - otp: One-time code engine (issue, verify, sweep)
  - ledger: Vote recording and tallying
  - notify: Email and console delivery
  - db: Schema creation and admin seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
