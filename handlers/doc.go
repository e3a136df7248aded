// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Ballot Hub API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Registration, two-step voter login, admin login
  - ElectionHandler: Open-election listing, candidates, vote status
  - VotingHandler: Vote casting
  - AdminHandler: Voter approval, election and candidate management, results

Handlers are created via constructor functions:

	authHandler := handlers.NewAuthHandler(db, cfg, otpEngine)

# Two-Step Login

A password match never yields a session token directly:

	POST /register     → Register (account starts pending)
	POST /login        → Login (password check, sends one-time code)
	POST /login/verify → VerifyOTP (code check, returns access_token)

Step one answers the same 401 for unknown email and wrong password, so the
form cannot enumerate accounts. Pending voters get 403 at both steps.

# Voting Flow

Voter operations require Authorization: Bearer <token>:

	GET  /elections                     → ListOpenElections
	GET  /elections/{id}/candidates     → ListCandidates
	GET  /elections/{id}/vote-status    → VoteStatus
	POST /vote                          → CastVote

CastVote validates voter, candidate membership, and the election window,
then delegates the one-vote guarantee to the ledger insert. A duplicate
cast answers 400; a closed or out-of-window election answers 409.

# Admin Operations

Admin routes require an admin session token and answer a uniform 403 to
everything else:

	POST   /admin/login
	GET    /admin/users
	POST   /admin/users/{id}/approve
	POST   /admin/users/{id}/reject    (pending registrations only)
	DELETE /admin/users/{id}           (reports votes_removed)
	GET    /admin/elections
	POST   /admin/elections
	PATCH  /admin/elections/{id}/status
	DELETE /admin/elections/{id}       (reports cascade counts)
	POST   /admin/candidates
	GET    /admin/elections/{id}/results

Results are recounted from committed vote rows on every read; there is no
stored tally to drift.
*/
package handlers
