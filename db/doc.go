// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and bootstrap seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - voter: Registered accounts with approval status
  - admin: Bootstrap-seeded administrator accounts
  - election: Named voting windows (active/inactive)
  - candidate: Candidates owned by one election
  - vote: One committed vote per (voter, election)
  - otp_challenge: Hashed one-time codes with expiry and used flag

# Relationships

	election 1──* candidate
	election 1──* vote
	voter    1──* vote
	voter    1──* otp_challenge

All foreign keys use ON DELETE CASCADE. Vote tallies are always recomputed
by counting rows, so cascaded deletions can never leave a stale counter.

# Constraints

Two constraints carry the system's integrity guarantees:

  - vote_voter_election_key UNIQUE (voter_id, election_id): the
    one-vote-per-voter-per-election invariant; concurrent inserts for the
    same pair resolve to exactly one committed row
  - idx_voter_email_lower UNIQUE (LOWER(email)): case-insensitive email
    uniqueness regardless of how a row was written

# Admin Seeding

SeedAdmin creates the bootstrap admin account idempotently:

	created, err := db.SeedAdmin(conn, "root", password, cfg.BcryptCost)

Uses ON CONFLICT (username) DO NOTHING; admins are never self-registrable.
*/
package db
