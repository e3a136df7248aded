// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package otp implements the one-time code engine for two-step login.

# Lifecycle

Each challenge moves through: issued → verified | expired | consumed-invalid.

	engine := otp.NewEngine(db, cfg, sender)
	err := engine.Issue(voterID, email, name)
	ok, err := engine.Verify(voterID, code)
	removed, err := engine.Sweep()

# Issue

Generates a numeric code from crypto/rand, stores only its keyed HMAC hash
plus an absolute expiry and used=false, then hands the plaintext to the
delivery channel exactly once. The row is written before delivery, so a
failed send (ErrDeliveryFailed) still leaves a verifiable challenge; the
login handler reports failure to the caller instead of claiming success
without proof of deliverability.

# Verify

A single conditional UPDATE: match (voter, hash, used=false, unexpired) and
set used=true in one statement. Concurrent verifies of the same code race on
the row update and exactly one wins; replays, expired codes, and wrong codes
all return the same false with no side effect and no hint of which condition
failed.

# Sweep

Deletes used and expired rows. Run periodically from main; it affects only
storage growth, never auth correctness.
*/
package otp
