// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, one-time code, and session token
primitives.

# Passwords

bcrypt with a configurable work factor:

	hash, err := auth.HashPassword(password, cfg.BcryptCost)
	ok := auth.CheckPassword(hash, password)

CheckPassword folds every failure mode into "no match" so callers can only
ever surface a single generic invalid-credentials outcome.

# One-Time Codes

Numeric codes from crypto/rand:

	code, err := auth.GenerateOTP(6)

Codes are stored only as a keyed HMAC-SHA256 hash:

	stored := auth.HashOTP(code, cfg.JWTSecret)

The hash is deterministic, so verification recomputes it and matches against
the stored challenge without the plaintext ever touching the database.

# Session Tokens

HS256 JWTs carrying a role claim (voter or admin), subject identity, and a
fixed validity window:

	token, err := auth.VoterToken(voterID, email, secret, 8*time.Hour)
	token, err := auth.AdminToken(adminID, username, secret, 8*time.Hour)
	claims, err := auth.ParseToken(token, secret)

ParseToken returns ErrInvalidToken for anything short of a valid, unexpired,
correctly-signed token; there is no refresh path, expiry means logging in
again from step 1.

# Email Masking

For step-1 login responses:

	auth.MaskEmail("alice@x.com")  // "a***@x.com"
*/
package auth
