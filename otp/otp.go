// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package otp

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-hub/auth"
	"github.com/danielhkuo/ballot-hub/cliparse"
	"github.com/danielhkuo/ballot-hub/notify"
)

// ErrDeliveryFailed means the challenge was stored but the code could not be
// handed to the delivery channel. The challenge remains checkable.
var ErrDeliveryFailed = errors.New("one-time code delivery failed")

// Engine issues and verifies short-lived one-time codes bound to a voter.
type Engine struct {
	db     *sql.DB
	sender notify.Sender

	secret     string
	codeLength int
	ttl        time.Duration
}

func NewEngine(db *sql.DB, cfg cliparse.Config, sender notify.Sender) *Engine {
	return &Engine{
		db:         db,
		sender:     sender,
		secret:     cfg.JWTSecret,
		codeLength: cfg.OTPLength,
		ttl:        time.Duration(cfg.OTPTTLMinutes) * time.Minute,
	}
}

// TTLMinutes reports the challenge lifetime for client-facing responses.
func (e *Engine) TTLMinutes() int {
	return int(e.ttl / time.Minute)
}

// Issue generates a fresh code for the voter, stores only its keyed hash with
// an absolute expiry, and hands the plaintext to the delivery channel exactly
// once. The challenge is stored before delivery is attempted, so a delivery
// failure (reported as ErrDeliveryFailed) leaves a checkable challenge behind.
func (e *Engine) Issue(voterID, address, userName string) error {
	code, err := auth.GenerateOTP(e.codeLength)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = e.db.Exec(`
		INSERT INTO otp_challenge (id, voter_id, identifier, code_hash, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
	`, uuid.NewString(), voterID, address, auth.HashOTP(code, e.secret), now.Add(e.ttl), now)
	if err != nil {
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	subject, body := notify.OTPMessage(userName, code, e.TTLMinutes())
	if err := e.sender.Send(address, subject, body); err != nil {
		slog.Warn("one-time code delivery failed", "voter_id", voterID, "error", err)
		return ErrDeliveryFailed
	}

	slog.Info("one-time code issued", "voter_id", voterID)
	return nil
}

// Verify consumes a challenge matching (voter, code hash, unused, unexpired).
// The match and the mark-used are one conditional UPDATE, so two concurrent
// verifies with the same code cannot both succeed. Every non-match outcome
// (wrong code, expired, already used, unknown voter) is the same false.
func (e *Engine) Verify(voterID, code string) (bool, error) {
	res, err := e.db.Exec(`
		UPDATE otp_challenge
		SET used = TRUE
		WHERE voter_id = $1 AND code_hash = $2 AND used = FALSE AND expires_at > NOW()
	`, voterID, auth.HashOTP(code, e.secret))
	if err != nil {
		return false, fmt.Errorf("failed to verify challenge: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows >= 1, nil
}

// Sweep deletes used and expired challenges. Purely a storage-growth
// measure; correctness never depends on it running.
func (e *Engine) Sweep() (int64, error) {
	res, err := e.db.Exec(`
		DELETE FROM otp_challenge
		WHERE used = TRUE OR expires_at <= NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep challenges: %w", err)
	}
	return res.RowsAffected()
}
