// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/danielhkuo/ballot-hub/models"
)

// ErrAlreadyVoted is the authoritative "one vote per voter per election"
// signal, mapped from the storage-level unique-constraint conflict.
var ErrAlreadyVoted = errors.New("voter has already cast a ballot in this election")

// Ledger owns the vote lifecycle. No other component inserts or mutates
// vote rows.
type Ledger struct {
	db *sql.DB
}

func New(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

// CastVote records a vote for (voter, election). The insert is attempted
// unconditionally: the UNIQUE (voter_id, election_id) constraint is the
// have-they-voted check, so two concurrent casts from the same voter resolve
// to exactly one committed row. There is deliberately no read-then-write
// pre-check on this path.
func (l *Ledger) CastVote(voterID, candidateID, electionID string) (string, error) {
	voteID := uuid.NewString()
	_, err := l.db.Exec(`
		INSERT INTO vote (id, voter_id, candidate_id, election_id, cast_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, voterID, candidateID, electionID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrAlreadyVoted
		}
		return "", fmt.Errorf("failed to record vote: %w", err)
	}
	return voteID, nil
}

// HasVoted reports whether a committed vote row exists for (voter, election).
// Read-only; never used as a guard on the insert path.
func (l *Ledger) HasVoted(voterID, electionID string) (bool, error) {
	var exists bool
	err := l.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM vote
			WHERE voter_id = $1 AND election_id = $2
		)
	`, voterID, electionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote status: %w", err)
	}
	return exists, nil
}

// CountVotes tallies committed vote rows per candidate within one election,
// ordered by tally descending then candidate name ascending. Always a fresh
// count of rows, never a stored counter, so out-of-band deletions (voter
// removal) are reflected immediately.
func (l *Ledger) CountVotes(electionID string) ([]models.CandidateTally, error) {
	rows, err := l.db.Query(`
		SELECT c.id, c.name, COUNT(v.id)
		FROM candidate c
		LEFT JOIN vote v ON v.candidate_id = c.id AND v.election_id = c.election_id
		WHERE c.election_id = $1
		GROUP BY c.id, c.name
		ORDER BY COUNT(v.id) DESC, c.name ASC
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	results := []models.CandidateTally{}
	for rows.Next() {
		var tally models.CandidateTally
		if err := rows.Scan(&tally.CandidateID, &tally.CandidateName, &tally.TotalVotes); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		results = append(results, tally)
	}
	return results, rows.Err()
}

// RemoveVoterVotes deletes all vote rows for a voter inside the caller's
// transaction and reports how many were removed. Used by admin voter
// deletion so the blast radius is auditable.
func (l *Ledger) RemoveVoterVotes(tx *sql.Tx, voterID string) (int64, error) {
	res, err := tx.Exec(`DELETE FROM vote WHERE voter_id = $1`, voterID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove voter votes: %w", err)
	}
	return res.RowsAffected()
}

// ElectionFootprint counts the votes and candidates that deleting an
// election would cascade away. Read inside the caller's transaction just
// before the parent delete.
func (l *Ledger) ElectionFootprint(tx *sql.Tx, electionID string) (votes, candidates int64, err error) {
	err = tx.QueryRow(`SELECT COUNT(*) FROM vote WHERE election_id = $1`, electionID).Scan(&votes)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count election votes: %w", err)
	}
	err = tx.QueryRow(`SELECT COUNT(*) FROM candidate WHERE election_id = $1`, electionID).Scan(&candidates)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count election candidates: %w", err)
	}
	return votes, candidates, nil
}

// isUniqueViolation reports whether err is a Postgres duplicate-key error
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
