// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/ballot-hub/cliparse"
	"github.com/danielhkuo/ballot-hub/ledger"
	"github.com/danielhkuo/ballot-hub/middleware"
	"github.com/danielhkuo/ballot-hub/models"
	"github.com/danielhkuo/ballot-hub/notify"
)

type VotingHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	ledger *ledger.Ledger
	sender notify.Sender
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, l *ledger.Ledger, sender notify.Sender) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, ledger: l, sender: sender}
}

// CastVote handles POST /vote.
// The validation reads here (voter, candidate, election, window) decide the
// status code for the common failure paths; the one-vote guarantee itself
// comes from the ledger insert, not from any of these reads.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing authorization token")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateID == "" || req.ElectionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id and election_id are required")
		return
	}

	var voterName, voterEmail string
	err := h.db.QueryRow(`
		SELECT name, email FROM voter WHERE id = $1 AND status = $2
	`, claims.Subject, models.StatusApproved).Scan(&voterName, &voterEmail)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Candidate must exist AND belong to the named election; a candidate ID
	// from a different election is indistinguishable from an unknown one.
	var candidateName string
	err = h.db.QueryRow(`
		SELECT name FROM candidate WHERE id = $1 AND election_id = $2
	`, req.CandidateID, req.ElectionID).Scan(&candidateName)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found in this election")
		return
	}
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var election models.Election
	err = h.db.QueryRow(`
		SELECT id, name, start_date, end_date, status FROM election WHERE id = $1
	`, req.ElectionID).Scan(&election.ID, &election.Name, &election.StartDate, &election.EndDate, &election.Status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now().UTC()
	if election.Status != models.ElectionActive || now.Before(election.StartDate) || now.After(election.EndDate) {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
		return
	}

	voteID, err := h.ledger.CastVote(claims.Subject, req.CandidateID, req.ElectionID)
	if err != nil {
		if errors.Is(err, ledger.ErrAlreadyVoted) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "You have already voted in this election")
			return
		}
		slog.Error("failed to record vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote cast", "vote_id", voteID, "election_id", req.ElectionID)

	// Fire-and-forget: the vote is committed whether or not this lands
	subject, body := notify.VoteConfirmationMessage(voterName, candidateName, election.Name)
	notify.Dispatch(h.sender, voterEmail, subject, body)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Message:   "Vote recorded",
		Candidate: candidateName,
		Election:  election.Name,
	})
}
