// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballot-hub/cliparse"
	"github.com/danielhkuo/ballot-hub/ledger"
	"github.com/danielhkuo/ballot-hub/middleware"
	"github.com/danielhkuo/ballot-hub/models"
)

type AdminHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	ledger *ledger.Ledger
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, l *ledger.Ledger) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, ledger: l}
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT v.id, v.name, v.email, v.status, v.created_at,
		       EXISTS(SELECT 1 FROM vote WHERE voter_id = v.id)
		FROM voter v
		ORDER BY v.created_at DESC, v.id
	`)
	if err != nil {
		slog.Error("failed to query voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Status, &v.CreatedAt, &v.HasVoted); err != nil {
			slog.Error("failed to scan voter", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, v)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"users": users,
	})
}

// ApproveUser handles POST /admin/users/{id}/approve.
// Approving an already-approved voter is a no-op success.
func (h *AdminHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE voter SET status = $1 WHERE id = $2
	`, models.StatusApproved, voterID)
	if err != nil {
		slog.Error("failed to approve voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if rows == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	slog.Info("voter approved", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "User approved",
	})
}

// RejectUser handles POST /admin/users/{id}/reject.
// Only pending registrations can be rejected; an approved voter must go
// through DeleteUser so the vote cleanup is explicit.
func (h *AdminHandler) RejectUser(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	res, err := h.db.Exec(`
		DELETE FROM voter WHERE id = $1 AND status = $2
	`, voterID, models.StatusPending)
	if err != nil {
		slog.Error("failed to reject voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if rows == 0 {
		// Distinguish missing from already-approved
		var exists bool
		if err := h.db.QueryRow("SELECT EXISTS(SELECT 1 FROM voter WHERE id = $1)", voterID).Scan(&exists); err != nil {
			slog.Error("failed to query voter", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if exists {
			middleware.ErrorResponse(w, http.StatusConflict, "Only pending registrations can be rejected")
			return
		}
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	slog.Info("voter rejected", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Registration rejected",
	})
}

// DeleteUser handles DELETE /admin/users/{id}.
// Removes the voter and every vote they have cast, in one transaction, and
// reports the number of votes removed. Tallies reflect the removal on the
// next read because results are always recounted.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	votesRemoved, err := h.ledger.RemoveVoterVotes(tx, voterID)
	if err != nil {
		slog.Error("failed to remove voter votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	res, err := tx.Exec("DELETE FROM voter WHERE id = $1", voterID)
	if err != nil {
		slog.Error("failed to delete voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if rows == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("voter deleted", "voter_id", voterID, "votes_removed", votesRemoved)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteVoterResponse{
		Message:      "User deleted",
		VotesRemoved: votesRemoved,
	})
}

// ListElections handles GET /admin/elections.
// Unlike the voter-facing list, this returns every election regardless of
// status or window.
func (h *AdminHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, start_date, end_date, status
		FROM election
		ORDER BY start_date DESC, id
	`)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		var e models.Election
		if err := rows.Scan(&e.ID, &e.Name, &e.StartDate, &e.EndDate, &e.Status); err != nil {
			slog.Error("failed to scan election", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"elections": elections,
	})
}

// CreateElection handles POST /admin/elections
func (h *AdminHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_name is required")
		return
	}
	if req.StartDate == "" || req.EndDate == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	start, err := time.Parse(models.ElectionTimeFormat, req.StartDate)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_date must use format "+models.ElectionTimeFormat)
		return
	}
	end, err := time.Parse(models.ElectionTimeFormat, req.EndDate)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_date must use format "+models.ElectionTimeFormat)
		return
	}
	if !start.Before(end) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_date must be before end_date")
		return
	}

	status := req.Status
	if status == "" {
		status = models.ElectionInactive
	}
	if status != models.ElectionActive && status != models.ElectionInactive {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be active or inactive")
		return
	}

	electionID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO election (id, name, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, electionID, req.Name, start.UTC(), end.UTC(), status, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "election_id", electionID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: electionID,
		Message:    "Election created",
	})
}

// UpdateElectionStatus handles PATCH /admin/elections/{id}/status.
// Toggling status never touches committed votes; an election reactivated
// inside its window picks up exactly where it left off.
func (h *AdminHandler) UpdateElectionStatus(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	var req models.UpdateElectionStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Status != models.ElectionActive && req.Status != models.ElectionInactive {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be active or inactive")
		return
	}

	res, err := h.db.Exec(`
		UPDATE election SET status = $1 WHERE id = $2
	`, req.Status, electionID)
	if err != nil {
		slog.Error("failed to update election status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if rows == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	slog.Info("election status updated", "election_id", electionID, "status", req.Status)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Election status updated",
	})
}

// DeleteElection handles DELETE /admin/elections/{id}.
// Counts the dependent candidates and votes inside the transaction, then
// lets the foreign-key cascade remove them with the parent row.
func (h *AdminHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	votes, candidates, err := h.ledger.ElectionFootprint(tx, electionID)
	if err != nil {
		slog.Error("failed to count election footprint", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	res, err := tx.Exec("DELETE FROM election WHERE id = $1", electionID)
	if err != nil {
		slog.Error("failed to delete election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if rows == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("election deleted", "election_id", electionID,
		"candidates_removed", candidates, "votes_removed", votes)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteElectionResponse{
		Message:           "Election deleted",
		CandidatesRemoved: candidates,
		VotesRemoved:      votes,
	})
}

// AddCandidate handles POST /admin/candidates
func (h *AdminHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.ElectionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow("SELECT EXISTS(SELECT 1 FROM election WHERE id = $1)", req.ElectionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	candidateID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO candidate (id, election_id, name, photo)
		VALUES ($1, $2, $3, $4)
	`, candidateID, req.ElectionID, req.Name, req.Photo)

	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add candidate")
		return
	}

	slog.Info("candidate added", "candidate_id", candidateID, "election_id", req.ElectionID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		CandidateID: candidateID,
		Message:     "Candidate added",
	})
}

// GetResults handles GET /admin/elections/{id}/results
func (h *AdminHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	var exists bool
	err := h.db.QueryRow("SELECT EXISTS(SELECT 1 FROM election WHERE id = $1)", electionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	tallies, err := h.ledger.CountVotes(electionID)
	if err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"election_id": electionID,
		"results":     tallies,
	})
}
