// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballot-hub/cliparse"
	"github.com/danielhkuo/ballot-hub/ledger"
	"github.com/danielhkuo/ballot-hub/middleware"
	"github.com/danielhkuo/ballot-hub/models"
)

type ElectionHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	ledger *ledger.Ledger
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config, l *ledger.Ledger) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg, ledger: l}
}

// ListOpenElections handles GET /elections.
// Open means status active AND the current time inside [start, end];
// both conditions are evaluated by the database at read time, so an
// election past its end date disappears without any status update.
func (h *ElectionHandler) ListOpenElections(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, start_date, end_date, status
		FROM election
		WHERE status = $1 AND start_date <= NOW() AND end_date >= NOW()
		ORDER BY start_date DESC, id
	`, models.ElectionActive)

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

// ListCandidates handles GET /elections/{id}/candidates
func (h *ElectionHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
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

	rows, err := h.db.Query(`
		SELECT id, name, election_id, photo
		FROM candidate
		WHERE election_id = $1
		ORDER BY name, id
	`, electionID)

	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.ElectionID, &c.Photo); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
	})
}

// VoteStatus handles GET /elections/{id}/vote-status.
// Reports whether the authenticated voter has a committed vote in the
// election. Read-only; the cast path never consults it.
func (h *ElectionHandler) VoteStatus(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	claims, ok := middleware.ClaimsFromContext(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing authorization token")
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

	hasVoted, err := h.ledger.HasVoted(claims.Subject, electionID)
	if err != nil {
		slog.Error("failed to check vote status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteStatusResponse{
		HasVoted:   hasVoted,
		ElectionID: electionID,
	})
}
