// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/danielhkuo/ballot-hub/auth"
	"github.com/danielhkuo/ballot-hub/cliparse"
	"github.com/danielhkuo/ballot-hub/middleware"
	"github.com/danielhkuo/ballot-hub/models"
	"github.com/danielhkuo/ballot-hub/otp"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	otp *otp.Engine
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config, engine *otp.Engine) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, otp: engine}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 6 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	// Distinguish the duplicate message by the existing account's state
	var existingStatus string
	err := h.db.QueryRow("SELECT status FROM voter WHERE LOWER(email) = $1", req.Email).Scan(&existingStatus)
	if err == nil {
		if existingStatus == models.StatusPending {
			middleware.ErrorResponse(w, http.StatusConflict, "Registration already submitted and awaiting approval")
		} else {
			middleware.ErrorResponse(w, http.StatusConflict, "An account with this email already exists")
		}
		return
	}
	if err != sql.ErrNoRows {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	voterID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO voter (id, name, email, password_hash, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voterID, req.Name, req.Email, hash, models.StatusPending, time.Now().UTC())

	if err != nil {
		// The unique index on LOWER(email) closes the race the pre-check
		// above cannot: two simultaneous registrations for the same email
		// resolve to one row.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			middleware.ErrorResponse(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("voter registered", "voter_id", voterID, "email", auth.MaskEmail(req.Email))

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		UserID:           voterID,
		Message:          "Registration submitted. An administrator must approve your account before you can log in.",
		RequiresApproval: true,
	})
}

// Login handles POST /login (step one of two-step login).
// A matching password never yields a session token directly; it only
// triggers a one-time code to the voter's email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var voter models.Voter
	var passwordHash string
	err := h.db.QueryRow(`
		SELECT id, name, email, password_hash, status
		FROM voter
		WHERE LOWER(email) = $1
	`, req.Email).Scan(&voter.ID, &voter.Name, &voter.Email, &passwordHash, &voter.Status)

	// Unknown email and wrong password share one answer so the login form
	// cannot be used to enumerate accounts.
	if err == sql.ErrNoRows || (err == nil && !auth.CheckPassword(passwordHash, req.Password)) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if voter.Status != models.StatusApproved {
		middleware.ErrorResponse(w, http.StatusForbidden, "User not approved yet")
		return
	}

	if err := h.otp.Issue(voter.ID, voter.Email, voter.Name); err != nil {
		if errors.Is(err, otp.ErrDeliveryFailed) {
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send verification code")
			return
		}
		slog.Error("failed to issue one-time code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send verification code")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginStep1Response{
		UserID:      voter.ID,
		EmailMasked: auth.MaskEmail(voter.Email),
		ExpiresIn:   h.otp.TTLMinutes(),
		Message:     "A verification code has been sent to your email",
	})
}

// VerifyOTP handles POST /login/verify (step two of two-step login)
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID == "" || req.OTP == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id and otp are required")
		return
	}

	ok, err := h.otp.Verify(req.UserID, req.OTP)
	if err != nil {
		slog.Error("failed to verify one-time code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired code")
		return
	}

	var voter models.Voter
	err = h.db.QueryRow(`
		SELECT id, name, email, status
		FROM voter
		WHERE id = $1
	`, req.UserID).Scan(&voter.ID, &voter.Name, &voter.Email, &voter.Status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Approval may have been revoked between step one and step two
	if voter.Status != models.StatusApproved {
		middleware.ErrorResponse(w, http.StatusForbidden, "User not approved yet")
		return
	}

	token, err := auth.VoterToken(voter.ID, voter.Email, h.cfg.JWTSecret, time.Duration(h.cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("voter logged in", "voter_id", voter.ID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginStep2Response{
		AccessToken: token,
		User: models.VoterInfo{
			UserID: voter.ID,
			Name:   voter.Name,
			Email:  voter.Email,
		},
	})
}

// AdminLogin handles POST /admin/login. Single-step: admins authenticate
// with username and password only.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	var adminID, passwordHash string
	err := h.db.QueryRow(`
		SELECT id, password_hash FROM admin WHERE username = $1
	`, req.Username).Scan(&adminID, &passwordHash)

	if err == sql.ErrNoRows || (err == nil && !auth.CheckPassword(passwordHash, req.Password)) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := auth.AdminToken(adminID, req.Username, h.cfg.JWTSecret, time.Duration(h.cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("admin logged in", "admin_id", adminID)

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		AccessToken: token,
		Admin: models.AdminInfo{
			AdminID:  adminID,
			Username: req.Username,
		},
	})
}
