// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/ballot-hub/cliparse"
	"github.com/danielhkuo/ballot-hub/handlers"
	"github.com/danielhkuo/ballot-hub/ledger"
	"github.com/danielhkuo/ballot-hub/middleware"
	"github.com/danielhkuo/ballot-hub/notify"
	"github.com/danielhkuo/ballot-hub/otp"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, sender notify.Sender) *http.ServeMux {
	mux := http.NewServeMux()

	// Shared components
	voteLedger := ledger.New(db)
	otpEngine := otp.NewEngine(db, cfg, sender)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, otpEngine)
	electionHandler := handlers.NewElectionHandler(db, cfg, voteLedger)
	votingHandler := handlers.NewVotingHandler(db, cfg, voteLedger, sender)
	adminHandler := handlers.NewAdminHandler(db, cfg, voteLedger)

	secret := cfg.JWTSecret

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Registration and two-step login (public)
	mux.HandleFunc("POST /register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /login/verify", middleware.WithLogging(authHandler.VerifyOTP))

	// Voter operations (voter session required)
	mux.HandleFunc("GET /elections", middleware.WithLogging(
		middleware.RequireVoter(secret, electionHandler.ListOpenElections)))
	mux.HandleFunc("GET /elections/{id}/candidates", middleware.WithLogging(
		middleware.RequireVoter(secret, electionHandler.ListCandidates)))
	mux.HandleFunc("GET /elections/{id}/vote-status", middleware.WithLogging(
		middleware.RequireVoter(secret, electionHandler.VoteStatus)))
	mux.HandleFunc("POST /vote", middleware.WithLogging(
		middleware.RequireVoter(secret, votingHandler.CastVote)))

	// Admin operations
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(authHandler.AdminLogin))
	mux.HandleFunc("GET /admin/users", middleware.WithLogging(
		middleware.RequireAdmin(secret, adminHandler.ListUsers)))
	mux.HandleFunc("POST /admin/users/{id}/approve", middleware.WithLogging(
		middleware.RequireAdmin(secret, adminHandler.ApproveUser)))
	mux.HandleFunc("POST /admin/users/{id}/reject", middleware.WithLogging(
		middleware.RequireAdmin(secret, adminHandler.RejectUser)))
	mux.HandleFunc("DELETE /admin/users/{id}", middleware.WithLogging(
		middleware.RequireAdmin(secret, adminHandler.DeleteUser)))
	mux.HandleFunc("GET /admin/elections", middleware.WithLogging(
		middleware.RequireAdmin(secret, adminHandler.ListElections)))
	mux.HandleFunc("POST /admin/elections", middleware.WithLogging(
		middleware.RequireAdmin(secret, adminHandler.CreateElection)))
	mux.HandleFunc("PATCH /admin/elections/{id}/status", middleware.WithLogging(
		middleware.RequireAdmin(secret, adminHandler.UpdateElectionStatus)))
	mux.HandleFunc("DELETE /admin/elections/{id}", middleware.WithLogging(
		middleware.RequireAdmin(secret, adminHandler.DeleteElection)))
	mux.HandleFunc("POST /admin/candidates", middleware.WithLogging(
		middleware.RequireAdmin(secret, adminHandler.AddCandidate)))
	mux.HandleFunc("GET /admin/elections/{id}/results", middleware.WithLogging(
		middleware.RequireAdmin(secret, adminHandler.GetResults)))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballot-hub API v1"))
	})

	return mux
}
