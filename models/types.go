// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Voter status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Election status constants
const (
	ElectionActive   = "active"
	ElectionInactive = "inactive"
)

// Token role constants
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// ElectionTimeFormat is the wire format for election start/end timestamps.
const ElectionTimeFormat = "2006-01-02 15:04:05"

// Request types

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyOTPRequest struct {
	UserID string `json:"user_id"`
	OTP    string `json:"otp"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
	ElectionID  string `json:"election_id"`
}

type CreateElectionRequest struct {
	Name      string `json:"election_name"`
	StartDate string `json:"start_date"` // format: ElectionTimeFormat
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type UpdateElectionStatusRequest struct {
	Status string `json:"status"`
}

type AddCandidateRequest struct {
	Name       string `json:"name"`
	ElectionID string `json:"election_id"`
	Photo      string `json:"photo"`
}

// Response types

type RegisterResponse struct {
	UserID           string `json:"user_id"`
	Message          string `json:"message"`
	RequiresApproval bool   `json:"requires_approval"`
}

type LoginStep1Response struct {
	UserID      string `json:"user_id"`
	EmailMasked string `json:"email_masked"`
	ExpiresIn   int    `json:"expires_in"` // minutes
	Message     string `json:"message"`
}

type LoginStep2Response struct {
	AccessToken string    `json:"access_token"`
	User        VoterInfo `json:"user"`
}

type AdminLoginResponse struct {
	AccessToken string    `json:"access_token"`
	Admin       AdminInfo `json:"admin"`
}

type CastVoteResponse struct {
	Message   string `json:"message"`
	Candidate string `json:"candidate"`
	Election  string `json:"election"`
}

type VoteStatusResponse struct {
	HasVoted   bool   `json:"has_voted"`
	ElectionID string `json:"election_id"`
}

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
	Message    string `json:"message"`
}

type AddCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	Message     string `json:"message"`
}

type DeleteVoterResponse struct {
	Message      string `json:"message"`
	VotesRemoved int64  `json:"votes_removed"`
}

type DeleteElectionResponse struct {
	Message           string `json:"message"`
	CandidatesRemoved int64  `json:"candidates_removed"`
	VotesRemoved      int64  `json:"votes_removed"`
}

// Domain types

type VoterInfo struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type AdminInfo struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
}

type Voter struct {
	ID        string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	HasVoted  bool      `json:"voted"`
	CreatedAt time.Time `json:"created_at"`
}

type Election struct {
	ID        string    `json:"election_id"`
	Name      string    `json:"election_name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

type Candidate struct {
	ID         string `json:"candidate_id"`
	Name       string `json:"candidate_name"`
	ElectionID string `json:"election_id"`
	Photo      string `json:"photo"`
}

type CandidateTally struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	TotalVotes    int    `json:"total_votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
