// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: name, email, password
  - LoginRequest: email, password (login step 1)
  - VerifyOTPRequest: user_id, otp (login step 2)
  - AdminLoginRequest: username, password
  - CastVoteRequest: candidate_id, election_id
  - CreateElectionRequest: election_name, start_date, end_date, status
  - UpdateElectionStatusRequest: status
  - AddCandidateRequest: name, election_id, photo

# Response Types

Types for JSON responses:

  - RegisterResponse: user_id, message, requires_approval
  - LoginStep1Response: user_id, email_masked, expires_in
  - LoginStep2Response: access_token, user
  - AdminLoginResponse: access_token, admin
  - CastVoteResponse: message, candidate, election
  - VoteStatusResponse: has_voted, election_id
  - DeleteVoterResponse / DeleteElectionResponse: removal counts for auditing
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Voter: account identity, approval status, creation time
  - Election: name, voting window, active/inactive status
  - Candidate: name and photo, owned by one election
  - CandidateTally: per-candidate committed vote count

# Constants

Voter status values:

	StatusPending  = "pending"
	StatusApproved = "approved"

Election status values:

	ElectionActive   = "active"
	ElectionInactive = "inactive"

Token roles:

	RoleVoter = "voter"
	RoleAdmin = "admin"

Election timestamps on the wire use ElectionTimeFormat ("2006-01-02 15:04:05").
*/
package models
