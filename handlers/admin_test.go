// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballot-hub/ledger"
	"github.com/danielhkuo/ballot-hub/models"
	"github.com/danielhkuo/ballot-hub/testutil"
)

func TestListUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig(), ledger.New(db))

	testutil.CreateTestVoter(t, db, "Alice", "alice@x.com", models.StatusApproved)
	testutil.CreateTestVoter(t, db, "Pat", "pat@x.com", models.StatusPending)

	req := testutil.MakeRequest("GET", "/admin/users", nil, nil)
	w := httptest.NewRecorder()
	handler.ListUsers(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Users []models.Voter `json:"users"`
	}
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(resp.Users))
	}
}

func TestApproveUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig(), ledger.New(db))

	voterID := testutil.CreateTestVoter(t, db, "Pat", "pat@x.com", models.StatusPending)

	approve := func(t *testing.T, id string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.MakeRequest("POST", "/admin/users/"+id+"/approve", nil, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.ApproveUser(w, req)
		return w
	}

	w := approve(t, voterID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var status string
	if err := db.QueryRow("SELECT status FROM voter WHERE id = $1", voterID).Scan(&status); err != nil {
		t.Fatalf("Failed to query voter: %v", err)
	}
	if status != models.StatusApproved {
		t.Errorf("Expected approved status, got %s", status)
	}

	// Approving again is a no-op success
	w = approve(t, voterID)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Unknown voter
	w = approve(t, "nonexistent")
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestRejectUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig(), ledger.New(db))

	pendingID := testutil.CreateTestVoter(t, db, "Pat", "pat@x.com", models.StatusPending)
	approvedID := testutil.CreateTestVoter(t, db, "Alice", "alice@x.com", models.StatusApproved)

	reject := func(t *testing.T, id string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.MakeRequest("POST", "/admin/users/"+id+"/reject", nil, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.RejectUser(w, req)
		return w
	}

	t.Run("pending registration", func(t *testing.T) {
		w := reject(t, pendingID)
		testutil.AssertStatus(t, w, http.StatusOK)

		var exists bool
		if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM voter WHERE id = $1)", pendingID).Scan(&exists); err != nil {
			t.Fatalf("Failed to query voter: %v", err)
		}
		if exists {
			t.Error("Expected rejected registration to be removed")
		}
	})

	t.Run("approved voter", func(t *testing.T) {
		w := reject(t, approvedID)
		testutil.AssertStatus(t, w, http.StatusConflict)

		// The approved account survives
		var exists bool
		if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM voter WHERE id = $1)", approvedID).Scan(&exists); err != nil {
			t.Fatalf("Failed to query voter: %v", err)
		}
		if !exists {
			t.Error("Approved voter must not be removed by reject")
		}
	})

	t.Run("unknown voter", func(t *testing.T) {
		w := reject(t, "nonexistent")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig(), ledger.New(db))

	voterID := testutil.CreateTestVoter(t, db, "Alice", "alice@x.com", models.StatusApproved)
	election1 := testutil.CreateOpenElection(t, db, "Board2025")
	election2 := testutil.CreateOpenElection(t, db, "Treasurer2025")
	bob := testutil.CreateTestCandidate(t, db, election1, "Bob")
	carol := testutil.CreateTestCandidate(t, db, election2, "Carol")
	testutil.CastTestVote(t, db, voterID, bob, election1)
	testutil.CastTestVote(t, db, voterID, carol, election2)

	req := testutil.MakeRequest("DELETE", "/admin/users/"+voterID, nil, nil)
	req.SetPathValue("id", voterID)
	w := httptest.NewRecorder()
	handler.DeleteUser(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DeleteVoterResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.VotesRemoved != 2 {
		t.Errorf("Expected 2 votes removed, got %d", resp.VotesRemoved)
	}

	var votes int
	if err := db.QueryRow("SELECT COUNT(*) FROM vote WHERE voter_id = $1", voterID).Scan(&votes); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if votes != 0 {
		t.Errorf("Expected 0 remaining votes, got %d", votes)
	}

	// Unknown voter
	req = testutil.MakeRequest("DELETE", "/admin/users/nonexistent", nil, nil)
	req.SetPathValue("id", "nonexistent")
	w = httptest.NewRecorder()
	handler.DeleteUser(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCreateElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig(), ledger.New(db))

	tests := []struct {
		name           string
		requestBody    models.CreateElectionRequest
		expectedStatus int
	}{
		{
			name: "valid election",
			requestBody: models.CreateElectionRequest{
				Name:      "Board2025",
				StartDate: "2025-01-01 09:00:00",
				EndDate:   "2025-01-02 17:00:00",
				Status:    models.ElectionActive,
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "default status",
			requestBody: models.CreateElectionRequest{
				Name:      "NoStatus",
				StartDate: "2025-01-01 09:00:00",
				EndDate:   "2025-01-02 17:00:00",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing name",
			requestBody: models.CreateElectionRequest{
				StartDate: "2025-01-01 09:00:00",
				EndDate:   "2025-01-02 17:00:00",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad date format",
			requestBody: models.CreateElectionRequest{
				Name:      "BadDates",
				StartDate: "01/01/2025",
				EndDate:   "2025-01-02 17:00:00",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "start after end",
			requestBody: models.CreateElectionRequest{
				Name:      "Backwards",
				StartDate: "2025-01-02 17:00:00",
				EndDate:   "2025-01-01 09:00:00",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "start equals end",
			requestBody: models.CreateElectionRequest{
				Name:      "ZeroWindow",
				StartDate: "2025-01-01 09:00:00",
				EndDate:   "2025-01-01 09:00:00",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid status",
			requestBody: models.CreateElectionRequest{
				Name:      "BadStatus",
				StartDate: "2025-01-01 09:00:00",
				EndDate:   "2025-01-02 17:00:00",
				Status:    "paused",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/admin/elections", tt.requestBody, nil)
			w := httptest.NewRecorder()
			handler.CreateElection(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.CreateElectionResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.ElectionID == "" {
					t.Error("Expected non-empty election_id")
				}
			}
		})
	}

	// The status-free creation defaulted to inactive
	var status string
	if err := db.QueryRow("SELECT status FROM election WHERE name = 'NoStatus'").Scan(&status); err != nil {
		t.Fatalf("Failed to query election: %v", err)
	}
	if status != models.ElectionInactive {
		t.Errorf("Expected default inactive status, got %s", status)
	}
}

func TestUpdateElectionStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig(), ledger.New(db))

	electionID := testutil.CreateOpenElection(t, db, "Board2025")

	patch := func(t *testing.T, id, status string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.MakeRequest("PATCH", "/admin/elections/"+id+"/status",
			models.UpdateElectionStatusRequest{Status: status}, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.UpdateElectionStatus(w, req)
		return w
	}

	w := patch(t, electionID, models.ElectionInactive)
	testutil.AssertStatus(t, w, http.StatusOK)

	var status string
	if err := db.QueryRow("SELECT status FROM election WHERE id = $1", electionID).Scan(&status); err != nil {
		t.Fatalf("Failed to query election: %v", err)
	}
	if status != models.ElectionInactive {
		t.Errorf("Expected inactive, got %s", status)
	}

	w = patch(t, electionID, "paused")
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	w = patch(t, "nonexistent", models.ElectionActive)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteElection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig(), ledger.New(db))

	electionID := testutil.CreateOpenElection(t, db, "Board2025")
	bob := testutil.CreateTestCandidate(t, db, electionID, "Bob")
	testutil.CreateTestCandidate(t, db, electionID, "Carol")

	alice := testutil.CreateTestVoter(t, db, "Alice", "alice@x.com", models.StatusApproved)
	testutil.CastTestVote(t, db, alice, bob, electionID)

	req := testutil.MakeRequest("DELETE", "/admin/elections/"+electionID, nil, nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	handler.DeleteElection(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DeleteElectionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.CandidatesRemoved != 2 {
		t.Errorf("Expected 2 candidates removed, got %d", resp.CandidatesRemoved)
	}
	if resp.VotesRemoved != 1 {
		t.Errorf("Expected 1 vote removed, got %d", resp.VotesRemoved)
	}

	// Cascade left nothing behind
	var candidates, votes int
	if err := db.QueryRow("SELECT COUNT(*) FROM candidate WHERE election_id = $1", electionID).Scan(&candidates); err != nil {
		t.Fatalf("Failed to count candidates: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM vote WHERE election_id = $1", electionID).Scan(&votes); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if candidates != 0 || votes != 0 {
		t.Errorf("Expected empty cascade, got %d candidates and %d votes", candidates, votes)
	}

	// The voter survives their votes
	var voterExists bool
	if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM voter WHERE id = $1)", alice).Scan(&voterExists); err != nil {
		t.Fatalf("Failed to query voter: %v", err)
	}
	if !voterExists {
		t.Error("Deleting an election must not remove voters")
	}

	// Unknown election
	req = testutil.MakeRequest("DELETE", "/admin/elections/nonexistent", nil, nil)
	req.SetPathValue("id", "nonexistent")
	w = httptest.NewRecorder()
	handler.DeleteElection(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAddCandidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig(), ledger.New(db))

	electionID := testutil.CreateOpenElection(t, db, "Board2025")

	tests := []struct {
		name           string
		requestBody    models.AddCandidateRequest
		expectedStatus int
	}{
		{
			name:           "valid candidate",
			requestBody:    models.AddCandidateRequest{Name: "Bob", ElectionID: electionID},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			requestBody:    models.AddCandidateRequest{ElectionID: electionID},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing election",
			requestBody:    models.AddCandidateRequest{Name: "Carol"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown election",
			requestBody:    models.AddCandidateRequest{Name: "Carol", ElectionID: "nonexistent"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/admin/candidates", tt.requestBody, nil)
			w := httptest.NewRecorder()
			handler.AddCandidate(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestGetResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAdminHandler(db, testutil.GetTestConfig(), ledger.New(db))

	electionID := testutil.CreateOpenElection(t, db, "Board2025")
	bob := testutil.CreateTestCandidate(t, db, electionID, "Bob")
	testutil.CreateTestCandidate(t, db, electionID, "Carol")

	alice := testutil.CreateTestVoter(t, db, "Alice", "alice@x.com", models.StatusApproved)
	eve := testutil.CreateTestVoter(t, db, "Eve", "eve@x.com", models.StatusApproved)
	testutil.CastTestVote(t, db, alice, bob, electionID)
	testutil.CastTestVote(t, db, eve, bob, electionID)

	req := testutil.MakeRequest("GET", "/admin/elections/"+electionID+"/results", nil, nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		ElectionID string                  `json:"election_id"`
		Results    []models.CandidateTally `json:"results"`
	}
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Results) != 2 {
		t.Fatalf("Expected 2 tallies, got %d", len(resp.Results))
	}
	if resp.Results[0].CandidateName != "Bob" || resp.Results[0].TotalVotes != 2 {
		t.Errorf("Expected Bob=2 first, got %s=%d",
			resp.Results[0].CandidateName, resp.Results[0].TotalVotes)
	}
	if resp.Results[1].CandidateName != "Carol" || resp.Results[1].TotalVotes != 0 {
		t.Errorf("Expected Carol=0 second, got %s=%d",
			resp.Results[1].CandidateName, resp.Results[1].TotalVotes)
	}

	// Unknown election
	req = testutil.MakeRequest("GET", "/admin/elections/nonexistent/results", nil, nil)
	req.SetPathValue("id", "nonexistent")
	w = httptest.NewRecorder()
	handler.GetResults(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
