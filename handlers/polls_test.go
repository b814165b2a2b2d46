// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/policy"
	"github.com/danielhkuo/slowpoll/testutil"
)

func TestCreatePoll(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	handler := NewPollHandler(env.store, env.cfg)

	tests := []struct {
		name           string
		viewer         string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreatePollResponse)
	}{
		{
			name:   "valid poll creation",
			viewer: alice,
			requestBody: models.CreatePollRequest{
				Question:    "Pizza or Tacos?",
				Description: "Friday lunch",
				Options:     []string{"Pizza", " Tacos ", ""},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreatePollResponse) {
				if resp.URI != fmt.Sprintf("/vote/V%d", resp.PollID) {
					t.Errorf("Unexpected URI %q", resp.URI)
				}
				if !strings.HasPrefix(resp.PHID, "PHID-POLL-") {
					t.Errorf("Unexpected PHID %q", resp.PHID)
				}

				// Verify defaults were stored
				var method, viewPolicy, editPolicy, status string
				err := env.db.QueryRow(`
					SELECT method, view_policy, edit_policy, status FROM slowvote_poll WHERE id = $1
				`, resp.PollID).Scan(&method, &viewPolicy, &editPolicy, &status)
				if err != nil {
					t.Fatalf("Failed to query poll: %v", err)
				}
				if method != models.MethodPlurality {
					t.Errorf("Expected method 'plurality', got '%s'", method)
				}
				if viewPolicy != policy.Users {
					t.Errorf("Expected view policy 'users', got '%s'", viewPolicy)
				}
				if editPolicy != alice {
					t.Errorf("Expected edit policy to be the author, got '%s'", editPolicy)
				}
				if status != models.StatusOpen {
					t.Errorf("Expected status 'open', got '%s'", status)
				}

				// Blank options are dropped, names trimmed
				var names []string
				rows, err := env.db.Query("SELECT name FROM slowvote_option WHERE poll_id = $1 ORDER BY id", resp.PollID)
				if err != nil {
					t.Fatalf("Failed to query options: %v", err)
				}
				defer rows.Close()
				for rows.Next() {
					var name string
					if err := rows.Scan(&name); err != nil {
						t.Fatalf("Failed to scan option: %v", err)
					}
					names = append(names, name)
				}
				if strings.Join(names, ",") != "Pizza,Tacos" {
					t.Errorf("Expected options Pizza,Tacos, got %v", names)
				}
			},
		},
		{
			name:   "approval poll with custom policy",
			viewer: alice,
			requestBody: models.CreatePollRequest{
				Question:           "Which days?",
				Method:             models.MethodApproval,
				ResponseVisibility: models.VisibilityOwner,
				ViewPolicy:         policy.Public,
				EditPolicy:         policy.NoOne,
				Options:            []string{"Mon", "Tue", "Wed"},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "logged out",
			viewer: "",
			requestBody: models.CreatePollRequest{
				Question: "Pizza or Tacos?",
				Options:  []string{"Pizza", "Tacos"},
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "missing question",
			viewer: alice,
			requestBody: models.CreatePollRequest{
				Question: "   ",
				Options:  []string{"Pizza", "Tacos"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "too few options",
			viewer: alice,
			requestBody: models.CreatePollRequest{
				Question: "Pizza?",
				Options:  []string{"Pizza", " "},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown method",
			viewer: alice,
			requestBody: models.CreatePollRequest{
				Question: "Pizza or Tacos?",
				Method:   "ranked",
				Options:  []string{"Pizza", "Tacos"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown visibility",
			viewer: alice,
			requestBody: models.CreatePollRequest{
				Question:           "Pizza or Tacos?",
				ResponseVisibility: "sometimes",
				Options:            []string{"Pizza", "Tacos"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "invalid policy",
			viewer: alice,
			requestBody: models.CreatePollRequest{
				Question:   "Pizza or Tacos?",
				ViewPolicy: "friends",
				Options:    []string{"Pizza", "Tacos"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			viewer:         alice,
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, "POST", "/vote/create/", 0, tt.viewer, tt.requestBody)
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.CreatePollResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestAddOption(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	handler := NewPollHandler(env.store, env.cfg)

	poll := testutil.CreateTestPoll(t, env.db, testutil.PollSeed{AuthorPHID: alice})
	closed := testutil.CreateTestPoll(t, env.db, testutil.PollSeed{AuthorPHID: alice, Status: models.StatusClosed})
	shared := testutil.CreateTestPoll(t, env.db, testutil.PollSeed{AuthorPHID: alice, EditPolicy: policy.Users})

	tests := []struct {
		name           string
		pollID         int64
		viewer         string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "author adds option",
			pollID:         poll.ID,
			viewer:         alice,
			requestBody:    models.AddOptionRequest{Name: "Burritos"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "edit policy grants other users",
			pollID:         shared.ID,
			viewer:         bob,
			requestBody:    models.AddOptionRequest{Name: "Sushi"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "non-editor",
			pollID:         poll.ID,
			viewer:         bob,
			requestBody:    models.AddOptionRequest{Name: "Sushi"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "closed poll",
			pollID:         closed.ID,
			viewer:         alice,
			requestBody:    models.AddOptionRequest{Name: "Sushi"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "empty name",
			pollID:         poll.ID,
			viewer:         alice,
			requestBody:    models.AddOptionRequest{Name: " "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing poll",
			pollID:         999,
			viewer:         alice,
			requestBody:    models.AddOptionRequest{Name: "Sushi"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, "POST", "/vote/options", tt.pollID, tt.viewer, tt.requestBody)
			w := httptest.NewRecorder()

			handler.AddOption(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.AddOptionResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.OptionID == 0 {
					t.Error("Expected non-zero option_id")
				}
			}
		})
	}

	// One option transaction per successful add
	if n := countRows(t, env.db, `
		SELECT COUNT(*) FROM slowvote_transaction WHERE transaction_type = $1
	`, models.TransactionAddOption); n != 2 {
		t.Errorf("Expected 2 option transactions, got %d", n)
	}
}

func TestEditPoll(t *testing.T) {
	env := newTestEnv(t)
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")
	handler := NewPollHandler(env.store, env.cfg)

	poll := testutil.CreateTestPoll(t, env.db, testutil.PollSeed{
		Question:   "Pizza or Tacos?",
		AuthorPHID: alice,
	})

	question := "Pizza or Burritos?"
	closedStatus := models.StatusClosed
	bogusStatus := "archived"
	blank := "  "

	tests := []struct {
		name           string
		viewer         string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.Poll)
	}{
		{
			name:           "change question",
			viewer:         alice,
			requestBody:    models.EditPollRequest{Question: &question},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.Poll) {
				if resp.Question != question {
					t.Errorf("Expected question %q, got %q", question, resp.Question)
				}
			},
		},
		{
			name:           "close poll",
			viewer:         alice,
			requestBody:    models.EditPollRequest{Status: &closedStatus},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.Poll) {
				if !resp.IsClosed() {
					t.Error("Expected poll to be closed")
				}
			},
		},
		{
			name:           "non-editor",
			viewer:         bob,
			requestBody:    models.EditPollRequest{Question: &question},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "blank question",
			viewer:         alice,
			requestBody:    models.EditPollRequest{Question: &blank},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown status",
			viewer:         alice,
			requestBody:    models.EditPollRequest{Status: &bogusStatus},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, "POST", fmt.Sprintf("/vote/edit/%d/", poll.ID), poll.ID, tt.viewer, tt.requestBody)
			w := httptest.NewRecorder()

			handler.EditPoll(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.checkResponse != nil {
				var resp models.Poll
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}

	// Question and close transactions were recorded for the timeline
	for _, xactionType := range []string{models.TransactionQuestion, models.TransactionClose} {
		if n := countRows(t, env.db, `
			SELECT COUNT(*) FROM slowvote_transaction WHERE object_phid = $1 AND transaction_type = $2
		`, poll.PHID, xactionType); n != 1 {
			t.Errorf("Expected 1 %s transaction, got %d", xactionType, n)
		}
	}
}
