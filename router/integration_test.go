// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/testutil"
)

// TestFullPollWorkflow tests the complete end-to-end workflow:
// 1. Create poll
// 2. Add an option
// 3. Voters vote
// 4. Refresh the widget over AJAX
// 5. Close poll
// 6. Late vote is rejected
// 7. Verify results and timeline
func TestFullPollWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	_, aliceToken := testutil.CreateTestUser(t, db, cfg, "alice")
	_, bobToken := testutil.CreateTestUser(t, db, cfg, "bob")
	_, carolToken := testutil.CreateTestUser(t, db, cfg, "carol")

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		headers := map[string]string{}
		if token != "" {
			headers[testutil.SessionHeader] = token
		}
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
		return w
	}

	// Step 1: Create a poll
	w := do("POST", "/vote/create/", aliceToken, models.CreatePollRequest{
		Question:    "Pizza or Tacos?",
		Description: "Friday *lunch*",
		ViewPolicy:  "public",
		Options:     []string{"Pizza", "Tacos"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create poll failed: %d - %s", w.Code, w.Body.String())
	}
	var created models.CreatePollResponse
	testutil.AssertJSON(t, w, &created)
	id := created.PollID
	t.Logf("Step 1 - Created poll: %s", created.URI)

	// Step 2: Add an option
	w = do("POST", fmt.Sprintf("/vote/%d/options", id), aliceToken, models.AddOptionRequest{Name: "Burritos"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 2 - Add option failed: %d - %s", w.Code, w.Body.String())
	}
	var added models.AddOptionResponse
	testutil.AssertJSON(t, w, &added)

	// Bob cannot edit Alice's poll
	w = do("POST", fmt.Sprintf("/vote/%d/options", id), bobToken, models.AddOptionRequest{Name: "Sushi"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("Step 2 - Expected 403 for non-editor, got %d", w.Code)
	}

	// Step 3: Voters vote
	for _, token := range []string{bobToken, carolToken} {
		w = do("POST", fmt.Sprintf("/vote/%d/vote/", id), token, models.CastVoteRequest{OptionIDs: []int64{added.OptionID}})
		if w.Code != http.StatusOK {
			t.Fatalf("Step 3 - Vote failed: %d - %s", w.Code, w.Body.String())
		}
	}

	// Step 4: AJAX refresh shows the tally
	w = do("GET", fmt.Sprintf("/vote/V%d?__ajax__=1", id), bobToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - AJAX refresh failed: %d - %s", w.Code, w.Body.String())
	}
	var refresh models.AjaxPollResponse
	testutil.AssertJSON(t, w, &refresh)
	if refresh.PollID != id || !strings.Contains(refresh.ContentHTML, "2 voters") {
		t.Errorf("Step 4 - Unexpected widget: %+v", refresh)
	}

	// Step 5: Close the poll
	closed := models.StatusClosed
	w = do("POST", fmt.Sprintf("/vote/edit/%d/", id), aliceToken, models.EditPollRequest{Status: &closed})
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Close failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 6: Late vote is rejected
	w = do("POST", fmt.Sprintf("/vote/%d/vote/", id), carolToken, models.CastVoteRequest{OptionIDs: []int64{added.OptionID}})
	if w.Code != http.StatusConflict {
		t.Fatalf("Step 6 - Expected 409 for closed poll, got %d", w.Code)
	}

	// Step 7: Results and page
	w = do("GET", fmt.Sprintf("/vote/%d/results", id), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Results failed: %d - %s", w.Code, w.Body.String())
	}
	var results models.ResultsResponse
	testutil.AssertJSON(t, w, &results)
	if results.VoterCount != 2 {
		t.Errorf("Step 7 - Expected 2 voters, got %d", results.VoterCount)
	}
	for _, opt := range results.Options {
		if opt.OptionID == added.OptionID && opt.Count != 2 {
			t.Errorf("Step 7 - Expected 2 votes for Burritos, got %d", opt.Count)
		}
	}

	w = do("GET", created.URI, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Page failed: %d - %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{
		"<em>lunch</em>",
		"alice created this poll.",
		"alice closed this poll.",
		"This poll is closed.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Step 7 - Expected page to contain %q", want)
		}
	}
}
