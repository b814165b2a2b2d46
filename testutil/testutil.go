// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/slowpoll/auth"
	"github.com/danielhkuo/slowpoll/cliparse"
	database "github.com/danielhkuo/slowpoll/db"
	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/policy"
	_ "modernc.org/sqlite"
)

// TestDBURL is an in-memory SQLite database, private to one connection
const TestDBURL = ":memory:"

// SessionHeader carries the session token in tests
const SessionHeader = "X-Session-Token"

// SetupTestDB creates a fresh test database with the full schema.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.CreateSchema(db, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: cliparse.DatabaseSQLite,
		SessionSalt:  "test-session-salt",
	}
}

// CreateTestUser inserts a user and returns its PHID and a session token
func CreateTestUser(t *testing.T, db *sql.DB, cfg cliparse.Config, username string) (phid, token string) {
	t.Helper()

	phid = auth.NewPHID(models.PHIDTypeUser)
	_, err := db.Exec(`
		INSERT INTO app_user (phid, username, real_name, created_at)
		VALUES ($1, $2, $3, $4)
	`, phid, username, username, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return phid, auth.GenerateSessionToken(phid, cfg.SessionSalt)
}

// PollSeed describes a poll to insert. Zero fields get defaults: public view
// policy, author-only edit policy, plurality method, visible responses.
type PollSeed struct {
	Question           string
	Description        string
	AuthorPHID         string
	Method             string
	ResponseVisibility string
	Status             string
	ViewPolicy         string
	EditPolicy         string
}

// CreateTestPoll inserts a poll along with its create transaction
func CreateTestPoll(t *testing.T, db *sql.DB, seed PollSeed) models.Poll {
	t.Helper()

	poll := models.Poll{
		PHID:               auth.NewPHID(models.PHIDTypePoll),
		Question:           seed.Question,
		Description:        seed.Description,
		AuthorPHID:         seed.AuthorPHID,
		Method:             orDefault(seed.Method, models.MethodPlurality),
		ResponseVisibility: orDefault(seed.ResponseVisibility, models.VisibilityVisible),
		Status:             orDefault(seed.Status, models.StatusOpen),
		ViewPolicy:         orDefault(seed.ViewPolicy, policy.Public),
		EditPolicy:         orDefault(seed.EditPolicy, seed.AuthorPHID),
		CreatedAt:          time.Now(),
	}
	if poll.Question == "" {
		poll.Question = "Test Poll"
	}
	if poll.EditPolicy == "" {
		poll.EditPolicy = policy.NoOne
	}
	poll.UpdatedAt = poll.CreatedAt

	err := db.QueryRow(`
		INSERT INTO slowvote_poll (phid, question, description, author_phid, method,
		                           response_visibility, status, view_policy, edit_policy,
		                           created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, poll.PHID, poll.Question, poll.Description, poll.AuthorPHID, poll.Method,
		poll.ResponseVisibility, poll.Status, poll.ViewPolicy, poll.EditPolicy,
		poll.CreatedAt, poll.UpdatedAt).Scan(&poll.ID)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	AddTestTransaction(t, db, poll.PHID, poll.AuthorPHID, models.TransactionCreate, "", poll.Question)
	return poll
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, db *sql.DB, pollID int64, name string) int64 {
	t.Helper()

	var optionID int64
	err := db.QueryRow(`
		INSERT INTO slowvote_option (poll_id, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, pollID, name, time.Now()).Scan(&optionID)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// AddTestChoice records a vote for optionID by voterPHID
func AddTestChoice(t *testing.T, db *sql.DB, pollID, optionID int64, voterPHID string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO slowvote_choice (poll_id, option_id, author_phid, created_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, optionID, voterPHID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}
}

// AddTestTransaction records a transaction without a comment and returns its PHID
func AddTestTransaction(t *testing.T, db *sql.DB, objectPHID, authorPHID, xactionType, oldValue, newValue string) string {
	t.Helper()

	phid := auth.NewPHID(models.PHIDTypeTransaction)
	_, err := db.Exec(`
		INSERT INTO slowvote_transaction (phid, object_phid, author_phid, transaction_type, old_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, phid, objectPHID, authorPHID, xactionType, oldValue, newValue, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return phid
}

// AddTestComment records a comment transaction and returns the comment PHID
func AddTestComment(t *testing.T, db *sql.DB, objectPHID, authorPHID, content string) string {
	t.Helper()

	now := time.Now()
	xactionPHID := auth.NewPHID(models.PHIDTypeTransaction)
	commentPHID := auth.NewPHID(models.PHIDTypeComment)

	_, err := db.Exec(`
		INSERT INTO slowvote_transaction_comment (phid, transaction_phid, author_phid, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, commentPHID, xactionPHID, authorPHID, content, now)
	if err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO slowvote_transaction (phid, object_phid, author_phid, transaction_type, comment_phid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, xactionPHID, objectPHID, authorPHID, models.TransactionComment, commentPHID, now)
	if err != nil {
		t.Fatalf("Failed to create test comment transaction: %v", err)
	}

	return commentPHID
}

// SaveTestDraft stores draft text for (authorPHID, draftKey)
func SaveTestDraft(t *testing.T, db *sql.DB, authorPHID, draftKey, text string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO draft (author_phid, draft_key, draft, updated_at)
		VALUES ($1, $2, $3, $4)
	`, authorPHID, draftKey, text, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test draft: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
