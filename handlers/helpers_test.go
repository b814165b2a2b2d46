// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/slowpoll/cliparse"
	"github.com/danielhkuo/slowpoll/middleware"
	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/store"
	"github.com/danielhkuo/slowpoll/testutil"
)

// testEnv is a fresh database with the store and config handlers are built from
type testEnv struct {
	db    *sql.DB
	store *store.Store
	cfg   cliparse.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return &testEnv{db: db, store: store.New(db), cfg: testutil.GetTestConfig()}
}

func (e *testEnv) user(t *testing.T, username string) string {
	t.Helper()
	phid, _ := testutil.CreateTestUser(t, e.db, e.cfg, username)
	return phid
}

// newPollRequest builds a request as the router would hand it to a handler:
// the {id} route parameter resolved and the viewer attached.
func newPollRequest(method, target string, pollID int64, viewerPHID string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", strconv.FormatInt(pollID, 10))
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = middleware.ContextWithViewer(ctx, models.Viewer{PHID: viewerPHID})

	return req.WithContext(ctx)
}

// newJSONRequest is newPollRequest with a JSON body. Strings are sent verbatim.
func newJSONRequest(t *testing.T, method, target string, pollID int64, viewerPHID string, body interface{}) *http.Request {
	t.Helper()

	var raw []byte
	if str, ok := body.(string); ok {
		raw = []byte(str)
	} else {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
	}

	req := newPollRequest(method, target, pollID, viewerPHID, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func countRows(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}
