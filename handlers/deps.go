// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/store"
)

// ApplicationURI is the root of every poll route
const ApplicationURI = "/vote/"

// PollReader loads polls scoped to a viewer's visibility
type PollReader interface {
	LoadPoll(ctx context.Context, viewer models.Viewer, id int64, need store.Need) (*models.Poll, error)
}

// PageStore is everything the poll page reads
type PageStore interface {
	PollReader
	LoadTransactions(ctx context.Context, objectPHID string) ([]models.Transaction, error)
	LoadDraft(ctx context.Context, authorPHID, draftKey string) (*models.Draft, error)
	LoadUserNames(ctx context.Context, phids []string) (map[string]string, error)
}

// PollWriter mutates polls and votes
type PollWriter interface {
	PollReader
	CreatePoll(ctx context.Context, poll *models.Poll, options []string) error
	AddOption(ctx context.Context, poll *models.Poll, actorPHID, name string) (models.Option, error)
	UpdatePoll(ctx context.Context, poll *models.Poll, actorPHID string, req models.EditPollRequest) (int, error)
	SetChoices(ctx context.Context, poll *models.Poll, voterPHID string, optionIDs []int64) error
}

// pollURI returns the canonical page URI, e.g. /vote/V42
func pollURI(id int64) string {
	return fmt.Sprintf("%sV%d", ApplicationURI, id)
}

// applicationURI joins path onto the application root
func applicationURI(path string) string {
	return ApplicationURI + path
}

// pollIDParam reads the {id} route parameter. Only canonical positive
// integers name a poll: no sign and no leading zero.
func pollIDParam(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" || raw[0] < '1' || raw[0] > '9' {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
