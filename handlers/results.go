// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/slowpoll/cliparse"
	"github.com/danielhkuo/slowpoll/middleware"
	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/store"
)

type ResultsHandler struct {
	store PollReader
	cfg   cliparse.Config
}

func NewResultsHandler(store PollReader, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: store, cfg: cfg}
}

// GetResults handles GET /vote/{id}/results
// Results stay sealed until the poll's response visibility lets the viewer see them
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFrom(r.Context())

	id, ok := pollIDParam(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	poll, err := h.store.LoadPoll(r.Context(), viewer, id, store.Need{
		Options:       true,
		Choices:       true,
		ViewerChoices: true,
	})
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to load poll", "error", err, "poll_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	tally := ComputeTally(poll, viewer.PHID)
	if !tally.Visible {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are not visible to you yet")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		PollID:     poll.ID,
		Visible:    true,
		VoterCount: tally.VoterCount,
		Options:    tally.Options,
	})
}
