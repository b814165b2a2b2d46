// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/danielhkuo/slowpoll/cliparse"
	"github.com/danielhkuo/slowpoll/middleware"
	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/store"
	"github.com/danielhkuo/slowpoll/view"
)

type VotingHandler struct {
	store PollWriter
	cfg   cliparse.Config
}

func NewVotingHandler(store PollWriter, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: store, cfg: cfg}
}

// CastVote handles POST /vote/{id}/vote/
// Replaces the viewer's choices. An empty selection withdraws the vote.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := middleware.ViewerFrom(ctx)

	if !viewer.IsLoggedIn() {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "You must log in to vote")
		return
	}

	id, ok := pollIDParam(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	need := store.Need{Options: true, Choices: true, ViewerChoices: true}
	poll, err := h.store.LoadPoll(ctx, viewer, id, need)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to load poll", "error", err, "poll_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if poll.IsClosed() {
		middleware.ErrorResponse(w, http.StatusConflict, "This poll is closed")
		return
	}

	optionIDs, isJSON, err := parseVote(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if poll.Method == models.MethodPlurality && len(dedupeIDs(optionIDs)) > 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "This poll allows only one choice")
		return
	}

	err = h.store.SetChoices(ctx, poll, viewer.PHID, optionIDs)
	if errors.Is(err, store.ErrInvalid) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option")
		return
	}
	if err != nil {
		slog.Error("failed to record vote", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "poll_id", poll.ID, "voter", viewer.PHID, "choices", len(optionIDs))

	switch {
	case middleware.IsAjax(r):
		// Reload so the widget shows the new tally
		poll, err = h.store.LoadPoll(ctx, viewer, id, need)
		if err != nil {
			slog.Error("failed to reload poll", "error", err, "poll_id", id)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		content, err := view.RenderEmbed(BuildPollEmbed(poll, viewer, true))
		if err != nil {
			slog.Error("failed to render poll widget", "error", err, "poll_id", id)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render poll")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.AjaxPollResponse{
			PollID:      poll.ID,
			ContentHTML: string(content),
		})
	case isJSON:
		middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
			PollID:    poll.ID,
			OptionIDs: dedupeIDs(optionIDs),
			Message:   "Vote recorded",
		})
	default:
		http.Redirect(w, r, pollURI(poll.ID), http.StatusSeeOther)
	}
}

// parseVote reads option IDs from a JSON body or from the widget's form post
func parseVote(r *http.Request) (ids []int64, isJSON bool, err error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req models.CastVoteRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			return nil, true, errors.New("Invalid JSON")
		}
		return req.OptionIDs, true, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, false, errors.New("Invalid form")
	}
	for _, raw := range r.PostForm["option_ids"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("Invalid option %q", raw)
		}
		ids = append(ids, id)
	}
	return ids, false, nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
