// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/slowpoll/cliparse"
	"github.com/danielhkuo/slowpoll/middleware"
	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/policy"
	"github.com/danielhkuo/slowpoll/store"
)

type PollHandler struct {
	store PollWriter
	cfg   cliparse.Config
}

func NewPollHandler(store PollWriter, cfg cliparse.Config) *PollHandler {
	return &PollHandler{store: store, cfg: cfg}
}

// CreatePoll handles POST /vote/create/
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFrom(r.Context())
	if !viewer.IsLoggedIn() {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "You must log in to create a poll")
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	if req.Method == "" {
		req.Method = models.MethodPlurality
	}
	if req.Method != models.MethodPlurality && req.Method != models.MethodApproval {
		middleware.ErrorResponse(w, http.StatusBadRequest, "method must be plurality or approval")
		return
	}

	if req.ResponseVisibility == "" {
		req.ResponseVisibility = models.VisibilityVisible
	}
	switch req.ResponseVisibility {
	case models.VisibilityVisible, models.VisibilityVoters, models.VisibilityOwner:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "response_visibility must be visible, voters or owner")
		return
	}

	if req.ViewPolicy == "" {
		req.ViewPolicy = policy.Users
	}
	if req.EditPolicy == "" {
		req.EditPolicy = viewer.PHID
	}
	if !policy.IsValid(req.ViewPolicy) || !policy.IsValid(req.EditPolicy) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid policy")
		return
	}

	options := make([]string, 0, len(req.Options))
	for _, name := range req.Options {
		if name = strings.TrimSpace(name); name != "" {
			options = append(options, name)
		}
	}
	if len(options) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Poll must have at least 2 options")
		return
	}

	poll := &models.Poll{
		Question:           req.Question,
		Description:        req.Description,
		AuthorPHID:         viewer.PHID,
		Method:             req.Method,
		ResponseVisibility: req.ResponseVisibility,
		Status:             models.StatusOpen,
		ViewPolicy:         req.ViewPolicy,
		EditPolicy:         req.EditPolicy,
	}
	if err := h.store.CreatePoll(r.Context(), poll, options); err != nil {
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "author", viewer.PHID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID: poll.ID,
		PHID:   poll.PHID,
		URI:    pollURI(poll.ID),
	})
}

// AddOption handles POST /vote/{id}/options
func (h *PollHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFrom(r.Context())

	poll, ok := h.loadEditable(w, r, viewer, store.Need{})
	if !ok {
		return
	}

	if poll.IsClosed() {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot add options to a closed poll")
		return
	}

	var req models.AddOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	opt, err := h.store.AddOption(r.Context(), poll, viewer.PHID, name)
	if err != nil {
		slog.Error("failed to add option", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create option")
		return
	}

	slog.Info("option added", "poll_id", poll.ID, "option_id", opt.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddOptionResponse{
		OptionID: opt.ID,
	})
}

// EditPoll handles POST /vote/edit/{id}/
// Changes question, description or status; closing a poll stops voting
func (h *PollHandler) EditPoll(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFrom(r.Context())

	poll, ok := h.loadEditable(w, r, viewer, store.Need{})
	if !ok {
		return
	}

	var req models.EditPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Question != nil {
		q := strings.TrimSpace(*req.Question)
		if q == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "question cannot be empty")
			return
		}
		req.Question = &q
	}

	changed, err := h.store.UpdatePoll(r.Context(), poll, viewer.PHID, req)
	if errors.Is(err, store.ErrInvalid) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to update poll", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	slog.Info("poll edited", "poll_id", poll.ID, "changes", changed)

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// loadEditable resolves the {id} poll and checks the viewer may edit it,
// writing the error response when not
func (h *PollHandler) loadEditable(w http.ResponseWriter, r *http.Request, viewer models.Viewer, need store.Need) (*models.Poll, bool) {
	id, ok := pollIDParam(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return nil, false
	}

	poll, err := h.store.LoadPoll(r.Context(), viewer, id, need)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to load poll", "error", err, "poll_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}

	if !policy.HasCapability(viewer.PHID, poll, policy.CanEdit) {
		middleware.ErrorResponse(w, http.StatusForbidden, "You do not have permission to edit this poll")
		return nil, false
	}

	return poll, true
}
