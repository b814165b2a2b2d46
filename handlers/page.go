// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/slowpoll/cliparse"
	"github.com/danielhkuo/slowpoll/markup"
	"github.com/danielhkuo/slowpoll/middleware"
	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/policy"
	"github.com/danielhkuo/slowpoll/store"
	"github.com/danielhkuo/slowpoll/view"
)

type PollPageHandler struct {
	store PageStore
	cfg   cliparse.Config
}

func NewPollPageHandler(store PageStore, cfg cliparse.Config) *PollPageHandler {
	return &PollPageHandler{store: store, cfg: cfg}
}

// ViewPoll handles GET /vote/V{id}
// Returns the full poll page, or the poll widget as JSON for AJAX refresh
func (h *PollPageHandler) ViewPoll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := middleware.ViewerFrom(ctx)
	isAjax := middleware.IsAjax(r)

	id, ok := pollIDParam(r)
	if !ok {
		notFound(w, isAjax)
		return
	}

	poll, err := h.store.LoadPoll(ctx, viewer, id, store.Need{
		Options:       true,
		Choices:       true,
		ViewerChoices: true,
	})
	if errors.Is(err, store.ErrNotFound) {
		notFound(w, isAjax)
		return
	}
	if err != nil {
		slog.Error("failed to load poll", "poll_id", id, "error", err)
		serverError(w, isAjax)
		return
	}

	pollView, err := view.RenderEmbed(BuildPollEmbed(poll, viewer, true))
	if err != nil {
		slog.Error("failed to render poll widget", "poll_id", poll.ID, "error", err)
		serverError(w, isAjax)
		return
	}

	if isAjax {
		middleware.JSONResponse(w, http.StatusOK, models.AjaxPollResponse{
			PollID:      poll.ID,
			ContentHTML: string(pollView),
		})
		return
	}

	properties, err := h.buildPropertyView(poll)
	if err != nil {
		slog.Error("failed to render poll description", "poll_id", poll.ID, "error", err)
		serverError(w, false)
		return
	}

	timeline, err := h.buildTransactions(ctx, poll)
	if err != nil {
		slog.Error("failed to build poll timeline", "poll_id", poll.ID, "error", err)
		serverError(w, false)
		return
	}

	addComment, err := h.buildCommentForm(ctx, poll, viewer)
	if err != nil {
		slog.Error("failed to build comment form", "poll_id", poll.ID, "error", err)
		serverError(w, false)
		return
	}

	crumbs := buildApplicationCrumbs()
	crumbs.AddCrumb(view.Crumb{Name: fmt.Sprintf("V%d", poll.ID)})

	page := view.Page{
		Title:       fmt.Sprintf("V%d %s", poll.ID, poll.Question),
		Device:      true,
		PageObjects: []string{poll.PHID},
		Crumbs:      crumbs,
		Box: view.ObjectBox{
			Header:     view.NewHeader(poll.Question).WithPolicyObject(poll),
			Actions:    h.buildActionView(poll, viewer),
			Properties: properties,
		},
		Embed:    pollView,
		Timeline: timeline,
		Comment:  addComment,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderPage(w, page); err != nil {
		slog.Error("failed to render poll page", "poll_id", poll.ID, "error", err)
		serverError(w, false)
	}
}

func buildApplicationCrumbs() view.Crumbs {
	var crumbs view.Crumbs
	crumbs.AddCrumb(view.Crumb{Name: "Slowvote", Href: ApplicationURI})
	return crumbs
}

func (h *PollPageHandler) buildActionView(poll *models.Poll, viewer models.Viewer) view.ActionList {
	canEdit := policy.HasCapability(viewer.PHID, poll, policy.CanEdit)

	list := view.ActionList{ObjectPHID: poll.PHID}
	list.AddAction(view.Action{
		Name:     "Edit Poll",
		Icon:     "edit",
		Href:     applicationURI(fmt.Sprintf("edit/%d/", poll.ID)),
		Disabled: !canEdit,
		Workflow: !canEdit,
	})

	return list
}

func (h *PollPageHandler) buildPropertyView(poll *models.Poll) (view.PropertyList, error) {
	list := view.PropertyList{ObjectPHID: poll.PHID}

	if poll.Description != "" {
		content, err := markup.RenderOne(poll.Description)
		if err != nil {
			return view.PropertyList{}, err
		}
		list.TextContent = content
	}

	return list, nil
}

func (h *PollPageHandler) buildTransactions(ctx context.Context, poll *models.Poll) (view.Timeline, error) {
	xactions, err := h.store.LoadTransactions(ctx, poll.PHID)
	if err != nil {
		return view.Timeline{}, err
	}

	// Render every comment in one pass
	engine := markup.NewEngine()
	authors := make([]string, 0, len(xactions))
	seen := make(map[string]bool, len(xactions))
	for _, x := range xactions {
		if !seen[x.AuthorPHID] {
			seen[x.AuthorPHID] = true
			authors = append(authors, x.AuthorPHID)
		}
		if x.Comment != nil {
			engine.AddObject(x.Comment.PHID, x.Comment.Content)
		}
	}
	if err := engine.Process(); err != nil {
		return view.Timeline{}, err
	}

	names, err := h.store.LoadUserNames(ctx, authors)
	if err != nil {
		return view.Timeline{}, err
	}

	timeline := view.Timeline{ObjectPHID: poll.PHID}
	for _, x := range xactions {
		event := view.TimelineEvent{
			PHID:  x.PHID,
			Icon:  transactionIcon(x),
			Title: transactionTitle(x, authorName(names, x.AuthorPHID)),
			When:  x.CreatedAt,
		}
		if x.Comment != nil {
			if event.Comment, err = engine.Output(x.Comment.PHID); err != nil {
				return view.Timeline{}, err
			}
		}
		timeline.Events = append(timeline.Events, event)
	}

	return timeline, nil
}

func (h *PollPageHandler) buildCommentForm(ctx context.Context, poll *models.Poll, viewer models.Viewer) (view.CommentBox, error) {
	headerText := "Enter Deliberations"
	submitButtonName := "Perhaps"
	if h.cfg.SeriousBusiness {
		headerText = "Add Comment"
		submitButtonName = "Add Comment"
	}

	draft, err := h.store.LoadDraft(ctx, viewer.PHID, poll.PHID)
	if err != nil {
		return view.CommentBox{}, err
	}

	return view.CommentBox{
		Header: view.NewHeader(headerText),
		Flush:  true,
		Form: view.CommentForm{
			ObjectPHID:       poll.PHID,
			Action:           applicationURI(fmt.Sprintf("comment/%d/", poll.ID)),
			SubmitButtonName: submitButtonName,
			Draft:            draft.Draft,
			Disabled:         !viewer.IsLoggedIn(),
		},
	}, nil
}

// notFound writes a 404 in the format the client asked for
func notFound(w http.ResponseWriter, isAjax bool) {
	if isAjax {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := view.RenderNotFound(w); err != nil {
		slog.Error("failed to render 404 page", "error", err)
	}
}

func serverError(w http.ResponseWriter, isAjax bool) {
	if isAjax {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := view.RenderError(w); err != nil {
		slog.Error("failed to render error page", "error", err)
	}
}
