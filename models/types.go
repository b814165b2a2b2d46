// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/slowpoll/policy"
)

// Poll status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Voting method constants
const (
	MethodPlurality = "plurality"
	MethodApproval  = "approval"
)

// Response visibility constants
const (
	VisibilityVisible = "visible"
	VisibilityVoters  = "voters"
	VisibilityOwner   = "owner"
)

// Transaction types
const (
	TransactionCreate      = "poll:create"
	TransactionQuestion    = "poll:question"
	TransactionDescription = "poll:description"
	TransactionAddOption   = "poll:option"
	TransactionClose       = "poll:close"
	TransactionComment     = "core:comment"
)

// PHID types
const (
	PHIDTypePoll        = "POLL"
	PHIDTypeTransaction = "XACT"
	PHIDTypeComment     = "XCMT"
	PHIDTypeUser        = "USER"
)

// Request types

type CreatePollRequest struct {
	Question           string   `json:"question"`
	Description        string   `json:"description"`
	Method             string   `json:"method"`
	ResponseVisibility string   `json:"response_visibility"`
	ViewPolicy         string   `json:"view_policy"`
	EditPolicy         string   `json:"edit_policy"`
	Options            []string `json:"options"`
}

type AddOptionRequest struct {
	Name string `json:"name"`
}

// Nil fields are left unchanged.
type EditPollRequest struct {
	Question    *string `json:"question,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type CastVoteRequest struct {
	OptionIDs []int64 `json:"option_ids"`
}

// Response types

type CreatePollResponse struct {
	PollID int64  `json:"poll_id"`
	PHID   string `json:"phid"`
	URI    string `json:"uri"`
}

type AddOptionResponse struct {
	OptionID int64 `json:"option_id"`
}

// AjaxPollResponse is the live-refresh payload of the poll page.
type AjaxPollResponse struct {
	PollID      int64  `json:"pollID"`
	ContentHTML string `json:"contentHTML"`
}

type CastVoteResponse struct {
	PollID    int64   `json:"poll_id"`
	OptionIDs []int64 `json:"option_ids"`
	Message   string  `json:"message"`
}

type ResultsResponse struct {
	PollID     int64         `json:"poll_id"`
	Visible    bool          `json:"visible"`
	VoterCount int           `json:"voter_count"`
	Options    []OptionTally `json:"options"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
}

// Domain types

// Viewer is the identity a request acts as. A zero PHID is a logged-out viewer.
type Viewer struct {
	PHID string `json:"phid,omitempty"`
}

func (v Viewer) IsLoggedIn() bool {
	return v.PHID != ""
}

type Poll struct {
	ID                 int64     `json:"id"`
	PHID               string    `json:"phid"`
	Question           string    `json:"question"`
	Description        string    `json:"description"`
	AuthorPHID         string    `json:"author_phid"`
	Method             string    `json:"method"`
	ResponseVisibility string    `json:"response_visibility"`
	Status             string    `json:"status"`
	ViewPolicy         string    `json:"view_policy"`
	EditPolicy         string    `json:"edit_policy"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Populated on request by the store.
	Options       []Option `json:"options,omitempty"`
	Choices       []Choice `json:"choices,omitempty"`
	ViewerChoices []Choice `json:"viewer_choices,omitempty"`
}

func (p *Poll) IsClosed() bool {
	return p.Status == StatusClosed
}

// GetPolicy returns the policy guarding capability on this poll.
func (p *Poll) GetPolicy(capability policy.Capability) string {
	switch capability {
	case policy.CanView:
		return p.ViewPolicy
	case policy.CanEdit:
		return p.EditPolicy
	}
	return policy.NoOne
}

// The author can always see and edit their own poll.
func (p *Poll) HasAutomaticCapability(capability policy.Capability, viewerPHID string) bool {
	return viewerPHID != "" && viewerPHID == p.AuthorPHID
}

type Option struct {
	ID     int64  `json:"id"`
	PollID int64  `json:"poll_id"`
	Name   string `json:"name"`
}

type Choice struct {
	ID         int64     `json:"id"`
	PollID     int64     `json:"poll_id"`
	OptionID   int64     `json:"option_id"`
	AuthorPHID string    `json:"author_phid"`
	CreatedAt  time.Time `json:"created_at"`
}

type Transaction struct {
	ID              int64     `json:"id"`
	PHID            string    `json:"phid"`
	ObjectPHID      string    `json:"object_phid"`
	AuthorPHID      string    `json:"author_phid"`
	TransactionType string    `json:"transaction_type"`
	OldValue        string    `json:"old_value"`
	NewValue        string    `json:"new_value"`
	Comment         *Comment  `json:"comment,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type Comment struct {
	PHID            string    `json:"phid"`
	TransactionPHID string    `json:"transaction_phid"`
	AuthorPHID      string    `json:"author_phid"`
	Content         string    `json:"content"`
	CreatedAt       time.Time `json:"created_at"`
}

// Draft is a viewer's unsubmitted comment text for one object.
type Draft struct {
	AuthorPHID string    `json:"author_phid"`
	DraftKey   string    `json:"draft_key"`
	Draft      string    `json:"draft"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type OptionTally struct {
	OptionID int64   `json:"option_id"`
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"`
	Chosen   bool    `json:"chosen"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
