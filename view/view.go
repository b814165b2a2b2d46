// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"html/template"
	"time"

	"github.com/danielhkuo/slowpoll/policy"
)

// Header is the title bar of an object box
type Header struct {
	Title       string
	PolicyLabel string
	PolicyIcon  string
}

func NewHeader(title string) Header {
	return Header{Title: title}
}

// WithPolicyObject shows who can see object next to the title
func (h Header) WithPolicyObject(object policy.Object) Header {
	h.PolicyLabel, h.PolicyIcon = policy.Describe(object.GetPolicy(policy.CanView))
	return h
}

// Action is one entry of an action list. Disabled actions still render, but
// Workflow marks them so the client opens them in a dialog instead of
// navigating.
type Action struct {
	Name     string
	Icon     string
	Href     string
	Disabled bool
	Workflow bool
}

type ActionList struct {
	ObjectPHID string
	Actions    []Action
}

func (l *ActionList) AddAction(a Action) {
	l.Actions = append(l.Actions, a)
}

type PropertyList struct {
	ObjectPHID  string
	TextContent template.HTML
}

func (p PropertyList) HasContent() bool {
	return p.TextContent != ""
}

type Crumb struct {
	Name string
	Href string
}

type Crumbs struct {
	Items []Crumb
}

func (c *Crumbs) AddCrumb(crumb Crumb) {
	c.Items = append(c.Items, crumb)
}

// ObjectBox groups a header with an object's actions and properties
type ObjectBox struct {
	Header     Header
	Actions    ActionList
	Properties PropertyList
}

type TimelineEvent struct {
	PHID    string
	Icon    string
	Title   string
	Comment template.HTML
	When    time.Time
}

// Timeline is the chronological transaction history of one object
type Timeline struct {
	ObjectPHID string
	Events     []TimelineEvent
}

type CommentForm struct {
	ObjectPHID       string
	Action           string
	SubmitButtonName string
	Draft            string
	// Logged-out viewers see the form without a usable textarea
	Disabled bool
}

type CommentBox struct {
	Header Header
	Flush  bool
	Form   CommentForm
}

type EmbedOption struct {
	ID      int64
	Name    string
	Count   int
	Percent int
	Chosen  bool
}

// PollEmbed is the voting widget. Headless widgets omit the question header,
// for use inside a page that already shows it or for AJAX refresh.
type PollEmbed struct {
	PollID      int64
	Question    string
	Headless    bool
	InputType   string
	Action      string
	CanVote     bool
	Closed      bool
	ShowResults bool
	VoterCount  int
	Options     []EmbedOption
}

// Page is a full poll page
type Page struct {
	Title       string
	Device      bool
	PageObjects []string
	Crumbs      Crumbs
	Box         ObjectBox
	Embed       template.HTML
	Timeline    Timeline
	Comment     CommentBox
}
