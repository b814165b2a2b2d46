// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for slowpoll.

# Handler Types

Each handler is a struct with store and config dependencies:

  - PollPageHandler: the poll page and its AJAX refresh
  - PollHandler: create, add options, edit
  - VotingHandler: casting and withdrawing votes
  - ResultsHandler: tally retrieval

Handlers depend on narrow store interfaces (PageStore, PollWriter,
PollReader) that *store.Store satisfies:

	pageHandler := handlers.NewPollPageHandler(store.New(db), cfg)

# Poll Page

ViewPoll loads the poll with its options and choices on behalf of the
viewer. Polls the viewer cannot see are reported as not found. AJAX
requests receive only the poll widget:

	{"pollID": 42, "contentHTML": "<div class=\"slowvote-embed\" ...>"}

Everything else gets the full page: header, edit action, description,
crumbs, the transaction timeline and the comment form prefilled with the
viewer's draft.

# Results

ComputeTally counts voters per option. Counts are only shown when the
poll's response visibility allows: always, to voters, or to the author.
*/
package handlers
