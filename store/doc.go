// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store reads and writes polls, transactions, drafts and users.

All queries use $n placeholders, which both lib/pq and modernc.org/sqlite
accept, so one Store serves either database.

# Reads

	poll, err := s.LoadPoll(ctx, viewer, id, store.Need{Options: true})

LoadPoll applies the poll's view policy: a poll the viewer cannot see
returns ErrNotFound, the same as a missing one.

# Writes

CreatePoll, AddOption and UpdatePoll run in a database transaction and
record one timeline transaction per change. SetChoices replaces a voter's
choices and records nothing on the timeline.
*/
package store
