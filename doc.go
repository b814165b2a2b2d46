// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the slowpoll server.

slowpoll serves Slowvote polls: a page per poll with the voting widget,
an activity timeline and a comment box, plus the JSON endpoints that create,
edit and vote on polls.

# Starting the Server

The server reads CLI flags, falling back to environment variables (a .env
file in the working directory is loaded first):

	DATABASE_URL=slowpoll.db SESSION_SALT=... go run main.go

Or with flags against PostgreSQL:

	go run main.go -p 3318 -t postgres -d "postgres://..." --session-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - SESSION_SALT (--session-salt): Secret for session token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SERIOUS_BUSINESS (--serious): Plain comment box copy
  - ALLOWED_ORIGINS (--origins): Comma-separated origins allowed to call the
    API with a session, e.g. https://app.example.com

# Architecture

  - handlers: poll page assembly, poll management, voting, results
  - router: chi routes and middleware stack
  - middleware: logging, CORS, JSON helpers, session viewer
  - store: SQL access for polls, transactions, drafts and users
  - view: html/template rendering of pages and the poll widget
  - markup: comment and description rendering
  - policy: view and edit capability checks
  - models: domain and request/response types
  - auth: PHIDs and session tokens
  - db: connection and schema
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
