// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Dialect column types for auto-incrementing keys
const (
	postgresSerial = "BIGSERIAL PRIMARY KEY"
	sqliteSerial   = "INTEGER PRIMARY KEY AUTOINCREMENT"
)

// Open connects to the database and verifies the connection.
// driver is "postgres" or "sqlite".
func Open(driver, url string) (*sql.DB, error) {
	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite" {
		// SQLite allows a single writer
		conn.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, driver string) error {
	_, err := db.Exec(Schema(driver))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Schema returns the DDL for the given driver
func Schema(driver string) string {
	serial := sqliteSerial
	if driver == "postgres" {
		serial = postgresSerial
	}
	return strings.ReplaceAll(schema, "{{SERIAL}}", serial)
}

const schema = `
-- Users (mirrored from the account service for display names)
CREATE TABLE IF NOT EXISTS app_user (
    phid TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    real_name TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Polls
CREATE TABLE IF NOT EXISTS slowvote_poll (
    id {{SERIAL}},
    phid TEXT NOT NULL UNIQUE,
    question TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    author_phid TEXT NOT NULL,
    method TEXT NOT NULL DEFAULT 'plurality' CHECK (method IN ('plurality', 'approval')),
    response_visibility TEXT NOT NULL DEFAULT 'visible' CHECK (response_visibility IN ('visible', 'voters', 'owner')),
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    view_policy TEXT NOT NULL,
    edit_policy TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_slowvote_poll_author ON slowvote_poll(author_phid);

-- Options
CREATE TABLE IF NOT EXISTS slowvote_option (
    id {{SERIAL}},
    poll_id BIGINT NOT NULL REFERENCES slowvote_poll(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_slowvote_option_poll_id ON slowvote_option(poll_id);

-- Choices (one row per voter per chosen option)
CREATE TABLE IF NOT EXISTS slowvote_choice (
    id {{SERIAL}},
    poll_id BIGINT NOT NULL REFERENCES slowvote_poll(id) ON DELETE CASCADE,
    option_id BIGINT NOT NULL REFERENCES slowvote_option(id) ON DELETE CASCADE,
    author_phid TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (option_id, author_phid)
);

CREATE INDEX IF NOT EXISTS idx_slowvote_choice_poll_id ON slowvote_choice(poll_id);
CREATE INDEX IF NOT EXISTS idx_slowvote_choice_author ON slowvote_choice(poll_id, author_phid);

-- Transactions
CREATE TABLE IF NOT EXISTS slowvote_transaction (
    id {{SERIAL}},
    phid TEXT NOT NULL UNIQUE,
    object_phid TEXT NOT NULL,
    author_phid TEXT NOT NULL,
    transaction_type TEXT NOT NULL,
    old_value TEXT NOT NULL DEFAULT '',
    new_value TEXT NOT NULL DEFAULT '',
    comment_phid TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_slowvote_transaction_object ON slowvote_transaction(object_phid);

-- Transaction comments
CREATE TABLE IF NOT EXISTS slowvote_transaction_comment (
    id {{SERIAL}},
    phid TEXT NOT NULL UNIQUE,
    transaction_phid TEXT NOT NULL,
    author_phid TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_slowvote_transaction_comment_xaction ON slowvote_transaction_comment(transaction_phid);

-- Drafts
CREATE TABLE IF NOT EXISTS draft (
    id {{SERIAL}},
    author_phid TEXT NOT NULL,
    draft_key TEXT NOT NULL,
    draft TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (author_phid, draft_key)
);
`
