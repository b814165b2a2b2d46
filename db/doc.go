// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Drivers

Two database/sql drivers are supported:

  - postgres: github.com/lib/pq
  - sqlite: modernc.org/sqlite (pure Go, used by default and in tests)

Drivers are registered with blank imports in main and testutil. All queries
use $n placeholders, which both drivers accept.

	conn, err := db.Open(cfg.DriverName(), cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DriverName()); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The only dialect difference is the auto-increment key type.

# Tables

  - app_user: display names for user PHIDs
  - slowvote_poll: poll question, description, policies, state
  - slowvote_option: answers per poll
  - slowvote_choice: one row per voter per chosen option
  - slowvote_transaction: change records keyed by object PHID
  - slowvote_transaction_comment: comments attached to transactions
  - draft: unsent comment text per (author, key)

# Relationships

	slowvote_poll 1──* slowvote_option
	slowvote_poll 1──* slowvote_choice
	slowvote_option 1──* slowvote_choice
	slowvote_poll.phid 1──* slowvote_transaction.object_phid
	slowvote_transaction 1──? slowvote_transaction_comment
*/
package db
