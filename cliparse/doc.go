// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

main loads a .env file (if present) before calling ParseFlags, so values
there behave like ordinary environment variables.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionSalt: Secret for session token HMAC (required)
  - SeriousBusiness: Formal interface copy (default: false)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	--session-salt Session token salt
	--serious      true or false

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	SESSION_SALT     → --session-salt
	SERIOUS_BUSINESS → --serious

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - SESSION_SALT is missing
  - the port is outside 1-65535
  - the database type is not sqlite or postgres
  - the serious flag is not a boolean
*/
package cliparse
