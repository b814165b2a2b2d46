// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifier generation and session verification.

# PHIDs

Every object carries a PHID, a stable opaque identifier of the form
PHID-<TYPE>-<20 hex chars>:

	phid := auth.NewPHID("POLL")     // PHID-POLL-3f1c9a0b2d7e4c55a1b0
	kind, err := auth.PHIDType(phid) // "POLL"

The random part comes from a v4 UUID.

# Session Tokens

Accounts live in the wider suite; this service only verifies the session
tokens it hands out. A token is the user PHID plus an HMAC-SHA256 signature:

	token := auth.GenerateSessionToken(userPHID, salt)
	userPHID, err := auth.ParseSessionToken(token, salt)

Since tokens are deterministic, verification needs no database lookup.
Tokens that fail verification return ErrInvalidSession.
*/
package auth
