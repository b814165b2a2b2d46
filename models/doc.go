// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the service.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, description, method, policies, options
  - AddOptionRequest: name
  - EditPollRequest: optional question, description, status
  - CastVoteRequest: option_ids

# Response Types

Types for JSON responses:

  - AjaxPollResponse: pollID, contentHTML (poll page live refresh)
  - CreatePollResponse: poll_id, phid, uri
  - AddOptionResponse: option_id
  - CastVoteResponse: poll_id, option_ids, message
  - ResultsResponse: per-option tallies
  - HealthResponse: status, timestamp, per-service health
  - ErrorResponse: error, message

# Domain Types

  - Viewer: the identity a request acts as
  - Poll: question, description, policies and eagerly loaded options/choices
  - Option: an answer a viewer may choose
  - Choice: one viewer's vote for one option
  - Transaction: an immutable record of a change to an object
  - Comment: text attached to a transaction
  - Draft: a viewer's unsent comment for one object

Poll implements the policy.Object interface, so capability checks accept it
directly.

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"

Voting methods:

	MethodPlurality = "plurality"
	MethodApproval  = "approval"

Response visibility:

	VisibilityVisible = "visible"
	VisibilityVoters  = "voters"
	VisibilityOwner   = "owner"
*/
package models
