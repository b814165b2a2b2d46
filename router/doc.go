// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for slowpoll.

# Route Registration

NewRouter creates a chi router with all endpoints:

	mux := router.NewRouter(db, cfg)

Every request passes through request IDs, real client IPs, logging, panic
recovery, CORS, the cross-origin POST check and session resolution, in that
order.

# Endpoints

Health:

	GET /health

Poll page (HTML, or JSON with __ajax__ / X-Requested-With):

	GET /vote/V{id}
	GET /vote/{id}/

Poll management (JSON, requires a session):

	POST /vote/create/      - Create poll
	POST /vote/{id}/options - Add option (edit capability)
	POST /vote/edit/{id}/   - Edit question, description or status

Voting and results:

	POST /vote/{id}/vote/   - Replace the viewer's choices
	GET  /vote/{id}/results - Tally, when response visibility allows
*/
package router
