// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	r.Use(middleware.WithLogging)

Logs request start (method, path, remote) and completion (status,
duration_ms), tagged with the chi request id.

# Viewer Sessions

	r.Use(middleware.WithViewer(cfg.SessionSalt))

Reads the X-Session-Token header, falling back to the phsid cookie, and
stores the resulting models.Viewer in the request context:

	viewer := middleware.ViewerFrom(r.Context())

Invalid tokens are logged and the request continues logged out.

# AJAX Detection

	if middleware.IsAjax(r) { ... }

True for the __ajax__ query parameter or X-Requested-With: XMLHttpRequest.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Cross-Origin Requests

	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.CheckOrigin(cfg.AllowedOrigins))

CORS answers only the configured origins, with credentials allowed. Sessions
also travel in a cookie, so CheckOrigin refuses POSTs whose Origin is neither
this host nor a configured origin.
*/
package middleware
