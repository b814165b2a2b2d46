// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/slowpoll/auth"
	"github.com/danielhkuo/slowpoll/models"
)

const (
	SessionHeader = "X-Session-Token"
	SessionCookie = "phsid"
)

type viewerKey struct{}

// WithViewer resolves the session token on each request into a Viewer.
// Missing or invalid tokens leave the request logged out.
func WithViewer(salt string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var viewer models.Viewer

			token := r.Header.Get(SessionHeader)
			if token == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					token = c.Value
				}
			}

			if token != "" {
				phid, err := auth.ParseSessionToken(token, salt)
				if err != nil {
					slog.Warn("ignoring invalid session token", "path", r.URL.Path, "error", err)
				} else {
					viewer.PHID = phid
				}
			}

			next.ServeHTTP(w, r.WithContext(ContextWithViewer(r.Context(), viewer)))
		})
	}
}

func ContextWithViewer(ctx context.Context, viewer models.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// ViewerFrom returns the request's viewer; logged out when none was set
func ViewerFrom(ctx context.Context) models.Viewer {
	viewer, _ := ctx.Value(viewerKey{}).(models.Viewer)
	return viewer
}
