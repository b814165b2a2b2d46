// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/slowpoll/cliparse"
	"github.com/danielhkuo/slowpoll/handlers"
	"github.com/danielhkuo/slowpoll/middleware"
	"github.com/danielhkuo/slowpoll/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithLogging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.CheckOrigin(cfg.AllowedOrigins))
	r.Use(middleware.WithViewer(cfg.SessionSalt))

	// Initialize handlers
	s := store.New(db)
	pageHandler := handlers.NewPollPageHandler(s, cfg)
	pollHandler := handlers.NewPollHandler(s, cfg)
	votingHandler := handlers.NewVotingHandler(s, cfg)
	resultsHandler := handlers.NewResultsHandler(s, cfg)

	// Health check
	r.Get("/health", handlers.NewHealthHandler(s))

	r.Route("/vote", func(r chi.Router) {
		// Poll page, full or AJAX refresh
		r.Get("/V{id}", pageHandler.ViewPoll)
		r.Get("/{id}/", pageHandler.ViewPoll)

		// Poll management
		r.Post("/create/", pollHandler.CreatePoll)
		r.Post("/{id}/options", pollHandler.AddOption)
		r.Post("/edit/{id}/", pollHandler.EditPoll)

		// Voting and results
		r.Post("/{id}/vote/", votingHandler.CastVote)
		r.Get("/{id}/results", resultsHandler.GetResults)
	})

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("slowpoll v1"))
	})

	return r
}
