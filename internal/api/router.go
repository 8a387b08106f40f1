// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/avela/placepulse/internal/middleware"
	"github.com/avela/placepulse/internal/ops"
)

// NewRouter builds the full HTTP handler: the versioned API plus the
// operational endpoints when an ops router is provided.
func NewRouter(handler *Handler, opsRouter *ops.Router) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Prometheus)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/profiles", handler.ListProfiles)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/profile", handler.GetProfile)
			r.Post("/profile", handler.BuildProfile)
			r.Delete("/profile", handler.DeleteProfile)
			r.Post("/rank", handler.Rank)
			r.Post("/predict", handler.PredictAcceptance)
		})
	})

	if opsRouter != nil {
		opsRouter.Routes(r)
	}

	return r
}
