// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/wealthwise-sync/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer, middleware.StripSlashes, withGZip)

	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/sync", func(r chi.Router) {
		r.Get("/{entity}", h.listChanges)
		r.Put("/{entity}/{id}", h.pushRecord)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, nil, http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, nil, http.StatusMethodNotAllowed)
	})

	return router
}
