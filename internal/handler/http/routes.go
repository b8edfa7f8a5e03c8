// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/accounts", func(r chi.Router) {
		r.Post("/", h.createAccount)
		r.Get("/", h.findAccount)

		r.Route("/{accountID}", func(r chi.Router) {
			r.Use(withAccountID)

			r.Post("/credential/verify", h.verifyCredential)
			r.Put("/wrap/password", h.updatePasswordWrap)
			r.Put("/wrap/recovery", h.setRecoveryWrap)
			r.Delete("/wrap/recovery", h.revokeRecoveryWrap)

			r.Post("/records", h.saveRecords)
			r.Get("/records", h.listRecords)
			r.Get("/records/search", h.findByToken)
			r.Get("/records/{recordID}", h.getRecord)

			r.Post("/reencrypt", h.commitReencryption)
		})
	})

	router.MethodNotAllowed(hideMethodNotAllowed)

	return router
}
