// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-journal-vault/internal/utils"
)

// withAccountID validates the {accountID} path segment once and stores it in
// the request context for the handlers below it.
func withAccountID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "accountID")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, r, "withAccountID", fmt.Errorf("%w: account id %q", errInvalidRequest, raw))
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithAccountID(r.Context(), id)))
	})
}
