// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// hideMethodNotAllowed answers 404 where chi would answer 405, so a caller
// cannot probe which methods a path supports.
func hideMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}
