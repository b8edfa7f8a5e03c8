// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/models"
)

func (h *Handler) commitReencryption(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.commitReencryption"

	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	var commit models.ReencryptionCommit
	if err = decodeBody(r, &commit); err != nil {
		writeError(w, r, fn, err)
		return
	}
	if err = h.validator.Validate(r.Context(), commit); err != nil {
		writeError(w, r, fn, fmt.Errorf("%w: %w", errInvalidRequest, err))
		return
	}
	commit.AccountID = accountID

	if err = h.reencryption.CommitReencryption(r.Context(), commit); err != nil {
		writeError(w, r, fn, err)
		return
	}

	logger.FromRequest(r).Info().
		Int64("account_id", accountID).
		Int("records", len(commit.Records)).
		Msg("re-encryption committed")
	w.WriteHeader(http.StatusNoContent)
}
