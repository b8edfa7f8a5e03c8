// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/utils"
	"github.com/MKhiriev/go-journal-vault/models"
)

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.createAccount"

	var account models.NewAccount
	if err := decodeBody(r, &account); err != nil {
		writeError(w, r, fn, err)
		return
	}
	if err := h.validator.Validate(r.Context(), account); err != nil {
		writeError(w, r, fn, fmt.Errorf("%w: %w", errInvalidRequest, err))
		return
	}

	created, err := h.accounts.CreateAccount(r.Context(), account)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	logger.FromRequest(r).Info().Int64("account_id", created.AccountID).Msg("account created")
	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) findAccount(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.findAccount"

	login := r.URL.Query().Get("login")
	if login == "" {
		writeError(w, r, fn, fmt.Errorf("%w: no login", errInvalidRequest))
		return
	}

	account, err := h.accounts.FindAccountByLogin(r.Context(), login)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) verifyCredential(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.verifyCredential"

	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	var check models.CredentialCheck
	if err = decodeBody(r, &check); err != nil {
		writeError(w, r, fn, err)
		return
	}

	if err = h.accounts.VerifyCredential(r.Context(), accountID, check.AuthHash); err != nil {
		writeError(w, r, fn, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updatePasswordWrap(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.updatePasswordWrap"

	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	var update models.PasswordWrapUpdate
	if err = decodeBody(r, &update); err != nil {
		writeError(w, r, fn, err)
		return
	}
	if err = h.validator.Validate(r.Context(), update); err != nil {
		writeError(w, r, fn, fmt.Errorf("%w: %w", errInvalidRequest, err))
		return
	}
	update.AccountID = accountID

	generation, err := h.accounts.UpdatePasswordWrap(r.Context(), update)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	utils.WriteJSON(w, models.GenerationResponse{SessionGeneration: generation}, http.StatusOK)
}

func (h *Handler) setRecoveryWrap(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.setRecoveryWrap"

	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	var update models.RecoveryWrapUpdate
	if err = decodeBody(r, &update); err != nil {
		writeError(w, r, fn, err)
		return
	}
	if err = h.validator.Validate(r.Context(), update); err != nil {
		writeError(w, r, fn, fmt.Errorf("%w: %w", errInvalidRequest, err))
		return
	}
	update.AccountID = accountID

	if err = h.accounts.SetRecoveryWrap(r.Context(), update); err != nil {
		writeError(w, r, fn, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) revokeRecoveryWrap(w http.ResponseWriter, r *http.Request) {
	const fn = "*Handler.revokeRecoveryWrap"

	accountID, err := accountIDParam(r)
	if err != nil {
		writeError(w, r, fn, err)
		return
	}

	if err = h.accounts.RevokeRecoveryWrap(r.Context(), accountID); err != nil {
		writeError(w, r, fn, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
