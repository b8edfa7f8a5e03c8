// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-journal-vault/internal/app"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/store"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorResponses is matched in order: a retryable failure wins over the
// low-level error it wraps.
var errorResponses = []errorResponse{
	{target: store.ErrRetryable, status: http.StatusServiceUnavailable, message: app.MsgStorageUnavailable},

	{target: errInvalidRequest, status: http.StatusBadRequest, message: app.MsgInvalidDataProvided},
	{target: store.ErrCredentialMismatch, status: http.StatusUnauthorized, message: app.MsgCredentialMismatch},
	{target: store.ErrAccountNotFound, status: http.StatusNotFound, message: app.MsgAccountNotFound},
	{target: store.ErrRecordNotFound, status: http.StatusNotFound, message: app.MsgRecordNotFound},

	{target: store.ErrLoginAlreadyExists, status: http.StatusConflict, message: app.MsgLoginAlreadyExists},
	{target: store.ErrRecoveryAlreadyConfigured, status: http.StatusConflict, message: app.MsgRecoveryAlreadyConfigured},
	{target: store.ErrGenerationConflict, status: http.StatusConflict, message: app.MsgGenerationConflict},
	{target: store.ErrIncompleteReencryption, status: http.StatusConflict, message: app.MsgIncompleteReencryption},
	{target: store.ErrRecordNotSaved, status: http.StatusConflict, message: app.MsgRecordNotSaved},
}

func responseFromError(err error) (int, string) {
	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err and answers with the mapped status and message.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status, message := responseFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Int("status", status).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	http.Error(w, message, status)
}
