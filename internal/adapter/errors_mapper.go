// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-journal-vault/internal/app"
	"github.com/MKhiriev/go-journal-vault/internal/store"
)

// bodyErrors resolves statuses shared by several storage errors through the
// message the server wrote.
var bodyErrors = map[string]error{
	app.MsgAccountNotFound:           store.ErrAccountNotFound,
	app.MsgRecordNotFound:            store.ErrRecordNotFound,
	app.MsgLoginAlreadyExists:        store.ErrLoginAlreadyExists,
	app.MsgRecoveryAlreadyConfigured: store.ErrRecoveryAlreadyConfigured,
	app.MsgGenerationConflict:        store.ErrGenerationConflict,
	app.MsgIncompleteReencryption:    store.ErrIncompleteReencryption,
	app.MsgRecordNotSaved:            store.ErrRecordNotSaved,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if known, ok := bodyErrors[body]; ok {
		return known
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return store.ErrCredentialMismatch
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: http %d: %s", store.ErrRetryable, resp.StatusCode(), body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, resp.StatusCode(), body)
	}
}

// transportError marks a request that never got a response. The caller may
// repeat it.
func transportError(op string, err error) error {
	return fmt.Errorf("%s request: %w: %w", op, store.ErrRetryable, err)
}
