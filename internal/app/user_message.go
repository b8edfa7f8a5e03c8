// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"errors"

	"github.com/MKhiriev/go-journal-vault/internal/service"
	"github.com/MKhiriev/go-journal-vault/internal/store"
)

// UserMessage returns the text the client shows for err. Wrong passwords,
// wrong recovery secrets and unknown logins share one message.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgIncorrectSecret
	case errors.Is(err, service.ErrSessionExpired):
		return MsgSessionExpired
	case errors.Is(err, service.ErrPersistenceFailed):
		return MsgChangesNotSaved
	case errors.Is(err, store.ErrLoginAlreadyExists):
		return MsgLoginTaken
	case errors.Is(err, store.ErrRecoveryAlreadyConfigured):
		return MsgRecoveryConfigured
	case errors.Is(err, service.ErrRecoveryNotConfigured):
		return MsgRecoveryMissing
	case errors.Is(err, service.ErrAlreadyMigrated):
		return MsgAlreadyMigrated
	case errors.Is(err, service.ErrNotMasterKeyAccount):
		return MsgNotMasterKey
	case errors.Is(err, store.ErrRecordNotFound):
		return MsgEntryNotFound
	case errors.Is(err, service.ErrInvalidDataProvided):
		return MsgInvalidInput
	default:
		return MsgUnexpectedError
	}
}
