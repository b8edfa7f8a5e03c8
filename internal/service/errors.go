// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-journal-vault/internal/session"
)

var (
	// ErrInvalidCredentials covers a wrong password, a wrong recovery secret,
	// an unknown login and a tampered wrap alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPersistenceFailed is returned when storage could not durably commit
	// a change. Nothing was written.
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrSessionExpired means there is no usable cached key and the user
	// must unlock again.
	ErrSessionExpired = session.ErrSessionExpired

	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrNotMasterKeyAccount   = errors.New("account does not use a wrapped master key")
	ErrAlreadyMigrated       = errors.New("account already uses a wrapped master key")
	ErrRecoveryNotConfigured = errors.New("recovery is not configured")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
