// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-journal-vault/internal/crypto"
	"github.com/MKhiriev/go-journal-vault/internal/store"
)

// mapStorageError translates storage errors into service errors. Errors
// the caller can act on keep their storage identity.
func mapStorageError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrAccountNotFound),
		errors.Is(err, store.ErrCredentialMismatch):
		return ErrInvalidCredentials

	case errors.Is(err, store.ErrLoginAlreadyExists),
		errors.Is(err, store.ErrRecoveryAlreadyConfigured),
		errors.Is(err, store.ErrRecordNotFound):
		return err
	}

	return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
}

// mapCryptoError hides which authentication check failed.
func mapCryptoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, crypto.ErrAuthenticationFailed) {
		return ErrInvalidCredentials
	}

	return err
}
