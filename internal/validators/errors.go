// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyLogin           = errors.New("login is required")
	ErrInvalidAuthHash      = errors.New("auth hash must be base64 of 32 bytes")
	ErrInvalidSalt          = errors.New("invalid salt")
	ErrInvalidKDFVersion    = errors.New("invalid kdf version")
	ErrInvalidKeyMode       = errors.New("invalid key mode")
	ErrInvalidWrappedKey    = errors.New("invalid wrapped key")
	ErrUnexpectedWrappedKey = errors.New("legacy accounts carry no wrapped key")
	ErrInvalidGeneration    = errors.New("invalid session generation")
	ErrInvalidRecordID      = errors.New("invalid record id")
	ErrInvalidKind          = errors.New("invalid record kind")
	ErrInvalidIndexMode     = errors.New("invalid index mode")
	ErrInvalidCiphertext    = errors.New("invalid ciphertext")
	ErrInvalidNonce         = errors.New("invalid nonce")
	ErrInvalidTokens        = errors.New("invalid search tokens")
	ErrEmptyRecords         = errors.New("records list cannot be empty")
	ErrDuplicateRecordID    = errors.New("duplicate record id")
)
