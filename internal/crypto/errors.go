// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
)

// Error taxonomy of the crypto package. Callers match with [errors.Is].
//
// Wrong password, wrong recovery secret and tampered ciphertext all surface
// as [ErrAuthenticationFailed]; the package never reports which of the three
// happened.
var (
	// ErrInvalidInput is returned for malformed passwords, salts, keys or
	// versions. It signals a caller bug, not a security event.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedInput is returned when a ciphertext, nonce or wrapped key
	// cannot be decoded or has the wrong shape.
	ErrMalformedInput = fmt.Errorf("%w: malformed ciphertext or nonce", ErrInvalidInput)

	// ErrAuthenticationFailed is returned when an AEAD tag does not verify.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrWrongKeyOrCorrupted is returned by Unwrap. It matches
	// ErrAuthenticationFailed as well.
	ErrWrongKeyOrCorrupted = fmt.Errorf("%w: wrong key or corrupted wrap", ErrAuthenticationFailed)
)
