// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

var (
	// ErrSessionExpired is returned by Restore when no key is cached.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidHandle is returned by Store for a handle without a key or
	// account.
	ErrInvalidHandle = errors.New("invalid session handle")
)
