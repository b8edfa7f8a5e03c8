// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of payloads arriving at the storage
// API before they reach the storage layer.
//
// The server never sees plaintext or keys, so validation is structural:
// required values are present, enumerations are known, and every wrapped
// key, salt, ciphertext and nonce is well-formed base64 of the right size.
// Nothing here can tell whether a ciphertext decrypts.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
