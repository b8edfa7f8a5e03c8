// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the client-side key management of the journal
// vault: password stretching (PBKDF2-HMAC-SHA256, two iteration versions),
// AES-256-GCM field encryption, master-key generation and wrapping, the
// recovery-secret path and blind-index search tokens.
//
// The storage layer only ever receives the outputs of this package:
// wrapped keys, ciphertext/nonce pairs and tokens.
package crypto
