// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// KeyChain bundles every client-side cryptographic operation. It knows
// nothing about the network, storage or users: it derives, generates,
// wraps, encrypts and tokenizes.
//
// Typical flow for a new account:
//
//	salt         = GenerateSalt()
//	masterKey    = GenerateMasterKey()
//	passwordKey  = Derive(password, salt, KDFCurrent)
//	wrapped      = Wrap(masterKey, passwordKey)
//	authHash     = AuthHash(passwordKey, salt)
//	field        = Encrypt(plaintext, masterKey)
//	token        = Tokenize(keyword, masterKey)
type KeyChain interface {
	// GenerateSalt returns a fresh base64-encoded 32-byte salt.
	GenerateSalt() (string, error)

	// Derive stretches password and salt into a key using the iteration
	// count selected by version. Deterministic.
	Derive(password, salt string, version KDFVersion) (Key, error)

	// AuthHash turns a password-derived key into the credential value sent
	// to storage in place of the password.
	AuthHash(passwordKey Key, salt string) string

	// Encrypt seals plaintext under key with a fresh nonce.
	Encrypt(plaintext []byte, key Key) (EncryptedField, error)

	// Decrypt opens a field sealed by Encrypt.
	Decrypt(field EncryptedField, key Key) ([]byte, error)

	// GenerateMasterKey returns a fresh random master key.
	GenerateMasterKey() (Key, error)

	// Wrap encrypts masterKey under wrappingKey.
	Wrap(masterKey, wrappingKey Key) (WrappedKey, error)

	// Unwrap reverses Wrap, failing with ErrWrongKeyOrCorrupted.
	Unwrap(record WrappedKey, wrappingKey Key) (Key, error)

	// GenerateRecoverySecret returns a fresh recovery secret.
	GenerateRecoverySecret() (RecoverySecret, error)

	// SetupRecovery wraps masterKey under the recovery-derived key.
	SetupRecovery(masterKey Key, secret RecoverySecret, salt string) (WrappedKey, error)

	// UnwrapWithRecovery unwraps the recovery-path wrap.
	UnwrapWithRecovery(record WrappedKey, secret RecoverySecret, salt string) (Key, error)

	// Tokenize returns the search token of a single normalized value.
	Tokenize(text string, key Key) (string, error)

	// TokenizeKeywords returns the search tokens of every keyword in body.
	TokenizeKeywords(body string, key Key) ([]string, error)
}
