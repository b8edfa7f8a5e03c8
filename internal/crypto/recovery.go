// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode"
)

const (
	// RecoverySecretSize is the entropy of a recovery secret in bytes.
	RecoverySecretSize = 32

	recoveryGroupSize = 4
	recoveryGroupSep  = "-"
)

// RecoverySecret is the high-entropy secret shown to the user once.
type RecoverySecret [RecoverySecretSize]byte

// String formats the secret as lowercase hex in groups of four joined by
// dashes, e.g. "3f2a-09bc-...".
func (s RecoverySecret) String() string {
	encoded := hex.EncodeToString(s[:])

	groups := make([]string, 0, len(encoded)/recoveryGroupSize)
	for i := 0; i < len(encoded); i += recoveryGroupSize {
		groups = append(groups, encoded[i:i+recoveryGroupSize])
	}
	return strings.Join(groups, recoveryGroupSep)
}

// ParseRecoverySecret accepts the formatted secret with or without the
// separators, in any letter case and with surrounding or embedded spaces.
func ParseRecoverySecret(s string) (RecoverySecret, error) {
	var secret RecoverySecret

	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)

	if len(cleaned) != hex.EncodedLen(RecoverySecretSize) {
		return secret, fmt.Errorf("%w: recovery secret must have %d hex digits", ErrInvalidInput, hex.EncodedLen(RecoverySecretSize))
	}

	raw, err := hex.DecodeString(cleaned)
	if err != nil {
		return secret, fmt.Errorf("%w: recovery secret is not hex", ErrInvalidInput)
	}
	copy(secret[:], raw)
	return secret, nil
}

// RecoveryKeyManager manages the second, password-independent wrap of the
// master key.
type RecoveryKeyManager struct {
	deriver *Deriver
	keys    *MasterKeyManager
}

// NewRecoveryKeyManager returns a RecoveryKeyManager backed by the given
// deriver and master key manager.
func NewRecoveryKeyManager(deriver *Deriver, keys *MasterKeyManager) *RecoveryKeyManager {
	return &RecoveryKeyManager{deriver: deriver, keys: keys}
}

// GenerateRecoverySecret returns 256 fresh random bits.
func (r *RecoveryKeyManager) GenerateRecoverySecret() (RecoverySecret, error) {
	var secret RecoverySecret
	if _, err := io.ReadFull(rand.Reader, secret[:]); err != nil {
		return RecoverySecret{}, fmt.Errorf("generate recovery secret: %w", err)
	}
	return secret, nil
}

// DeriveFromRecovery derives the recovery wrapping key. It uses the same
// function and the current iteration count as password derivation.
func (r *RecoveryKeyManager) DeriveFromRecovery(secret RecoverySecret, salt string) (Key, error) {
	material := []byte(hex.EncodeToString(secret[:]))
	defer clearBytes(material)

	return r.deriver.derive(material, salt, KDFCurrent)
}

// SetupRecovery wraps masterKey under the key derived from secret and salt.
func (r *RecoveryKeyManager) SetupRecovery(masterKey Key, secret RecoverySecret, salt string) (WrappedKey, error) {
	wrappingKey, err := r.DeriveFromRecovery(secret, salt)
	if err != nil {
		return WrappedKey{}, err
	}
	defer wrappingKey.Wipe()

	return r.keys.Wrap(masterKey, wrappingKey)
}

// UnwrapWithRecovery derives the recovery key and unwraps record with it.
func (r *RecoveryKeyManager) UnwrapWithRecovery(record WrappedKey, secret RecoverySecret, salt string) (Key, error) {
	wrappingKey, err := r.DeriveFromRecovery(secret, salt)
	if err != nil {
		return Key{}, err
	}
	defer wrappingKey.Wipe()

	return r.keys.Unwrap(record, wrappingKey)
}
