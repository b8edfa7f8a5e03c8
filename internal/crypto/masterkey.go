// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// wrappedKeySeparator joins ciphertext and nonce in the stored wrap.
const wrappedKeySeparator = ":"

// WrappedKey is a key encrypted under a wrapping key.
type WrappedKey struct {
	Ciphertext []byte
	Nonce      []byte
}

// String renders the storage form: base64(ciphertext) ":" base64(nonce).
func (w WrappedKey) String() string {
	return base64.StdEncoding.EncodeToString(w.Ciphertext) +
		wrappedKeySeparator +
		base64.StdEncoding.EncodeToString(w.Nonce)
}

// ParseWrappedKey parses the storage form produced by [WrappedKey.String].
func ParseWrappedKey(s string) (WrappedKey, error) {
	parts := strings.Split(s, wrappedKeySeparator)
	if len(parts) != 2 {
		return WrappedKey{}, fmt.Errorf("%w: wrapped key must have two parts", ErrMalformedInput)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return WrappedKey{}, fmt.Errorf("%w: wrapped key ciphertext is not base64", ErrMalformedInput)
	}
	nonce, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return WrappedKey{}, fmt.Errorf("%w: wrapped key nonce is not base64", ErrMalformedInput)
	}
	if len(nonce) != NonceSize {
		return WrappedKey{}, fmt.Errorf("%w: wrapped key nonce length %d", ErrMalformedInput, len(nonce))
	}

	return WrappedKey{Ciphertext: ciphertext, Nonce: nonce}, nil
}

// MasterKeyManager generates master keys and wraps/unwraps them.
type MasterKeyManager struct{}

// NewMasterKeyManager returns a MasterKeyManager.
func NewMasterKeyManager() *MasterKeyManager {
	return &MasterKeyManager{}
}

// GenerateMasterKey returns a fresh random 256-bit key.
func (m *MasterKeyManager) GenerateMasterKey() (Key, error) {
	var key Key
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return Key{}, fmt.Errorf("generate master key: %w", err)
	}
	return key, nil
}

// Wrap encrypts masterKey under wrappingKey.
func (m *MasterKeyManager) Wrap(masterKey, wrappingKey Key) (WrappedKey, error) {
	if masterKey.IsZero() || wrappingKey.IsZero() {
		return WrappedKey{}, fmt.Errorf("%w: zero key", ErrInvalidInput)
	}

	ciphertext, nonce, err := seal(masterKey[:], wrappingKey)
	if err != nil {
		return WrappedKey{}, fmt.Errorf("wrap master key: %w", err)
	}
	return WrappedKey{Ciphertext: ciphertext, Nonce: nonce}, nil
}

// Unwrap decrypts record under wrappingKey. A wrong wrapping key and a
// corrupted record are reported identically as ErrWrongKeyOrCorrupted.
func (m *MasterKeyManager) Unwrap(record WrappedKey, wrappingKey Key) (Key, error) {
	raw, err := open(record.Ciphertext, record.Nonce, wrappingKey)
	if err != nil {
		if errors.Is(err, ErrAuthenticationFailed) {
			return Key{}, ErrWrongKeyOrCorrupted
		}
		return Key{}, err
	}
	defer clearBytes(raw)

	key, err := KeyFromBytes(raw)
	if err != nil {
		return Key{}, ErrWrongKeyOrCorrupted
	}
	return key, nil
}
