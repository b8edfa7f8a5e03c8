// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the length of every symmetric key handled by the package.
	KeySize = 32
	// SaltSize is the length of per-account salts (password and recovery).
	SaltSize = 32

	legacyIterations  = 100_000
	currentIterations = 600_000
)

// KDFVersion selects the PBKDF2 iteration count used for an account.
// Collaborators only ever see the enum, never the raw count.
type KDFVersion int

const (
	// KDFUnknown is the zero value and is rejected by Derive.
	KDFUnknown KDFVersion = iota
	// KDFLegacy is the low iteration count kept for old accounts.
	KDFLegacy
	// KDFCurrent is the iteration count used for every new derivation.
	KDFCurrent
)

// String returns the persisted name of the version.
func (v KDFVersion) String() string {
	switch v {
	case KDFLegacy:
		return "legacy"
	case KDFCurrent:
		return "current"
	default:
		return "unknown"
	}
}

// ParseKDFVersion is the inverse of [KDFVersion.String].
func ParseKDFVersion(s string) (KDFVersion, error) {
	switch s {
	case "legacy":
		return KDFLegacy, nil
	case "current":
		return KDFCurrent, nil
	default:
		return KDFUnknown, fmt.Errorf("%w: unknown kdf version %q", ErrInvalidInput, s)
	}
}

// Key is a 256-bit symmetric key. It is a value type so that two keys can
// be compared with ==.
type Key [KeySize]byte

// KeyFromBytes copies b into a Key. b must be exactly KeySize bytes.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return k, fmt.Errorf("%w: key length %d", ErrInvalidInput, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// IsZero reports whether k was never set (or has been wiped).
func (k *Key) IsZero() bool {
	return *k == Key{}
}

// Wipe overwrites the key material with zeroes.
func (k *Key) Wipe() {
	for i := range k {
		k[i] = 0
	}
}

// Deriver stretches passwords into keys with PBKDF2-HMAC-SHA256.
type Deriver struct {
	iterations map[KDFVersion]int
}

// Option tunes a [Deriver] (and everything built on top of it).
type Option func(*Deriver)

// WithIterations overrides the iteration counts. Production code never
// passes it; tests use it to keep PBKDF2 fast.
func WithIterations(legacy, current int) Option {
	return func(d *Deriver) {
		d.iterations[KDFLegacy] = legacy
		d.iterations[KDFCurrent] = current
	}
}

// NewDeriver returns a Deriver with the default iteration table.
func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{
		iterations: map[KDFVersion]int{
			KDFLegacy:  legacyIterations,
			KDFCurrent: currentIterations,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GenerateSalt returns SaltSize random bytes, base64-encoded.
func (d *Deriver) GenerateSalt() (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// Derive turns password and salt into a key. Same inputs always produce
// the same key. It never substitutes defaults: an empty password, a salt
// that is not base64 of SaltSize bytes or an unknown version all fail
// with ErrInvalidInput.
func (d *Deriver) Derive(password, salt string, version KDFVersion) (Key, error) {
	return d.derive([]byte(password), salt, version)
}

func (d *Deriver) derive(material []byte, salt string, version KDFVersion) (Key, error) {
	var key Key

	if len(material) == 0 {
		return key, fmt.Errorf("%w: empty password", ErrInvalidInput)
	}

	saltBytes, err := decodeSalt(salt)
	if err != nil {
		return key, err
	}

	iterations, ok := d.iterations[version]
	if !ok || iterations <= 0 {
		return key, fmt.Errorf("%w: unsupported kdf version %d", ErrInvalidInput, version)
	}

	derived := pbkdf2.Key(material, saltBytes, iterations, KeySize, sha256.New)
	copy(key[:], derived)
	clearBytes(derived)

	return key, nil
}

func decodeSalt(salt string) ([]byte, error) {
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return nil, fmt.Errorf("%w: salt is not base64", ErrInvalidInput)
	}
	if len(saltBytes) != SaltSize {
		return nil, fmt.Errorf("%w: salt length %d", ErrInvalidInput, len(saltBytes))
	}
	return saltBytes, nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
