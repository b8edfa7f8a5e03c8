// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

const (
	// NonceSize is the AES-GCM nonce length (96 bits).
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag length (128 bits).
	TagSize = 16
)

// EncryptedField is the stored form of one plaintext value. Both parts are
// base64 and live in sibling columns; they are never concatenated.
type EncryptedField struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
}

// FieldCipher is AES-256-GCM over arbitrary plaintext.
type FieldCipher struct{}

// NewFieldCipher returns a FieldCipher.
func NewFieldCipher() *FieldCipher {
	return &FieldCipher{}
}

// Encrypt seals plaintext under key with a fresh random nonce.
func (c *FieldCipher) Encrypt(plaintext []byte, key Key) (EncryptedField, error) {
	ciphertext, nonce, err := seal(plaintext, key)
	if err != nil {
		return EncryptedField{}, err
	}

	return EncryptedField{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
	}, nil
}

// Decrypt opens field under key. Decoding problems yield ErrMalformedInput,
// tag mismatches yield ErrAuthenticationFailed.
func (c *FieldCipher) Decrypt(field EncryptedField, key Key) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(field.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext is not base64", ErrMalformedInput)
	}
	nonce, err := base64.StdEncoding.DecodeString(field.Nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce is not base64", ErrMalformedInput)
	}

	return open(ciphertext, nonce, key)
}

// EncryptString is Encrypt for string values.
func (c *FieldCipher) EncryptString(plaintext string, key Key) (EncryptedField, error) {
	return c.Encrypt([]byte(plaintext), key)
}

// DecryptString is Decrypt for string values.
func (c *FieldCipher) DecryptString(field EncryptedField, key Key) (string, error) {
	plaintext, err := c.Decrypt(field, key)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// EncryptJSON serializes v to JSON and encrypts it. Used for structured
// metadata attached to records.
func (c *FieldCipher) EncryptJSON(v any, key Key) (EncryptedField, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return EncryptedField{}, fmt.Errorf("marshal data: %w", err)
	}
	defer clearBytes(plaintext)

	return c.Encrypt(plaintext, key)
}

// DecryptJSON decrypts field and unmarshals the result into target, which
// must be a non-nil pointer.
func (c *FieldCipher) DecryptJSON(field EncryptedField, key Key, target any) error {
	plaintext, err := c.Decrypt(field, key)
	if err != nil {
		return err
	}
	defer clearBytes(plaintext)

	if err = json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return nil
}

func newGCM(key Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

func seal(plaintext []byte, key Key) (ciphertext, nonce []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, NonceSize)
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nil, nonce, plaintext, nil), nonce, nil
}

func open(ciphertext, nonce []byte, key Key) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce length %d", ErrMalformedInput, len(nonce))
	}
	if len(ciphertext) < TagSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrMalformedInput)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}
