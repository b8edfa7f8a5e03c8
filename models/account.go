// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AccountKeyMode tells which key architecture protects an account's content.
type AccountKeyMode string

const (
	// KeyModeLegacy accounts encrypt content directly under the
	// password-derived key.
	KeyModeLegacy AccountKeyMode = "legacy"

	// KeyModeMasterKeyWrapped accounts encrypt content under a random master
	// key that is stored only wrapped.
	KeyModeMasterKeyWrapped AccountKeyMode = "master_key"
)

// Valid reports whether m is a known key mode.
func (m AccountKeyMode) Valid() bool {
	return m == KeyModeLegacy || m == KeyModeMasterKeyWrapped
}

// Account is the key material the storage collaborator keeps per user.
// Every wrapped value is in the "base64(ct):base64(nonce)" form and an
// empty string means that wrap does not exist.
type Account struct {
	AccountID int64  `json:"account_id"`
	Login     string `json:"login"`

	// Salt is the base64 32-byte salt for password-key derivation. Immutable.
	Salt string `json:"salt"`

	// KDFVersion is "legacy" or "current"; never a raw iteration count.
	KDFVersion string `json:"kdf_version"`

	KeyMode AccountKeyMode `json:"key_mode"`

	WrappedMasterKey         string `json:"wrapped_master_key,omitempty"`
	WrappedMasterKeyRecovery string `json:"wrapped_master_key_recovery,omitempty"`
	RecoverySalt             string `json:"recovery_salt,omitempty"`

	// SessionGeneration is bumped on every password change; cached session
	// handles carrying an older value are stale.
	SessionGeneration int64 `json:"session_generation"`

	// PasswordVerifier is the server-side one-way credential hash. It never
	// leaves the storage layer.
	PasswordVerifier string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRecovery reports whether a recovery-path wrap exists.
func (a Account) HasRecovery() bool {
	return a.WrappedMasterKeyRecovery != ""
}

// NewAccount is the payload for creating an account. AuthHash is the
// client's hash of the password-derived key; storage keys it again into the
// credential verifier and never persists it as is.
type NewAccount struct {
	Login            string         `json:"login"`
	AuthHash         string         `json:"auth_hash"`
	Salt             string         `json:"salt"`
	KDFVersion       string         `json:"kdf_version"`
	KeyMode          AccountKeyMode `json:"key_mode"`
	WrappedMasterKey string         `json:"wrapped_master_key,omitempty"`
}

// PasswordWrapUpdate replaces the password-path wrap together with the
// credential verifier. It succeeds only while the account is still at
// ExpectedGeneration and bumps the generation by one.
type PasswordWrapUpdate struct {
	AccountID          int64  `json:"-"`
	ExpectedGeneration int64  `json:"expected_generation"`
	KDFVersion         string `json:"kdf_version"`
	WrappedMasterKey   string `json:"wrapped_master_key"`
	NewAuthHash        string `json:"new_auth_hash"`
}

// RecoveryWrapUpdate installs the recovery-path wrap. It is accepted only
// when no recovery wrap exists.
type RecoveryWrapUpdate struct {
	AccountID                int64  `json:"-"`
	WrappedMasterKeyRecovery string `json:"wrapped_master_key_recovery"`
	RecoverySalt             string `json:"recovery_salt"`
}

// CredentialCheck is the body of a credential verification request.
type CredentialCheck struct {
	AuthHash string `json:"auth_hash"`
}

// GenerationResponse carries the session generation after a wrap update.
type GenerationResponse struct {
	SessionGeneration int64 `json:"session_generation"`
}
