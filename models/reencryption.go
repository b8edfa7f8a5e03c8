// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ReencryptionCommit is everything a bulk re-encryption writes. Storage
// applies it in a single transaction: the account's key material,
// credential verifier and generation change together with every record and
// its token set, or nothing changes.
type ReencryptionCommit struct {
	AccountID          int64 `json:"-"`
	ExpectedGeneration int64 `json:"expected_generation"`

	KDFVersion       string         `json:"kdf_version"`
	KeyMode          AccountKeyMode `json:"key_mode"`
	WrappedMasterKey string         `json:"wrapped_master_key"`

	// NewAuthHash, when set, replaces the credential verifier.
	NewAuthHash string `json:"new_auth_hash,omitempty"`

	// Records replace the stored ciphertext, nonce and tokens of the
	// records with the same RecordID.
	Records []EncryptedRecord `json:"records"`
}
