// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// IndexMode selects how search tokens of a record are produced.
type IndexMode string

const (
	// IndexNone records carry no tokens.
	IndexNone IndexMode = "none"

	// IndexExact records carry one token of the whole normalized value,
	// e.g. a topic name.
	IndexExact IndexMode = "exact"

	// IndexKeywords records carry one token per extracted keyword.
	IndexKeywords IndexMode = "keywords"
)

// Valid reports whether m is a known index mode.
func (m IndexMode) Valid() bool {
	return m == IndexNone || m == IndexExact || m == IndexKeywords
}

// Record kinds used by the journal collaborators.
const (
	KindEntry    = "entry"
	KindTopic    = "topic"
	KindMetadata = "metadata"
)

// EncryptedRecord is one opaque stored value. Ciphertext and Nonce are the
// two sibling base64 columns of an encrypted field; Tokens is the
// multi-valued search-token field.
type EncryptedRecord struct {
	RecordID  string    `json:"record_id"`
	AccountID int64     `json:"account_id"`
	Kind      string    `json:"kind"`
	IndexMode IndexMode `json:"index_mode"`

	Ciphertext string   `json:"ciphertext"`
	Nonce      string   `json:"nonce"`
	Tokens     []string `json:"tokens,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordQuery pages through an account's records ordered by RecordID.
type RecordQuery struct {
	AccountID int64
	Kind      string
	After     string
	Limit     uint64
}

// SaveRecordsRequest is the body of a bulk save. ExpectedGeneration is the
// session generation the records were encrypted under.
type SaveRecordsRequest struct {
	ExpectedGeneration int64             `json:"expected_generation"`
	Records            []EncryptedRecord `json:"records"`
}
