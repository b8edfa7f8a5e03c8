// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Entry is the plaintext view of an [EncryptedRecord]. It only exists on the
// client, between decrypt and render.
type Entry struct {
	RecordID  string    `json:"record_id"`
	Kind      string    `json:"kind"`
	IndexMode IndexMode `json:"index_mode"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultIndexMode returns the index mode used for kind when none is given.
func DefaultIndexMode(kind string) IndexMode {
	switch kind {
	case KindTopic:
		return IndexExact
	case KindEntry:
		return IndexKeywords
	default:
		return IndexNone
	}
}

// SetupResult is returned by account setup. RecoverySecret is shown to the
// user once and is empty when no recovery was requested.
type SetupResult struct {
	AccountID      int64
	RecoverySecret string
}
