// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-journal-vault/internal/crypto"
)

// SessionKeyHandle is what an unlocked session remembers: whose key it is,
// the key itself and the account generation it was unlocked at.
type SessionKeyHandle struct {
	AccountID  int64
	Login      string
	Key        crypto.Key
	Generation int64
}

type handleJSON struct {
	AccountID  int64  `json:"account_id"`
	Login      string `json:"login"`
	Key        string `json:"key"`
	Generation int64  `json:"generation"`
}

// MarshalJSON encodes the key as base64.
func (h SessionKeyHandle) MarshalJSON() ([]byte, error) {
	return json.Marshal(handleJSON{
		AccountID:  h.AccountID,
		Login:      h.Login,
		Key:        base64.StdEncoding.EncodeToString(h.Key[:]),
		Generation: h.Generation,
	})
}

// UnmarshalJSON reverses MarshalJSON.
func (h *SessionKeyHandle) UnmarshalJSON(data []byte) error {
	var raw handleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	keyBytes, err := base64.StdEncoding.DecodeString(raw.Key)
	if err != nil {
		return fmt.Errorf("decode session key: %w", err)
	}
	key, err := crypto.KeyFromBytes(keyBytes)
	if err != nil {
		return fmt.Errorf("decode session key: %w", err)
	}

	*h = SessionKeyHandle{
		AccountID:  raw.AccountID,
		Login:      raw.Login,
		Key:        key,
		Generation: raw.Generation,
	}
	return nil
}

func (h SessionKeyHandle) valid() bool {
	return h.AccountID != 0 && !h.Key.IsZero()
}
