// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-journal-vault/internal/logger"
)

const handleStorageKey = "journal-vault/session-key"

type keyCache struct {
	mu      sync.Mutex
	storage TabStorage
	logger  *logger.Logger
}

// NewKeyCache returns a [KeyCache] writing into storage.
func NewKeyCache(storage TabStorage, logger *logger.Logger) KeyCache {
	return &keyCache{storage: storage, logger: logger}
}

func (c *keyCache) Store(handle SessionKeyHandle) error {
	if !handle.valid() {
		return ErrInvalidHandle
	}

	data, err := json.Marshal(handle)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHandle, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.storage.Set(handleStorageKey, string(data))

	c.logger.Debug().
		Int64("account_id", handle.AccountID).
		Int64("generation", handle.Generation).
		Msg("session key cached")
	return nil
}

func (c *keyCache) Restore() (SessionKeyHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.storage.Get(handleStorageKey)
	if !ok || raw == "" {
		return SessionKeyHandle{}, ErrSessionExpired
	}

	var handle SessionKeyHandle
	if err := json.Unmarshal([]byte(raw), &handle); err != nil || !handle.valid() {
		c.storage.Remove(handleStorageKey)
		c.logger.Warn().Msg("dropping unreadable session handle")
		return SessionKeyHandle{}, ErrSessionExpired
	}

	return handle, nil
}

func (c *keyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.storage.Remove(handleStorageKey)
}
