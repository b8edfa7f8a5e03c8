// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-journal-vault/internal/crypto"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
)

func testHandle() SessionKeyHandle {
	var key crypto.Key
	for i := range key {
		key[i] = byte(i + 1)
	}
	return SessionKeyHandle{AccountID: 42, Login: "alice", Key: key, Generation: 3}
}

func TestKeyCache_StoreRestore(t *testing.T) {
	cache := NewKeyCache(NewMemoryTabStorage(), logger.Nop())

	require.NoError(t, cache.Store(testHandle()))

	got, err := cache.Restore()
	require.NoError(t, err)
	assert.Equal(t, testHandle(), got)
}

func TestKeyCache_RestoreEmpty(t *testing.T) {
	cache := NewKeyCache(NewMemoryTabStorage(), logger.Nop())

	_, err := cache.Restore()
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestKeyCache_ClearIsIdempotent(t *testing.T) {
	cache := NewKeyCache(NewMemoryTabStorage(), logger.Nop())
	require.NoError(t, cache.Store(testHandle()))

	cache.Clear()
	cache.Clear()

	_, err := cache.Restore()
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestKeyCache_StoreRejectsEmptyKey(t *testing.T) {
	cache := NewKeyCache(NewMemoryTabStorage(), logger.Nop())

	h := testHandle()
	h.Key = crypto.Key{}
	assert.ErrorIs(t, cache.Store(h), ErrInvalidHandle)

	h = testHandle()
	h.AccountID = 0
	assert.ErrorIs(t, cache.Store(h), ErrInvalidHandle)
}

func TestKeyCache_CorruptedEntryIsDropped(t *testing.T) {
	storage := NewMemoryTabStorage()
	cache := NewKeyCache(storage, logger.Nop())
	storage.Set(handleStorageKey, `{"account_id":1,"key":"not base64"}`)

	_, err := cache.Restore()
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, ok := storage.Get(handleStorageKey)
	assert.False(t, ok)
}

func TestKeyCache_ClearWinsOverConcurrentRestore(t *testing.T) {
	cache := NewKeyCache(NewMemoryTabStorage(), logger.Nop())
	require.NoError(t, cache.Store(testHandle()))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = cache.Restore()
		}()
	}
	cache.Clear()
	wg.Wait()

	_, err := cache.Restore()
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestSessionKeyHandle_JSONKeyIsBase64(t *testing.T) {
	data, err := json.Marshal(testHandle())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "alice", raw["login"])
	assert.IsType(t, "", raw["key"])

	var back SessionKeyHandle
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, testHandle(), back)
}
