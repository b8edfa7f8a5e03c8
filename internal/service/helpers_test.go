// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-journal-vault/internal/config"
	"github.com/MKhiriev/go-journal-vault/internal/crypto"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/session"
	"github.com/MKhiriev/go-journal-vault/internal/utils"
	"github.com/MKhiriev/go-journal-vault/models"
)

const (
	testLogin       = "alice"
	testPassword    = "Tr0ub4dor&3xyz!!"
	testNewPassword = "N3wP@ssphrase!!"
)

// testKeys keeps PBKDF2 cheap.
var testKeys = crypto.NewKeyChain(crypto.WithIterations(1_000, 2_000))

type testEnv struct {
	store *memStore
	cache session.KeyCache
	svc   *Services

	mu     sync.Mutex
	stages []Stage
}

// newTestEnv builds services over st with their own key cache, i.e. one
// client tab.
func newTestEnv(t *testing.T, st *memStore) *testEnv {
	t.Helper()

	env := &testEnv{
		store: st,
		cache: session.NewKeyCache(session.NewMemoryTabStorage(), logger.Nop()),
	}
	env.svc = NewServices(st.storages(), testKeys, env.cache, utils.NewUUIDGenerator(), config.Reencryption{
		BatchSize:         2,
		Concurrency:       2,
		MaxCommitAttempts: 3,
		CommitBackoff:     time.Millisecond,
	}, logger.Nop(), WithProgress(env.record))
	return env
}

func (e *testEnv) record(stage Stage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stages = append(e.stages, stage)
}

func (e *testEnv) takeStages() []Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	stages := e.stages
	e.stages = nil
	return stages
}

// seedLegacy creates a legacy account whose records are encrypted directly
// under the password-derived key.
func seedLegacy(t *testing.T, st *memStore, login, password string, entries ...models.Entry) models.Account {
	t.Helper()
	ctx := context.Background()

	salt, err := testKeys.GenerateSalt()
	require.NoError(t, err)

	key, err := testKeys.Derive(password, salt, crypto.KDFLegacy)
	require.NoError(t, err)

	account, err := st.CreateAccount(ctx, models.NewAccount{
		Login:      login,
		AuthHash:   testKeys.AuthHash(key, salt),
		Salt:       salt,
		KDFVersion: crypto.KDFLegacy.String(),
		KeyMode:    models.KeyModeLegacy,
	})
	require.NoError(t, err)

	for _, entry := range entries {
		field, err := testKeys.Encrypt([]byte(entry.Text), key)
		require.NoError(t, err)
		tokens, err := tokensFor(testKeys, entry.IndexMode, entry.Text, key)
		require.NoError(t, err)

		require.NoError(t, st.SaveRecords(ctx, account.AccountID, account.SessionGeneration, models.EncryptedRecord{
			RecordID:   entry.RecordID,
			Kind:       entry.Kind,
			IndexMode:  entry.IndexMode,
			Ciphertext: field.Ciphertext,
			Nonce:      field.Nonce,
			Tokens:     tokens,
		}))
	}
	return account
}

// fingerprint hashes every stored ciphertext, nonce and token of accountID.
func fingerprint(st *memStore, accountID int64) string {
	h := sha256.New()
	for _, r := range st.snapshot(accountID) {
		h.Write([]byte(r.RecordID + "|" + r.Ciphertext + "|" + r.Nonce + "|" + strings.Join(r.Tokens, ",") + "\n"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func texts(entries []models.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Text)
	}
	return out
}
