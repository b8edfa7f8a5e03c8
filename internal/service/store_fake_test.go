// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-journal-vault/internal/store"
	"github.com/MKhiriev/go-journal-vault/models"
)

// memStore keeps accounts and records in memory. Key changes are applied
// all at once, like the SQL repositories do in a transaction.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	accounts   map[int64]models.Account
	authHashes map[int64]string
	records    map[int64]map[string]models.EncryptedRecord

	// received collects every credential value sent by the client.
	received []string

	// failWrites makes the next n key-material writes fail as retryable.
	failWrites  int
	writeCalls  int
	commitCalls int
}

func newMemStore() *memStore {
	return &memStore{
		accounts:   make(map[int64]models.Account),
		authHashes: make(map[int64]string),
		records:    make(map[int64]map[string]models.EncryptedRecord),
	}
}

func (m *memStore) storages() *store.Storages {
	return &store.Storages{AccountStorage: m, RecordStorage: m, ReencryptionStorage: m}
}

func (m *memStore) account(login string) models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Login == login {
			return a
		}
	}
	return models.Account{}
}

// snapshot returns a copy of every record of accountID ordered by id.
func (m *memStore) snapshot(accountID int64) []models.EncryptedRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.EncryptedRecord, 0, len(m.records[accountID]))
	for _, r := range m.records[accountID] {
		r.Tokens = slices.Clone(r.Tokens)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordID < out[j].RecordID })
	return out
}

// credentials returns every credential value the store has received.
func (m *memStore) credentials() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.received)
}

func (m *memStore) failWrite() error {
	m.writeCalls++
	if m.failWrites > 0 {
		m.failWrites--
		return fmt.Errorf("%w: connection reset", store.ErrRetryable)
	}
	return nil
}

func (m *memStore) CreateAccount(ctx context.Context, account models.NewAccount) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Login == account.Login {
			return models.Account{}, store.ErrLoginAlreadyExists
		}
	}

	m.nextID++
	now := time.Now()
	created := models.Account{
		AccountID:        m.nextID,
		Login:            account.Login,
		Salt:             account.Salt,
		KDFVersion:       account.KDFVersion,
		KeyMode:          account.KeyMode,
		WrappedMasterKey: account.WrappedMasterKey,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	m.accounts[created.AccountID] = created
	m.authHashes[created.AccountID] = account.AuthHash
	m.received = append(m.received, account.AuthHash)
	return created, nil
}

func (m *memStore) FindAccountByLogin(ctx context.Context, login string) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Login == login {
			return a, nil
		}
	}
	return models.Account{}, store.ErrAccountNotFound
}

func (m *memStore) VerifyCredential(ctx context.Context, accountID int64, authHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, authHash)
	stored, ok := m.authHashes[accountID]
	if !ok {
		return store.ErrAccountNotFound
	}
	if stored != authHash {
		return store.ErrCredentialMismatch
	}
	return nil
}

func (m *memStore) UpdatePasswordWrap(ctx context.Context, update models.PasswordWrapUpdate) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failWrite(); err != nil {
		return 0, err
	}

	a, ok := m.accounts[update.AccountID]
	if !ok || a.KeyMode != models.KeyModeMasterKeyWrapped || a.SessionGeneration != update.ExpectedGeneration {
		return 0, store.ErrGenerationConflict
	}

	a.KDFVersion = update.KDFVersion
	a.WrappedMasterKey = update.WrappedMasterKey
	a.SessionGeneration++
	m.accounts[a.AccountID] = a
	m.authHashes[a.AccountID] = update.NewAuthHash
	m.received = append(m.received, update.NewAuthHash)
	return a.SessionGeneration, nil
}

func (m *memStore) SetRecoveryWrap(ctx context.Context, update models.RecoveryWrapUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[update.AccountID]
	if !ok {
		return store.ErrAccountNotFound
	}
	if a.HasRecovery() {
		return store.ErrRecoveryAlreadyConfigured
	}
	a.WrappedMasterKeyRecovery = update.WrappedMasterKeyRecovery
	if a.RecoverySalt == "" {
		a.RecoverySalt = update.RecoverySalt
	}
	m.accounts[a.AccountID] = a
	return nil
}

func (m *memStore) RevokeRecoveryWrap(ctx context.Context, accountID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[accountID]
	if !ok {
		return store.ErrAccountNotFound
	}
	a.WrappedMasterKeyRecovery = ""
	m.accounts[accountID] = a
	return nil
}

func (m *memStore) SaveRecords(ctx context.Context, accountID, generation int64, records ...models.EncryptedRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.accounts[accountID]; !ok || a.SessionGeneration != generation {
		return store.ErrGenerationConflict
	}

	if m.records[accountID] == nil {
		m.records[accountID] = make(map[string]models.EncryptedRecord)
	}
	now := time.Now()
	for _, r := range records {
		r.AccountID = accountID
		if existing, ok := m.records[accountID][r.RecordID]; ok {
			r.CreatedAt = existing.CreatedAt
		} else {
			r.CreatedAt = now
		}
		r.UpdatedAt = now
		r.Tokens = slices.Clone(r.Tokens)
		m.records[accountID][r.RecordID] = r
	}
	return nil
}

func (m *memStore) GetRecord(ctx context.Context, accountID int64, recordID string) (models.EncryptedRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[accountID][recordID]
	if !ok {
		return models.EncryptedRecord{}, store.ErrRecordNotFound
	}
	return r, nil
}

func (m *memStore) ListRecords(ctx context.Context, query models.RecordQuery) ([]models.EncryptedRecord, error) {
	all := m.snapshot(query.AccountID)

	var page []models.EncryptedRecord
	for _, r := range all {
		if query.Kind != "" && r.Kind != query.Kind {
			continue
		}
		if query.After != "" && r.RecordID <= query.After {
			continue
		}
		page = append(page, r)
		if query.Limit > 0 && uint64(len(page)) == query.Limit {
			break
		}
	}
	return page, nil
}

func (m *memStore) FindByToken(ctx context.Context, accountID int64, token string) ([]models.EncryptedRecord, error) {
	var found []models.EncryptedRecord
	for _, r := range m.snapshot(accountID) {
		if slices.Contains(r.Tokens, token) {
			found = append(found, r)
		}
	}
	return found, nil
}

func (m *memStore) CommitReencryption(ctx context.Context, commit models.ReencryptionCommit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commitCalls++
	if err := m.failWrite(); err != nil {
		return err
	}

	a, ok := m.accounts[commit.AccountID]
	if !ok || a.SessionGeneration != commit.ExpectedGeneration {
		return store.ErrGenerationConflict
	}
	if len(commit.Records) != len(m.records[commit.AccountID]) {
		return store.ErrIncompleteReencryption
	}

	updated := make(map[string]models.EncryptedRecord, len(commit.Records))
	for _, r := range commit.Records {
		existing, ok := m.records[commit.AccountID][r.RecordID]
		if !ok {
			return store.ErrIncompleteReencryption
		}
		existing.Ciphertext = r.Ciphertext
		existing.Nonce = r.Nonce
		existing.Tokens = slices.Clone(r.Tokens)
		updated[r.RecordID] = existing
	}

	a.KDFVersion = commit.KDFVersion
	a.KeyMode = commit.KeyMode
	a.WrappedMasterKey = commit.WrappedMasterKey
	a.SessionGeneration++
	m.accounts[a.AccountID] = a
	if commit.NewAuthHash != "" {
		m.authHashes[a.AccountID] = commit.NewAuthHash
		m.received = append(m.received, commit.NewAuthHash)
	}
	if len(updated) > 0 {
		m.records[commit.AccountID] = updated
	}
	return nil
}
