// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-journal-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountStorage keeps per-account key material. It never sees an unwrapped
// key: only salts, wraps, the KDF version enum and the credential verifier.
type AccountStorage interface {
	// CreateAccount stores a new account and returns it with server-assigned
	// fields. Returns [ErrLoginAlreadyExists] on a duplicate login.
	CreateAccount(ctx context.Context, account models.NewAccount) (models.Account, error)

	// FindAccountByLogin returns [ErrAccountNotFound] when login is unknown.
	FindAccountByLogin(ctx context.Context, login string) (models.Account, error)

	// VerifyCredential checks the client auth hash against the stored
	// verifier and returns [ErrCredentialMismatch] when it does not match.
	VerifyCredential(ctx context.Context, accountID int64, authHash string) error

	// UpdatePasswordWrap replaces the password-path wrap and the verifier and
	// returns the new session generation.
	UpdatePasswordWrap(ctx context.Context, update models.PasswordWrapUpdate) (int64, error)

	// SetRecoveryWrap installs the recovery-path wrap once. The recovery salt
	// is kept from an earlier setup when one exists.
	SetRecoveryWrap(ctx context.Context, update models.RecoveryWrapUpdate) error

	// RevokeRecoveryWrap removes the recovery-path wrap.
	RevokeRecoveryWrap(ctx context.Context, accountID int64) error
}

// RecordStorage keeps opaque encrypted records and their search tokens.
type RecordStorage interface {
	// SaveRecords inserts or replaces records together with their tokens.
	// The write is accepted only while the account is still at generation,
	// otherwise it returns [ErrGenerationConflict] and nothing is written.
	SaveRecords(ctx context.Context, accountID, generation int64, records ...models.EncryptedRecord) error

	// GetRecord returns [ErrRecordNotFound] when the record does not exist.
	GetRecord(ctx context.Context, accountID int64, recordID string) (models.EncryptedRecord, error)

	// ListRecords returns one page of records ordered by id.
	ListRecords(ctx context.Context, query models.RecordQuery) ([]models.EncryptedRecord, error)

	// FindByToken returns every record carrying token. Matching is exact.
	FindByToken(ctx context.Context, accountID int64, token string) ([]models.EncryptedRecord, error)
}

// ReencryptionStorage applies a bulk re-encryption atomically.
type ReencryptionStorage interface {
	// CommitReencryption writes commit in one transaction. Transient
	// failures are wrapped with [ErrRetryable]; nothing is written when an
	// error is returned.
	CommitReencryption(ctx context.Context, commit models.ReencryptionCommit) error
}
