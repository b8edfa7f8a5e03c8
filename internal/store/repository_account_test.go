// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/utils"
	"github.com/MKhiriev/go-journal-vault/migrations"
	"github.com/MKhiriev/go-journal-vault/models"
)

const testHashKey = "test-password-hash-key"

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &DB{
		DB:                 conn,
		dialect:            migrations.DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &accountRepository{db: db, passwordHashKey: testHashKey, logger: logger.Nop()}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

func TestCreateAccount_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	now := time.Now()

	account := models.NewAccount{
		Login:            "alice",
		AuthHash:         "QUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUE=",
		Salt:             "c2FsdA==",
		KDFVersion:       "current",
		KeyMode:          models.KeyModeMasterKeyWrapped,
		WrappedMasterKey: "Y3Q=:bm9uY2U=",
	}

	mock.ExpectQuery(q("INSERT INTO accounts")).
		WithArgs("alice", account.Salt, "current", "master_key", account.WrappedMasterKey, utils.HashString(account.AuthHash, testHashKey)).
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "session_generation", "created_at", "updated_at"}).
			AddRow(int64(1), int64(0), now, now))

	created, err := repo.CreateAccount(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.AccountID)
	assert.Equal(t, "alice", created.Login)
	assert.Equal(t, account.WrappedMasterKey, created.WrappedMasterKey)
	assert.Empty(t, created.PasswordVerifier)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccount_UniqueViolation(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(q("INSERT INTO accounts")).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateAccount(context.Background(), models.NewAccount{Login: "alice"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestCreateAccount_RetryableError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(q("INSERT INTO accounts")).
		WillReturnError(pgError(pgerrcode.SerializationFailure))

	_, err := repo.CreateAccount(context.Background(), models.NewAccount{Login: "alice"})
	assert.ErrorIs(t, err, ErrRetryable)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func accountRows() *sqlmock.Rows {
	return sqlmock.NewRows(accountColumns)
}

func TestFindAccountByLogin_Found(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	now := time.Now()

	mock.ExpectQuery(q("SELECT account_id, login")).
		WithArgs("alice").
		WillReturnRows(accountRows().AddRow(
			int64(3), "alice", "c2FsdA==", "current", "master_key",
			"Y3Q=:bm9uY2U=", nil, nil, int64(2), "verifier", now, now,
		))

	account, err := repo.FindAccountByLogin(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), account.AccountID)
	assert.Equal(t, models.KeyModeMasterKeyWrapped, account.KeyMode)
	assert.Equal(t, "Y3Q=:bm9uY2U=", account.WrappedMasterKey)
	assert.False(t, account.HasRecovery())
	assert.Empty(t, account.RecoverySalt)
	assert.Equal(t, int64(2), account.SessionGeneration)
}

func TestFindAccountByLogin_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(q("SELECT account_id, login")).
		WithArgs("nobody").
		WillReturnRows(accountRows())

	_, err := repo.FindAccountByLogin(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestVerifyCredential(t *testing.T) {
	const authHash = "QUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUE="
	stored := utils.HashString(authHash, testHashKey)

	tests := []struct {
		name     string
		authHash string
		rows     *sqlmock.Rows
		wantErr  error
	}{
		{name: "match", authHash: authHash, rows: sqlmock.NewRows([]string{"password_verifier"}).AddRow(stored)},
		{name: "mismatch", authHash: "QkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkI=", rows: sqlmock.NewRows([]string{"password_verifier"}).AddRow(stored), wantErr: ErrCredentialMismatch},
		{name: "no account", authHash: authHash, rows: sqlmock.NewRows([]string{"password_verifier"}), wantErr: ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)
			mock.ExpectQuery(q("SELECT password_verifier FROM accounts")).
				WithArgs(int64(5)).
				WillReturnRows(tt.rows)

			err := repo.VerifyCredential(context.Background(), 5, tt.authHash)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdatePasswordWrap(t *testing.T) {
	update := models.PasswordWrapUpdate{
		AccountID:          5,
		ExpectedGeneration: 4,
		KDFVersion:         "current",
		WrappedMasterKey:   "bmV3:bm9uY2U=",
		NewAuthHash:        "QkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkJCQkI=",
	}

	t.Run("bumps generation", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)
		mock.ExpectExec(q("UPDATE accounts SET wrapped_master_key = $1")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		generation, err := repo.UpdatePasswordWrap(context.Background(), update)
		require.NoError(t, err)
		assert.Equal(t, int64(5), generation)
	})

	t.Run("stale generation", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)
		mock.ExpectExec(q("UPDATE accounts")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdatePasswordWrap(context.Background(), update)
		assert.ErrorIs(t, err, ErrGenerationConflict)
	})

	t.Run("connection lost", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)
		mock.ExpectExec(q("UPDATE accounts")).
			WillReturnError(pgError(pgerrcode.ConnectionFailure))

		_, err := repo.UpdatePasswordWrap(context.Background(), update)
		assert.ErrorIs(t, err, ErrRetryable)
	})
}

func TestSetRecoveryWrap(t *testing.T) {
	update := models.RecoveryWrapUpdate{AccountID: 5, WrappedMasterKeyRecovery: "w", RecoverySalt: "s"}

	t.Run("installed", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)
		mock.ExpectExec(q("wrapped_master_key_recovery IS NULL")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetRecoveryWrap(context.Background(), update))
	})

	t.Run("already configured", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)
		mock.ExpectExec(q("UPDATE accounts")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetRecoveryWrap(context.Background(), update)
		assert.ErrorIs(t, err, ErrRecoveryAlreadyConfigured)
	})
}

func TestRevokeRecoveryWrap(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	mock.ExpectExec(q("UPDATE accounts SET wrapped_master_key_recovery = $1")).
		WithArgs(nil, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("UPDATE accounts")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.RevokeRecoveryWrap(context.Background(), 5))
	assert.ErrorIs(t, repo.RevokeRecoveryWrap(context.Background(), 6), ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassify_NonPgErrorIsNotRetryable(t *testing.T) {
	db, _ := newTestDB(t)

	err := db.classify(errors.New("boom"))
	assert.NotErrorIs(t, err, ErrRetryable)
	assert.Nil(t, db.classify(nil))
}
