// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/utils"
	"github.com/MKhiriev/go-journal-vault/models"
)

// accountRepository is the SQL implementation of [AccountStorage].
// The credential verifier is an HMAC-SHA256 of the client auth hash under the
// server's password hash key.
type accountRepository struct {
	db              *DB
	passwordHashKey string
	logger          *logger.Logger
}

// NewAccountRepository constructs an [AccountStorage] backed by db.
func NewAccountRepository(db *DB, passwordHashKey string, logger *logger.Logger) AccountStorage {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:              db,
		passwordHashKey: passwordHashKey,
		logger:          logger,
	}
}

// CreateAccount implements [AccountStorage].
func (r *accountRepository) CreateAccount(ctx context.Context, account models.NewAccount) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAccountQuery(r.db.builder(), account, utils.HashString(account.AuthHash, r.passwordHashKey))
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Msg("error building query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created := models.Account{
		Login:            account.Login,
		Salt:             account.Salt,
		KDFVersion:       account.KDFVersion,
		KeyMode:          account.KeyMode,
		WrappedMasterKey: account.WrappedMasterKey,
	}

	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&created.AccountID, &created.SessionGeneration, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.CreateAccount").Str("login", account.Login).Msg("error inserting account")
		if isUniqueViolation(err) {
			return models.Account{}, ErrLoginAlreadyExists
		}
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	return created, nil
}

// FindAccountByLogin implements [AccountStorage].
func (r *accountRepository) FindAccountByLogin(ctx context.Context, login string) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAccountByLoginQuery(r.db.builder(), login)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.FindAccountByLogin").Str("login", login).Msg("error scanning account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	return account, nil
}

// VerifyCredential implements [AccountStorage].
func (r *accountRepository) VerifyCredential(ctx context.Context, accountID int64, authHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectVerifierQuery(r.db.builder(), accountID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stored string
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&stored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.VerifyCredential").Int64("account_id", accountID).Msg("error reading verifier")
		return fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	supplied := utils.HashString(authHash, r.passwordHashKey)
	if !utils.EqualHashes(stored, supplied) {
		return ErrCredentialMismatch
	}
	return nil
}

// UpdatePasswordWrap implements [AccountStorage].
func (r *accountRepository) UpdatePasswordWrap(ctx context.Context, update models.PasswordWrapUpdate) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePasswordWrapQuery(r.db.builder(), update, utils.HashString(update.NewAuthHash, r.passwordHashKey))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdatePasswordWrap").Int64("account_id", update.AccountID).Msg("error updating password wrap")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	if n, err := res.RowsAffected(); err != nil || n == 0 {
		log.Warn().Str("func", "*accountRepository.UpdatePasswordWrap").
			Int64("account_id", update.AccountID).
			Int64("expected_generation", update.ExpectedGeneration).
			Msg("password wrap not updated: stale generation")
		return 0, ErrGenerationConflict
	}

	return update.ExpectedGeneration + 1, nil
}

// SetRecoveryWrap implements [AccountStorage].
func (r *accountRepository) SetRecoveryWrap(ctx context.Context, update models.RecoveryWrapUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetRecoveryWrapQuery(r.db.builder(), update)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.SetRecoveryWrap").Int64("account_id", update.AccountID).Msg("error setting recovery wrap")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return ErrRecoveryAlreadyConfigured
	}
	return nil
}

// RevokeRecoveryWrap implements [AccountStorage].
func (r *accountRepository) RevokeRecoveryWrap(ctx context.Context, accountID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRevokeRecoveryWrapQuery(r.db.builder(), accountID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.RevokeRecoveryWrap").Int64("account_id", accountID).Msg("error revoking recovery wrap")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var (
		account                                models.Account
		keyMode                                string
		wrapped, wrappedRecovery, recoverySalt sql.NullString
	)

	err := row.Scan(
		&account.AccountID,
		&account.Login,
		&account.Salt,
		&account.KDFVersion,
		&keyMode,
		&wrapped,
		&wrappedRecovery,
		&recoverySalt,
		&account.SessionGeneration,
		&account.PasswordVerifier,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	account.KeyMode = models.AccountKeyMode(keyMode)
	account.WrappedMasterKey = wrapped.String
	account.WrappedMasterKeyRecovery = wrappedRecovery.String
	account.RecoverySalt = recoverySalt.String

	return account, nil
}
