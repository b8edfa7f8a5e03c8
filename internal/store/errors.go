// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by storage methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an account with the same login
	// already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCredentialMismatch is returned by credential verification when the
	// supplied auth hash does not match the stored verifier.
	ErrCredentialMismatch = errors.New("credential mismatch")

	// ErrGenerationConflict is returned when a key-material update or a
	// record save was computed against a session generation that is no
	// longer current, i.e. another password change landed first.
	ErrGenerationConflict = errors.New("session generation conflict")

	// ErrRecoveryAlreadyConfigured is returned when a recovery wrap is
	// installed while one already exists. It must be revoked first.
	ErrRecoveryAlreadyConfigured = errors.New("recovery already configured")

	// ErrRecordNotFound is returned when a record does not exist for the
	// account.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordNotSaved is returned when a record upsert affected no rows.
	ErrRecordNotSaved = errors.New("record was not saved")

	// ErrIncompleteReencryption is returned when a re-encryption commit does
	// not cover every record the account owns.
	ErrIncompleteReencryption = errors.New("re-encryption does not cover every record")

	// ErrRetryable marks transient failures (connection loss, serialization
	// failure, busy database). The whole operation may be attempted again.
	ErrRetryable = errors.New("retryable storage failure")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning fails during multi-row
	// iteration.
	ErrScanningRows = errors.New("failed to scan rows")
)
