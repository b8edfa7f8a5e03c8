// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer messages used by the
// server handlers and the command-line client.
//
// All Msg* constants are human-readable strings written into HTTP response
// bodies or shown to the user. Keeping them in one place keeps the wording
// consistent.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgAccountNotFound is returned when no account matches the login or id.
	MsgAccountNotFound = "account not found"

	// MsgCredentialMismatch is returned by credential verification.
	MsgCredentialMismatch = "credential mismatch"

	// MsgLoginAlreadyExists is returned when an account with the requested
	// login exists already.
	MsgLoginAlreadyExists = "login already exists"

	// MsgRecoveryAlreadyConfigured is returned when a recovery wrap is set
	// twice without a revoke in between.
	MsgRecoveryAlreadyConfigured = "recovery already configured"

	// MsgGenerationConflict is returned when a key-material update was
	// computed against an outdated session generation.
	MsgGenerationConflict = "session generation conflict"

	// MsgIncompleteReencryption is returned when a re-encryption commit does
	// not cover every record of the account.
	MsgIncompleteReencryption = "re-encryption does not cover every record"

	// MsgRecordNotFound is returned when a record does not exist for the
	// account.
	MsgRecordNotFound = "record not found"

	// MsgRecordNotSaved is returned when a save affected no rows.
	MsgRecordNotSaved = "record was not saved"

	// MsgStorageUnavailable is returned for transient storage failures. The
	// request may be repeated.
	MsgStorageUnavailable = "storage temporarily unavailable"

	// MsgNoRecordsProvided is returned when a save request is empty.
	MsgNoRecordsProvided = "no records provided"

	// MsgNoTokenProvided is returned when a token lookup has no token.
	MsgNoTokenProvided = "no token provided"
)

// Messages shown to the user by the client.
const (
	MsgIncorrectSecret    = "incorrect password/recovery key"
	MsgChangesNotSaved    = "could not save changes, your data was not modified"
	MsgSessionExpired     = "session expired, please unlock again"
	MsgLoginTaken         = "this login is already taken"
	MsgRecoveryConfigured = "a recovery key is already configured, revoke it first"
	MsgRecoveryMissing    = "no recovery key is configured for this account"
	MsgAlreadyMigrated    = "this account already uses a master key"
	MsgNotMasterKey       = "migrate the account to a master key first"
	MsgEntryNotFound      = "entry not found"
	MsgInvalidInput       = "invalid input"
	MsgUnexpectedError    = "unexpected error, see the log for details"
)
