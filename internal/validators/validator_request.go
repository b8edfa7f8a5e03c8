// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-journal-vault/internal/crypto"
	"github.com/MKhiriev/go-journal-vault/models"
)

// Field names accepted by [RequestValidator.Validate] to restrict validation
// to a subset of a payload.
const (
	FieldLogin              = "login"
	FieldAuthHash           = "auth_hash"
	FieldSalt               = "salt"
	FieldKDFVersion         = "kdf_version"
	FieldKeyMode            = "key_mode"
	FieldWrappedMasterKey   = "wrapped_master_key"
	FieldExpectedGeneration = "expected_generation"
	FieldNewAuthHash        = "new_auth_hash"
	FieldRecoveryWrap       = "wrapped_master_key_recovery"
	FieldRecoverySalt       = "recovery_salt"

	FieldRecordID   = "record_id"
	FieldKind       = "kind"
	FieldIndexMode  = "index_mode"
	FieldCiphertext = "ciphertext"
	FieldNonce      = "nonce"
	FieldTokens     = "tokens"
	FieldRecords    = "records"
)

// maxRecordIDLength bounds client-chosen record ids.
const maxRecordIDLength = 128

var allowedKinds = []string{
	models.KindEntry,
	models.KindTopic,
	models.KindMetadata,
}

// RequestValidator validates the payloads of the storage API: account
// creation, wrap updates, record saves and re-encryption commits.
//
// Both value and pointer forms of every model are accepted.
type RequestValidator struct{}

// NewRequestValidator returns a RequestValidator as a [Validator].
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the dynamic type of obj. When fields is empty the
// full default field set of that type is checked.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.NewAccount:
		return v.validateNewAccount(ctx, value, fields...)
	case *models.NewAccount:
		return v.validateNewAccount(ctx, *value, fields...)

	case models.PasswordWrapUpdate:
		return v.validatePasswordWrap(ctx, value, fields...)
	case *models.PasswordWrapUpdate:
		return v.validatePasswordWrap(ctx, *value, fields...)

	case models.RecoveryWrapUpdate:
		return v.validateRecoveryWrap(ctx, value, fields...)
	case *models.RecoveryWrapUpdate:
		return v.validateRecoveryWrap(ctx, *value, fields...)

	case models.EncryptedRecord:
		return v.validateRecord(ctx, value, fields...)
	case *models.EncryptedRecord:
		return v.validateRecord(ctx, *value, fields...)

	case models.SaveRecordsRequest:
		return v.validateSaveRecords(ctx, value, fields...)
	case *models.SaveRecordsRequest:
		return v.validateSaveRecords(ctx, *value, fields...)

	case models.ReencryptionCommit:
		return v.validateCommit(ctx, value, fields...)
	case *models.ReencryptionCommit:
		return v.validateCommit(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateNewAccount(_ context.Context, account models.NewAccount, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLogin, FieldAuthHash, FieldSalt, FieldKDFVersion, FieldKeyMode, FieldWrappedMasterKey}
	}

	for _, f := range fields {
		switch f {
		case FieldLogin:
			if strings.TrimSpace(account.Login) == "" {
				return ErrEmptyLogin
			}
		case FieldAuthHash:
			if !isAuthHash(account.AuthHash) {
				return ErrInvalidAuthHash
			}
		case FieldSalt:
			if !isSalt(account.Salt) {
				return ErrInvalidSalt
			}
		case FieldKDFVersion:
			if _, err := crypto.ParseKDFVersion(account.KDFVersion); err != nil {
				return ErrInvalidKDFVersion
			}
		case FieldKeyMode:
			if !account.KeyMode.Valid() {
				return ErrInvalidKeyMode
			}
		case FieldWrappedMasterKey:
			// A legacy account has no master key to wrap.
			if account.KeyMode == models.KeyModeLegacy {
				if account.WrappedMasterKey != "" {
					return ErrUnexpectedWrappedKey
				}
				continue
			}
			if !isWrappedKey(account.WrappedMasterKey) {
				return ErrInvalidWrappedKey
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validatePasswordWrap(_ context.Context, update models.PasswordWrapUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldExpectedGeneration, FieldKDFVersion, FieldWrappedMasterKey, FieldNewAuthHash}
	}

	for _, f := range fields {
		switch f {
		case FieldExpectedGeneration:
			if update.ExpectedGeneration < 0 {
				return ErrInvalidGeneration
			}
		case FieldKDFVersion:
			if _, err := crypto.ParseKDFVersion(update.KDFVersion); err != nil {
				return ErrInvalidKDFVersion
			}
		case FieldWrappedMasterKey:
			if !isWrappedKey(update.WrappedMasterKey) {
				return ErrInvalidWrappedKey
			}
		case FieldNewAuthHash:
			if !isAuthHash(update.NewAuthHash) {
				return ErrInvalidAuthHash
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateRecoveryWrap(_ context.Context, update models.RecoveryWrapUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecoveryWrap, FieldRecoverySalt}
	}

	for _, f := range fields {
		switch f {
		case FieldRecoveryWrap:
			if !isWrappedKey(update.WrappedMasterKeyRecovery) {
				return ErrInvalidWrappedKey
			}
		case FieldRecoverySalt:
			if !isSalt(update.RecoverySalt) {
				return ErrInvalidSalt
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRecord checks one stored record. The token count must agree with
// the index mode: none carries no tokens and exact at most one.
func (v *RequestValidator) validateRecord(_ context.Context, record models.EncryptedRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecordID, FieldKind, FieldIndexMode, FieldCiphertext, FieldNonce, FieldTokens}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordID:
			if record.RecordID == "" || len(record.RecordID) > maxRecordIDLength ||
				strings.ContainsAny(record.RecordID, "/?#") {
				return ErrInvalidRecordID
			}
		case FieldKind:
			if !isKnownKind(record.Kind) {
				return ErrInvalidKind
			}
		case FieldIndexMode:
			if !record.IndexMode.Valid() {
				return ErrInvalidIndexMode
			}
		case FieldCiphertext:
			raw, err := base64.StdEncoding.DecodeString(record.Ciphertext)
			if err != nil || len(raw) == 0 {
				return ErrInvalidCiphertext
			}
		case FieldNonce:
			if !isNonce(record.Nonce) {
				return ErrInvalidNonce
			}
		case FieldTokens:
			for _, token := range record.Tokens {
				if token == "" {
					return ErrInvalidTokens
				}
			}
			switch record.IndexMode {
			case models.IndexNone:
				if len(record.Tokens) != 0 {
					return ErrInvalidTokens
				}
			case models.IndexExact:
				if len(record.Tokens) > 1 {
					return ErrInvalidTokens
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateSaveRecords(ctx context.Context, request models.SaveRecordsRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldExpectedGeneration, FieldRecords}
	}

	for _, f := range fields {
		switch f {
		case FieldExpectedGeneration:
			if request.ExpectedGeneration < 0 {
				return ErrInvalidGeneration
			}
		case FieldRecords:
			if len(request.Records) == 0 {
				return ErrEmptyRecords
			}
			if err := v.validateRecords(ctx, request.Records); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCommit checks a re-encryption commit. A commit always leaves the
// account in master-key mode under the current KDF, so it always carries a
// new auth hash. An account without records commits an empty list.
func (v *RequestValidator) validateCommit(ctx context.Context, commit models.ReencryptionCommit, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldExpectedGeneration, FieldKDFVersion, FieldKeyMode, FieldWrappedMasterKey, FieldNewAuthHash, FieldRecords}
	}

	for _, f := range fields {
		switch f {
		case FieldExpectedGeneration:
			if commit.ExpectedGeneration < 0 {
				return ErrInvalidGeneration
			}
		case FieldKDFVersion:
			if _, err := crypto.ParseKDFVersion(commit.KDFVersion); err != nil {
				return ErrInvalidKDFVersion
			}
		case FieldKeyMode:
			if commit.KeyMode != models.KeyModeMasterKeyWrapped {
				return ErrInvalidKeyMode
			}
		case FieldWrappedMasterKey:
			if !isWrappedKey(commit.WrappedMasterKey) {
				return ErrInvalidWrappedKey
			}
		case FieldNewAuthHash:
			if !isAuthHash(commit.NewAuthHash) {
				return ErrInvalidAuthHash
			}
		case FieldRecords:
			if err := v.validateRecords(ctx, commit.Records); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRecords checks every record and rejects repeated ids. The error
// names the index of the first invalid record.
func (v *RequestValidator) validateRecords(ctx context.Context, records []models.EncryptedRecord) error {
	seen := make(map[string]struct{}, len(records))
	for i, record := range records {
		if err := v.validateRecord(ctx, record); err != nil {
			return fmt.Errorf("validation error at index %d: %w", i, err)
		}
		if _, ok := seen[record.RecordID]; ok {
			return fmt.Errorf("validation error at index %d: %w", i, ErrDuplicateRecordID)
		}
		seen[record.RecordID] = struct{}{}
	}
	return nil
}

func isKnownKind(kind string) bool {
	for _, k := range allowedKinds {
		if kind == k {
			return true
		}
	}
	return false
}

func isSalt(s string) bool {
	raw, err := base64.StdEncoding.DecodeString(s)
	return err == nil && len(raw) == crypto.SaltSize
}

func isNonce(s string) bool {
	raw, err := base64.StdEncoding.DecodeString(s)
	return err == nil && len(raw) == crypto.NonceSize
}

func isAuthHash(s string) bool {
	raw, err := base64.StdEncoding.DecodeString(s)
	return err == nil && len(raw) == crypto.AuthHashSize
}

func isWrappedKey(s string) bool {
	wrapped, err := crypto.ParseWrappedKey(s)
	return err == nil && len(wrapped.Ciphertext) > 0
}
