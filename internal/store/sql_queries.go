// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-journal-vault/models"
)

const (
	accountsTable     = "accounts"
	recordsTable      = "records"
	recordTokensTable = "record_tokens"
)

var accountColumns = []string{
	"account_id",
	"login",
	"salt",
	"kdf_version",
	"key_mode",
	"wrapped_master_key",
	"wrapped_master_key_recovery",
	"recovery_salt",
	"session_generation",
	"password_verifier",
	"created_at",
	"updated_at",
}

var recordColumns = []string{
	"record_id",
	"account_id",
	"kind",
	"index_mode",
	"ciphertext",
	"nonce",
	"created_at",
	"updated_at",
}

func qualified(table string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = table + "." + c
	}
	return out
}

// accounts

func buildInsertAccountQuery(b sq.StatementBuilderType, account models.NewAccount, verifier string) (string, []any, error) {
	return b.Insert(accountsTable).
		Columns("login", "salt", "kdf_version", "key_mode", "wrapped_master_key", "password_verifier").
		Values(account.Login, account.Salt, account.KDFVersion, string(account.KeyMode), nullable(account.WrappedMasterKey), verifier).
		Suffix("RETURNING account_id, session_generation, created_at, updated_at").
		ToSql()
}

func buildSelectAccountByLoginQuery(b sq.StatementBuilderType, login string) (string, []any, error) {
	return b.Select(accountColumns...).
		From(accountsTable).
		Where(sq.Eq{"login": login}).
		ToSql()
}

func buildSelectVerifierQuery(b sq.StatementBuilderType, accountID int64) (string, []any, error) {
	return b.Select("password_verifier").
		From(accountsTable).
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
}

func buildUpdatePasswordWrapQuery(b sq.StatementBuilderType, update models.PasswordWrapUpdate, verifier string) (string, []any, error) {
	return b.Update(accountsTable).
		Set("wrapped_master_key", update.WrappedMasterKey).
		Set("kdf_version", update.KDFVersion).
		Set("password_verifier", verifier).
		Set("session_generation", sq.Expr("session_generation + 1")).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{
			"account_id":         update.AccountID,
			"session_generation": update.ExpectedGeneration,
			"key_mode":           string(models.KeyModeMasterKeyWrapped),
		}).
		ToSql()
}

func buildSetRecoveryWrapQuery(b sq.StatementBuilderType, update models.RecoveryWrapUpdate) (string, []any, error) {
	return b.Update(accountsTable).
		Set("wrapped_master_key_recovery", update.WrappedMasterKeyRecovery).
		Set("recovery_salt", sq.Expr("COALESCE(recovery_salt, ?)", update.RecoverySalt)).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{
			"account_id":                  update.AccountID,
			"wrapped_master_key_recovery": nil,
			"key_mode":                    string(models.KeyModeMasterKeyWrapped),
		}).
		ToSql()
}

func buildRevokeRecoveryWrapQuery(b sq.StatementBuilderType, accountID int64) (string, []any, error) {
	return b.Update(accountsTable).
		Set("wrapped_master_key_recovery", nil).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
}

func buildCommitAccountQuery(b sq.StatementBuilderType, commit models.ReencryptionCommit, verifier string) (string, []any, error) {
	query := b.Update(accountsTable).
		Set("key_mode", string(commit.KeyMode)).
		Set("kdf_version", commit.KDFVersion).
		Set("wrapped_master_key", nullable(commit.WrappedMasterKey)).
		Set("session_generation", sq.Expr("session_generation + 1")).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP"))

	if verifier != "" {
		query = query.Set("password_verifier", verifier)
	}

	return query.
		Where(sq.Eq{
			"account_id":         commit.AccountID,
			"session_generation": commit.ExpectedGeneration,
		}).
		ToSql()
}

// buildClaimGenerationQuery touches the account row only while it is still
// at generation. The row lock it takes orders record saves against
// re-encryption commits.
func buildClaimGenerationQuery(b sq.StatementBuilderType, accountID, generation int64) (string, []any, error) {
	return b.Update(accountsTable).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{
			"account_id":         accountID,
			"session_generation": generation,
		}).
		ToSql()
}

// records

func buildUpsertRecordQuery(b sq.StatementBuilderType, accountID int64, record models.EncryptedRecord) (string, []any, error) {
	return b.Insert(recordsTable).
		Columns("record_id", "account_id", "kind", "index_mode", "ciphertext", "nonce").
		Values(record.RecordID, accountID, record.Kind, string(record.IndexMode), record.Ciphertext, record.Nonce).
		Suffix(`ON CONFLICT (account_id, record_id) DO UPDATE SET
			kind = excluded.kind,
			index_mode = excluded.index_mode,
			ciphertext = excluded.ciphertext,
			nonce = excluded.nonce,
			updated_at = CURRENT_TIMESTAMP`).
		ToSql()
}

func buildUpdateRecordCiphertextQuery(b sq.StatementBuilderType, accountID int64, record models.EncryptedRecord) (string, []any, error) {
	return b.Update(recordsTable).
		Set("ciphertext", record.Ciphertext).
		Set("nonce", record.Nonce).
		Set("index_mode", string(record.IndexMode)).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"record_id": record.RecordID, "account_id": accountID}).
		ToSql()
}

func buildSelectRecordQuery(b sq.StatementBuilderType, accountID int64, recordID string) (string, []any, error) {
	return b.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"account_id": accountID, "record_id": recordID}).
		ToSql()
}

func buildListRecordsQuery(b sq.StatementBuilderType, query models.RecordQuery) (string, []any, error) {
	sel := b.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"account_id": query.AccountID})

	if query.Kind != "" {
		sel = sel.Where(sq.Eq{"kind": query.Kind})
	}
	if query.After != "" {
		sel = sel.Where(sq.Gt{"record_id": query.After})
	}

	sel = sel.OrderBy("record_id")
	if query.Limit > 0 {
		sel = sel.Limit(query.Limit)
	}

	return sel.ToSql()
}

func buildCountRecordsQuery(b sq.StatementBuilderType, accountID int64) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(recordsTable).
		Where(sq.Eq{"account_id": accountID}).
		ToSql()
}

func buildFindByTokenQuery(b sq.StatementBuilderType, accountID int64, token string) (string, []any, error) {
	return b.Select(qualified(recordsTable, recordColumns)...).
		From(recordsTable).
		Join(recordTokensTable + " ON " + recordTokensTable + ".account_id = " + recordsTable + ".account_id" +
			" AND " + recordTokensTable + ".record_id = " + recordsTable + ".record_id").
		Where(sq.Eq{
			recordTokensTable + ".account_id": accountID,
			recordTokensTable + ".token":      token,
		}).
		OrderBy(recordsTable + ".record_id").
		ToSql()
}

// tokens

func buildDeleteTokensQuery(b sq.StatementBuilderType, accountID int64, recordID string) (string, []any, error) {
	return b.Delete(recordTokensTable).
		Where(sq.Eq{"account_id": accountID, "record_id": recordID}).
		ToSql()
}

func buildInsertTokensQuery(b sq.StatementBuilderType, accountID int64, recordID string, tokens []string) (string, []any, error) {
	insert := b.Insert(recordTokensTable).Columns("record_id", "account_id", "token")
	for _, token := range tokens {
		insert = insert.Values(recordID, accountID, token)
	}
	return insert.ToSql()
}

func buildSelectTokensQuery(b sq.StatementBuilderType, accountID int64, recordIDs []string) (string, []any, error) {
	return b.Select("record_id", "token").
		From(recordTokensTable).
		Where(sq.Eq{"account_id": accountID, "record_id": recordIDs}).
		OrderBy("record_id", "token").
		ToSql()
}
