// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/models"
)

// recordRepository is the SQL implementation of [RecordStorage]. Records
// live in the records table; their tokens in record_tokens, one row per
// token, so that lookups are plain equality on an index.
type recordRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordStorage] backed by db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordStorage {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{db: db, logger: logger}
}

// SaveRecords implements [RecordStorage]. All records are written in one
// transaction that first claims the account row at generation. A
// re-encryption commit bumping the generation therefore either runs before
// the save, which then fails, or after it and sees the saved records.
func (r *recordRepository) SaveRecords(ctx context.Context, accountID, generation int64, records ...models.EncryptedRecord) error {
	log := logger.FromContext(ctx)

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		query, args, err := buildClaimGenerationQuery(r.db.builder(), accountID, generation)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return ErrGenerationConflict
		}

		for _, record := range records {
			query, args, err := buildUpsertRecordQuery(r.db.builder(), accountID, record)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}

			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if n, err := res.RowsAffected(); err != nil || n == 0 {
				return fmt.Errorf("%w: %s", ErrRecordNotSaved, record.RecordID)
			}

			if err = replaceTokens(ctx, tx, r.db.builder(), accountID, record.RecordID, record.Tokens); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.SaveRecords").
			Int64("account_id", accountID).
			Int64("generation", generation).
			Int("records", len(records)).
			Msg("failed to save records")
		return r.db.classify(err)
	}

	return nil
}

// GetRecord implements [RecordStorage].
func (r *recordRepository) GetRecord(ctx context.Context, accountID int64, recordID string) (models.EncryptedRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRecordQuery(r.db.builder(), accountID, recordID)
	if err != nil {
		return models.EncryptedRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedRecord{}, ErrRecordNotFound
		}
		log.Err(err).Str("func", "*recordRepository.GetRecord").Str("record_id", recordID).Msg("failed to scan record")
		return models.EncryptedRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	records := []models.EncryptedRecord{record}
	if err = r.attachTokens(ctx, accountID, records); err != nil {
		return models.EncryptedRecord{}, err
	}

	return records[0], nil
}

// ListRecords implements [RecordStorage].
func (r *recordRepository) ListRecords(ctx context.Context, q models.RecordQuery) ([]models.EncryptedRecord, error) {
	query, args, err := buildListRecordsQuery(r.db.builder(), q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRecords(ctx, "*recordRepository.ListRecords", q.AccountID, query, args)
}

// FindByToken implements [RecordStorage].
func (r *recordRepository) FindByToken(ctx context.Context, accountID int64, token string) ([]models.EncryptedRecord, error) {
	query, args, err := buildFindByTokenQuery(r.db.builder(), accountID, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRecords(ctx, "*recordRepository.FindByToken", accountID, query, args)
}

func (r *recordRepository) queryRecords(ctx context.Context, caller string, accountID int64, query string, args []any) ([]models.EncryptedRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", caller).Msg("failed to query records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	records := make([]models.EncryptedRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			log.Err(err).Str("func", caller).Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, r.db.classify(err))
	}

	if err = r.attachTokens(ctx, accountID, records); err != nil {
		return nil, err
	}

	return records, nil
}

// attachTokens loads the token sets of accountID's records with one query.
// Record ids are only unique per account.
func (r *recordRepository) attachTokens(ctx context.Context, accountID int64, records []models.EncryptedRecord) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, len(records))
	index := make(map[string]int, len(records))
	for i, record := range records {
		ids[i] = record.RecordID
		index[record.RecordID] = i
	}

	query, args, err := buildSelectTokensQuery(r.db.builder(), accountID, ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	for rows.Next() {
		var recordID, token string
		if err = rows.Scan(&recordID, &token); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if i, ok := index[recordID]; ok {
			records[i].Tokens = append(records[i].Tokens, token)
		}
	}

	return rows.Err()
}

// replaceTokens swaps the whole token set of one record.
func replaceTokens(ctx context.Context, tx DBTX, b sq.StatementBuilderType, accountID int64, recordID string, tokens []string) error {
	query, args, err := buildDeleteTokensQuery(b, accountID, recordID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	tokens = uniqueTokens(tokens)
	if len(tokens) == 0 {
		return nil
	}

	query, args, err = buildInsertTokensQuery(b, accountID, recordID, tokens)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func uniqueTokens(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func scanRecord(row rowScanner) (models.EncryptedRecord, error) {
	var (
		record    models.EncryptedRecord
		indexMode string
	)

	err := row.Scan(
		&record.RecordID,
		&record.AccountID,
		&record.Kind,
		&indexMode,
		&record.Ciphertext,
		&record.Nonce,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return models.EncryptedRecord{}, err
	}

	record.IndexMode = models.IndexMode(indexMode)
	return record, nil
}
