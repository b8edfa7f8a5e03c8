// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/utils"
	"github.com/MKhiriev/go-journal-vault/models"
)

type reencryptionRepository struct {
	db              *DB
	passwordHashKey string
	logger          *logger.Logger
}

// NewReencryptionRepository constructs a [ReencryptionStorage] backed by db.
func NewReencryptionRepository(db *DB, passwordHashKey string, logger *logger.Logger) ReencryptionStorage {
	logger.Debug().Msg("creating re-encryption repository")
	return &reencryptionRepository{
		db:              db,
		passwordHashKey: passwordHashKey,
		logger:          logger,
	}
}

// CommitReencryption implements [ReencryptionStorage].
//
// Inside one transaction it:
//  1. updates the account key material guarded by the expected generation;
//  2. checks the commit covers every record of the account;
//  3. rewrites ciphertext, nonce and tokens of every record.
//
// Any failure rolls the whole transaction back.
func (r *reencryptionRepository) CommitReencryption(ctx context.Context, commit models.ReencryptionCommit) error {
	log := logger.FromContext(ctx).With().
		Str("func", "*reencryptionRepository.CommitReencryption").
		Int64("account_id", commit.AccountID).
		Int("records", len(commit.Records)).
		Logger()

	var verifier string
	if commit.NewAuthHash != "" {
		verifier = utils.HashString(commit.NewAuthHash, r.passwordHashKey)
	}

	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		query, args, err := buildCommitAccountQuery(r.db.builder(), commit, verifier)
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

		query, args, err = buildCountRecordsQuery(r.db.builder(), commit.AccountID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		var stored int
		if err = tx.QueryRowContext(ctx, query, args...).Scan(&stored); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if stored != len(commit.Records) {
			return fmt.Errorf("%w: stored %d, committed %d", ErrIncompleteReencryption, stored, len(commit.Records))
		}

		for _, record := range commit.Records {
			query, args, err = buildUpdateRecordCiphertextQuery(r.db.builder(), commit.AccountID, record)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}

			res, err = tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			if n, err := res.RowsAffected(); err != nil || n == 0 {
				return fmt.Errorf("%w: %s", ErrRecordNotFound, record.RecordID)
			}

			if err = replaceTokens(ctx, tx, r.db.builder(), commit.AccountID, record.RecordID, record.Tokens); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Msg("re-encryption commit rolled back")
		return r.db.classify(err)
	}

	log.Info().Msg("re-encryption committed")
	return nil
}
