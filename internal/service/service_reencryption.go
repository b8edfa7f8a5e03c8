// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-journal-vault/internal/config"
	"github.com/MKhiriev/go-journal-vault/internal/crypto"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/session"
	"github.com/MKhiriev/go-journal-vault/internal/store"
	"github.com/MKhiriev/go-journal-vault/models"
)

// Stage is one state of a key change.
type Stage string

// Rewrap-only rotation runs Verifying, Deriving, Wrapping, Persisting, Done.
// Bulk re-encryption runs Verifying, Fetching, Decrypting, Reencrypting,
// Wrapping, Persisting, Done.
const (
	StageVerifying    Stage = "verifying"
	StageDeriving     Stage = "deriving"
	StageWrapping     Stage = "wrapping"
	StageFetching     Stage = "fetching"
	StageDecrypting   Stage = "decrypting"
	StageReencrypting Stage = "reencrypting"
	StagePersisting   Stage = "persisting"
	StageDone         Stage = "done"
)

// ProgressFunc observes stage transitions.
type ProgressFunc func(stage Stage)

// ReencryptionOption configures the re-encryption service.
type ReencryptionOption func(*reencryptionService)

// WithProgress registers f to be called on every stage transition.
func WithProgress(f ProgressFunc) ReencryptionOption {
	return func(s *reencryptionService) {
		s.progress = f
	}
}

type reencryptionService struct {
	accounts     store.AccountStorage
	records      store.RecordStorage
	reencryption store.ReencryptionStorage
	keys         crypto.KeyChain
	cache        session.KeyCache
	cfg          config.Reencryption
	progress     ProgressFunc
	logger       *logger.Logger
}

func NewReencryptionService(
	storages *store.Storages,
	keys crypto.KeyChain,
	cache session.KeyCache,
	cfg config.Reencryption,
	logger *logger.Logger,
	opts ...ReencryptionOption,
) ReencryptionService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.MaxCommitAttempts <= 0 {
		cfg.MaxCommitAttempts = 1
	}
	if cfg.CommitBackoff <= 0 {
		cfg.CommitBackoff = time.Millisecond
	}

	s := &reencryptionService{
		accounts:     storages.AccountStorage,
		records:      storages.RecordStorage,
		reencryption: storages.ReencryptionStorage,
		keys:         keys,
		cache:        cache,
		cfg:          cfg,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reencryptionService) ChangePassword(ctx context.Context, login, current, next string) error {
	if next == "" {
		return ErrInvalidDataProvided
	}

	account, err := s.accounts.FindAccountByLogin(ctx, login)
	if err != nil {
		return mapStorageError(err)
	}

	switch account.KeyMode {
	case models.KeyModeMasterKeyWrapped:
		return s.rewrap(ctx, account, current, next)
	case models.KeyModeLegacy:
		// a legacy password change is the migration itself
		return s.bulk(ctx, account, current, next)
	default:
		return fmt.Errorf("%w: key mode %q", ErrInvalidDataProvided, account.KeyMode)
	}
}

func (s *reencryptionService) MigrateToMasterKey(ctx context.Context, login, password string) error {
	account, err := s.accounts.FindAccountByLogin(ctx, login)
	if err != nil {
		return mapStorageError(err)
	}

	if account.KeyMode != models.KeyModeLegacy {
		return ErrAlreadyMigrated
	}

	return s.bulk(ctx, account, password, "")
}

// rewrap wraps the unchanged master key under a key derived from next.
// No record is read or written.
func (s *reencryptionService) rewrap(ctx context.Context, account models.Account, current, next string) error {
	log := s.stageLogger(ctx, "rewrap", account)

	s.enter(log, StageVerifying)
	masterKey, authHash, err := unlockContentKey(ctx, s.accounts, s.keys, account, current)
	if err != nil {
		return err
	}
	defer masterKey.Wipe()
	if err = s.accounts.VerifyCredential(ctx, account.AccountID, authHash); err != nil {
		return mapStorageError(err)
	}

	s.enter(log, StageDeriving)
	passwordKey, err := s.keys.Derive(next, account.Salt, crypto.KDFCurrent)
	if err != nil {
		return err
	}
	defer passwordKey.Wipe()

	s.enter(log, StageWrapping)
	wrapped, err := s.keys.Wrap(masterKey, passwordKey)
	if err != nil {
		return fmt.Errorf("wrap master key: %w", err)
	}

	s.enter(log, StagePersisting)
	var generation int64
	err = s.persist(ctx, func(ctx context.Context) error {
		var err error
		generation, err = s.accounts.UpdatePasswordWrap(ctx, models.PasswordWrapUpdate{
			AccountID:          account.AccountID,
			ExpectedGeneration: account.SessionGeneration,
			KDFVersion:         crypto.KDFCurrent.String(),
			WrappedMasterKey:   wrapped.String(),
			NewAuthHash:        s.keys.AuthHash(passwordKey, account.Salt),
		})
		return err
	})
	if err != nil {
		log.Err(err).Msg("rewrap not persisted")
		return mapStorageError(err)
	}

	s.refreshSession(account, masterKey, generation)
	s.enter(log, StageDone)
	return nil
}

// bulk re-encrypts every record of a legacy account under a fresh master
// key and commits everything at once. newPassword may be empty to keep the
// current one. The auth hash is always replaced: the KDF version changes.
func (s *reencryptionService) bulk(ctx context.Context, account models.Account, password, newPassword string) error {
	log := s.stageLogger(ctx, "bulk", account)

	s.enter(log, StageVerifying)
	oldKey, _, err := unlockContentKey(ctx, s.accounts, s.keys, account, password)
	if err != nil {
		return err
	}
	defer oldKey.Wipe()

	s.enter(log, StageFetching)
	records, err := s.fetchAll(ctx, account.AccountID)
	if err != nil {
		return mapStorageError(err)
	}

	masterKey, err := s.keys.GenerateMasterKey()
	if err != nil {
		return fmt.Errorf("generate master key: %w", err)
	}
	defer masterKey.Wipe()

	reencrypted, err := s.reencryptAll(ctx, log, records, oldKey, masterKey)
	if err != nil {
		log.Err(err).Msg("bulk re-encryption aborted")
		return err
	}

	wrapPassword := password
	if newPassword != "" {
		wrapPassword = newPassword
	}

	s.enter(log, StageWrapping)
	passwordKey, err := s.keys.Derive(wrapPassword, account.Salt, crypto.KDFCurrent)
	if err != nil {
		return err
	}
	defer passwordKey.Wipe()

	wrapped, err := s.keys.Wrap(masterKey, passwordKey)
	if err != nil {
		return fmt.Errorf("wrap master key: %w", err)
	}

	s.enter(log, StagePersisting)
	commit := models.ReencryptionCommit{
		AccountID:          account.AccountID,
		ExpectedGeneration: account.SessionGeneration,
		KDFVersion:         crypto.KDFCurrent.String(),
		KeyMode:            models.KeyModeMasterKeyWrapped,
		WrappedMasterKey:   wrapped.String(),
		NewAuthHash:        s.keys.AuthHash(passwordKey, account.Salt),
		Records:            reencrypted,
	}
	if err = s.persist(ctx, func(ctx context.Context) error {
		return s.reencryption.CommitReencryption(ctx, commit)
	}); err != nil {
		log.Err(err).Msg("bulk re-encryption not committed, account unchanged")
		return mapStorageError(err)
	}

	s.refreshSession(account, masterKey, account.SessionGeneration+1)
	s.enter(log, StageDone)
	return nil
}

func (s *reencryptionService) fetchAll(ctx context.Context, accountID int64) ([]models.EncryptedRecord, error) {
	var (
		all   []models.EncryptedRecord
		after string
	)

	for {
		page, err := s.records.ListRecords(ctx, models.RecordQuery{
			AccountID: accountID,
			After:     after,
			Limit:     uint64(s.cfg.BatchSize),
		})
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		if len(page) < s.cfg.BatchSize {
			return all, nil
		}
		after = page[len(page)-1].RecordID
	}
}

// reencryptAll works batch by batch so that at most one batch of plaintext
// is in memory. Each batch runs on a bounded errgroup.
func (s *reencryptionService) reencryptAll(ctx context.Context, log *logger.Logger, records []models.EncryptedRecord, oldKey, newKey crypto.Key) ([]models.EncryptedRecord, error) {
	out := make([]models.EncryptedRecord, len(records))

	for start := 0; start < len(records); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(records))
		batch := records[start:end]

		if start == 0 {
			s.enter(log, StageDecrypting)
		}
		plaintexts := make([][]byte, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.Concurrency)
		for i, record := range batch {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				plaintext, err := s.keys.Decrypt(crypto.EncryptedField{Ciphertext: record.Ciphertext, Nonce: record.Nonce}, oldKey)
				if err != nil {
					return fmt.Errorf("decrypt record %s: %w", record.RecordID, err)
				}
				plaintexts[i] = plaintext
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			wipeAll(plaintexts)
			return nil, err
		}

		if start == 0 {
			s.enter(log, StageReencrypting)
		}
		g, gctx = errgroup.WithContext(ctx)
		g.SetLimit(s.cfg.Concurrency)
		for i, record := range batch {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				updated, err := s.reencryptRecord(record, plaintexts[i], newKey)
				if err != nil {
					return fmt.Errorf("re-encrypt record %s: %w", record.RecordID, err)
				}
				out[start+i] = updated
				return nil
			})
		}
		err := g.Wait()
		wipeAll(plaintexts)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (s *reencryptionService) reencryptRecord(record models.EncryptedRecord, plaintext []byte, key crypto.Key) (models.EncryptedRecord, error) {
	field, err := s.keys.Encrypt(plaintext, key)
	if err != nil {
		return models.EncryptedRecord{}, err
	}

	tokens, err := tokensFor(s.keys, record.IndexMode, string(plaintext), key)
	if err != nil {
		return models.EncryptedRecord{}, err
	}

	record.Ciphertext = field.Ciphertext
	record.Nonce = field.Nonce
	record.Tokens = tokens
	return record, nil
}

// persist runs write with exponential backoff, retrying only errors storage
// marked as retryable. The write is always repeated as a whole.
func (s *reencryptionService) persist(ctx context.Context, write func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(uint64(s.cfg.MaxCommitAttempts-1), retry.NewExponential(s.cfg.CommitBackoff))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := write(ctx)
		if err != nil && errors.Is(err, store.ErrRetryable) {
			logger.FromContext(ctx).Warn().Err(err).Int("attempt", attempt).Msg("retryable persistence failure")
			return retry.RetryableError(err)
		}
		return err
	})
}

// refreshSession replaces the cached key: the old handle carries a stale
// generation.
func (s *reencryptionService) refreshSession(account models.Account, key crypto.Key, generation int64) {
	s.cache.Clear()
	if err := s.cache.Store(session.SessionKeyHandle{
		AccountID:  account.AccountID,
		Login:      account.Login,
		Key:        key,
		Generation: generation,
	}); err != nil {
		s.logger.Err(err).Msg("failed to cache rotated session key")
	}
}

func (s *reencryptionService) stageLogger(ctx context.Context, protocol string, account models.Account) *logger.Logger {
	return &logger.Logger{Logger: logger.FromContext(ctx).With().
		Str("protocol", protocol).
		Int64("account_id", account.AccountID).
		Logger()}
}

func (s *reencryptionService) enter(log *logger.Logger, stage Stage) {
	log.Info().Str("stage", string(stage)).Msg("key change stage")
	if s.progress != nil {
		s.progress(stage)
	}
}

func wipeAll(buffers [][]byte) {
	for _, b := range buffers {
		clear(b)
	}
}
