// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-journal-vault/internal/crypto"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/session"
	"github.com/MKhiriev/go-journal-vault/internal/store"
	"github.com/MKhiriev/go-journal-vault/models"
)

const listPageSize = 100

// IDGenerator produces record identifiers.
type IDGenerator interface {
	Generate() string
}

type entryService struct {
	records store.RecordStorage
	keys    crypto.KeyChain
	cache   session.KeyCache
	ids     IDGenerator
	logger  *logger.Logger
}

func NewEntryService(records store.RecordStorage, keys crypto.KeyChain, cache session.KeyCache, ids IDGenerator, logger *logger.Logger) EntryService {
	return &entryService{records: records, keys: keys, cache: cache, ids: ids, logger: logger}
}

// Put encrypts entry, computes its tokens and saves it. A missing RecordID
// is generated. The save carries the cached generation; if a password
// change or migration landed since, the cached key is cleared and
// ErrSessionExpired is returned.
func (s *entryService) Put(ctx context.Context, entry models.Entry) (models.Entry, error) {
	handle, err := s.cache.Restore()
	if err != nil {
		return models.Entry{}, err
	}

	if entry.Kind == "" {
		return models.Entry{}, ErrInvalidDataProvided
	}
	if entry.IndexMode == "" {
		entry.IndexMode = models.DefaultIndexMode(entry.Kind)
	}
	if !entry.IndexMode.Valid() {
		return models.Entry{}, ErrInvalidDataProvided
	}
	if entry.RecordID == "" {
		entry.RecordID = s.ids.Generate()
	}

	field, err := s.keys.Encrypt([]byte(entry.Text), handle.Key)
	if err != nil {
		return models.Entry{}, fmt.Errorf("encrypt entry: %w", err)
	}

	tokens, err := tokensFor(s.keys, entry.IndexMode, entry.Text, handle.Key)
	if err != nil {
		return models.Entry{}, err
	}

	err = s.records.SaveRecords(ctx, handle.AccountID, handle.Generation, models.EncryptedRecord{
		RecordID:   entry.RecordID,
		AccountID:  handle.AccountID,
		Kind:       entry.Kind,
		IndexMode:  entry.IndexMode,
		Ciphertext: field.Ciphertext,
		Nonce:      field.Nonce,
		Tokens:     tokens,
	})
	if errors.Is(err, store.ErrGenerationConflict) {
		logger.FromContext(ctx).Info().Int64("cached_generation", handle.Generation).Msg("stale session key cleared on save")
		s.cache.Clear()
		return models.Entry{}, ErrSessionExpired
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*entryService.Put").Str("record_id", entry.RecordID).Msg("failed to save entry")
		return models.Entry{}, mapStorageError(err)
	}

	return entry, nil
}

func (s *entryService) Get(ctx context.Context, recordID string) (models.Entry, error) {
	handle, err := s.cache.Restore()
	if err != nil {
		return models.Entry{}, err
	}

	record, err := s.records.GetRecord(ctx, handle.AccountID, recordID)
	if err != nil {
		return models.Entry{}, mapStorageError(err)
	}

	return s.decrypt(record, handle.Key)
}

// List returns every record of kind, or of every kind when kind is empty.
func (s *entryService) List(ctx context.Context, kind string) ([]models.Entry, error) {
	handle, err := s.cache.Restore()
	if err != nil {
		return nil, err
	}

	var (
		entries []models.Entry
		after   string
	)
	for {
		page, err := s.records.ListRecords(ctx, models.RecordQuery{
			AccountID: handle.AccountID,
			Kind:      kind,
			After:     after,
			Limit:     listPageSize,
		})
		if err != nil {
			return nil, mapStorageError(err)
		}

		decrypted, err := s.decryptAll(page, handle.Key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, decrypted...)

		if len(page) < listPageSize {
			return entries, nil
		}
		after = page[len(page)-1].RecordID
	}
}

// Search returns the keyword-indexed records containing keyword.
func (s *entryService) Search(ctx context.Context, keyword string) ([]models.Entry, error) {
	return s.lookup(ctx, keyword, func(r models.EncryptedRecord) bool {
		return r.IndexMode == models.IndexKeywords
	})
}

// FindTopic returns the topics whose normalized name equals name.
func (s *entryService) FindTopic(ctx context.Context, name string) ([]models.Entry, error) {
	return s.lookup(ctx, name, func(r models.EncryptedRecord) bool {
		return r.IndexMode == models.IndexExact && r.Kind == models.KindTopic
	})
}

func (s *entryService) lookup(ctx context.Context, text string, keep func(models.EncryptedRecord) bool) ([]models.Entry, error) {
	handle, err := s.cache.Restore()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidDataProvided
	}

	token, err := s.keys.Tokenize(text, handle.Key)
	if err != nil {
		return nil, err
	}

	records, err := s.records.FindByToken(ctx, handle.AccountID, token)
	if err != nil {
		return nil, mapStorageError(err)
	}

	matched := make([]models.EncryptedRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			matched = append(matched, r)
		}
	}

	return s.decryptAll(matched, handle.Key)
}

func (s *entryService) decryptAll(records []models.EncryptedRecord, key crypto.Key) ([]models.Entry, error) {
	entries := make([]models.Entry, 0, len(records))
	for _, r := range records {
		entry, err := s.decrypt(r, key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *entryService) decrypt(record models.EncryptedRecord, key crypto.Key) (models.Entry, error) {
	plaintext, err := s.keys.Decrypt(crypto.EncryptedField{Ciphertext: record.Ciphertext, Nonce: record.Nonce}, key)
	if err != nil {
		if errors.Is(err, crypto.ErrAuthenticationFailed) {
			return models.Entry{}, fmt.Errorf("record %s: %w", record.RecordID, err)
		}
		return models.Entry{}, err
	}

	return models.Entry{
		RecordID:  record.RecordID,
		Kind:      record.Kind,
		IndexMode: record.IndexMode,
		Text:      string(plaintext),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

// tokensFor computes the search tokens of text for mode.
func tokensFor(keys crypto.KeyChain, mode models.IndexMode, text string, key crypto.Key) ([]string, error) {
	switch mode {
	case models.IndexExact:
		token, err := keys.Tokenize(text, key)
		if err != nil {
			return nil, err
		}
		return []string{token}, nil
	case models.IndexKeywords:
		return keys.TokenizeKeywords(text, key)
	default:
		return nil, nil
	}
}
