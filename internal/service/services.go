// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-journal-vault/internal/config"
	"github.com/MKhiriev/go-journal-vault/internal/crypto"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/session"
	"github.com/MKhiriev/go-journal-vault/internal/store"
)

// Services groups the client-side services. They share one key cache, so
// a key change in one is seen by the others.
type Services struct {
	KeyService          KeyService
	ReencryptionService ReencryptionService
	EntryService        EntryService
}

func NewServices(
	storages *store.Storages,
	keys crypto.KeyChain,
	cache session.KeyCache,
	ids IDGenerator,
	cfg config.Reencryption,
	logger *logger.Logger,
	opts ...ReencryptionOption,
) *Services {
	return &Services{
		KeyService:          NewKeyService(storages.AccountStorage, keys, cache, logger),
		ReencryptionService: NewReencryptionService(storages, keys, cache, cfg, logger, opts...),
		EntryService:        NewEntryService(storages.RecordStorage, keys, cache, ids, logger),
	}
}
