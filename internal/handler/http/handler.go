// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-journal-vault/internal/logger"
	"github.com/MKhiriev/go-journal-vault/internal/service"
	"github.com/MKhiriev/go-journal-vault/internal/store"
	"github.com/MKhiriev/go-journal-vault/internal/validators"
)

type Handler struct {
	accounts     store.AccountStorage
	records      store.RecordStorage
	reencryption store.ReencryptionStorage
	appInfo      service.AppInfoService
	validator    validators.Validator

	logger *logger.Logger
}

func NewHandler(storages *store.Storages, appInfo service.AppInfoService, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		accounts:     storages.AccountStorage,
		records:      storages.RecordStorage,
		reencryption: storages.ReencryptionStorage,
		appInfo:      appInfo,
		validator:    validators.NewRequestValidator(),
		logger:       logger,
	}
}
