// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-journal-vault/internal/config"
	"github.com/MKhiriev/go-journal-vault/internal/logger"
)

// Supported values of config.DB.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Storages groups every storage the services need. The SQL repositories and
// the HTTP adapter both fill it.
type Storages struct {
	AccountStorage      AccountStorage
	RecordStorage       RecordStorage
	ReencryptionStorage ReencryptionStorage
}

// NewStorages connects to the configured database, migrates it and builds
// the SQL repositories.
func NewStorages(ctx context.Context, cfg config.Storage, passwordHashKey string, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := connect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		AccountStorage:      NewAccountRepository(db, passwordHashKey, logger),
		RecordStorage:       NewRecordRepository(db, logger),
		ReencryptionStorage: NewReencryptionRepository(db, passwordHashKey, logger),
	}, nil
}

func connect(ctx context.Context, cfg config.DB, logger *logger.Logger) (*DB, error) {
	switch driverOf(cfg) {
	case DriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		return db, nil
	case DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// driverOf returns the configured driver, inferring it from the DSN when
// none is set.
func driverOf(cfg config.DB) string {
	if cfg.Driver != "" {
		return cfg.Driver
	}
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}
