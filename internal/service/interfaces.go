// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-journal-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// KeyService owns the account key lifecycle on the client: setup, unlock,
// lock and recovery.
type KeyService interface {
	// Setup creates an account with a fresh master key wrapped under
	// password, optionally with a recovery wrap, and unlocks it.
	Setup(ctx context.Context, login, password string, withRecovery bool) (models.SetupResult, error)

	// Unlock derives the password key, unwraps the content key and caches it.
	Unlock(ctx context.Context, login, password string) error

	// Resume checks that the cached key still belongs to login and to the
	// current account generation. A stale key is cleared.
	Resume(ctx context.Context, login string) error

	// Lock clears the cached key.
	Lock()

	// SetupRecovery installs a recovery wrap for the unlocked account and
	// returns the secret to show to the user.
	SetupRecovery(ctx context.Context, login string) (string, error)

	// RevokeRecovery removes the recovery wrap of the unlocked account.
	RevokeRecovery(ctx context.Context, login string) error

	// Recover unwraps the master key with the recovery secret and wraps it
	// under newPassword. Content is not touched.
	Recover(ctx context.Context, login, secret, newPassword string) error
}

// ReencryptionService changes the key material of an account.
type ReencryptionService interface {
	// ChangePassword rotates the password. Master-key accounts only rewrap;
	// legacy accounts are migrated to a master key under next.
	ChangePassword(ctx context.Context, login, current, next string) error

	// MigrateToMasterKey moves a legacy account to a wrapped master key while
	// keeping its password.
	MigrateToMasterKey(ctx context.Context, login, password string) error
}

// EntryService is the encrypt/tokenize boundary for journal collaborators.
// Every call needs an unlocked session.
type EntryService interface {
	Put(ctx context.Context, entry models.Entry) (models.Entry, error)
	Get(ctx context.Context, recordID string) (models.Entry, error)
	List(ctx context.Context, kind string) ([]models.Entry, error)
	Search(ctx context.Context, keyword string) ([]models.Entry, error)
	FindTopic(ctx context.Context, name string) ([]models.Entry, error)
}

// AppInfoService reports build information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
