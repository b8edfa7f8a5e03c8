// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks the server configuration before startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.PasswordHashKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Remote() {
		if cfg.Adapter.RequestTimeout <= 0 {
			return ErrInvalidAdapterConfigs
		}
	} else {
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
		if cfg.App.PasswordHashKey == "" {
			return ErrInvalidAppConfigs
		}
	}

	if cfg.Session.IdleTimeout <= 0 {
		return ErrInvalidSessionConfigs
	}

	r := cfg.Reencryption
	if r.BatchSize <= 0 || r.Concurrency <= 0 || r.MaxCommitAttempts <= 0 || r.CommitBackoff < 0 {
		return ErrInvalidReencryptionConfigs
	}

	return nil
}
