// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// defaultConfig fills every field left empty by the other sources.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version: "dev",
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns: 10,
				MaxIdleConns: 5,
			},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			RequestTimeout: 30 * time.Second,
		},
		Session: Session{
			IdleTimeout: 15 * time.Minute,
		},
		Reencryption: Reencryption{
			BatchSize:         100,
			Concurrency:       4,
			MaxCommitAttempts: 3,
			CommitBackoff:     200 * time.Millisecond,
		},
	}
}
