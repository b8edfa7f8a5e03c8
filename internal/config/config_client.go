// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	// App carries the verifier key used in local mode.
	App App
	// Adapter points at the storage server. Empty address means local mode.
	Adapter Adapter
	// Storage is the local database used when no server is configured.
	Storage Storage
	// Session holds the key cache settings.
	Session Session
	// Reencryption tunes the bulk re-encryption path.
	Reencryption Reencryption
}

// Remote reports whether the client talks to a storage server.
func (c *ClientConfig) Remote() bool {
	return c.Adapter.HTTPAddress != ""
}

// GetClientConfig builds and validates the client configuration from the
// environment, the optional JSON file at jsonPath and the defaults.
// Command-line flags belong to the client's own command tree and are not
// parsed here.
func GetClientConfig(jsonPath string) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withJSONPath(jsonPath).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App:          cfg.App,
		Adapter:      cfg.Adapter,
		Storage:      cfg.Storage,
		Session:      cfg.Session,
		Reencryption: cfg.Reencryption,
	}

	return clientCfg, clientCfg.validate()
}
