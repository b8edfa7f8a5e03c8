// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment. Each section of
// [StructuredConfig] reads its own prefix: APP_, STORAGE_DB_, SERVER_,
// ADAPTER_, SESSION_ and REENCRYPTION_, plus CONFIG for the JSON file path.
// [ClientConfig] is cut from the same result, so the CLI client honours the
// same variables as the storage server.
//
// Unset variables leave their fields zero; defaults are applied later by
// the builder.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error reading config from environment: %w", err)
	}

	return nil
}
