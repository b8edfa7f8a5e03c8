// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is the journal vault command-line client.
//
// One-shot commands prompt for the password, unlock, do their work and lock
// again before the process exits. The shell command keeps the key cached
// between commands and clears it after the configured idle timeout.
package client
