// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the storage server's HTTP transport: startup, signal
// handling and graceful shutdown.
package server
