// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle of the storage server.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts down
	// gracefully.
	RunServer()

	// Serve serves until ctx is done and then shuts down gracefully.
	Serve(ctx context.Context) error

	// Shutdown stops the server and frees associated resources.
	Shutdown()
}
