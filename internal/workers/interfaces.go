// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs long-lived background loops of the client and the
// server: idle guards, signal watchers and the like.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	    // release resources
//	}
type Worker interface {
	Run(ctx context.Context)
}
