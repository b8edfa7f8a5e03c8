// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter lets the client use a remote storage server as its
// storage collaborator.
//
// [NewHTTPStorage] speaks the server's REST API and satisfies the same
// storage interfaces as the SQL repositories, so the services do not know
// whether they run against a local database or a server. HTTP statuses are
// mapped back to the store sentinels by mapHTTPError; 503 and transport
// failures become [store.ErrRetryable].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-journal-vault/internal/store"
)

// RemoteStorage is the storage server as seen by the client.
type RemoteStorage interface {
	store.AccountStorage
	store.RecordStorage
	store.ReencryptionStorage

	// ServerVersion returns the build version reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
