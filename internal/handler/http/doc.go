// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http serves the storage collaborator over HTTP.
//
// The server only ever sees what the client already encrypted: salts,
// wrapped keys, ciphertext and search tokens. Handlers decode the request,
// call the matching storage method and translate storage errors into status
// codes. Request tracing, access logging and gzip are handled by middleware
// before a request reaches a handler.
package http
