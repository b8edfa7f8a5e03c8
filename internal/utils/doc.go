// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared by the server and the client:
// request context keys, keyed hashing of credentials, JSON responses, the
// outbound HTTP client and record id generation.
package utils
