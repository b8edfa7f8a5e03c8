// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// errInvalidRequest marks a request that could not be decoded or misses a
// required value.
var errInvalidRequest = errors.New("invalid request")
