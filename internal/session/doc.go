// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session keeps the unlocked content key of the current tab.
//
// The key only ever lives in a tab-scoped [TabStorage]; nothing is written to
// disk. [IdleGuard] clears the cache after a period of inactivity or when the
// tab goes away.
package session
