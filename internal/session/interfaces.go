// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "time"

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// KeyCache holds at most one unlocked key for the current tab.
type KeyCache interface {
	// Store replaces the cached handle.
	Store(handle SessionKeyHandle) error
	// Restore returns the cached handle or ErrSessionExpired.
	Restore() (SessionKeyHandle, error)
	// Clear drops the cached handle. Safe to call any number of times.
	Clear()
}

// TabStorage is a string store whose lifetime is bound to one tab or
// process.
type TabStorage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// Clock abstracts time for the idle guard.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the part of *time.Timer the idle guard uses.
type Timer interface {
	Stop() bool
}
