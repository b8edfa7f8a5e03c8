// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "sync"

// MemoryTabStorage is a [TabStorage] living in process memory. It dies with
// the process, which is the tab for the command-line client.
type MemoryTabStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryTabStorage() *MemoryTabStorage {
	return &MemoryTabStorage{values: make(map[string]string)}
}

func (s *MemoryTabStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryTabStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryTabStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
