// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps the session in process memory. With a non-zero TTL the
// session expires on its own, which behaves like a server-side logout.
type MemoryStore struct {
	c   *cache.Cache
	ttl time.Duration
}

// NewMemoryStore creates an in-memory store. ttl <= 0 means no expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	exp := cache.NoExpiration
	if ttl > 0 {
		exp = ttl
	}
	return &MemoryStore{
		c:   cache.New(exp, 10*time.Minute),
		ttl: exp,
	}
}

// Read returns the current credentials, or zero Credentials once expired.
func (s *MemoryStore) Read() (Credentials, error) {
	v, found := s.c.Get(keyToken)
	if !found {
		return Credentials{}, nil
	}
	creds, ok := v.(Credentials)
	if !ok {
		return Credentials{}, ErrCorrupt
	}
	creds.Profile = cloneRaw(creds.Profile)
	return creds, nil
}

// Write stores token and profile as one cache entry.
func (s *MemoryStore) Write(token string, profile json.RawMessage) error {
	if err := validProfile(profile); err != nil {
		return err
	}
	s.c.Set(keyToken, Credentials{Token: token, Profile: cloneRaw(profile)}, s.ttl)
	return nil
}

// Clear drops everything.
func (s *MemoryStore) Clear() error {
	s.c.Flush()
	return nil
}
