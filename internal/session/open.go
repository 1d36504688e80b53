// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jeranaias/soulfull-tui/internal/storage"
)

// Backend names accepted by OpenStore.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// NormalizeBackend returns the canonical backend name. Case and surrounding
// space are ignored and an empty name means BackendFile.
func NormalizeBackend(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BackendFile
	}
	return name
}

// OpenStore builds the configured session store. The returned closer must be
// called on shutdown; it is a no-op for backends without resources.
func OpenStore(backend, path string, ttl time.Duration) (storage.SessionStore, io.Closer, error) {
	switch NormalizeBackend(backend) {
	case BackendFile:
		s, err := storage.NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	case BackendSQLite:
		s, err := storage.NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case BackendMemory:
		return storage.NewMemoryStore(ttl), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
