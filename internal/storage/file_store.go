// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/soulfull-tui/internal/util"
)

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore keeps the session in one JSON file with 0600 permissions.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultSessionPath returns ~/.soulfull/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".soulfull", "session.json"), nil
}

// NewFileStore creates a store backed by path. The file itself is created on
// the first Write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultSessionPath()
		if err != nil {
			return nil, fmt.Errorf("resolve session path: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Read loads the credentials. A missing file is an empty session.
func (s *FileStore) Read() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, nil
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("read session: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return creds, nil
}

// Write replaces the stored token and profile.
func (s *FileStore) Write(token string, profile json.RawMessage) error {
	if err := validProfile(profile); err != nil {
		return err
	}
	data, err := json.MarshalIndent(Credentials{Token: token, Profile: cloneRaw(profile)}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return util.AtomicWriteFile(s.path, data, 0600)
}

// Clear deletes the session file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
