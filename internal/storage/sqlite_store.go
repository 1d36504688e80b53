// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS session (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;
`

const (
	keyToken   = "token"
	keyProfile = "user"
)

// =============================================================================
// SQLITE STORE
// =============================================================================

// SQLiteStore keeps the session as two rows of a key/value table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps writes serialized without busy retries.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		sessionSchema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Read returns the stored credentials.
func (s *SQLiteStore) Read() (Credentials, error) {
	rows, err := s.db.Query("SELECT key, value FROM session WHERE key IN (?, ?)", keyToken, keyProfile)
	if err != nil {
		return Credentials{}, fmt.Errorf("read session: %w", err)
	}
	defer rows.Close()

	var creds Credentials
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Credentials{}, fmt.Errorf("read session: %w", err)
		}
		switch key {
		case keyToken:
			creds.Token = value
		case keyProfile:
			if !json.Valid([]byte(value)) {
				return Credentials{}, ErrCorrupt
			}
			creds.Profile = json.RawMessage(value)
		}
	}
	if err := rows.Err(); err != nil {
		return Credentials{}, fmt.Errorf("read session: %w", err)
	}
	return creds, nil
}

// Write replaces token and profile in one transaction.
func (s *SQLiteStore) Write(token string, profile json.RawMessage) (err error) {
	if err := validProfile(profile); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM session"); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if _, err = tx.Exec("INSERT INTO session (key, value) VALUES (?, ?)", keyToken, token); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if len(profile) > 0 {
		if _, err = tx.Exec("INSERT INTO session (key, value) VALUES (?, ?)", keyProfile, string(profile)); err != nil {
			return fmt.Errorf("write session: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes every session row.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM session"); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return errors.New("store already closed")
	}
	err := s.db.Close()
	s.db = nil
	return err
}
