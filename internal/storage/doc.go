// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists the signed-in session: the bearer token and the
// user profile returned at login.
//
// Token and profile are written and cleared together. Three backends
// implement SessionStore:
//
//   - FileStore: a single JSON file (default ~/.soulfull/session.json)
//   - SQLiteStore: a key/value table in a local SQLite database
//   - MemoryStore: process-local, optionally expiring, used by tests and --ephemeral
//
// # Usage
//
//	store, err := storage.NewFileStore(path)
//	if err != nil {
//	    return err
//	}
//	if err := store.Write(token, userJSON); err != nil {
//	    return err
//	}
//	creds, _ := store.Read()
//	fmt.Println(creds.DisplayName())
package storage
