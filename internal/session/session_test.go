// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/soulfull-tui/internal/storage"
)

// brokenStore fails every operation.
type brokenStore struct{}

var errDisk = errors.New("disk on fire")

func (brokenStore) Read() (storage.Credentials, error)  { return storage.Credentials{}, errDisk }
func (brokenStore) Write(string, json.RawMessage) error { return errDisk }
func (brokenStore) Clear() error                        { return errDisk }

// =============================================================================
// GUARD TESTS
// =============================================================================

func TestGuard_NoToken(t *testing.T) {
	guard := NewGuard(storage.NewMemoryStore(0), nil)

	res := guard.Check()
	assert.False(t, res.Allowed)
	assert.Empty(t, res.DisplayName)
}

func TestGuard_WithToken(t *testing.T) {
	store := storage.NewMemoryStore(0)
	require.NoError(t, store.Write("tok", json.RawMessage(`{"user_metadata":{"username":"Sam"}}`)))

	res := NewGuard(store, nil).Check()
	assert.True(t, res.Allowed)
	assert.Equal(t, "Sam", res.DisplayName)
}

func TestGuard_TokenWithoutProfile(t *testing.T) {
	store := storage.NewMemoryStore(0)
	require.NoError(t, store.Write("tok", nil))

	res := NewGuard(store, nil).Check()
	assert.True(t, res.Allowed)
	assert.Equal(t, "there", res.DisplayName)
}

func TestGuard_UnreadableStore(t *testing.T) {
	res := NewGuard(brokenStore{}, nil).Check()
	assert.False(t, res.Allowed)
}

func TestGuard_Invalidate(t *testing.T) {
	store := storage.NewMemoryStore(0)
	require.NoError(t, store.Write("tok", nil))
	guard := NewGuard(store, nil)

	require.NoError(t, guard.Invalidate())
	assert.False(t, guard.Check().Allowed)

	assert.Error(t, NewGuard(brokenStore{}, nil).Invalidate())
}

// =============================================================================
// OPEN STORE TESTS
// =============================================================================

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend string
		path    string
		wantErr bool
	}{
		{BackendFile, filepath.Join(dir, "session.json"), false},
		{BackendSQLite, filepath.Join(dir, "session.db"), false},
		{BackendMemory, "", false},
		{"redis", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			store, closer, err := OpenStore(tt.backend, tt.path, 0)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer closer.Close()

			require.NoError(t, store.Write("tok", nil))
			creds, err := store.Read()
			require.NoError(t, err)
			assert.Equal(t, "tok", creds.Token)
		})
	}
}

func TestNormalizeBackend(t *testing.T) {
	tests := map[string]string{
		"":        BackendFile,
		"  ":      BackendFile,
		"file":    BackendFile,
		"SQLite":  BackendSQLite,
		" memory": BackendMemory,
		"redis":   "redis",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeBackend(in), "input %q", in)
	}
}

func TestOpenStore_EmptyBackendIsFile(t *testing.T) {
	store, closer, err := OpenStore("", filepath.Join(t.TempDir(), "session.json"), 0)
	require.NoError(t, err)
	defer closer.Close()
	assert.IsType(t, &storage.FileStore{}, store)
}

// =============================================================================
// TOKEN TESTS
// =============================================================================

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})

	got, err := Expiry(tok)
	require.NoError(t, err)
	assert.True(t, got.Equal(exp), "Expiry() = %v, want %v", got, exp)
}

func TestExpiry_Opaque(t *testing.T) {
	for _, tok := range []string{"", "opaque-token", "a.b.c"} {
		if _, err := Expiry(tok); !errors.Is(err, ErrNoExpiry) {
			t.Errorf("Expiry(%q) error = %v, want ErrNoExpiry", tok, err)
		}
	}

	noExp := signedToken(t, jwt.RegisteredClaims{Subject: "u1"})
	_, err := Expiry(noExp)
	assert.ErrorIs(t, err, ErrNoExpiry)
}

func TestRemaining(t *testing.T) {
	now := time.Now()
	tok := signedToken(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))})

	d, ok := Remaining(tok, now)
	require.True(t, ok)
	assert.Less(t, d, time.Duration(0))

	_, ok = Remaining("opaque", now)
	assert.False(t, ok)
}

// =============================================================================
// WATCHER TESTS
// =============================================================================

func TestWatcher_ReportsRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := storage.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Write("tok", nil))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	defer w.Close()

	got := make(chan any, 1)
	go func() { got <- w.WaitCmd()() }()

	// Rewriting must not look like a logout.
	require.NoError(t, store.Write("tok-2", nil))
	require.NoError(t, store.Clear())

	select {
	case msg := <-got:
		assert.IsType(t, ClearedMsg{}, msg)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for ClearedMsg")
	}
}

func TestWatcher_CloseUnblocksWait(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)

	got := make(chan any, 1)
	go func() { got <- w.WaitCmd()() }()

	require.NoError(t, w.Close())

	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(3 * time.Second):
		t.Fatal("WaitCmd did not return after Close")
	}
}
