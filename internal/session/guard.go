// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"go.uber.org/zap"

	"github.com/jeranaias/soulfull-tui/internal/storage"
)

// GuardResult is the outcome of a session check.
type GuardResult struct {
	Allowed     bool
	DisplayName string
}

// Guard decides whether a view may be entered.
type Guard struct {
	store storage.SessionStore
	log   *zap.Logger
}

// NewGuard creates a guard over store. A nil logger is replaced with a no-op.
func NewGuard(store storage.SessionStore, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guard{store: store, log: log}
}

// Check reads the store once. Presence of a token is sufficient; an
// unreadable store counts as signed out.
func (g *Guard) Check() GuardResult {
	creds, err := g.store.Read()
	if err != nil {
		g.log.Warn("session store unreadable, treating as signed out", zap.Error(err))
		return GuardResult{}
	}
	if !creds.HasToken() {
		return GuardResult{}
	}
	return GuardResult{Allowed: true, DisplayName: creds.DisplayName()}
}

// Invalidate clears the stored session. It is used for logout and after the
// server rejects the token.
func (g *Guard) Invalidate() error {
	if err := g.store.Clear(); err != nil {
		g.log.Error("failed to clear session", zap.Error(err))
		return err
	}
	g.log.Info("session cleared")
	return nil
}
