// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jeranaias/soulfull-tui/internal/util"
)

// DefaultDisplayName is used when the profile carries no username.
const DefaultDisplayName = "there"

// ErrCorrupt is returned when persisted session data cannot be decoded.
var ErrCorrupt = errors.New("session data is corrupt")

// =============================================================================
// SESSION STORE INTERFACE
// =============================================================================

// SessionStore holds the current credentials. Read on an empty store returns
// zero Credentials and a nil error.
type SessionStore interface {
	Read() (Credentials, error)
	Write(token string, profile json.RawMessage) error
	Clear() error
}

// =============================================================================
// CREDENTIALS
// =============================================================================

// Credentials are the persisted token and the raw user profile JSON.
type Credentials struct {
	Token   string          `json:"token"`
	Profile json.RawMessage `json:"user,omitempty"`
}

// HasToken reports whether a bearer token is present.
func (c Credentials) HasToken() bool {
	return c.Token != ""
}

// DisplayName returns the profile's username, or "there".
func (c Credentials) DisplayName() string {
	return DisplayName(c.Profile)
}

type profileDoc struct {
	UserMetadata struct {
		Username string `json:"username"`
	} `json:"user_metadata"`
}

// DisplayName extracts user_metadata.username from a profile document. A
// missing field or malformed document yields DefaultDisplayName.
func DisplayName(profile json.RawMessage) string {
	if len(profile) == 0 {
		return DefaultDisplayName
	}
	var doc profileDoc
	if err := json.Unmarshal(profile, &doc); err != nil {
		return DefaultDisplayName
	}
	name := strings.TrimSpace(util.NormalizeText(doc.UserMetadata.Username))
	if name == "" {
		return DefaultDisplayName
	}
	return name
}

// cloneRaw copies profile bytes so callers cannot alias store internals.
func cloneRaw(b json.RawMessage) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}

// validProfile rejects profile bytes that would corrupt the stored document.
func validProfile(profile json.RawMessage) error {
	if len(profile) == 0 || json.Valid(profile) {
		return nil
	}
	return errors.New("profile is not valid JSON")
}
