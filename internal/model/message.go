// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "fmt"

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns the label shown above a message.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "SoulFull"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single timeline entry. The JSON form is what the report
// service receives as chatHistory.
type Message struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	Sender Sender `json:"sender"`

	// Pending is true only for a bot placeholder whose reply is in flight.
	Pending bool `json:"isLoading,omitempty"`
}

// IsUser returns true if the user wrote the message.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// IsBot returns true if the message came from the assistant.
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}

// Patch is a partial update applied to a message by ID. Nil fields are left
// unchanged.
type Patch struct {
	Text    *string
	Pending *bool
}

// Resolved returns the patch that settles a placeholder with text.
func Resolved(text string) Patch {
	pending := false
	return Patch{Text: &text, Pending: &pending}
}

func (p Patch) apply(m *Message) {
	if p.Text != nil {
		m.Text = *p.Text
	}
	if p.Pending != nil {
		m.Pending = *p.Pending
	}
}

// Greeting returns the opening bot line for a user.
func Greeting(name string) string {
	return fmt.Sprintf("Hello %s! I'm here to listen. How are you feeling today?", name)
}
