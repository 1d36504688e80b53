// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"

	"github.com/google/uuid"
)

// Turn is the pair of entries created by one send.
type Turn struct {
	TimelineID    string
	User          Message
	PlaceholderID int64
}

// Timeline is the ordered list of messages for one chat view mount.
//
// Entries are only ever appended or patched in place, so insertion order is
// display order. IDs come from a counter owned by the timeline and are never
// reused, which keeps two sends in the same instant distinct.
//
// The UI mutates a timeline from a single goroutine, but commands may take
// snapshots from others, so access is guarded.
type Timeline struct {
	mu       sync.RWMutex
	id       string
	nextID   int64
	messages []Message
}

// NewTimeline creates an empty timeline with a fresh identity.
func NewTimeline() *Timeline {
	return &Timeline{
		id:       uuid.New().String(),
		nextID:   1,
		messages: make([]Message, 0, 16),
	}
}

// ID identifies this timeline. Results addressed to a different ID belong to
// an earlier mount and must be dropped.
func (t *Timeline) ID() string {
	return t.id
}

// NextID allocates the next message ID.
func (t *Timeline) NextID() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allocLocked()
}

func (t *Timeline) allocLocked() int64 {
	id := t.nextID
	t.nextID++
	return id
}

// Append adds messages in the given order. Messages with a zero ID are
// assigned one; a caller-supplied ID advances the counter past it.
func (t *Timeline) Append(msgs ...Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.appendLocked(msgs...)
}

func (t *Timeline) appendLocked(msgs ...Message) {
	for _, m := range msgs {
		if m.ID == 0 {
			m.ID = t.allocLocked()
		} else if m.ID >= t.nextID {
			t.nextID = m.ID + 1
		}
		t.messages = append(t.messages, m)
	}
}

// Update applies patch to the message with the given ID. It reports whether a
// message matched; an unknown ID is not an error.
func (t *Timeline) Update(id int64, patch Patch) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.messages {
		if t.messages[i].ID == id {
			patch.apply(&t.messages[i])
			return true
		}
	}
	return false
}

// BeginTurn appends the user entry and an empty pending bot placeholder as
// one step, so no observer ever sees one without the other.
func (t *Timeline) BeginTurn(text string) Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	user := Message{ID: t.allocLocked(), Text: text, Sender: SenderUser}
	placeholder := Message{ID: t.allocLocked(), Sender: SenderBot, Pending: true}
	t.appendLocked(user, placeholder)

	return Turn{TimelineID: t.id, User: user, PlaceholderID: placeholder.ID}
}

// ResolveTurn settles a placeholder with its final text.
func (t *Timeline) ResolveTurn(placeholderID int64, text string) bool {
	return t.Update(placeholderID, Resolved(text))
}

// Messages returns a copy of all messages in display order.
func (t *Timeline) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Get returns the message with the given ID.
func (t *Timeline) Get(id int64) (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, m := range t.messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// Len returns the number of messages.
func (t *Timeline) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// PendingCount returns how many placeholders are still waiting on a reply.
func (t *Timeline) PendingCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, m := range t.messages {
		if m.Pending {
			n++
		}
	}
	return n
}

// LastBotReply returns the text of the most recent settled bot message.
func (t *Timeline) LastBotReply() (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := len(t.messages) - 1; i >= 0; i-- {
		m := t.messages[i]
		if m.IsBot() && !m.Pending {
			return m.Text, true
		}
	}
	return "", false
}
