// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the TUI.
//
// The view is gated by a session check when it is created. Each submitted
// line becomes a turn: the user entry and a pending bot placeholder are
// appended together, a command performs the round trip off the event loop,
// and the result is folded back into the placeholder when the matching
// ReplyMsg arrives. Replies may arrive in any order.
//
// Every change to the timeline is followed by a scroll to the newest entry.
package chat
