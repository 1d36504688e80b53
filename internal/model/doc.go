// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat timeline and the
// wellness report.
//
// # Key Types
//
//   - Message: one entry in the timeline (user text or bot reply)
//   - Timeline: ordered, append-only list of messages with its own ID counter
//   - Turn: the user entry and bot placeholder created by one send
//   - ReportPayload: report text, metrics and suggestions from the report service
//
// # Usage
//
// A send is two phases. BeginTurn appends the user entry and a pending
// placeholder in one step; ResolveTurn fills in the placeholder later:
//
//	tl := model.NewTimeline()
//	turn := tl.BeginTurn("I had a rough day")
//	// ... round trip ...
//	tl.ResolveTurn(turn.PlaceholderID, "I'm sorry to hear that.")
package model
