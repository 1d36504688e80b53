// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/soulfull-tui/internal/dispatch"
	"github.com/jeranaias/soulfull-tui/internal/model"
)

// ReplyMsg carries the result of one turn's round trip. Turn identifies the
// timeline and placeholder it belongs to.
type ReplyMsg struct {
	Turn    model.Turn
	Outcome dispatch.Outcome
}

// ReportMsg carries the result of a report request. TimelineID names the
// chat mount that asked for it.
type ReportMsg struct {
	TimelineID string
	Result     dispatch.ReportResult
}

// CopiedMsg reports the result of copying a reply to the clipboard.
type CopiedMsg struct {
	Err error
}
