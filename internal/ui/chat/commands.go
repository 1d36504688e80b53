// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/soulfull-tui/internal/dispatch"
	"github.com/jeranaias/soulfull-tui/internal/model"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// sendCmd performs the round trip for turn. The closure captures only the
// dispatcher and the turn, never the model.
func sendCmd(d *dispatch.ReplyDispatcher, turn model.Turn, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		return ReplyMsg{Turn: turn, Outcome: d.Exchange(ctx, turn)}
	}
}

// reportCmd requests a report for a snapshot of the history taken from the
// timeline with id timelineID.
func reportCmd(r *dispatch.ReportRequester, timelineID string, history []model.Message, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		return ReportMsg{TimelineID: timelineID, Result: r.Request(ctx, history)}
	}
}

// copyCmd writes text to the clipboard.
func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: write(text)}
	}
}

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
