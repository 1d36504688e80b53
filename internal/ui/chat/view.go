// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/soulfull-tui/internal/model"
)

// View renders the chat view.
func (m Model) View() string {
	if !m.allowed {
		return m.theme.Hint.Render("Redirecting to login...")
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.viewport.View(),
		m.renderStatus(),
		m.renderInput(),
		m.renderFooter(),
	)
}

// renderMessages renders the whole timeline, oldest first.
func (m Model) renderMessages() string {
	msgs := m.timeline.Messages()
	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		blocks = append(blocks, m.renderMessage(msg))
	}
	return strings.Join(blocks, "\n\n")
}

// renderMessage renders one entry as a labelled bubble. User bubbles sit on
// the right.
func (m Model) renderMessage(msg model.Message) string {
	style := m.theme.BotBubble
	if msg.IsUser() {
		style = m.theme.UserBubble
	}

	maxInner := m.theme.BubbleWidth() - style.GetHorizontalFrameSize()
	if maxInner < 1 {
		maxInner = 1
	}

	var body string
	switch {
	case msg.Pending:
		body = m.spinner.View() + " " + m.theme.PendingLabel.Render("SoulFull is typing...")
	case msg.IsBot() && m.deps.Markdown.Enabled():
		body = m.deps.Markdown.Render(msg.Text, maxInner)
	default:
		body = msg.Text
	}

	inner := lipgloss.Width(body)
	if inner > maxInner {
		inner = maxInner
	}
	bubble := style.Width(inner + style.GetHorizontalPadding()).Render(body)
	label := m.theme.SenderLabel.Render(msg.Sender.DisplayName())
	block := lipgloss.JoinVertical(lipgloss.Left, label, bubble)

	if msg.IsUser() {
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, block)
	}
	return block
}

func (m Model) renderInput() string {
	return m.theme.InputBoxFocused.Render(m.input.View())
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.theme.Error.Render(m.status)
	}
	if m.reportPending {
		return m.spinner.View() + " " + m.theme.Notice.Render(m.status)
	}
	return m.theme.Notice.Render(m.status)
}

func (m Model) renderFooter() string {
	return m.theme.Footer.Render(m.help.View(m.keys))
}

// heightOf is lipgloss.Height except that an empty string takes no rows.
func heightOf(s string) int {
	if s == "" {
		return 0
	}
	return lipgloss.Height(s)
}
