// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/soulfull-tui/internal/dispatch"
	"github.com/jeranaias/soulfull-tui/internal/ui/components"
)

// Status line texts.
const (
	statusGenerating    = "Generating report..."
	statusReportFailed  = "Could not generate the report. Please try again."
	statusCopied        = "Reply copied to clipboard"
	statusNothingToCopy = "No reply to copy yet"
	statusCopyFailed    = "Clipboard unavailable"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if !m.allowed {
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case ReplyMsg:
		return m.handleReply(msg)

	case ReportMsg:
		return m.handleReport(msg)

	case CopiedMsg:
		switch {
		case msg.Err != nil:
			m.deps.Log.Warn("clipboard write failed", zap.Error(msg.Err))
			m.setStatus(statusCopyFailed, true)
		default:
			m.setStatus(statusCopied, false)
		}
		return m, nil

	case spinner.TickMsg:
		return m.handleTick(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.layout()
	m.scrollSync()
	return m, nil
}

// layout sizes the viewport to what is left after the fixed rows.
func (m *Model) layout() {
	m.header.Width = m.width
	m.help.Width = m.width
	m.input.Width = m.width - m.theme.InputBox.GetHorizontalFrameSize() - len(m.input.Prompt) - 1
	if m.input.Width < 1 {
		m.input.Width = 1
	}

	// The status row is reserved even when empty.
	fixed := heightOf(m.header.View()) + heightOf(m.renderInput()) + 1 + heightOf(m.renderFooter())
	h := m.height - fixed
	if h < 1 {
		h = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Report):
		return m.requestReport()

	case key.Matches(msg, m.keys.Logout):
		if err := m.deps.Guard.Invalidate(); err != nil {
			m.deps.Log.Error("logout could not clear session", zap.Error(err))
		}
		return m, components.Navigate(components.RouteLogin)

	case key.Matches(msg, m.keys.Copy):
		text, ok := m.timeline.LastBotReply()
		if !ok {
			m.setStatus(statusNothingToCopy, false)
			return m, nil
		}
		return m, copyCmd(m.deps.Clipboard, text)

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		m.scrollSync()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts a turn from the input line. Whitespace-only input is left
// in place and nothing is sent.
func (m Model) submit() (tea.Model, tea.Cmd) {
	turn, ok := m.deps.Replies.Begin(m.timeline, m.input.Value())
	if !ok {
		return m, nil
	}
	m.input.Reset()
	m.setStatus("", false)
	m.scrollSync()

	cmds := []tea.Cmd{sendCmd(m.deps.Replies, turn, m.deps.RequestTimeout)}
	if cmd := m.startSpinner(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// requestReport snapshots the timeline and asks for a report. A second
// request while one is in flight is ignored.
func (m Model) requestReport() (tea.Model, tea.Cmd) {
	if m.reportPending {
		return m, nil
	}
	m.reportPending = true
	m.setStatus(statusGenerating, false)

	cmds := []tea.Cmd{reportCmd(m.deps.Reports, m.timeline.ID(), m.timeline.Messages(), m.deps.RequestTimeout)}
	if cmd := m.startSpinner(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	effect := m.deps.Replies.Resolve(m.timeline, msg.Turn, msg.Outcome)
	m.scrollSync()

	if effect == dispatch.EffectRedirectLogin {
		return m, components.Navigate(components.RouteLogin)
	}
	return m, nil
}

// handleReport acts on a report result. A result addressed to another
// mount is ignored entirely.
func (m Model) handleReport(msg ReportMsg) (tea.Model, tea.Cmd) {
	if msg.TimelineID != m.timeline.ID() {
		return m, nil
	}
	m.reportPending = false

	switch m.deps.Reports.Resolve(m.timeline, msg.TimelineID, msg.Result) {
	case dispatch.EffectShowReport:
		m.setStatus("", false)
		return m, components.ShowReport(msg.Result.Payload)
	case dispatch.EffectRedirectLogin:
		return m, components.Navigate(components.RouteLogin)
	default:
		m.setStatus(statusReportFailed, true)
		return m, nil
	}
}

// startSpinner schedules a tick unless one is already scheduled.
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m Model) handleTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if m.timeline.PendingCount() == 0 && !m.reportPending {
		m.spinning = false
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	m.refreshContent()
	return m, cmd
}
