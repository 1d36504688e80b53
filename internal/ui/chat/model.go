// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/soulfull-tui/internal/dispatch"
	"github.com/jeranaias/soulfull-tui/internal/model"
	"github.com/jeranaias/soulfull-tui/internal/session"
	"github.com/jeranaias/soulfull-tui/internal/ui/components"
	"github.com/jeranaias/soulfull-tui/internal/ui/styles"
)

// DefaultMaxInputChars caps a single message when Deps leaves it unset.
const DefaultMaxInputChars = 2000

// Deps are the collaborators a chat view needs. Guard, Replies and Reports
// are required.
type Deps struct {
	Guard   *session.Guard
	Replies *dispatch.ReplyDispatcher
	Reports *dispatch.ReportRequester

	Markdown *components.Markdown
	Log      *zap.Logger

	MaxInputChars int
	// RequestTimeout bounds a single round trip. Zero leaves it to the
	// HTTP client.
	RequestTimeout time.Duration

	// Clipboard writes text to the system clipboard.
	Clipboard func(string) error
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.MaxInputChars <= 0 {
		d.MaxInputChars = DefaultMaxInputChars
	}
	if d.Clipboard == nil {
		d.Clipboard = clipboard.WriteAll
	}
	return d
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view. A new Model is one mount:
// it owns a fresh timeline and never sees messages from an earlier one.
type Model struct {
	theme *styles.Theme
	deps  Deps
	keys  KeyMap
	help  help.Model

	header   *components.Header
	timeline *model.Timeline

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	width  int
	height int

	allowed     bool
	displayName string

	// reportPending is set while a report request is in flight.
	reportPending bool
	// spinning is true while a spinner tick is scheduled.
	spinning bool

	status    string
	statusErr bool
}

// New creates a chat view and runs the session check. A signed-in user is
// greeted by name; otherwise the timeline stays empty and Init redirects to
// login.
func New(theme *styles.Theme, deps Deps) Model {
	deps = deps.withDefaults()

	in := textinput.New()
	in.Placeholder = "Type your message..."
	in.Prompt = "> "
	in.CharLimit = deps.MaxInputChars
	in.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.PendingLabel),
	)

	m := Model{
		theme:    theme,
		deps:     deps,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		header:   components.NewHeader(theme),
		timeline: model.NewTimeline(),
		viewport: viewport.New(0, 0),
		input:    in,
		spinner:  sp,
	}

	res := deps.Guard.Check()
	m.allowed = res.Allowed
	if !res.Allowed {
		deps.Log.Info("chat opened without a session, redirecting to login")
		return m
	}

	m.displayName = res.DisplayName
	m.header.Right = res.DisplayName
	m.timeline.Append(model.Message{
		Text:   model.Greeting(res.DisplayName),
		Sender: model.SenderBot,
	})
	return m
}

// Init redirects to login when the session check failed.
func (m Model) Init() tea.Cmd {
	if !m.allowed {
		return components.Navigate(components.RouteLogin)
	}
	return textinput.Blink
}

// Allowed reports whether the session check passed at mount.
func (m Model) Allowed() bool {
	return m.allowed
}

// Timeline returns the timeline of this mount.
func (m Model) Timeline() *model.Timeline {
	return m.timeline
}

// Input returns the current contents of the input line.
func (m Model) Input() string {
	return m.input.Value()
}

// ReportPending reports whether a report request is in flight.
func (m Model) ReportPending() bool {
	return m.reportPending
}

// Status returns the current status line text.
func (m Model) Status() string {
	return m.status
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}
