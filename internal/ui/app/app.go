// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root Bubble Tea model. It owns the current view and
// switches between login, signup, chat and report on NavigateMsg.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/soulfull-tui/internal/account"
	"github.com/jeranaias/soulfull-tui/internal/dispatch"
	"github.com/jeranaias/soulfull-tui/internal/model"
	"github.com/jeranaias/soulfull-tui/internal/session"
	"github.com/jeranaias/soulfull-tui/internal/ui/auth"
	"github.com/jeranaias/soulfull-tui/internal/ui/chat"
	"github.com/jeranaias/soulfull-tui/internal/ui/components"
	"github.com/jeranaias/soulfull-tui/internal/ui/report"
	"github.com/jeranaias/soulfull-tui/internal/ui/styles"
)

// Deps wires the application. Watcher is optional.
type Deps struct {
	Theme    *styles.Theme
	Guard    *session.Guard
	Accounts *account.Service
	Replies  *dispatch.ReplyDispatcher
	Reports  *dispatch.ReportRequester
	Markdown *components.Markdown
	Watcher  *session.Watcher
	Log      *zap.Logger

	MaxInputChars  int
	RequestTimeout time.Duration
	Clipboard      func(string) error
}

// Model is the root model.
type Model struct {
	deps  Deps
	route components.Route
	view  tea.Model

	width  int
	height int
}

// New creates the root model. It opens on chat when a session exists and on
// login otherwise.
func New(deps Deps) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	m := Model{deps: deps}

	start := components.RouteLogin
	if deps.Guard.Check().Allowed {
		start = components.RouteChat
	}
	m.mount(start, nil)
	return m
}

// Route returns the active route.
func (m Model) Route() components.Route {
	return m.route
}

// Current returns the active view model.
func (m Model) Current() tea.Model {
	return m.view
}

// Init starts the active view and the session watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.view.Init(), m.watch())
}

func (m Model) watch() tea.Cmd {
	if m.deps.Watcher == nil {
		return nil
	}
	return m.deps.Watcher.WaitCmd()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case components.NavigateMsg:
		cmd := m.mount(msg.To, msg.Report)
		return m, cmd

	case session.ClearedMsg:
		cmds := []tea.Cmd{m.watch()}
		if m.route == components.RouteChat || m.route == components.RouteReport {
			m.deps.Log.Info("session removed outside the app, returning to login")
			cmds = append(cmds, m.mount(components.RouteLogin, nil))
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// View renders the active view.
func (m Model) View() string {
	return m.view.View()
}

// mount replaces the active view with a fresh one for route and returns
// its start-up commands.
func (m *Model) mount(route components.Route, payload *model.ReportPayload) tea.Cmd {
	d := m.deps
	switch route {
	case components.RouteSignup:
		m.view = auth.NewSignup(d.Theme, d.Accounts, d.RequestTimeout)
	case components.RouteChat:
		m.view = chat.New(d.Theme, chat.Deps{
			Guard:          d.Guard,
			Replies:        d.Replies,
			Reports:        d.Reports,
			Markdown:       d.Markdown,
			Log:            d.Log,
			MaxInputChars:  d.MaxInputChars,
			RequestTimeout: d.RequestTimeout,
			Clipboard:      d.Clipboard,
		})
	case components.RouteReport:
		m.view = report.New(d.Theme, report.Deps{
			Guard:    d.Guard,
			Markdown: d.Markdown,
			Log:      d.Log,
		}, payload)
	default:
		route = components.RouteLogin
		m.view = auth.NewLogin(d.Theme, d.Accounts, d.RequestTimeout)
	}
	m.route = route
	d.Log.Debug("view mounted", zap.Stringer("route", route))

	if m.width > 0 && m.height > 0 {
		m.view, _ = m.view.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	return m.view.Init()
}
