// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/soulfull-tui/internal/account"
	"github.com/jeranaias/soulfull-tui/internal/cloud"
	"github.com/jeranaias/soulfull-tui/internal/ui/components"
	"github.com/jeranaias/soulfull-tui/internal/ui/styles"
)

const (
	loginUsername = iota
	loginPassword
)

// LoginResultMsg carries the outcome of a login attempt.
type LoginResultMsg struct {
	Err error
}

// LoginModel is the login view.
type LoginModel struct {
	theme   *styles.Theme
	svc     *account.Service
	timeout time.Duration
	keys    KeyMap
	help    help.Model

	form       form
	err        string
	submitting bool

	width  int
	height int
}

// NewLogin creates the login view.
func NewLogin(theme *styles.Theme, svc *account.Service, timeout time.Duration) LoginModel {
	f := newForm("Username", "Password")
	f.inputs[loginUsername].Placeholder = "Enter your username"
	f.inputs[loginPassword].Placeholder = "Enter your password"
	f.inputs[loginPassword].EchoMode = textinput.EchoPassword
	f.inputs[loginPassword].EchoCharacter = '•'

	return LoginModel{
		theme:   theme,
		svc:     svc,
		timeout: timeout,
		keys:    loginKeys(),
		help:    help.New(),
		form:    f,
	}
}

// Init starts the cursor blinking.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Err returns the message currently shown, if any.
func (m LoginModel) Err() string {
	return m.err
}

// Update handles messages and updates the model.
func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case LoginResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err = account.Message(msg.Err)
			return m, nil
		}
		return m, components.Navigate(components.RouteChat)

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Switch):
			return m, components.Navigate(components.RouteSignup)
		case key.Matches(msg, m.keys.Next):
			return m, m.form.next()
		case key.Matches(msg, m.keys.Prev):
			return m, m.form.prev()
		case key.Matches(msg, m.keys.Submit):
			if !m.form.onLast() {
				return m, m.form.next()
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m LoginModel) submit() (tea.Model, tea.Cmd) {
	m.err = ""
	m.submitting = true

	svc, timeout := m.svc, m.timeout
	req := cloud.LoginRequest{
		Username: m.form.value(loginUsername),
		Password: m.form.value(loginPassword),
	}
	return m, func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		_, err := svc.Login(ctx, req)
		return LoginResultMsg{Err: err}
	}
}

// View renders the login view.
func (m LoginModel) View() string {
	body := m.form.view(m.theme, nil)
	switch {
	case m.submitting:
		body += m.theme.Notice.Render("Signing in...") + "\n"
	case m.err != "":
		body += m.theme.Error.Render(m.err) + "\n"
	}
	body += "\n" + m.theme.Help.Render(m.help.View(m.keys))
	return frame(m.theme, m.width, m.height, "Welcome back to SoulFull", body)
}
