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
	signupFullName = iota
	signupEmail
	signupUsername
	signupPassword
)

// SignupResultMsg carries the outcome of a signup attempt.
type SignupResultMsg struct {
	Err error
}

// SignupModel is the account creation view.
type SignupModel struct {
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

// NewSignup creates the signup view.
func NewSignup(theme *styles.Theme, svc *account.Service, timeout time.Duration) SignupModel {
	f := newForm("Full name", "Email", "Username", "Password")
	f.inputs[signupFullName].Placeholder = "Enter your full name"
	f.inputs[signupEmail].Placeholder = "Enter your email"
	f.inputs[signupUsername].Placeholder = "Choose a username"
	f.inputs[signupPassword].Placeholder = "Create a password"
	f.inputs[signupPassword].EchoMode = textinput.EchoPassword
	f.inputs[signupPassword].EchoCharacter = '•'

	return SignupModel{
		theme:   theme,
		svc:     svc,
		timeout: timeout,
		keys:    signupKeys(),
		help:    help.New(),
		form:    f,
	}
}

// Init starts the cursor blinking.
func (m SignupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Err returns the message currently shown, if any.
func (m SignupModel) Err() string {
	return m.err
}

// passwordNote is the live rule hint under the password field. It stays
// hidden until something has been typed.
func (m SignupModel) passwordNote() string {
	pw := m.form.value(signupPassword)
	if pw == "" {
		return ""
	}
	return account.PasswordProblem(pw)
}

// Update handles messages and updates the model.
func (m SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case SignupResultMsg:
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
			return m, components.Navigate(components.RouteLogin)
		case key.Matches(msg, m.keys.Reveal):
			pw := &m.form.inputs[signupPassword]
			if pw.EchoMode == textinput.EchoPassword {
				pw.EchoMode = textinput.EchoNormal
			} else {
				pw.EchoMode = textinput.EchoPassword
			}
			return m, nil
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

func (m SignupModel) submit() (tea.Model, tea.Cmd) {
	m.err = ""
	m.submitting = true

	svc, timeout := m.svc, m.timeout
	req := cloud.SignupRequest{
		FullName: m.form.value(signupFullName),
		Email:    m.form.value(signupEmail),
		Username: m.form.value(signupUsername),
		Password: m.form.value(signupPassword),
	}
	return m, func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()

		_, err := svc.Signup(ctx, req)
		return SignupResultMsg{Err: err}
	}
}

// View renders the signup view.
func (m SignupModel) View() string {
	body := m.form.view(m.theme, map[int]string{signupPassword: m.passwordNote()})
	switch {
	case m.submitting:
		body += m.theme.Notice.Render("Creating your account...") + "\n"
	case m.err != "":
		body += m.theme.Error.Render(m.err) + "\n"
	}
	body += "\n" + m.theme.Help.Render(m.help.View(m.keys))
	return frame(m.theme, m.width, m.height, "Create your SoulFull account", body)
}
