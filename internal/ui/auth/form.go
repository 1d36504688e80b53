// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the login and signup views.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/soulfull-tui/internal/ui/styles"
)

// formWidth is the width of the input boxes.
const formWidth = 40

// KeyMap defines the bindings shared by both forms.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Switch key.Binding
	Reveal key.Binding
}

func loginKeys() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("Tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("S-Tab", "previous field")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "log in")),
		Switch: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("C-n", "create an account")),
	}
}

func signupKeys() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("Tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("S-Tab", "previous field")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "sign up")),
		Switch: key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "back to login")),
		Reveal: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("C-t", "show password")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	out := []key.Binding{k.Next, k.Submit, k.Switch}
	if k.Reveal.Enabled() {
		out = append(out, k.Reveal)
	}
	return out
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Prev}}
}

// form is an ordered set of labelled inputs with one focused.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(labels ...string) form {
	f := form{labels: labels, inputs: make([]textinput.Model, len(labels))}
	for i := range labels {
		in := textinput.New()
		in.Prompt = ""
		in.Width = formWidth
		in.CharLimit = 256
		in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Teal)
		f.inputs[i] = in
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) setFocus(i int) tea.Cmd {
	n := len(f.inputs)
	f.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

func (f *form) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *form) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

func (f form) onLast() bool {
	return f.focus == len(f.inputs)-1
}

func (f form) value(i int) string {
	return f.inputs[i].Value()
}

// update forwards msg to the focused input.
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// view renders each field. notes may hold a line to show under a field.
func (f form) view(theme *styles.Theme, notes map[int]string) string {
	var b strings.Builder
	for i, in := range f.inputs {
		box := theme.InputBox
		if i == f.focus {
			box = theme.InputBoxFocused
		}
		b.WriteString(theme.FieldLabel.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(box.Width(formWidth + box.GetHorizontalPadding()).Render(in.View()))
		b.WriteString("\n")
		if note := notes[i]; note != "" {
			b.WriteString(theme.Error.Render(note))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// frame centres a titled card in the terminal.
func frame(theme *styles.Theme, width, height int, title, body string) string {
	card := lipgloss.JoinVertical(lipgloss.Left,
		theme.HeaderTitle.Render(title),
		"",
		body,
	)
	card = theme.Section.Render(card)
	if width == 0 || height == 0 {
		return card
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
