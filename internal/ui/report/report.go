// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report provides the wellness report view.
//
// The view renders whatever payload the chat view handed over. Missing
// fields fall back to placeholder text and zero scores.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/soulfull-tui/internal/model"
	"github.com/jeranaias/soulfull-tui/internal/session"
	"github.com/jeranaias/soulfull-tui/internal/ui/components"
	"github.com/jeranaias/soulfull-tui/internal/ui/styles"
)

// Deps are the collaborators of the report view. Guard is required.
type Deps struct {
	Guard    *session.Guard
	Markdown *components.Markdown
	Log      *zap.Logger
}

// KeyMap defines the report view bindings.
type KeyMap struct {
	Back     key.Binding
	Logout   key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default report bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("Esc/b", "back to chat"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "logout"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("PgDn", "page down"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Up, k.Down, k.Logout}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Back, k.Logout}, {k.Up, k.Down, k.PageUp, k.PageDown}}
}

// Model is the Bubble Tea model for the report view.
type Model struct {
	theme  *styles.Theme
	deps   Deps
	keys   KeyMap
	help   help.Model
	header *components.Header

	viewport viewport.Model
	payload  model.ReportPayload
	allowed  bool

	width  int
	height int
}

// New creates a report view for payload. A nil payload renders the
// defaults. The session is checked here, as for chat.
func New(theme *styles.Theme, deps Deps, payload *model.ReportPayload) Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}

	header := components.NewHeader(theme)
	header.Title = "SoulFull Report"

	m := Model{
		theme:    theme,
		deps:     deps,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		header:   header,
		viewport: viewport.New(0, 0),
		payload:  model.ReportOrDefault(payload),
	}

	res := deps.Guard.Check()
	m.allowed = res.Allowed
	header.Right = res.DisplayName
	return m
}

// Init redirects to login when there is no session.
func (m Model) Init() tea.Cmd {
	if !m.allowed {
		return components.Navigate(components.RouteLogin)
	}
	return nil
}

// Allowed reports whether the session check passed.
func (m Model) Allowed() bool {
	return m.allowed
}

// Payload returns the report being shown, with defaults applied.
func (m Model) Payload() model.ReportPayload {
	return m.payload
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.Width = msg.Width
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - lipgloss.Height(m.header.View()) - lipgloss.Height(m.renderFooter())
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		m.viewport.SetContent(m.renderBody())
		return m, nil

	case tea.KeyMsg:
		if !m.allowed {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, components.Navigate(components.RouteChat)
		case key.Matches(msg, m.keys.Logout):
			if err := m.deps.Guard.Invalidate(); err != nil {
				m.deps.Log.Error("logout could not clear session", zap.Error(err))
			}
			return m, components.Navigate(components.RouteLogin)
		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.ViewUp()
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.ViewDown()
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the report view.
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
		m.renderFooter(),
	)
}

func (m Model) renderFooter() string {
	return m.theme.Footer.Render(m.help.View(m.keys))
}

// =============================================================================
// BODY
// =============================================================================

func (m Model) renderBody() string {
	inner := m.width - m.theme.Section.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.section("Summary", m.deps.Markdown.Render(m.payload.Report, inner), inner),
		m.section("Metrics", m.renderMetrics(inner), inner),
		m.section("Suggestions", m.deps.Markdown.Render(m.payload.Suggestions, inner), inner),
	)
}

func (m Model) section(title, body string, width int) string {
	content := m.theme.SectionTitle.Render(title) + "\n" + body
	return m.theme.Section.Width(width + m.theme.Section.GetHorizontalPadding()).Render(content)
}

func (m Model) renderMetrics(width int) string {
	metrics := m.payload.Metrics
	rows := []string{
		m.metricRow("Stress", metrics.Stress, width),
		m.metricRow("Depression", metrics.Depression, width),
		m.metricRow("Anxiety", metrics.Anxiety, width),
	}
	return strings.Join(rows, "\n")
}

// metricRow renders one labelled bar with its score and severity band.
func (m Model) metricRow(label string, score float64, width int) string {
	severity := model.SeverityOf(score).String()
	tail := fmt.Sprintf(" %4.1f/%.0f %s", score, model.MetricMax, m.theme.SeverityStyle(severity).Render(severity))

	barWidth := width - m.theme.MetricLabel.GetWidth() - lipgloss.Width(tail)
	if barWidth < 10 {
		barWidth = 10
	}
	bar := progress.New(
		progress.WithSolidFill(styles.SeverityHex(severity, m.theme.IsDark)),
		progress.WithoutPercentage(),
		progress.WithWidth(barWidth),
	)
	return m.theme.MetricLabel.Render(label) + bar.ViewAs(fraction(score)) + tail
}

// fraction maps a score onto 0..1 for the bar.
func fraction(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(1, score/model.MetricMax))
}
