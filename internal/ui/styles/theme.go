// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// FRAME STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderUser  lipgloss.Style
	Footer      lipgloss.Style
	Help        lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserBubble   lipgloss.Style
	BotBubble    lipgloss.Style
	SenderLabel  lipgloss.Style
	PendingLabel lipgloss.Style

	// ==========================================================================
	// INPUT AND FORM STYLES
	// ==========================================================================

	InputBox        lipgloss.Style
	InputBoxFocused lipgloss.Style
	FieldLabel      lipgloss.Style
	Button          lipgloss.Style
	ButtonFocused   lipgloss.Style
	Error           lipgloss.Style
	Notice          lipgloss.Style
	Hint            lipgloss.Style

	// ==========================================================================
	// REPORT STYLES
	// ==========================================================================

	Section      lipgloss.Style
	SectionTitle lipgloss.Style
	MetricLabel  lipgloss.Style
}

// NewTheme creates a theme. mode is "dark", "light" or "auto"; auto asks the
// terminal.
func NewTheme(mode string) *Theme {
	profile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
		Width:        80,
		Height:       24,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)
	t.HeaderTitle = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	t.HeaderUser = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Footer = lipgloss.NewStyle().Padding(0, 1).Foreground(TextMuted)
	t.Help = lipgloss.NewStyle().Foreground(TextMuted)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)
	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)
	t.SenderLabel = lipgloss.NewStyle().Foreground(TextSecondary).Bold(true)
	t.PendingLabel = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputBoxFocused = t.InputBox.BorderForeground(Teal)
	t.FieldLabel = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Button = lipgloss.NewStyle().Padding(0, 2).Foreground(TextSecondary).Background(Overlay)
	t.ButtonFocused = t.Button.Foreground(Surface).Background(Teal).Bold(true)
	t.Error = lipgloss.NewStyle().Foreground(Rose)
	t.Notice = lipgloss.NewStyle().Foreground(Emerald)
	t.Hint = lipgloss.NewStyle().Foreground(TextMuted)

	t.Section = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1).
		MarginBottom(1)
	t.SectionTitle = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	t.MetricLabel = lipgloss.NewStyle().Foreground(TextPrimary).Width(12)
}

// SetSize records the terminal size.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// BubbleWidth is the widest a message bubble may be at the current size.
func (t *Theme) BubbleWidth() int {
	w := t.Width * 3 / 4
	if t.GetLayoutMode() == LayoutCompact {
		w = t.Width - 2
	}
	if w < 20 {
		w = 20
	}
	return w
}

// LayoutMode is a coarse terminal size class.
type LayoutMode int

const (
	LayoutCompact LayoutMode = iota
	LayoutNormal
	LayoutWide
)

// GetLayoutMode classifies the current width.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < 60:
		return LayoutCompact
	case t.Width < 120:
		return LayoutNormal
	default:
		return LayoutWide
	}
}

// SeverityStyle colors a severity label.
func (t *Theme) SeverityStyle(label string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeverityColor(label)).Bold(true)
}
