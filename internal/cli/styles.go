// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// =============================================================================
// SHARED STYLES FOR ALL CLI COMMANDS
// =============================================================================

var (
	// TitleStyle is used for command titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("37")). // Teal
			MarginBottom(1)

	// LabelStyle is used for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(18)

	// ValueStyle is used for values next to a label.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// DimStyle is used for hints.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
)

// RenderLabel renders a label padded to the shared width.
func RenderLabel(label string) string {
	return LabelStyle.Render(label)
}

// printField writes one "label value" line.
func printField(w io.Writer, label, value string) {
	fmt.Fprintln(w, RenderLabel(label)+ValueStyle.Render(value))
}

func printSuccess(w io.Writer, format string, a ...any) {
	successColor.Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", a...)
}

func printWarning(w io.Writer, format string, a ...any) {
	warnColor.Fprintf(w, "! "+format+"\n", a...)
}

func printError(w io.Writer, format string, a ...any) {
	errorColor.Fprint(w, "Error: ")
	fmt.Fprintf(w, format+"\n", a...)
}
