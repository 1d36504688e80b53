// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/soulfull-tui/internal/ui/styles"
	"github.com/jeranaias/soulfull-tui/internal/util"
)

// Header is the title bar at the top of each view.
type Header struct {
	Title string
	// Right is shown right-aligned, e.g. the signed-in user.
	Right string
	Width int
	theme *styles.Theme
}

// NewHeader creates a header titled "SoulFull".
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Title: "SoulFull", Width: 80, theme: theme}
}

// View renders the header at its width. The right text is truncated first
// when space runs out.
func (h *Header) View() string {
	inner := h.Width - h.theme.Header.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	title := h.theme.HeaderTitle.Render(h.Title)
	room := inner - lipgloss.Width(title) - 1
	right := ""
	if h.Right != "" && room > 3 {
		right = h.theme.HeaderUser.Render(util.Truncate(h.Right, room))
	}

	gap := inner - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return h.theme.Header.Width(h.Width).Render(title + strings.Repeat(" ", gap) + right)
}
