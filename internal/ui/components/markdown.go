// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Markdown renders markdown text for the terminal, caching one glamour
// renderer per wrap width. A disabled renderer returns text unchanged.
type Markdown struct {
	enabled bool
	style   string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown creates a renderer. The style is fixed from dark instead of
// glamour's auto detection, which queries the terminal and can stall a
// running Bubble Tea program.
func NewMarkdown(enabled, dark bool) *Markdown {
	style := "light"
	if dark {
		style = "dark"
	}
	return &Markdown{
		enabled:   enabled,
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Enabled reports whether rendering is on.
func (md *Markdown) Enabled() bool {
	return md != nil && md.enabled
}

// Render formats text wrapped at width. Rendering errors fall back to the
// raw text.
func (md *Markdown) Render(text string, width int) string {
	if !md.Enabled() || text == "" {
		return text
	}
	if width < 10 {
		width = 10
	}

	r, err := md.renderer(width)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (md *Markdown) renderer(width int) (*glamour.TermRenderer, error) {
	md.mu.Lock()
	defer md.mu.Unlock()

	if r, ok := md.renderers[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(md.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	md.renderers[width] = r
	return r, nil
}
