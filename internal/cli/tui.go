// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/soulfull-tui/internal/session"
	"github.com/jeranaias/soulfull-tui/internal/ui/app"
	"github.com/jeranaias/soulfull-tui/internal/ui/components"
	"github.com/jeranaias/soulfull-tui/internal/ui/styles"
)

// runTUI starts the full-screen interface and blocks until it exits.
func runTUI(rt *Runtime) error {
	cfg := rt.Config
	theme := styles.NewTheme(cfg.UI.Theme)

	// Only the file backend can be removed from outside the process.
	var watcher *session.Watcher
	if session.NormalizeBackend(cfg.Session.Backend) == session.BackendFile {
		w, err := session.NewWatcher(rt.SessionPath, rt.Log.Named("watcher"))
		if err != nil {
			rt.Log.Warn("session watcher unavailable", zap.Error(err))
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	m := app.New(app.Deps{
		Theme:          theme,
		Guard:          rt.Guard,
		Accounts:       rt.Accounts,
		Replies:        rt.Replies,
		Reports:        rt.Reports,
		Markdown:       components.NewMarkdown(cfg.UI.Markdown, theme.IsDark),
		Watcher:        watcher,
		Log:            rt.Log.Named("ui"),
		MaxInputChars:  cfg.UI.MaxInputChars,
		RequestTimeout: cfg.API.Timeout(),
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running soulfull: %w", err)
	}
	return nil
}
