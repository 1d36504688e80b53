// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ClearedMsg is sent when the session file disappears, e.g. because
// `soulfull logout` ran in another terminal.
type ClearedMsg struct{}

// =============================================================================
// WATCHER
// =============================================================================

// Watcher observes the directory holding a file-backed session. The
// directory is watched rather than the file because AtomicWriteFile replaces
// the file by rename.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  chan struct{}
	log     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewWatcher starts watching the session file at path.
func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:    filepath.Clean(path),
		watcher: fw,
		events:  make(chan struct{}, 1),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go w.processEvents()
	return w, nil
}

func (w *Watcher) processEvents() {
	defer close(w.events)
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			// A rename also happens on every atomic write; only report when
			// the file is really gone.
			time.Sleep(50 * time.Millisecond)
			if _, err := os.Stat(w.path); err == nil {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("session watcher error", zap.Error(err))
		}
	}
}

// WaitCmd blocks until the session is removed and then yields ClearedMsg.
// Re-issue it after each ClearedMsg to keep watching. It yields nil once
// the watcher is closed.
func (w *Watcher) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.events; !ok {
			return nil
		}
		return ClearedMsg{}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}
