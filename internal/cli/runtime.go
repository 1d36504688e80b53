// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/jeranaias/soulfull-tui/internal/account"
	"github.com/jeranaias/soulfull-tui/internal/cloud"
	"github.com/jeranaias/soulfull-tui/internal/config"
	"github.com/jeranaias/soulfull-tui/internal/dispatch"
	"github.com/jeranaias/soulfull-tui/internal/logging"
	"github.com/jeranaias/soulfull-tui/internal/session"
	"github.com/jeranaias/soulfull-tui/internal/storage"
)

// Runtime holds the services built from a configuration.
type Runtime struct {
	Config      *config.Config
	Log         *zap.Logger
	Store       storage.SessionStore
	SessionPath string
	Client      *cloud.Client
	Guard       *session.Guard
	Accounts    *account.Service
	Replies     *dispatch.ReplyDispatcher
	Reports     *dispatch.ReportRequester

	closer io.Closer
}

// NewRuntime wires the logger, session store, API client and dispatchers.
// verbose mirrors the log to stderr.
func NewRuntime(cfg *config.Config, verbose bool) (*Runtime, error) {
	logPath, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Options{
		Path:       logPath,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Console:    verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	sessionPath, err := cfg.SessionPath()
	if err != nil {
		return nil, err
	}
	store, closer, err := session.OpenStore(cfg.Session.Backend, sessionPath, cfg.Session.TTL())
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	client := cloud.NewClient(cfg.API.BaseURL).
		WithTimeout(cfg.API.Timeout()).
		WithRateLimit(cfg.API.RequestsPerMinute).
		WithLogger(log.Named("api"))

	log.Info("runtime ready",
		zap.String("api", client.BaseURL()),
		zap.String("session_backend", cfg.Session.Backend))

	return &Runtime{
		Config:      cfg,
		Log:         log,
		Store:       store,
		SessionPath: sessionPath,
		Client:      client,
		Guard:       session.NewGuard(store, log.Named("session")),
		Accounts:    account.NewService(client, store, log.Named("account")),
		Replies:     dispatch.NewReplyDispatcher(client, store, log.Named("chat")),
		Reports:     dispatch.NewReportRequester(client, store, log.Named("report")),
		closer:      closer,
	}, nil
}

// Close releases the session store and flushes the log.
func (r *Runtime) Close() error {
	err := r.closer.Close()
	_ = r.Log.Sync()
	return err
}
