// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/soulfull-tui/internal/cloud"
	"github.com/jeranaias/soulfull-tui/internal/model"
	"github.com/jeranaias/soulfull-tui/internal/storage"
)

// ReportService produces a report from chat history.
type ReportService interface {
	Report(ctx context.Context, token string, history []model.Message) (*model.ReportPayload, error)
}

// ReportResult is the typed result of a report request.
type ReportResult struct {
	Effect  Effect
	Payload *model.ReportPayload
	Err     error
}

// =============================================================================
// REPORT REQUESTER
// =============================================================================

// ReportRequester asks for a report on the current history. It never
// modifies the timeline.
type ReportRequester struct {
	reports ReportService
	store   storage.SessionStore
	log     *zap.Logger
}

// NewReportRequester creates a requester.
func NewReportRequester(reports ReportService, store storage.SessionStore, log *zap.Logger) *ReportRequester {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportRequester{reports: reports, store: store, log: log}
}

// Request sends history, which should be a snapshot taken when the user
// asked. On success the payload is returned unchanged with
// EffectShowReport. A 401, or no session at all, yields
// EffectRedirectLogin. Every other failure is logged and yields EffectNone
// so the user stays where they are.
//
// Request runs inside a command and never touches the store; the session
// is cleared by Resolve once the result is back on the event loop.
func (r *ReportRequester) Request(ctx context.Context, history []model.Message) ReportResult {
	creds, err := r.store.Read()
	if err != nil || !creds.HasToken() {
		r.log.Warn("no session at report time", zap.Error(err))
		return ReportResult{Effect: EffectRedirectLogin, Err: cloud.ErrUnauthorized}
	}

	start := time.Now()
	payload, err := r.reports.Report(ctx, creds.Token, history)
	switch {
	case err == nil:
		r.log.Info("report generated",
			zap.Int("history_len", len(history)),
			zap.Duration("elapsed", time.Since(start)))
		return ReportResult{Effect: EffectShowReport, Payload: payload}
	case errors.Is(err, cloud.ErrUnauthorized):
		return ReportResult{Effect: EffectRedirectLogin, Err: err}
	default:
		r.log.Error("error generating report", zap.Error(err))
		return ReportResult{Effect: EffectNone, Err: err}
	}
}

// Resolve applies res for the chat mount identified by timelineID. A result
// for a timeline other than tl belongs to an earlier mount and is dropped
// without touching the store. A live redirect clears the session first.
func (r *ReportRequester) Resolve(tl *model.Timeline, timelineID string, res ReportResult) Effect {
	if tl == nil || timelineID != tl.ID() {
		r.log.Debug("dropping report for stale timeline", zap.String("timeline", timelineID))
		return EffectNone
	}
	if res.Effect == EffectRedirectLogin {
		clearSession(r.store, r.log)
	}
	return res.Effect
}

func clearSession(store storage.SessionStore, log *zap.Logger) {
	if err := store.Clear(); err != nil {
		log.Error("failed to clear rejected session", zap.Error(err))
	}
}
