// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/soulfull-tui/internal/cloud"
	"github.com/jeranaias/soulfull-tui/internal/model"
	"github.com/jeranaias/soulfull-tui/internal/storage"
	"github.com/jeranaias/soulfull-tui/internal/util"
)

// ChatService sends one user message and returns the reply.
type ChatService interface {
	Chat(ctx context.Context, token, text string) (string, error)
}

// =============================================================================
// REPLY DISPATCHER
// =============================================================================

// ReplyDispatcher runs the send / reply cycle for the chat view.
type ReplyDispatcher struct {
	chat  ChatService
	store storage.SessionStore
	log   *zap.Logger
}

// NewReplyDispatcher creates a dispatcher. A nil logger is replaced with a
// no-op.
func NewReplyDispatcher(chat ChatService, store storage.SessionStore, log *zap.Logger) *ReplyDispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReplyDispatcher{chat: chat, store: store, log: log}
}

// Begin validates raw and, if it has any non-whitespace content, appends the
// user entry and its pending placeholder. The user entry keeps raw exactly
// as typed. Whitespace-only input changes nothing and reports false.
func (d *ReplyDispatcher) Begin(tl *model.Timeline, raw string) (model.Turn, bool) {
	if util.IsBlank(raw) {
		return model.Turn{}, false
	}
	turn := tl.BeginTurn(raw)
	d.log.Debug("turn started",
		zap.String("timeline", turn.TimelineID),
		zap.Int64("user_id", turn.User.ID),
		zap.Int64("placeholder_id", turn.PlaceholderID))
	return turn, true
}

// Exchange performs the network round trip for turn. It reads the token at
// send time so a session cleared elsewhere is noticed. It blocks and must
// not touch the timeline.
func (d *ReplyDispatcher) Exchange(ctx context.Context, turn model.Turn) Outcome {
	creds, err := d.store.Read()
	if err != nil || !creds.HasToken() {
		d.log.Warn("no session at send time", zap.Error(err))
		return Outcome{Kind: OutcomeUnauthorized, Err: cloud.ErrUnauthorized}
	}

	start := time.Now()
	reply, err := d.chat.Chat(ctx, creds.Token, util.NormalizeText(turn.User.Text))
	outcome := Classify(reply, err)

	d.log.Info("turn exchanged",
		zap.Int64("placeholder_id", turn.PlaceholderID),
		zap.Stringer("outcome", outcome.Kind),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(outcome.Err))
	return outcome
}

// Resolve applies outcome to the placeholder of turn.
//
// A turn from a different timeline (an earlier mount) is dropped without
// touching the timeline or the store: its token may belong to a session
// that has since been replaced by a new login.
func (d *ReplyDispatcher) Resolve(tl *model.Timeline, turn model.Turn, outcome Outcome) Effect {
	if tl == nil || turn.TimelineID != tl.ID() {
		d.log.Debug("dropping result for stale timeline",
			zap.String("timeline", turn.TimelineID),
			zap.Stringer("outcome", outcome.Kind))
		return EffectNone
	}

	if outcome.Kind == OutcomeUnauthorized {
		clearSession(d.store, d.log)
		return EffectRedirectLogin
	}

	text, _ := outcome.PlaceholderText()
	if !tl.ResolveTurn(turn.PlaceholderID, text) {
		d.log.Warn("placeholder not found", zap.Int64("placeholder_id", turn.PlaceholderID))
	}
	return EffectNone
}
