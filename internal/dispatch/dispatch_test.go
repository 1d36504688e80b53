// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/soulfull-tui/internal/cloud"
	"github.com/jeranaias/soulfull-tui/internal/model"
	"github.com/jeranaias/soulfull-tui/internal/storage"
)

// chatFunc adapts a function to ChatService.
type chatFunc func(ctx context.Context, token, text string) (string, error)

func (f chatFunc) Chat(ctx context.Context, token, text string) (string, error) {
	return f(ctx, token, text)
}

// reportFunc adapts a function to ReportService.
type reportFunc func(ctx context.Context, token string, history []model.Message) (*model.ReportPayload, error)

func (f reportFunc) Report(ctx context.Context, token string, history []model.Message) (*model.ReportPayload, error) {
	return f(ctx, token, history)
}

func signedInStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore(0)
	require.NoError(t, store.Write("tok", nil))
	return store
}

func greetedTimeline() *model.Timeline {
	tl := model.NewTimeline()
	tl.Append(model.Message{Text: model.Greeting("there"), Sender: model.SenderBot})
	return tl
}

// =============================================================================
// CLASSIFY TESTS
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  OutcomeKind
	}{
		{"reply", "hi", nil, OutcomeReply},
		{"empty reply", "", nil, OutcomeMalformed},
		{"unauthorized", "", cloud.ErrUnauthorized, OutcomeUnauthorized},
		{"wrapped unauthorized", "", fmt.Errorf("chat: %w", cloud.ErrUnauthorized), OutcomeUnauthorized},
		{"transport", "", fmt.Errorf("%w: refused", cloud.ErrTransport), OutcomeTransportFailure},
		{"malformed", "", cloud.ErrMalformedResponse, OutcomeMalformed},
		{"server error", "", &cloud.APIError{Status: 500}, OutcomeMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.reply, tt.err).Kind; got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutcome_PlaceholderText(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
		ok      bool
	}{
		{Outcome{Kind: OutcomeReply, Text: "hello"}, "hello", true},
		{Outcome{Kind: OutcomeMalformed}, "No response", true},
		{Outcome{Kind: OutcomeTransportFailure}, "Sorry, I'm having trouble connecting. Please try again.", true},
		{Outcome{Kind: OutcomeUnauthorized}, "", false},
	}
	for _, tt := range tests {
		got, ok := tt.outcome.PlaceholderText()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%v.PlaceholderText() = %q, %v; want %q, %v", tt.outcome.Kind, got, ok, tt.want, tt.ok)
		}
	}
}

// =============================================================================
// REPLY DISPATCHER TESTS
// =============================================================================

func TestBegin_RejectsBlankInput(t *testing.T) {
	d := NewReplyDispatcher(nil, signedInStore(t), nil)
	tl := greetedTimeline()

	for _, input := range []string{"", "   ", "\n\t"} {
		if _, ok := d.Begin(tl, input); ok {
			t.Errorf("Begin(%q) accepted blank input", input)
		}
	}
	assert.Equal(t, 1, tl.Len())
}

func TestBegin_KeepsRawText(t *testing.T) {
	d := NewReplyDispatcher(nil, signedInStore(t), nil)
	tl := greetedTimeline()

	turn, ok := d.Begin(tl, "  hi  ")
	require.True(t, ok)
	assert.Equal(t, "  hi  ", turn.User.Text)
	assert.Equal(t, 3, tl.Len())
}

func TestReplyCycle(t *testing.T) {
	tests := []struct {
		name     string
		chat     chatFunc
		wantText string
	}{
		{
			name:     "reply",
			chat:     func(context.Context, string, string) (string, error) { return "Hi there", nil },
			wantText: "Hi there",
		},
		{
			name:     "malformed",
			chat:     func(context.Context, string, string) (string, error) { return "", cloud.ErrMalformedResponse },
			wantText: FallbackReply,
		},
		{
			name:     "transport",
			chat:     func(context.Context, string, string) (string, error) { return "", cloud.ErrTransport },
			wantText: TransportApology,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewReplyDispatcher(tt.chat, signedInStore(t), nil)
			tl := greetedTimeline()

			turn, ok := d.Begin(tl, "hello")
			require.True(t, ok)

			effect := d.Resolve(tl, turn, d.Exchange(context.Background(), turn))
			assert.Equal(t, EffectNone, effect)

			msgs := tl.Messages()
			require.Len(t, msgs, 3)
			assert.Equal(t, model.Message{ID: turn.PlaceholderID, Text: tt.wantText, Sender: model.SenderBot}, msgs[2])
		})
	}
}

func TestExchange_SendsTokenAndText(t *testing.T) {
	var gotToken, gotText string
	d := NewReplyDispatcher(chatFunc(func(_ context.Context, token, text string) (string, error) {
		gotToken, gotText = token, text
		return "ok", nil
	}), signedInStore(t), nil)

	turn, _ := d.Begin(greetedTimeline(), "how are you")
	d.Exchange(context.Background(), turn)

	assert.Equal(t, "tok", gotToken)
	assert.Equal(t, "how are you", gotText)
}

func TestResolve_UnauthorizedClearsSessionAndRedirects(t *testing.T) {
	store := signedInStore(t)
	d := NewReplyDispatcher(chatFunc(func(context.Context, string, string) (string, error) {
		return "", cloud.ErrUnauthorized
	}), store, nil)
	tl := greetedTimeline()

	turn, _ := d.Begin(tl, "hello")
	effect := d.Resolve(tl, turn, d.Exchange(context.Background(), turn))

	assert.Equal(t, EffectRedirectLogin, effect)
	creds, err := store.Read()
	require.NoError(t, err)
	assert.False(t, creds.HasToken())

	// The placeholder is abandoned, not resolved.
	placeholder, ok := tl.Get(turn.PlaceholderID)
	require.True(t, ok)
	assert.True(t, placeholder.Pending)
}

func TestExchange_NoSessionIsUnauthorized(t *testing.T) {
	called := false
	d := NewReplyDispatcher(chatFunc(func(context.Context, string, string) (string, error) {
		called = true
		return "x", nil
	}), storage.NewMemoryStore(0), nil)

	turn, _ := d.Begin(greetedTimeline(), "hello")
	outcome := d.Exchange(context.Background(), turn)

	assert.Equal(t, OutcomeUnauthorized, outcome.Kind)
	assert.False(t, called, "no request without a token")
}

func TestResolve_OutOfOrder(t *testing.T) {
	d := NewReplyDispatcher(nil, signedInStore(t), nil)
	tl := greetedTimeline()

	a, _ := d.Begin(tl, "a")
	b, _ := d.Begin(tl, "b")

	d.Resolve(tl, b, Outcome{Kind: OutcomeReply, Text: "rb"})
	d.Resolve(tl, a, Outcome{Kind: OutcomeReply, Text: "ra"})

	var texts []string
	for _, m := range tl.Messages() {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{model.Greeting("there"), "a", "ra", "b", "rb"}, texts)
}

func TestResolve_StaleTimeline(t *testing.T) {
	store := signedInStore(t)
	d := NewReplyDispatcher(nil, store, nil)

	old := greetedTimeline()
	turn, _ := d.Begin(old, "hello")

	fresh := greetedTimeline()
	before := fresh.Messages()

	assert.Equal(t, EffectNone, d.Resolve(fresh, turn, Outcome{Kind: OutcomeReply, Text: "late"}))
	assert.Equal(t, before, fresh.Messages())

	assert.Equal(t, EffectNone, d.Resolve(fresh, turn, Outcome{Kind: OutcomeUnauthorized}))
	creds, _ := store.Read()
	assert.True(t, creds.HasToken(), "stale rejection must not clear the session")
}

func TestResolve_StaleUnauthorizedAfterRelogin(t *testing.T) {
	store := storage.NewMemoryStore(0)
	require.NoError(t, store.Write("token-A", nil))
	d := NewReplyDispatcher(nil, store, nil)

	first := greetedTimeline()
	turn, ok := d.Begin(first, "sent with token-A")
	require.True(t, ok)

	// Logout, then a new login on a fresh mount.
	require.NoError(t, store.Clear())
	require.NoError(t, store.Write("token-B", nil))
	second := greetedTimeline()

	assert.Equal(t, EffectNone, d.Resolve(second, turn, Outcome{Kind: OutcomeUnauthorized, Err: cloud.ErrUnauthorized}))

	creds, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "token-B", creds.Token)
	assert.Equal(t, 1, second.Len())
}

func TestResolve_UnknownPlaceholderIsNoop(t *testing.T) {
	d := NewReplyDispatcher(nil, signedInStore(t), nil)
	tl := greetedTimeline()
	before := tl.Messages()

	turn := model.Turn{TimelineID: tl.ID(), PlaceholderID: 999}
	assert.Equal(t, EffectNone, d.Resolve(tl, turn, Outcome{Kind: OutcomeReply, Text: "x"}))
	assert.Equal(t, before, tl.Messages())
}

// TestReplyCycle_AgainstServer runs the full cycle through the HTTP client.
func TestReplyCycle_AgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":"I'm listening."}`))
	}))
	defer server.Close()

	store := signedInStore(t)
	d := NewReplyDispatcher(cloud.NewClient(server.URL), store, nil)
	tl := greetedTimeline()

	turn, _ := d.Begin(tl, "hello")
	d.Resolve(tl, turn, d.Exchange(context.Background(), turn))

	got, _ := tl.Get(turn.PlaceholderID)
	assert.Equal(t, "I'm listening.", got.Text)

	require.NoError(t, store.Write("stale", nil))
	turn, _ = d.Begin(tl, "again")
	effect := d.Resolve(tl, turn, d.Exchange(context.Background(), turn))
	assert.Equal(t, EffectRedirectLogin, effect)
}

// =============================================================================
// REPORT REQUESTER TESTS
// =============================================================================

func TestReportRequester_Success(t *testing.T) {
	want := &model.ReportPayload{Report: "R", Metrics: model.Metrics{Stress: 4, Depression: 2, Anxiety: 7}, Suggestions: "S"}
	var gotHistory []model.Message
	r := NewReportRequester(reportFunc(func(_ context.Context, token string, history []model.Message) (*model.ReportPayload, error) {
		assert.Equal(t, "tok", token)
		gotHistory = history
		return want, nil
	}), signedInStore(t), nil)

	tl := greetedTimeline()
	turn := tl.BeginTurn("hello")
	tl.ResolveTurn(turn.PlaceholderID, "hi")
	before := tl.Messages()

	res := r.Request(context.Background(), tl.Messages())

	assert.Equal(t, EffectShowReport, res.Effect)
	assert.Same(t, want, res.Payload)
	assert.Equal(t, before, gotHistory)
	assert.Equal(t, before, tl.Messages(), "report requests never modify the timeline")
}

func TestReportRequester_Unauthorized(t *testing.T) {
	store := signedInStore(t)
	r := NewReportRequester(reportFunc(func(context.Context, string, []model.Message) (*model.ReportPayload, error) {
		return nil, cloud.ErrUnauthorized
	}), store, nil)

	res := r.Request(context.Background(), nil)
	assert.Equal(t, EffectRedirectLogin, res.Effect)

	creds, _ := store.Read()
	assert.True(t, creds.HasToken(), "Request leaves the store to Resolve")

	tl := greetedTimeline()
	assert.Equal(t, EffectRedirectLogin, r.Resolve(tl, tl.ID(), res))
	creds, _ = store.Read()
	assert.False(t, creds.HasToken())
}

func TestReportRequester_ResolveStaleTimeline(t *testing.T) {
	tests := []struct {
		name string
		res  ReportResult
	}{
		{"report", ReportResult{Effect: EffectShowReport, Payload: &model.ReportPayload{Report: "previous conversation"}}},
		{"unauthorized", ReportResult{Effect: EffectRedirectLogin, Err: cloud.ErrUnauthorized}},
		{"failure", ReportResult{Effect: EffectNone, Err: cloud.ErrTransport}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore(0)
			require.NoError(t, store.Write("token-B", nil))
			r := NewReportRequester(nil, store, nil)

			old := greetedTimeline()
			fresh := greetedTimeline()

			assert.Equal(t, EffectNone, r.Resolve(fresh, old.ID(), tt.res))
			assert.Equal(t, EffectNone, r.Resolve(nil, old.ID(), tt.res))

			creds, err := store.Read()
			require.NoError(t, err)
			assert.Equal(t, "token-B", creds.Token)
		})
	}
}

func TestReportRequester_ResolveLivePassesEffect(t *testing.T) {
	store := signedInStore(t)
	r := NewReportRequester(nil, store, nil)
	tl := greetedTimeline()

	assert.Equal(t, EffectShowReport, r.Resolve(tl, tl.ID(), ReportResult{Effect: EffectShowReport}))
	assert.Equal(t, EffectNone, r.Resolve(tl, tl.ID(), ReportResult{Effect: EffectNone}))
	creds, err := store.Read()
	require.NoError(t, err)
	assert.True(t, creds.HasToken())
}

func TestReportRequester_OtherFailuresStay(t *testing.T) {
	for _, err := range []error{
		cloud.ErrTransport,
		cloud.ErrMalformedResponse,
		&cloud.APIError{Status: 500},
		errors.New("boom"),
	} {
		store := signedInStore(t)
		r := NewReportRequester(reportFunc(func(context.Context, string, []model.Message) (*model.ReportPayload, error) {
			return nil, err
		}), store, nil)

		res := r.Request(context.Background(), nil)
		assert.Equal(t, EffectNone, res.Effect, "err %v", err)
		assert.Nil(t, res.Payload)

		creds, _ := store.Read()
		assert.True(t, creds.HasToken(), "session kept after %v", err)
	}
}

func TestReportRequester_NoSession(t *testing.T) {
	called := false
	r := NewReportRequester(reportFunc(func(context.Context, string, []model.Message) (*model.ReportPayload, error) {
		called = true
		return nil, nil
	}), storage.NewMemoryStore(0), nil)

	res := r.Request(context.Background(), nil)
	assert.Equal(t, EffectRedirectLogin, res.Effect)
	assert.False(t, called)
}
