// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/soulfull-tui/internal/model"
)

// newTestClient starts a server with handler and returns a client for it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL).WithHTTPClient(server.Client())
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChat_Success(t *testing.T) {
	var gotAuth, gotBody, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		respond(w, http.StatusOK, `{"content":"Hi there"}`)
	})

	reply, err := client.Chat(context.Background(), "tok", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there", reply)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.JSONEq(t, `{"messages":[{"content":"hello"}]}`, gotBody)
	assert.NotEmpty(t, gotRequestID)
}

func TestChat_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"expired"}`, ErrUnauthorized},
		{"unauthorized no body", http.StatusUnauthorized, ``, ErrUnauthorized},
		{"missing content", http.StatusOK, `{}`, ErrMalformedResponse},
		{"null content", http.StatusOK, `{"content":null}`, ErrMalformedResponse},
		{"empty content", http.StatusOK, `{"content":""}`, ErrMalformedResponse},
		{"not json", http.StatusOK, `<html>`, ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				respond(w, tt.status, tt.body)
			})
			_, err := client.Chat(context.Background(), "tok", "hello")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Chat() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChat_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusInternalServerError, `{"error":"model offline"}`)
	})

	_, err := client.Chat(context.Background(), "tok", "hello")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "want *APIError, got %v", err)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "model offline", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "HTTP 500")
}

func TestChat_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).Chat(context.Background(), "tok", "hello")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestChat_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	client.WithTimeout(50 * time.Millisecond)

	_, err := client.Chat(context.Background(), "tok", "hello")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestChat_ResponseTooLarge(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"content":"`))
		w.Write([]byte(strings.Repeat("a", MaxResponseSize)))
		w.Write([]byte(`"}`))
	})

	_, err := client.Chat(context.Background(), "tok", "hello")
	assert.Error(t, err)
}

func TestClient_RateLimit(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		respond(w, http.StatusOK, `{"content":"ok"}`)
	})
	// One request per minute with a burst of one: the second call waits.
	client.WithRateLimit(1)

	_, err := client.Chat(context.Background(), "tok", "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Chat(ctx, "tok", "second")
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, int32(1), calls.Load())
}

// =============================================================================
// REPORT TESTS
// =============================================================================

func TestReport_Success(t *testing.T) {
	var got ReportRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/report", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		respond(w, http.StatusOK, `{"report":"R","metrics":{"stress":4,"depression":2,"anxiety":7},"suggestions":"S"}`)
	})

	history := []model.Message{
		{ID: 1, Text: "Hello there!", Sender: model.SenderBot},
		{ID: 2, Text: "hi", Sender: model.SenderUser},
	}
	payload, err := client.Report(context.Background(), "tok", history)
	require.NoError(t, err)

	assert.Equal(t, &model.ReportPayload{
		Report:      "R",
		Metrics:     model.Metrics{Stress: 4, Depression: 2, Anxiety: 7},
		Suggestions: "S",
	}, payload)
	assert.Equal(t, history, got.ChatHistory)
}

func TestReport_SendsEmptyArrayForNoHistory(t *testing.T) {
	var raw string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		raw = string(b)
		respond(w, http.StatusOK, `{}`)
	})

	_, err := client.Report(context.Background(), "tok", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"chatHistory":[]}`, raw)
}

func TestReport_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{"unauthorized", 401, ``, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrUnauthorized) }},
		{"server error", 502, `bad gateway`, func(t *testing.T, err error) {
			var apiErr *APIError
			assert.ErrorAs(t, err, &apiErr)
		}},
		{"malformed", 200, `nope`, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrMalformedResponse) }},
		{"null body", 200, `null`, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrMalformedResponse) }},
		{"array body", 200, `[]`, func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrMalformedResponse) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				respond(w, tt.status, tt.body)
			})
			payload, err := client.Report(context.Background(), "tok", nil)
			assert.Nil(t, payload)
			tt.check(t, err)
		})
	}
}

func TestReport_MissingFieldsAccepted(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respond(w, 200, `{"report":"Mostly calm."}`)
	})

	payload, err := client.Report(context.Background(), "tok", nil)
	require.NoError(t, err)
	assert.Equal(t, "Mostly calm.", payload.Report)
	assert.Zero(t, payload.Metrics)
	assert.Empty(t, payload.Suggestions)
}

// =============================================================================
// AUTH TESTS
// =============================================================================

func TestLogin_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, LoginRequest{Username: "sam", Password: "Secret123"}, req)
		respond(w, 200, `{"session":{"access_token":"tok"},"user":{"user_metadata":{"username":"sam"}}}`)
	})

	res, err := client.Login(context.Background(), LoginRequest{Username: "sam", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.JSONEq(t, `{"user_metadata":{"username":"sam"}}`, string(res.User))
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"unknown user", 404, `{"error":"nope"}`, ErrUserNotFound, ""},
		{"bad password", 401, `{"error":"Invalid credentials"}`, nil, "Invalid credentials"},
		{"server error", 500, `{}`, nil, ""},
		{"no token", 200, `{"session":{}}`, ErrMalformedResponse, ""},
		{"no session", 200, `{"user":{}}`, ErrMalformedResponse, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				respond(w, tt.status, tt.body)
			})
			_, err := client.Login(context.Background(), LoginRequest{Username: "u", Password: "p"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.NotErrorIs(t, err, ErrUnauthorized, "bad credentials are not a lost session")
		})
	}
}

func TestSignup_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/signup", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Sam Doe", req["fullName"])
		assert.Equal(t, "sam@example.com", req["email"])
		respond(w, 201, `{"session":{"access_token":"tok"},"user":null}`)
	})

	res, err := client.Signup(context.Background(), SignupRequest{
		FullName: "Sam Doe",
		Email:    "sam@example.com",
		Username: "sam",
		Password: "Secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Nil(t, res.User)
}

func TestNewClient_Defaults(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("").BaseURL())
	assert.Equal(t, "https://api.example.com", NewClient("https://api.example.com/").BaseURL())
}
