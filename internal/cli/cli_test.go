// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// scriptedPrompter answers prompts from a fixed list.
type scriptedPrompter struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompter) next(label string) (string, error) {
	p.asked = append(p.asked, label)
	if len(p.answers) == 0 {
		return "", ErrAborted
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *scriptedPrompter) Prompt(label string) (string, error)         { return p.next(label) }
func (p *scriptedPrompter) PasswordPrompt(label string) (string, error) { return p.next(label) }
func (p *scriptedPrompter) Close() error                                { return nil }

type harness struct {
	home     string
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	prompter *scriptedPrompter
	tuiRuns  int
}

func newHarness(t *testing.T, answers ...string) *harness {
	t.Helper()
	ForceColorsEnabled(false)
	h := &harness{home: t.TempDir(), prompter: &scriptedPrompter{answers: answers}}
	t.Setenv("SOULFULL_HOME", h.home)
	t.Setenv("SOULFULL_API_URL", "")
	t.Setenv("SOULFULL_SESSION_BACKEND", "")
	t.Setenv("SOULFULL_SESSION_PATH", "")
	t.Setenv("SOULFULL_LOG_PATH", "")
	return h
}

func (h *harness) run(args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()
	cmd := NewRootCmd(Options{
		Stdout: &h.stdout,
		Stderr: &h.stderr,
		NewPrompter: func(string) (Prompter, error) {
			return h.prompter, nil
		},
		RunTUI: func(rt *Runtime) error {
			h.tuiRuns++
			return nil
		},
	})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func authServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const okAuth = `{"session":{"access_token":"tok"},"user":{"user_metadata":{"username":"sam"}}}`

// =============================================================================
// COMMAND TESTS
// =============================================================================

func TestRoot_StartsTUI(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run())
	require.NoError(t, h.run("chat"))
	assert.Equal(t, 2, h.tuiRuns)
}

func TestVersion_JSON(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("version", "--json"))

	var info VersionInfo
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &info))
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestConfig_PathSetGet(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("config", "path"))
	assert.Equal(t, filepath.Join(h.home, "config.toml"), strings.TrimSpace(h.stdout.String()))

	require.NoError(t, h.run("config", "set", "ui.theme", "light"))
	require.NoError(t, h.run("config", "get", "ui.theme"))
	assert.Equal(t, "light", strings.TrimSpace(h.stdout.String()))
}

func TestConfig_SetRejectsInvalid(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("config", "set", "session.backend", "floppy"))
	assert.Error(t, h.run("config", "set", "no.such.key", "1"))
}

func TestLogin_Success(t *testing.T) {
	srv := authServer(t, http.StatusOK, okAuth)
	h := newHarness(t, "sam", "Secret123")

	require.NoError(t, h.run("--api-url", srv.URL, "login"))
	assert.Contains(t, h.stdout.String(), "Signed in as sam")
	assert.Equal(t, []string{"Username: ", "Password: "}, h.prompter.asked)

	require.NoError(t, h.run("--api-url", srv.URL, "status"))
	out := h.stdout.String()
	assert.Contains(t, out, "yes, as sam")
	assert.Contains(t, out, "unknown", "opaque token has no expiry")
}

func TestLogin_UsernameFlagSkipsPrompt(t *testing.T) {
	srv := authServer(t, http.StatusOK, okAuth)
	h := newHarness(t, "Secret123")

	require.NoError(t, h.run("--api-url", srv.URL, "login", "-u", "sam"))
	assert.Equal(t, []string{"Password: "}, h.prompter.asked)
}

func TestLogin_UnknownUser(t *testing.T) {
	srv := authServer(t, http.StatusNotFound, `{}`)
	h := newHarness(t, "ghost", "pw")

	err := h.run("--api-url", srv.URL, "login")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, h.stderr.String(), "User does not exist")
}

func TestLogin_Aborted(t *testing.T) {
	h := newHarness(t)
	assert.ErrorIs(t, h.run("login"), ErrAborted)
}

func TestSignup_PasswordRule(t *testing.T) {
	srv := authServer(t, http.StatusOK, okAuth)
	h := newHarness(t, "Sam Doe", "sam@example.com", "sam", "lowercase1")

	err := h.run("--api-url", srv.URL, "signup")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, h.stderr.String(), "Please fix password requirements")
	assert.Contains(t, h.stderr.String(), "uppercase")
}

func TestLogout_ClearsSession(t *testing.T) {
	srv := authServer(t, http.StatusOK, okAuth)
	h := newHarness(t, "sam", "Secret123")
	require.NoError(t, h.run("--api-url", srv.URL, "login"))

	require.NoError(t, h.run("logout"))
	assert.Contains(t, h.stdout.String(), "Signed out")

	require.NoError(t, h.run("status"))
	assert.Contains(t, h.stdout.String(), "soulfull login")
}

func TestPrompterError(t *testing.T) {
	h := newHarness(t)
	cmd := NewRootCmd(Options{
		Stdout: &h.stdout,
		Stderr: &h.stderr,
		NewPrompter: func(op string) (Prompter, error) {
			return nil, &TTYRequiredError{Operation: op}
		},
	})
	cmd.SetArgs([]string{"login"})

	var ttyErr *TTYRequiredError
	require.True(t, errors.As(cmd.Execute(), &ttyErr))
	assert.Equal(t, "log in", ttyErr.Operation)
}
