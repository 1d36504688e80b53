// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted")

// Prompter reads answers from the user.
type Prompter interface {
	Prompt(label string) (string, error)
	PasswordPrompt(label string) (string, error)
	Close() error
}

// linerPrompter prompts through liner, which gives line editing and hides
// password input.
type linerPrompter struct {
	state *liner.State
}

// newLinerPrompter returns a liner prompter, or TTYRequiredError when
// stdin is not a terminal.
func newLinerPrompter(operation string) (Prompter, error) {
	if err := RequiresTTY(operation); err != nil {
		return nil, err
	}
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &linerPrompter{state: state}, nil
}

func (p *linerPrompter) Prompt(label string) (string, error) {
	return translate(p.state.Prompt(label))
}

func (p *linerPrompter) PasswordPrompt(label string) (string, error) {
	return translate(p.state.PasswordPrompt(label))
}

func (p *linerPrompter) Close() error {
	return p.state.Close()
}

func translate(s string, err error) (string, error) {
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	return s, err
}
