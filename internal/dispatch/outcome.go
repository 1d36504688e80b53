// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"errors"

	"github.com/jeranaias/soulfull-tui/internal/cloud"
)

// Texts placed in a placeholder when no real reply is available.
const (
	FallbackReply    = "No response"
	TransportApology = "Sorry, I'm having trouble connecting. Please try again."
)

// OutcomeKind classifies a chat round trip.
type OutcomeKind int

const (
	OutcomeReply OutcomeKind = iota
	OutcomeMalformed
	OutcomeUnauthorized
	OutcomeTransportFailure
)

// String returns the name used in logs.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeReply:
		return "reply"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Outcome is the typed result of Exchange.
type Outcome struct {
	Kind OutcomeKind
	// Text is the reply for OutcomeReply and empty otherwise.
	Text string
	// Err is the underlying error, kept for logging.
	Err error
}

// PlaceholderText returns what the placeholder should display, and false
// for outcomes that leave the placeholder alone.
func (o Outcome) PlaceholderText() (string, bool) {
	switch o.Kind {
	case OutcomeReply:
		return o.Text, true
	case OutcomeMalformed:
		return FallbackReply, true
	case OutcomeTransportFailure:
		return TransportApology, true
	default:
		return "", false
	}
}

// Classify maps a chat call's return values onto an Outcome.
//
// Only a transport error gets the apology. Any other failure, including a
// non-401 error status, is treated as a reply without content.
func Classify(reply string, err error) Outcome {
	if err == nil {
		if reply == "" {
			return Outcome{Kind: OutcomeMalformed}
		}
		return Outcome{Kind: OutcomeReply, Text: reply}
	}

	switch {
	case errors.Is(err, cloud.ErrUnauthorized):
		return Outcome{Kind: OutcomeUnauthorized, Err: err}
	case errors.Is(err, cloud.ErrTransport):
		return Outcome{Kind: OutcomeTransportFailure, Err: err}
	default:
		return Outcome{Kind: OutcomeMalformed, Err: err}
	}
}

// Effect tells the view what to do after a result has been applied.
type Effect int

const (
	// EffectNone keeps the current view.
	EffectNone Effect = iota
	// EffectRedirectLogin replaces the current view with login.
	EffectRedirectLogin
	// EffectShowReport moves to the report view with a payload.
	EffectShowReport
)
