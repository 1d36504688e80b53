// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dispatch turns user sends and report requests into service round
// trips and folds the results back into the timeline.
//
// Both types split their work so the blocking part can run inside a
// tea.Cmd while every timeline mutation happens on the UI goroutine:
//
//	turn, ok := d.Begin(tl, input)      // Update: optimistic pair
//	outcome := d.Exchange(ctx, turn)    // tea.Cmd: network
//	effect := d.Resolve(tl, turn, outcome) // Update: settle placeholder
//
// # Outcomes
//
//   - OutcomeReply: the placeholder shows the reply
//   - OutcomeMalformed: the placeholder shows FallbackReply
//   - OutcomeTransportFailure: the placeholder shows TransportApology
//   - OutcomeUnauthorized: the session is cleared and the caller must
//     navigate to login; the placeholder is left as is
package dispatch
