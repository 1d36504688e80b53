// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/soulfull-tui/internal/model"
)

// Route names a top-level view.
type Route int

const (
	RouteLogin Route = iota
	RouteSignup
	RouteChat
	RouteReport
)

// String returns the route's path-like name.
func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "/login"
	case RouteSignup:
		return "/signup"
	case RouteChat:
		return "/chat"
	case RouteReport:
		return "/report"
	default:
		return "/"
	}
}

// NavigateMsg asks the root model to switch views. Report is only read for
// RouteReport and is passed through untouched.
type NavigateMsg struct {
	To     Route
	Report *model.ReportPayload
}

// Navigate returns a command that emits NavigateMsg for to.
func Navigate(to Route) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{To: to}
	}
}

// ShowReport returns a command that opens the report view with payload.
func ShowReport(payload *model.ReportPayload) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{To: RouteReport, Report: payload}
	}
}
