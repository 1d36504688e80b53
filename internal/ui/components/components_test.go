// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/soulfull-tui/internal/model"
	"github.com/jeranaias/soulfull-tui/internal/ui/styles"
)

func TestNavigate(t *testing.T) {
	msg := Navigate(RouteLogin)()
	nav, ok := msg.(NavigateMsg)
	if !ok {
		t.Fatalf("Navigate() produced %T, want NavigateMsg", msg)
	}
	if nav.To != RouteLogin || nav.Report != nil {
		t.Errorf("Navigate(RouteLogin) = %+v", nav)
	}
}

func TestShowReport_PassesPayloadThrough(t *testing.T) {
	payload := &model.ReportPayload{Report: "r"}
	nav := ShowReport(payload)().(NavigateMsg)
	if nav.To != RouteReport {
		t.Errorf("To = %v, want RouteReport", nav.To)
	}
	if nav.Report != payload {
		t.Error("payload was copied or replaced")
	}
}

func TestRoute_String(t *testing.T) {
	if RouteChat.String() != "/chat" || RouteReport.String() != "/report" {
		t.Error("unexpected route names")
	}
}

func TestHeader_View(t *testing.T) {
	h := NewHeader(styles.NewTheme("dark"))
	h.Width = 40
	h.Right = "Sam"

	out := h.View()
	if !strings.Contains(out, "SoulFull") || !strings.Contains(out, "Sam") {
		t.Errorf("header missing title or user: %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("header line width %d exceeds 40", w)
		}
	}
}

func TestHeader_TruncatesLongName(t *testing.T) {
	h := NewHeader(styles.NewTheme("dark"))
	h.Width = 30
	h.Right = strings.Repeat("verylongname", 5)

	for _, line := range strings.Split(h.View(), "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Errorf("header line width %d exceeds 30", w)
		}
	}
}

func TestMarkdown_Disabled(t *testing.T) {
	md := NewMarkdown(false, true)
	if got := md.Render("**bold**", 40); got != "**bold**" {
		t.Errorf("disabled Render() = %q, want input unchanged", got)
	}
	var nilMD *Markdown
	if nilMD.Enabled() {
		t.Error("nil renderer reports enabled")
	}
}

func TestMarkdown_Enabled(t *testing.T) {
	md := NewMarkdown(true, true)
	got := md.Render("# Title\n\nSome **bold** text", 40)
	if strings.Contains(got, "**") {
		t.Errorf("markdown not rendered: %q", got)
	}
	if !strings.Contains(got, "bold") {
		t.Errorf("rendered output lost text: %q", got)
	}
}
