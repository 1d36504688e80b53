// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/soulfull-tui/internal/session"
)

func newStatusCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connection and session details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.withRuntime(func(rt *Runtime) error {
				return printStatus(state, rt, time.Now())
			})
		},
	}
}

func printStatus(state *rootState, rt *Runtime, now time.Time) error {
	w := state.opts.Stdout
	fmt.Fprintln(w, TitleStyle.Render("SoulFull Status"))

	printField(w, "Service", rt.Client.BaseURL())
	printField(w, "Session store", fmt.Sprintf("%s (%s)", rt.Config.Session.Backend, rt.SessionPath))

	res := rt.Guard.Check()
	if !res.Allowed {
		printField(w, "Signed in", "no")
		fmt.Fprintln(w, DimStyle.Render("Run 'soulfull login' to sign in."))
		return nil
	}
	printField(w, "Signed in", "yes, as "+res.DisplayName)

	creds, err := rt.Store.Read()
	if err != nil {
		return err
	}
	left, ok := session.Remaining(creds.Token, now)
	switch {
	case !ok:
		printField(w, "Token expiry", "unknown")
	case left <= 0:
		printField(w, "Token expiry", "expired")
		printWarning(w, "The server will reject this session. Sign in again.")
	default:
		printField(w, "Token expiry", "in "+left.Round(time.Minute).String())
	}
	return nil
}
