// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/soulfull-tui/internal/account"
	"github.com/jeranaias/soulfull-tui/internal/cloud"
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("command failed")

func newLoginCmd(state *rootState) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to SoulFull",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := state.opts.NewPrompter("log in")
			if err != nil {
				return err
			}
			defer p.Close()

			if username == "" {
				if username, err = p.Prompt("Username: "); err != nil {
					return err
				}
			}
			password, err := p.PasswordPrompt("Password: ")
			if err != nil {
				return err
			}

			return state.withRuntime(func(rt *Runtime) error {
				ctx, cancel := state.requestContext(cmd)
				defer cancel()

				creds, err := rt.Accounts.Login(ctx, cloud.LoginRequest{Username: username, Password: password})
				if err != nil {
					return reportFailure(state, err)
				}
				printSuccess(state.opts.Stdout, "Signed in as %s", creds.DisplayName())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted when empty)")
	return cmd
}

func newSignupCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create a SoulFull account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := state.opts.NewPrompter("sign up")
			if err != nil {
				return err
			}
			defer p.Close()

			var req cloud.SignupRequest
			for _, q := range []struct {
				label string
				dst   *string
			}{
				{"Full name: ", &req.FullName},
				{"Email: ", &req.Email},
				{"Username: ", &req.Username},
			} {
				if *q.dst, err = p.Prompt(q.label); err != nil {
					return err
				}
			}

			fmt.Fprintln(state.opts.Stdout, DimStyle.Render("At least 8 characters, one uppercase letter and one digit"))
			if req.Password, err = p.PasswordPrompt("Password: "); err != nil {
				return err
			}

			return state.withRuntime(func(rt *Runtime) error {
				ctx, cancel := state.requestContext(cmd)
				defer cancel()

				creds, err := rt.Accounts.Signup(ctx, req)
				if err != nil {
					return reportFailure(state, err)
				}
				printSuccess(state.opts.Stdout, "Welcome, %s! Your account is ready.", creds.DisplayName())
				return nil
			})
		},
	}
}

func newLogoutCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.withRuntime(func(rt *Runtime) error {
				if err := rt.Accounts.Logout(); err != nil {
					return err
				}
				printSuccess(state.opts.Stdout, "Signed out")
				return nil
			})
		},
	}
}

// reportFailure prints the user-facing message for err, with the broken
// password rule when there is one.
func reportFailure(state *rootState, err error) error {
	msg := account.Message(err)
	var ae *account.Error
	if errors.As(err, &ae) && ae.Message == account.MsgFixPassword && ae.Err != nil {
		msg += ": " + strings.TrimSpace(ae.Err.Error())
	}
	printError(state.opts.Stderr, "%s", msg)
	return errReported
}
