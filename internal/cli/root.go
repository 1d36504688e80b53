// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/soulfull-tui/internal/config"
)

// Version information, set at build time via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Options customise the command tree. Zero values use the real terminal.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	// NewPrompter opens a prompter for interactive commands.
	NewPrompter func(operation string) (Prompter, error)
	// RunTUI starts the full-screen interface.
	RunTUI func(rt *Runtime) error
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.NewPrompter == nil {
		o.NewPrompter = newLinerPrompter
	}
	if o.RunTUI == nil {
		o.RunTUI = runTUI
	}
	return o
}

// rootState is shared by every command of one invocation.
type rootState struct {
	opts       Options
	configPath string
	apiURL     string
	verbose    bool
	cfg        *config.Config
}

// loadConfig reads the configuration once per invocation and applies the
// global flags over it.
func (s *rootState) loadConfig() (*config.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}

	var (
		cfg *config.Config
		err error
	)
	if s.configPath != "" {
		cfg, err = config.LoadFromPath(s.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if s.apiURL != "" {
		if err := cfg.Set("api.base_url", s.apiURL); err != nil {
			return nil, err
		}
	}
	config.SetGlobal(cfg)
	s.cfg = cfg
	return cfg, nil
}

// withRuntime builds a Runtime, runs fn and closes it.
func (s *rootState) withRuntime(fn func(rt *Runtime) error) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	rt, err := NewRuntime(cfg, s.verbose)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt)
}

// requestContext bounds a single CLI request by the configured timeout.
func (s *rootState) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if s.cfg == nil || s.cfg.API.Timeout() <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.API.Timeout())
}

// NewRootCmd builds the soulfull command tree.
func NewRootCmd(opts Options) *cobra.Command {
	state := &rootState{opts: opts.withDefaults()}

	root := &cobra.Command{
		Use:           "soulfull",
		Short:         "A supportive chat companion for your terminal",
		Long:          "SoulFull is a terminal client for the SoulFull chat service.\nRun without a command to open the chat.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.withRuntime(state.opts.RunTUI)
		},
	}
	root.SetOut(state.opts.Stdout)
	root.SetErr(state.opts.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&state.configPath, "config", "", "config file (default ~/.soulfull/config.toml)")
	flags.StringVar(&state.apiURL, "api-url", "", "SoulFull service URL")
	flags.BoolVarP(&state.verbose, "verbose", "v", false, "mirror the log to stderr")

	root.AddCommand(
		newChatCmd(state),
		newLoginCmd(state),
		newSignupCmd(state),
		newLogoutCmd(state),
		newStatusCmd(state),
		newConfigCmd(state),
		newVersionCmd(state),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	opts := Options{}.withDefaults()
	if err := NewRootCmd(opts).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			printError(opts.Stderr, "%s", err)
		}
		return 1
	}
	return 0
}

func newChatCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the chat (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.withRuntime(state.opts.RunTUI)
		},
	}
}
