// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/soulfull-tui/internal/config"
)

func newConfigCmd(state *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := state.loadConfig()
				if err != nil {
					return err
				}
				fmt.Fprintln(state.opts.Stdout, cfg.String())
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := state.configFile()
				if err != nil {
					return err
				}
				fmt.Fprintln(state.opts.Stdout, path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get KEY",
			Short: "Print one setting, e.g. api.base_url",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := state.loadConfig()
				if err != nil {
					return err
				}
				v, err := cfg.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(state.opts.Stdout, v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set KEY VALUE",
			Short: "Change one setting in the config file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return state.setConfig(args[0], args[1])
			},
		},
	)
	return cmd
}

func (s *rootState) configFile() (string, error) {
	if s.configPath != "" {
		return s.configPath, nil
	}
	return config.ConfigPath()
}

// setConfig edits the file alone, so environment overrides are not written
// back.
func (s *rootState) setConfig(key, value string) error {
	path, err := s.configFile()
	if err != nil {
		return err
	}

	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return err
	}
	printSuccess(s.opts.Stdout, "%s = %s", key, value)
	return nil
}
