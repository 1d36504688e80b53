// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the soulfull command line.
//
// Running soulfull with no command starts the terminal UI. The other
// commands manage the session and configuration without it:
//
//	soulfull                  Start the chat UI
//	soulfull chat             Same as above
//	soulfull login            Sign in
//	soulfull signup           Create an account
//	soulfull logout           Forget the stored session
//	soulfull status           Show connection and session details
//	soulfull config show      Print the effective configuration
//	soulfull config path      Print the config file location
//	soulfull config get KEY   Print one setting
//	soulfull config set KEY V Change one setting
//	soulfull version          Print version information
package cli
