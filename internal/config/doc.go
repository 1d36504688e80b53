// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for soulfull.
//
// Configuration is resolved in this order, later sources winning:
//
//   - Built-in defaults (Default)
//   - ~/.soulfull/config.toml
//   - A .env file in the working directory
//   - SOULFULL_* environment variables
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	client := cloud.NewClient(cfg.API.BaseURL)
//
// Or through the process-wide instance:
//
//	cfg := config.Global()
//
// # Environment Variables
//
//   - SOULFULL_HOME: directory for config, session and logs
//   - SOULFULL_API_URL: service base URL
//   - SOULFULL_SESSION_BACKEND: file, sqlite or memory
//   - SOULFULL_LOG_LEVEL: debug, info, warn or error
package config
