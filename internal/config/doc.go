// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for huddle.
//
// Configuration is preferences only. Servers, friends and messages are never
// written to disk.
//
// # Key Types
//
//   - Config: main configuration structure with all settings
//   - CallConfig: STUN servers and permission prompt timeout
//   - MediaConfig: virtual device permission policy
//   - LogConfig: zap logger settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (HUDDLE_*)
//   - ~/.huddle/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
//	}
//
// Watch for edits:
//
//	err := config.Watch(ctx, path, func(cfg *config.Config) { ... })
package config
