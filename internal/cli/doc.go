// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli holds the huddle command tree.
//
// Running huddle without a subcommand starts the terminal client. The other
// commands inspect and edit the configuration file:
//
//	huddle                      Start the client
//	huddle version              Print version information
//	huddle config show          Print the effective configuration
//	huddle config path          Print the configuration file location
//	huddle config init          Write a default configuration file
//	huddle config get <key>     Print one value (dot notation)
//	huddle config set <k> <v>   Change one value and save
//
// Global flags:
//
//	-c, --config <path>   Use a configuration file other than ~/.huddle/config.toml
//	    --dev             Debug level console logging to the log file
package cli
