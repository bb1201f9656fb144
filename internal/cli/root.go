// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/huddle/internal/config"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	dev        bool
}

// path returns the configuration file in use.
func (o *globalOptions) path() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.ConfigPath()
}

// load reads the configuration file. A missing file yields the defaults.
func (o *globalOptions) load() (*config.Config, error) {
	if o.configPath == "" {
		return config.Load()
	}
	if _, err := os.Stat(o.configPath); errors.Is(err, fs.ErrNotExist) {
		cfg := config.Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return config.LoadFromPath(o.configPath)
}

// NewRootCommand builds the huddle command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "huddle",
		Short: "Chat, friends and calls in the terminal",
		Long: `huddle is a terminal client for servers, direct messages and calls.

Run it without arguments to open the client. Press ? inside for key help.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClient(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file path")
	flags.BoolVar(&opts.dev, "dev", false, "development logging")

	root.AddCommand(
		versionCommand(),
		configCommand(opts),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "huddle %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	}
}
