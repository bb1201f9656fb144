// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jeranaias/huddle/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

func configCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and modify configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, opts, false)
		},
	}

	var asJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, opts, asJSON)
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, opts, force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Example: `  huddle config get user.username
  huddle config get call.stun_servers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			v, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one configuration value and save",
		Example: `  huddle config set ui.theme light
  huddle config set media.camera denied
  huddle config set call.stun_servers stun:stun.l.google.com:19302`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfig(cmd, opts, args[0], args[1])
		},
	}

	cmd.AddCommand(show, path, initCmd, get, set)
	return cmd
}

func showConfig(cmd *cobra.Command, opts *globalOptions, asJSON bool) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	text, err := cfg.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	p, _ := opts.path()
	fmt.Fprintln(out, DimStyle.Render("# "+p))
	fmt.Fprint(out, text)
	return nil
}

func initConfig(cmd *cobra.Command, opts *globalOptions, force bool) error {
	p, err := opts.path()
	if err != nil {
		return err
	}
	if _, err := os.Stat(p); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", p)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.SaveTOML(config.Default(), p); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" Wrote "+p)
	return nil
}

// setConfig edits the file itself, so environment overrides are not persisted.
func setConfig(cmd *cobra.Command, opts *globalOptions, key, value string) error {
	p, err := opts.path()
	if err != nil {
		return err
	}

	cfg, err := config.LoadFile(p)
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.SaveTOML(cfg, p); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), LabelStyle.Render(key)+ValueStyle.Render(value))
	return nil
}
