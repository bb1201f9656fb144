// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandro-lugaresi/hub"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/huddle/internal/call"
	"github.com/jeranaias/huddle/internal/config"
	"github.com/jeranaias/huddle/internal/event"
	"github.com/jeranaias/huddle/internal/logging"
	"github.com/jeranaias/huddle/internal/media"
	"github.com/jeranaias/huddle/internal/model"
	"github.com/jeranaias/huddle/internal/store"
	"github.com/jeranaias/huddle/internal/ui/app"
)

// runClient wires the store, media and call layers into the bubbletea program.
func runClient(cmd *cobra.Command, opts *globalOptions) error {
	if err := RequiresTTY("start the client"); err != nil {
		return err
	}

	cfg, err := opts.load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
		if cfg == nil {
			cfg = config.Default()
		}
	}
	if opts.dev {
		cfg.Log.Enabled = true
		cfg.Log.Development = true
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	path, err := opts.path()
	if err != nil {
		return err
	}
	logger.Info("starting huddle", zap.String("version", Version), zap.String("config", path))

	h := hub.New()

	profile := model.Profile{Username: cfg.User.Username, Tag: cfg.User.Tag, Email: cfg.User.Email}
	st := store.New(profile)
	st.Seed(profile)

	calls := call.NewController(
		media.NewVirtualDevices(cfg.Media.Policy(), logger),
		media.NewPionFactory(logger),
		event.NewHubNotifier(h),
		h,
		logger,
		call.Options{ICEServers: cfg.Call.STUNServers},
	)
	defer func() { _ = calls.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	err = config.Watch(ctx, path, func(c *config.Config, err error) {
		fields := hub.Fields{event.FieldConfig: c}
		if err != nil {
			fields[event.FieldError] = err
		}
		h.Publish(hub.Message{Name: event.ConfigReloaded, Fields: fields})
	})
	if err != nil {
		logger.Warn("config reload disabled", zap.Error(err))
	}

	m := app.New(app.Options{
		Store:       st,
		Controller:  calls,
		Hub:         h,
		Config:      cfg,
		Logger:      logger,
		SaveProfile: profileSaver(path),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("client exited: %w", err)
	}
	return nil
}

// profileSaver persists settings edits into the file at path. The file is
// re-read so environment overrides and --dev never reach the disk.
func profileSaver(path string) func(config.UserConfig) error {
	return func(u config.UserConfig) error {
		return config.SaveUser(path, u)
	}
}
