// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the bubbletea program of the huddle client.
//
// The Model owns the store, drives the call controller and renders the
// components. Controller calls that may block on a permission prompt run as
// tea.Cmd values and report back through callResultMsg. Call updates, toasts
// and config reloads arrive from the hub.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/jeranaias/huddle/internal/call"
	"github.com/jeranaias/huddle/internal/config"
	"github.com/jeranaias/huddle/internal/event"
	"github.com/jeranaias/huddle/internal/store"
	"github.com/jeranaias/huddle/internal/ui/components"
	"github.com/jeranaias/huddle/internal/ui/styles"
)

// CallController is the part of call.Controller the UI drives.
type CallController interface {
	Start(ctx context.Context, participant string, withVideo bool) error
	End()
	Close() error
	ToggleMicrophone()
	ToggleCamera(ctx context.Context) error
	ToggleScreenShare(ctx context.Context) error
	Snapshot() call.Session
}

// Options configures a Model.
type Options struct {
	Store      *store.Store
	Controller CallController
	Hub        *hub.Hub
	Config     *config.Config
	Logger     *zap.Logger

	// SaveProfile persists the [user] section after a settings edit.
	// Nil disables persistence.
	SaveProfile func(config.UserConfig) error
}

// =============================================================================
// FOCUS AND PROMPTS
// =============================================================================

type focus int

const (
	focusRail focus = iota
	focusSidebar
	focusMain
	focusInput
)

type promptKind int

const (
	promptAddFriend promptKind = iota
	promptAddServer
	promptUsername
	promptEmail
)

type prompt struct {
	kind  promptKind
	label string
	input textinput.Model
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the root bubbletea model.
type Model struct {
	store    *store.Store
	calls    CallController
	hub      *hub.Hub
	sub      hub.Subscription
	cfg      *config.Config
	logger   *zap.Logger
	saveUser func(config.UserConfig) error
	theme    *styles.Theme
	keys     KeyMap
	help     help.Model
	toasts   *components.ToastManager
	markdown *components.Markdown
	now      func() time.Time

	width  int
	height int

	focus         focus
	railCursor    int
	sidebarCursor int
	mainCursor    int

	input   textinput.Model
	prompt  *prompt
	session call.Session

	// callChannel is the voice channel the current call was started from.
	callChannel string
	dialogOpen  bool
	quitting    bool
}

// New creates the model and subscribes it to the hub topics it renders.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 2000

	theme := styles.NewTheme(cfg.UI.Theme)

	m := &Model{
		store:    opts.Store,
		calls:    opts.Controller,
		hub:      opts.Hub,
		cfg:      cfg,
		logger:   logger.Named("app"),
		saveUser: opts.SaveProfile,
		theme:    theme,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		toasts:   components.NewToastManager(cfg.UI.ToastDuration()),
		markdown: components.NewMarkdown(cfg.UI.Markdown, theme.IsDark, 60),
		now:      time.Now,
		focus:    focusSidebar,
		input:    in,
		session:  opts.Controller.Snapshot(),
	}
	m.sub = opts.Hub.NonBlockingSubscribe(64, event.CallUpdated, event.NotifyToast, event.ConfigReloaded)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForHub(m.sub), components.ToastTickCmd())
}

// Toasts exposes the toast manager for rendering and tests.
func (m *Model) Toasts() *components.ToastManager {
	return m.toasts
}

// shutdown tears down the call and stops listening to the hub.
func (m *Model) shutdown() {
	if m.quitting {
		return
	}
	m.quitting = true
	if err := m.calls.Close(); err != nil {
		m.logger.Warn("failed to close call controller", zap.Error(err))
	}
	m.hub.Unsubscribe(m.sub)
}
