// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings outside text entry.
type KeyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Up        key.Binding
	Down      key.Binding
	Activate  key.Binding
	FocusText key.Binding
	Leave     key.Binding

	AudioCall    key.Binding
	VideoCall    key.Binding
	Mic          key.Binding
	Camera       key.Binding
	ScreenShare  key.Binding
	EndCall      key.Binding
	ToggleDialog key.Binding

	AddFriend    key.Binding
	RemoveFriend key.Binding
	AddServer    key.Binding
	Invite       key.Binding
	ServerPrefs  key.Binding

	Home          key.Binding
	Friends       key.Binding
	Notifications key.Binding
	Settings      key.Binding

	DismissToast key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev pane"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		FocusText: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "write"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave input"),
		),
		AudioCall: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "call"),
		),
		VideoCall: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "video call"),
		),
		Mic: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mic"),
		),
		Camera: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "camera"),
		),
		ScreenShare: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share screen"),
		),
		EndCall: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "hang up"),
		),
		ToggleDialog: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "call window"),
		),
		AddFriend: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add friend"),
		),
		RemoveFriend: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove friend"),
		),
		AddServer: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new server"),
		),
		Invite: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "invite"),
		),
		ServerPrefs: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "server settings"),
		),
		Home: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "home"),
		),
		Friends: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "friends"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "notifications"),
		),
		Settings: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "settings"),
		),
		DismissToast: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss toast"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Activate, k.FocusText, k.AudioCall, k.VideoCall, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.NextFocus, k.PrevFocus, k.Up, k.Down, k.Activate, k.FocusText, k.Leave},
		// Call
		{k.AudioCall, k.VideoCall, k.Mic, k.Camera, k.ScreenShare, k.EndCall, k.ToggleDialog},
		// People and servers
		{k.AddFriend, k.RemoveFriend, k.AddServer, k.Invite, k.ServerPrefs},
		// Views
		{k.Home, k.Friends, k.Notifications, k.Settings, k.DismissToast, k.Help, k.Quit},
	}
}
