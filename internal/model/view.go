// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// View identifies the panel shown in the main content area.
type View string

const (
	ViewDM            View = "dm"
	ViewFriends       View = "friends"
	ViewSettings      View = "settings"
	ViewNotifications View = "notifications"
	ViewServer        View = "server"
)

// String returns the string representation of the view.
func (v View) String() string {
	return string(v)
}

// Title returns the header title for views that do not depend on a selection.
func (v View) Title() string {
	switch v {
	case ViewFriends:
		return "Friends"
	case ViewSettings:
		return "Settings"
	case ViewNotifications:
		return "Notifications"
	case ViewDM:
		return "Direct Messages"
	default:
		return ""
	}
}

// IsHome reports whether the view belongs to the home (non-server) sidebar.
func (v View) IsHome() bool {
	return v != ViewServer
}

// HasConversation reports whether the view shows a message list and input.
func (v View) HasConversation() bool {
	return v == ViewDM || v == ViewServer
}
