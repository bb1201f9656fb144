// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// PRESENCE
// =============================================================================

// Presence is a friend's online indicator. It is set when the friend is
// created and nothing updates it afterwards.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceOffline Presence = "offline"
)

// String returns the string representation of the presence.
func (p Presence) String() string {
	return string(p)
}

// DisplayName returns a human-readable label for the presence.
func (p Presence) DisplayName() string {
	switch p {
	case PresenceOnline:
		return "Online"
	case PresenceOffline:
		return "Offline"
	default:
		return string(p)
	}
}

// =============================================================================
// FRIEND TYPE
// =============================================================================

// Friend is a contact of the local user.
type Friend struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Status Presence `json:"status"`
	Avatar string   `json:"avatar"`
}

// =============================================================================
// DIRECT MESSAGE TYPE
// =============================================================================

// DirectMessage is a one-to-one conversation entry in the home sidebar.
// FriendID must reference an existing Friend.
type DirectMessage struct {
	ID           string   `json:"id"`
	FriendID     string   `json:"friend_id"`
	FriendName   string   `json:"friend_name"`
	FriendAvatar string   `json:"friend_avatar"`
	LastMessage  string   `json:"last_message"`
	Timestamp    string   `json:"timestamp"`
	Unread       int      `json:"unread,omitempty"`
	Status       Presence `json:"status"`
}

// =============================================================================
// PROFILE
// =============================================================================

// Profile holds the local user's account settings.
type Profile struct {
	Username string `json:"username"`
	Tag      string `json:"tag"`
	Email    string `json:"email"`
}
