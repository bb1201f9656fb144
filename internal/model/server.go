// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// SERVER TYPE
// =============================================================================

// Server is a community the user belongs to, shown as a glyph in the server rail.
type Server struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// =============================================================================
// CHANNEL TYPE
// =============================================================================

// ChannelKind distinguishes text channels from voice channels.
type ChannelKind string

const (
	ChannelText  ChannelKind = "text"
	ChannelVoice ChannelKind = "voice"
)

// String returns the string representation of the kind.
func (k ChannelKind) String() string {
	return string(k)
}

// Channel is a text or voice room inside a server.
type Channel struct {
	ID       string      `json:"id"`
	ServerID string      `json:"server_id"`
	Name     string      `json:"name"`
	Kind     ChannelKind `json:"kind"`
	Unread   int         `json:"unread,omitempty"`
}

// IsVoice reports whether the channel hosts calls.
func (c Channel) IsVoice() bool {
	return c.Kind == ChannelVoice
}
