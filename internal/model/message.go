// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for servers, channels, friends and messages.
package model

import (
	"net/url"
	"strings"
	"time"
)

// TimestampLayout is the clock format shown next to authors and DM previews.
const TimestampLayout = "15:04"

// AvatarBaseURL is the avatar generator used for seeded avatar references.
const AvatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a channel or direct conversation.
type Message struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Avatar    string `json:"avatar"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`

	// IsOwn marks messages written by the local user.
	IsOwn bool `json:"is_own,omitempty"`
}

// NewMessage creates a message stamped with at.
func NewMessage(id, author, content string, at time.Time, own bool) Message {
	return Message{
		ID:        id,
		Author:    author,
		Avatar:    AvatarURL(author),
		Content:   content,
		Timestamp: FormatTimestamp(at),
		IsOwn:     own,
	}
}

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m Message) Preview(maxLen int) string {
	return Preview(m.Content, maxLen)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// FormatTimestamp renders t in the display layout used across the UI.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// AvatarURL builds the seeded avatar reference for a display name.
func AvatarURL(seed string) string {
	return AvatarBaseURL + url.QueryEscape(seed)
}

// Initial returns the first letter of name, upper-cased, for avatar fallbacks.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Preview collapses whitespace and truncates s to maxLen runes.
func Preview(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
