// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/huddle/internal/model"
)

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Blurple - Brand accent, selections, focus ring
var Blurple = lipgloss.AdaptiveColor{Light: "#4752C4", Dark: "#5865F2"}

// BlurpleDeep - Selected item backgrounds
var BlurpleDeep = lipgloss.AdaptiveColor{Light: "#C9CDFB", Dark: "#3C45A5"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Green - Online, success, active call
var Green = lipgloss.AdaptiveColor{Light: "#1A7F4B", Dark: "#23A55A"}

// Yellow - Warnings
var Yellow = lipgloss.AdaptiveColor{Light: "#B07D09", Dark: "#F0B232"}

// Red - Errors, hang up, unread badges
var Red = lipgloss.AdaptiveColor{Light: "#C4272D", Dark: "#F23F43"}

// Gray - Offline presence
var Gray = lipgloss.AdaptiveColor{Light: "#747F8D", Dark: "#80848E"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Rail - Server sidebar background
var Rail = lipgloss.AdaptiveColor{Light: "#E3E5E8", Dark: "#1E1F22"}

// Sidebar - Channel sidebar background
var Sidebar = lipgloss.AdaptiveColor{Light: "#F2F3F5", Dark: "#2B2D31"}

// Surface - Main content background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#313338"}

// Overlay - Dialogs, toasts, borders
var Overlay = lipgloss.AdaptiveColor{Light: "#D4D7DC", Dark: "#404249"}

// =============================================================================
// TEXT COLORS
// =============================================================================

var TextPrimary = lipgloss.AdaptiveColor{Light: "#060607", Dark: "#F2F3F5"}
var TextSecondary = lipgloss.AdaptiveColor{Light: "#4E5058", Dark: "#B5BAC1"}
var TextMuted = lipgloss.AdaptiveColor{Light: "#80848E", Dark: "#80848E"}
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

// =============================================================================
// PRESENCE
// =============================================================================

// PresenceColor returns the dot color for a friend's presence.
func PresenceColor(p model.Presence) lipgloss.AdaptiveColor {
	if p == model.PresenceOnline {
		return Green
	}
	return Gray
}

// PresenceDot renders the presence indicator shown next to friends and DMs.
func PresenceDot(p model.Presence) string {
	glyph := "●"
	if p != model.PresenceOnline {
		glyph = "○"
	}
	return lipgloss.NewStyle().Foreground(PresenceColor(p)).Render(glyph)
}
