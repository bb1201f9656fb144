// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the huddle TUI.

All colors use Lip Gloss AdaptiveColor so the palette follows the terminal
background. The theme mode from config ("dark", "light" or "auto") decides
which side of each AdaptiveColor is used.

# Color System (colors.go)

  - Blurple - brand accent, selections, focus
  - Green - online presence, success, active call
  - Yellow - warnings
  - Red - errors, hang up, unread badges
  - Gray - offline presence, muted text

Surfaces are layered from darkest to lightest: Rail (server sidebar),
Sidebar (channel sidebar), Surface (main content) and Overlay (dialogs).

# Theme (theme.go)

A Theme groups the lipgloss styles for every area of the layout:

	theme := styles.NewTheme("auto")
	theme.SetSize(width, height)
	header := theme.Header.Render("# general")

# Presence

PresenceDot renders the colored dot shown next to friends and DMs.
*/
package styles
