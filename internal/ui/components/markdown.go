// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// Markdown renders message content. A disabled renderer, or one whose glamour
// setup failed, returns content unchanged.
type Markdown struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdown creates a renderer wrapping at width. dark selects the glamour
// style.
func NewMarkdown(enabled, dark bool, width int) *Markdown {
	md := &Markdown{width: width}
	if !enabled {
		return md
	}
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	md.renderer = r
	return md
}

// Enabled reports whether content goes through glamour.
func (md *Markdown) Enabled() bool {
	return md != nil && md.renderer != nil
}

// Width returns the wrap width the renderer was built for.
func (md *Markdown) Width() int {
	if md == nil {
		return 0
	}
	return md.width
}

// Render renders content, falling back to the raw text on error.
func (md *Markdown) Render(content string) string {
	if !md.Enabled() {
		return content
	}
	out, err := md.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
