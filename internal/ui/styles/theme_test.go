// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/huddle/internal/model"
)

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewTheme_Modes(t *testing.T) {
	dark := NewTheme(ModeDark)
	assert.True(t, dark.IsDark)
	assert.Equal(t, ModeDark, dark.Mode)

	light := NewTheme(ModeLight)
	assert.False(t, light.IsDark)

	auto := NewTheme("neon")
	assert.Equal(t, ModeAuto, auto.Mode)
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewTheme(ModeDark)

	for name, style := range map[string]interface{ Render(...string) string }{
		"Rail":       theme.Rail,
		"Sidebar":    theme.Sidebar,
		"Header":     theme.Header,
		"Badge":      theme.Badge,
		"Dialog":     theme.Dialog,
		"Toast":      theme.Toast,
		"CallHangUp": theme.CallHangUp,
	} {
		assert.Contains(t, style.Render("test"), "test", name)
	}
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme(ModeDark)

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}
	for _, tc := range tests {
		theme.SetSize(tc.width, 30)
		assert.Equal(t, tc.want, theme.GetLayoutMode(), "width %d", tc.width)
	}
}

func TestMainWidth(t *testing.T) {
	theme := NewTheme(ModeDark)

	theme.SetSize(120, 40)
	assert.Equal(t, 120-RailWidth-SidebarWidth, theme.MainWidth())

	theme.SetSize(50, 40)
	assert.Equal(t, 50-RailWidth, theme.MainWidth())

	theme.SetSize(10, 40)
	assert.Equal(t, 20, theme.MainWidth())
}

func TestPresenceDot(t *testing.T) {
	assert.True(t, strings.Contains(PresenceDot(model.PresenceOnline), "●"))
	assert.True(t, strings.Contains(PresenceDot(model.PresenceOffline), "○"))
	assert.Equal(t, Green, PresenceColor(model.PresenceOnline))
	assert.Equal(t, Gray, PresenceColor(model.PresenceOffline))
}
