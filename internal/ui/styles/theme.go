// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeDark  = "dark"
	ModeLight = "light"
	ModeAuto  = "auto"
)

// Column widths of the fixed sidebars.
const (
	RailWidth    = 6
	SidebarWidth = 28
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	Mode         string
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// SERVER RAIL
	// ==========================================================================

	Rail             lipgloss.Style
	RailItem         lipgloss.Style
	RailItemSelected lipgloss.Style
	RailAdd          lipgloss.Style

	// ==========================================================================
	// CHANNEL SIDEBAR
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarHeader       lipgloss.Style
	SectionTitle        lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarItemSelected lipgloss.Style
	SidebarHint         lipgloss.Style
	Badge               lipgloss.Style
	ProfileFooter       lipgloss.Style
	ProfileName         lipgloss.Style
	ProfileTag          lipgloss.Style

	// ==========================================================================
	// MAIN CONTENT
	// ==========================================================================

	Main        lipgloss.Style
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHint  lipgloss.Style
	Author      lipgloss.Style
	OwnAuthor   lipgloss.Style
	Timestamp   lipgloss.Style
	Body        lipgloss.Style
	EmptyState  lipgloss.Style
	FormLabel   lipgloss.Style
	FormValue   lipgloss.Style

	// ==========================================================================
	// INPUT
	// ==========================================================================

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// ==========================================================================
	// CALL
	// ==========================================================================

	CallBar       lipgloss.Style
	CallOn        lipgloss.Style
	CallOff       lipgloss.Style
	CallHangUp    lipgloss.Style
	Dialog        lipgloss.Style
	DialogTitle   lipgloss.Style
	DialogDesc    lipgloss.Style
	Pane          lipgloss.Style
	PaneLabel     lipgloss.Style
	PanePlacehold lipgloss.Style

	// ==========================================================================
	// STATUS / TOAST
	// ==========================================================================

	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Toast        lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme creates a theme for mode ("dark", "light" or "auto"). Unknown
// modes behave like "auto".
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	isDark := true
	switch mode {
	case ModeDark:
	case ModeLight:
		isDark = false
	default:
		mode = ModeAuto
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		Mode:         mode,
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	// Server rail
	t.Rail = lipgloss.NewStyle().
		Background(Rail).
		Width(RailWidth).
		Align(lipgloss.Center)

	t.RailItem = lipgloss.NewStyle().
		Padding(0, 1)

	t.RailItemSelected = lipgloss.NewStyle().
		Padding(0, 1).
		Background(Blurple).
		Foreground(TextInverse)

	t.RailAdd = lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(Green).
		Bold(true)

	// Channel sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(Sidebar).
		Width(SidebarWidth)

	t.SidebarHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SectionTitle = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true).
		Padding(0, 1)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.SidebarItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BlurpleDeep).
		Bold(true).
		Padding(0, 1)

	t.SidebarHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(0, 1)

	t.Badge = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Red).
		Bold(true).
		Padding(0, 1)

	t.ProfileFooter = lipgloss.NewStyle().
		Background(Rail).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.ProfileName = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.ProfileTag = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Main content
	t.Main = lipgloss.NewStyle().
		Background(Surface)

	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.HeaderHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Author = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.OwnAuthor = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blurple)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Body = lipgloss.NewStyle().
		Foreground(TextSecondary).
		PaddingLeft(2)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextMuted).
		Bold(true).
		Width(12)

	t.FormValue = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Input
	t.Input = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputFocused = t.Input.
		BorderForeground(Blurple)

	// Call
	t.CallBar = lipgloss.NewStyle().
		Background(Rail).
		Foreground(Green).
		Padding(0, 1)

	t.CallOn = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	t.CallOff = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(true)

	t.CallHangUp = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Red).
		Bold(true).
		Padding(0, 1)

	t.Dialog = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Blurple).
		Padding(1, 2)

	t.DialogTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.DialogDesc = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Width(30).
		Height(7).
		Align(lipgloss.Center, lipgloss.Center)

	t.PaneLabel = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.PanePlacehold = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status and toasts
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Blurple).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Toast = lipgloss.NewStyle().
		Background(Overlay).
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(Yellow).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(Blurple).
		Bold(true)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// MainWidth returns the width left for the main content area.
func (t *Theme) MainWidth() int {
	w := t.Width - RailWidth
	if t.GetLayoutMode() != LayoutNarrow {
		w -= SidebarWidth
	}
	if w < 20 {
		return 20
	}
	return w
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, channel sidebar hidden
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
