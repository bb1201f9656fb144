// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/huddle/internal/ui/components"
	"github.com/jeranaias/huddle/internal/ui/styles"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	st := m.store.Snapshot()
	now := m.now()

	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(footer)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	columns := []string{
		components.ServerSidebar(components.ServerSidebarProps{
			Theme:   m.theme,
			State:   st,
			Cursor:  m.railCursor,
			Focused: m.focus == focusRail,
			Height:  bodyHeight,
		}),
	}
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		columns = append(columns, components.ChannelSidebar(components.ChannelSidebarProps{
			Theme:       m.theme,
			State:       st,
			Cursor:      m.sidebarCursor,
			Focused:     m.focus == focusSidebar,
			Height:      bodyHeight,
			CallChannel: m.callChannel,
		}))
	}

	mainWidth := m.theme.MainWidth()
	if m.dialogOpen && m.session.InCall() {
		columns = append(columns, components.CallDialog(components.CallDialogProps{
			Theme:  m.theme,
			Call:   m.session,
			Width:  mainWidth,
			Height: bodyHeight,
			Now:    now,
		}))
	} else {
		input := m.input
		input.Placeholder = components.Placeholder(st)
		columns = append(columns, components.MainContent(components.MainContentProps{
			Theme:        m.theme,
			State:        st,
			Call:         m.session,
			Markdown:     m.markdown,
			Width:        mainWidth,
			Height:       bodyHeight,
			Now:          now,
			Input:        input.View(),
			InputFocused: m.focus == focusInput,
			Cursor:       m.mainCursor,
			Focused:      m.focus == focusMain,
		}))
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		footer,
	)

	if !m.toasts.HasToasts() {
		return view
	}
	toasts := components.RenderToastStack(m.toasts.Toasts(), m.width, now)
	return components.OverlayBottomRight(view, toasts, m.width, lipgloss.Height(footer))
}

// renderFooter shows the open prompt, or the key help otherwise.
func (m *Model) renderFooter() string {
	if m.prompt != nil {
		hint := m.theme.Muted.Render("  [enter] save  [esc] cancel")
		return m.theme.InputFocused.Width(max(m.width-2, 10)).Render(m.prompt.input.View() + hint)
	}
	return m.theme.Muted.Render(m.help.View(m.keys))
}
