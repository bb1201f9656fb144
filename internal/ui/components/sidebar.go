// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/huddle/internal/model"
	"github.com/jeranaias/huddle/internal/store"
	"github.com/jeranaias/huddle/internal/ui/styles"
	"github.com/jeranaias/huddle/internal/util"
)

// =============================================================================
// SERVER RAIL
// =============================================================================

// HomeGlyph is the first entry of the server rail.
const HomeGlyph = "🏠"

// RailEntry is one row of the server rail.
type RailEntry struct {
	ServerID string // empty for the home and add entries
	Glyph    string
	Add      bool
}

// RailEntries lists the rail rows: home, every server, then the add button.
func RailEntries(st store.State) []RailEntry {
	out := make([]RailEntry, 0, len(st.Servers)+2)
	out = append(out, RailEntry{Glyph: HomeGlyph})
	for _, s := range st.Servers {
		glyph := s.Icon
		if glyph == "" {
			glyph = model.Initial(s.Name)
		}
		out = append(out, RailEntry{ServerID: s.ID, Glyph: glyph})
	}
	out = append(out, RailEntry{Glyph: "+", Add: true})
	return out
}

// ServerSidebarProps configures ServerSidebar.
type ServerSidebarProps struct {
	Theme   *styles.Theme
	State   store.State
	Cursor  int
	Focused bool
	Height  int
}

// ServerSidebar renders the server rail. The home entry is highlighted while
// a home view is shown, otherwise the selected server is.
func ServerSidebar(p ServerSidebarProps) string {
	t := p.Theme
	rows := make([]string, 0, len(p.State.Servers)+3)
	for i, e := range RailEntries(p.State) {
		selected := false
		switch {
		case e.Add:
		case e.ServerID == "":
			selected = p.State.View.IsHome()
		default:
			selected = p.State.View == model.ViewServer && e.ServerID == p.State.SelectedServer
		}

		var row string
		switch {
		case e.Add:
			row = t.RailAdd.Render(e.Glyph)
		case selected:
			row = t.RailItemSelected.Render(e.Glyph)
		default:
			row = t.RailItem.Render(e.Glyph)
		}
		if p.Focused && i == p.Cursor {
			row = t.ShortcutKey.Render("›") + row
		}
		rows = append(rows, row)
		if e.ServerID == "" && !e.Add {
			rows = append(rows, t.Muted.Render("──"))
		}
	}
	return t.Rail.Height(p.Height).Render(strings.Join(rows, "\n"))
}

// =============================================================================
// CHANNEL SIDEBAR
// =============================================================================

// SidebarItemKind distinguishes the activatable rows of the channel sidebar.
type SidebarItemKind int

const (
	ItemFriends SidebarItemKind = iota
	ItemNotifications
	ItemDM
	ItemTextChannel
	ItemVoiceChannel
)

// SidebarItem is one activatable row of the channel sidebar.
type SidebarItem struct {
	Kind     SidebarItemKind
	ID       string
	Label    string
	Preview  string
	Unread   int
	Presence model.Presence
	Selected bool
}

// SidebarItems lists the rows of the channel sidebar for the current view.
// The app navigates and activates by index into this slice.
func SidebarItems(st store.State) []SidebarItem {
	if st.View == model.ViewServer {
		var items []SidebarItem
		for _, c := range st.ServerChannels(st.SelectedServer, model.ChannelText) {
			items = append(items, SidebarItem{
				Kind:     ItemTextChannel,
				ID:       c.ID,
				Label:    c.Name,
				Unread:   c.Unread,
				Selected: c.ID == st.SelectedChannel,
			})
		}
		for _, c := range st.ServerChannels(st.SelectedServer, model.ChannelVoice) {
			items = append(items, SidebarItem{Kind: ItemVoiceChannel, ID: c.ID, Label: c.Name})
		}
		return items
	}

	items := []SidebarItem{
		{Kind: ItemFriends, Label: "Friends", Unread: len(st.Friends), Selected: st.View == model.ViewFriends},
		{Kind: ItemNotifications, Label: "Notifications", Selected: st.View == model.ViewNotifications},
	}
	for _, dm := range st.DirectMessages {
		items = append(items, SidebarItem{
			Kind:     ItemDM,
			ID:       dm.ID,
			Label:    dm.FriendName,
			Preview:  dm.LastMessage,
			Unread:   dm.Unread,
			Presence: dm.Status,
			Selected: st.View == model.ViewDM && dm.ID == st.SelectedDM,
		})
	}
	return items
}

// ChannelSidebarProps configures ChannelSidebar.
type ChannelSidebarProps struct {
	Theme   *styles.Theme
	State   store.State
	Cursor  int
	Focused bool
	Height  int

	// CallChannel is the voice channel name currently in a call, if any.
	CallChannel string
}

// ChannelSidebar renders the second column: the channel list of the selected
// server, or the home entries and DM list. Both end with the profile footer.
func ChannelSidebar(p ChannelSidebarProps) string {
	t := p.Theme
	inner := styles.SidebarWidth - 2
	items := SidebarItems(p.State)

	var b strings.Builder
	if srv, ok := p.State.CurrentServer(); ok {
		b.WriteString(t.SidebarHeader.Width(styles.SidebarWidth).Render(util.TruncateWidth(srv.Name, inner)))
		b.WriteString("\n")
		b.WriteString(t.SectionTitle.Render("TEXT CHANNELS"))
		b.WriteString("\n")
		voiceHeader := false
		for i, it := range items {
			if it.Kind == ItemVoiceChannel && !voiceHeader {
				b.WriteString(t.SectionTitle.Render("VOICE CHANNELS"))
				b.WriteString("\n")
				voiceHeader = true
			}
			b.WriteString(renderSidebarRow(t, it, p.Focused && i == p.Cursor, p.CallChannel))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(t.SidebarHint.Render("[p] invite people"))
		b.WriteString("\n")
		b.WriteString(t.SidebarHint.Render("[g] server settings"))
	} else {
		b.WriteString(t.SidebarHeader.Width(styles.SidebarWidth).Render("Home"))
		b.WriteString("\n")
		for i, it := range items {
			if it.Kind == ItemDM && i == 2 {
				b.WriteString(t.SectionTitle.Render("DIRECT MESSAGES"))
				b.WriteString("\n")
			}
			b.WriteString(renderSidebarRow(t, it, p.Focused && i == p.Cursor, ""))
			b.WriteString("\n")
		}
		if len(p.State.DirectMessages) == 0 {
			b.WriteString(t.SectionTitle.Render("DIRECT MESSAGES"))
			b.WriteString("\n")
			b.WriteString(t.SidebarHint.Render("No active chats"))
			b.WriteString("\n")
			b.WriteString(t.SidebarHint.Render("Add friends [a]"))
		}
	}

	footer := renderProfileFooter(t, p.State.Profile)
	body := b.String()
	bodyHeight := p.Height - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	return t.Sidebar.Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
}

func renderSidebarRow(t *styles.Theme, it SidebarItem, cursor bool, callChannel string) string {
	inner := styles.SidebarWidth - 4

	var icon string
	switch it.Kind {
	case ItemTextChannel:
		icon = "#"
	case ItemVoiceChannel:
		icon = "🔊"
	case ItemDM:
		icon = styles.PresenceDot(it.Presence)
	case ItemFriends:
		icon = "👥"
	case ItemNotifications:
		icon = "🔔"
	}

	var badge string
	if it.Unread > 0 {
		badge = t.Badge.Render(strconv.Itoa(it.Unread))
	}
	room := inner - lipgloss.Width(icon) - 1 - lipgloss.Width(badge)
	row := icon + " " + util.PadRight(util.TruncateWidth(it.Label, room-1), room) + badge

	if it.Kind == ItemDM && it.Preview != "" {
		row += "\n  " + t.Muted.Render(util.TruncateWidth(model.Preview(it.Preview, inner), inner-2))
	}
	if it.Kind == ItemVoiceChannel && callChannel != "" && it.Label == callChannel {
		row += "\n  " + t.CallOn.Render("● in call")
	}

	style := t.SidebarItem
	if it.Selected {
		style = t.SidebarItemSelected
	}
	prefix := " "
	if cursor {
		prefix = t.ShortcutKey.Render("›")
	}
	return prefix + style.Render(row)
}

func renderProfileFooter(t *styles.Theme, p model.Profile) string {
	name := t.ProfileName.Render(util.TruncateWidth(p.Username, styles.SidebarWidth-10))
	tag := t.ProfileTag.Render("#" + p.Tag)
	return t.ProfileFooter.Width(styles.SidebarWidth).Render(styles.PresenceDot(model.PresenceOnline) + " " + name + " " + tag)
}
