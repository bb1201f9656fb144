// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/huddle/internal/call"
	"github.com/jeranaias/huddle/internal/model"
	"github.com/jeranaias/huddle/internal/store"
	"github.com/jeranaias/huddle/internal/ui/styles"
	"github.com/jeranaias/huddle/internal/util"
)

// Empty states shown in the main area.
const (
	EmptyConversation  = "Start the conversation"
	EmptyFriends       = "You have no friends yet"
	EmptyNotifications = "No new notifications"
	EmptyDMSelection   = "Select a conversation or add friends"
)

// SettingsFields are the editable rows of the settings view, in order.
var SettingsFields = []string{"Username", "Email"}

// MainContentProps configures MainContent.
type MainContentProps struct {
	Theme    *styles.Theme
	State    store.State
	Call     call.Session
	Markdown *Markdown
	Width    int
	Height   int
	Now      time.Time

	// Input is the rendered message input; empty when the view has none.
	Input        string
	InputFocused bool

	// Cursor indexes the friends list or the settings rows while Focused.
	Cursor  int
	Focused bool
}

// MainContent renders the main column: call bar, header, then the body for
// the current view.
func MainContent(p MainContentProps) string {
	t := p.Theme
	var parts []string

	if p.Call.InCall() {
		parts = append(parts, CallBar(t, p.Call, p.Width, p.Now))
	}
	parts = append(parts, renderHeader(p))

	used := 0
	for _, s := range parts {
		used += lipgloss.Height(s)
	}

	switch p.State.View {
	case model.ViewDM, model.ViewServer:
		if p.State.ConversationKey() == "" || !hasConversation(p.State) {
			parts = append(parts, t.EmptyState.Render(EmptyDMSelection))
			break
		}
		input := renderInput(p)
		bodyHeight := p.Height - used - lipgloss.Height(input)
		parts = append(parts, renderMessages(p, bodyHeight), input)
	case model.ViewFriends:
		parts = append(parts, renderFriends(p))
	case model.ViewSettings:
		parts = append(parts, renderSettings(p))
	case model.ViewNotifications:
		parts = append(parts, t.EmptyState.Render("🔔 "+EmptyNotifications))
	}

	return lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		MaxHeight(p.Height).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func hasConversation(st store.State) bool {
	if st.View == model.ViewDM {
		_, ok := st.CurrentDM()
		return ok
	}
	_, ok := st.CurrentChannel()
	return ok
}

// =============================================================================
// CALL BAR
// =============================================================================

// CallBar renders the strip shown above the header while a call exists.
func CallBar(t *styles.Theme, s call.Session, width int, now time.Time) string {
	status := "Connecting..."
	if s.Active() {
		status = formatElapsed(s.Elapsed(now))
	}
	left := t.CallOn.Render("📞 Call: "+s.Participant) + "  " + t.Muted.Render(status)

	toggle := func(key, label string, on bool) string {
		style := t.CallOff
		if on {
			style = t.CallOn
		}
		return t.ShortcutKey.Render("["+key+"]") + " " + style.Render(label)
	}
	mic := "Mic"
	if !s.MicOn {
		mic = "Muted"
	}
	right := strings.Join([]string{
		toggle("m", mic, s.MicOn),
		toggle("w", "Camera", s.CameraOn),
		toggle("s", "Share", s.Sharing),
		t.CallHangUp.Render("[e] Hang up"),
	}, "  ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return t.CallBar.Width(width).Render(left + "\n" + right)
	}
	return t.CallBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%02d:%02d", m, s)
}

// =============================================================================
// HEADER
// =============================================================================

func renderHeader(p MainContentProps) string {
	t := p.Theme
	var title, hint string

	switch p.State.View {
	case model.ViewServer:
		if c, ok := p.State.CurrentChannel(); ok {
			title = "# " + c.Name
		}
	case model.ViewDM:
		if dm, ok := p.State.CurrentDM(); ok {
			title = styles.PresenceDot(dm.Status) + " " + dm.FriendName
			hint = "[c] call  [v] video"
		} else {
			title = model.ViewDM.Title()
		}
	case model.ViewFriends:
		title = "👥 " + model.ViewFriends.Title()
		hint = "[a] add friend"
	case model.ViewSettings:
		title = "⚙ " + model.ViewSettings.Title()
	case model.ViewNotifications:
		title = "🔔 " + model.ViewNotifications.Title()
	}

	line := t.HeaderTitle.Render(title)
	if hint != "" {
		gap := p.Width - lipgloss.Width(line) - lipgloss.Width(hint) - 2
		if gap < 2 {
			gap = 2
		}
		line += strings.Repeat(" ", gap) + t.HeaderHint.Render(hint)
	}
	return t.Header.Width(p.Width).Render(line)
}

// =============================================================================
// MESSAGES
// =============================================================================

// RenderMessage renders one message: author line and body.
func RenderMessage(t *styles.Theme, md *Markdown, m model.Message, width int) string {
	author := t.Author
	if m.IsOwn {
		author = t.OwnAuthor
	}
	head := author.Render(m.Author) + " " + t.Timestamp.Render(m.Timestamp)

	body := m.Content
	if md.Enabled() {
		body = md.Render(body)
	} else {
		body = t.Body.Width(width).Render(body)
	}
	return head + "\n" + body
}

func renderMessages(p MainContentProps, height int) string {
	t := p.Theme
	msgs := p.State.Conversation()
	if len(msgs) == 0 {
		return lipgloss.Place(p.Width, max(height, 1), lipgloss.Center, lipgloss.Center,
			t.EmptyState.Render("💬 "+EmptyConversation))
	}

	rendered := make([]string, 0, len(msgs))
	for _, m := range msgs {
		rendered = append(rendered, RenderMessage(t, p.Markdown, m, p.Width-2))
	}
	lines := strings.Split(strings.Join(rendered, "\n\n"), "\n")

	// Keep the newest messages in view.
	if height > 0 && len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return lipgloss.NewStyle().Padding(0, 1).Height(max(height, 1)).Render(strings.Join(lines, "\n"))
}

// Placeholder returns the input placeholder for the active conversation.
func Placeholder(st store.State) string {
	if dm, ok := st.CurrentDM(); ok {
		return "Message " + dm.FriendName
	}
	if c, ok := st.CurrentChannel(); ok {
		return "Message #" + c.Name
	}
	return ""
}

func renderInput(p MainContentProps) string {
	style := p.Theme.Input
	if p.InputFocused {
		style = p.Theme.InputFocused
	}
	return style.Width(p.Width - 2).Render(p.Input)
}

// =============================================================================
// FRIENDS
// =============================================================================

func renderFriends(p MainContentProps) string {
	t := p.Theme
	if len(p.State.Friends) == 0 {
		return t.EmptyState.Render("👥 " + EmptyFriends + "\n\n" + t.ShortcutKey.Render("[a]") + " Add friend")
	}

	online := 0
	for _, f := range p.State.Friends {
		if f.Status == model.PresenceOnline {
			online++
		}
	}

	var b strings.Builder
	b.WriteString(t.SectionTitle.Render(fmt.Sprintf("ALL FRIENDS (%d)   ONLINE (%d)", len(p.State.Friends), online)))
	b.WriteString("\n\n")

	nameWidth := p.Width - 40
	if nameWidth < 10 {
		nameWidth = 10
	}
	for i, f := range p.State.Friends {
		prefix := "  "
		if p.Focused && i == p.Cursor {
			prefix = t.ShortcutKey.Render("› ")
		}
		name := util.PadRight(f.Name, nameWidth)
		row := prefix + styles.PresenceDot(f.Status) + " " + t.FormValue.Render(name) + " " +
			t.Muted.Render(util.PadRight(f.Status.DisplayName(), 8))
		if p.Focused && i == p.Cursor {
			row += "  " + t.HeaderHint.Render("[enter] message  [c] call  [v] video  [x] remove")
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// =============================================================================
// SETTINGS
// =============================================================================

func renderSettings(p MainContentProps) string {
	t := p.Theme
	prof := p.State.Profile
	values := []string{prof.Username + t.Muted.Render(" #"+prof.Tag), prof.Email}

	var b strings.Builder
	b.WriteString(t.SectionTitle.Render("MY ACCOUNT"))
	b.WriteString("\n\n")
	for i, label := range SettingsFields {
		prefix := "  "
		if p.Focused && i == p.Cursor {
			prefix = t.ShortcutKey.Render("› ")
		}
		value := values[i]
		if value == "" {
			value = t.Muted.Render("not set")
		}
		b.WriteString(prefix + t.FormLabel.Render(label) + t.FormValue.Render(value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(t.SidebarHint.Render("[enter] edit the selected field"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
