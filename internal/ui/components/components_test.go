// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/huddle/internal/call"
	"github.com/jeranaias/huddle/internal/model"
	"github.com/jeranaias/huddle/internal/store"
	"github.com/jeranaias/huddle/internal/ui/styles"
)

var testProfile = model.Profile{Username: "You", Tag: "0001"}

func seeded(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(testProfile)
	s.Seed(testProfile)
	return s
}

func plain(s string) string {
	return ansi.Strip(s)
}

// =============================================================================
// SIDEBARS
// =============================================================================

func TestRailEntries(t *testing.T) {
	st := seeded(t).Snapshot()
	entries := RailEntries(st)

	require.Len(t, entries, len(st.Servers)+2)
	assert.Equal(t, HomeGlyph, entries[0].Glyph)
	assert.Equal(t, st.Servers[0].ID, entries[1].ServerID)
	assert.True(t, entries[len(entries)-1].Add)
}

func TestServerSidebar(t *testing.T) {
	st := seeded(t).Snapshot()
	out := plain(ServerSidebar(ServerSidebarProps{Theme: styles.NewTheme(styles.ModeDark), State: st, Height: 20}))

	assert.Contains(t, out, HomeGlyph)
	assert.Contains(t, out, "+")
	for _, s := range st.Servers {
		assert.Contains(t, out, s.Icon)
	}
}

func TestSidebarItems_Home(t *testing.T) {
	st := seeded(t).Snapshot()
	items := SidebarItems(st)

	require.Len(t, items, 2+len(st.DirectMessages))
	assert.Equal(t, ItemFriends, items[0].Kind)
	assert.Equal(t, len(st.Friends), items[0].Unread)
	assert.Equal(t, ItemNotifications, items[1].Kind)
	assert.Equal(t, ItemDM, items[2].Kind)
	assert.Equal(t, "Alexander", items[2].Label)
}

func TestSidebarItems_Server(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.SelectServer("1"))
	items := SidebarItems(s.Snapshot())

	kinds := make([]SidebarItemKind, 0, len(items))
	for _, it := range items {
		kinds = append(kinds, it.Kind)
	}
	assert.Equal(t, []SidebarItemKind{ItemTextChannel, ItemTextChannel, ItemVoiceChannel, ItemVoiceChannel}, kinds)
	assert.True(t, items[0].Selected)
}

func TestChannelSidebar_Server(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.SelectServer("2"))
	out := plain(ChannelSidebar(ChannelSidebarProps{
		Theme:       styles.NewTheme(styles.ModeDark),
		State:       s.Snapshot(),
		Height:      30,
		CallChannel: "Voice 1",
	}))

	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "TEXT CHANNELS")
	assert.Contains(t, out, "VOICE CHANNELS")
	assert.Contains(t, out, "invite")
	assert.Contains(t, out, "server settings")
	assert.Contains(t, out, "You")
	assert.Contains(t, out, "#0001")
}

func TestChannelSidebar_EmptyDMs(t *testing.T) {
	s := store.New(testProfile)
	out := plain(ChannelSidebar(ChannelSidebarProps{
		Theme:  styles.NewTheme(styles.ModeDark),
		State:  s.Snapshot(),
		Height: 30,
	}))

	assert.Contains(t, out, "No active chats")
	assert.Contains(t, out, "Add friends")
	assert.Contains(t, out, "Friends")
}

// =============================================================================
// MAIN CONTENT
// =============================================================================

func mainProps(t *testing.T, st store.State) MainContentProps {
	t.Helper()
	return MainContentProps{
		Theme:    styles.NewTheme(styles.ModeDark),
		State:    st,
		Markdown: NewMarkdown(false, true, 60),
		Width:    80,
		Height:   30,
		Now:      time.Now(),
	}
}

func TestMainContent_DM(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.OpenDM("dm-f2"))
	st := s.Snapshot()

	out := plain(MainContent(mainProps(t, st)))
	assert.Contains(t, out, "Maria")
	assert.Contains(t, out, "[c] call")
	assert.Contains(t, out, "Great! Working on a new project")
	assert.Equal(t, "Message Maria", Placeholder(st))
}

func TestMainContent_EmptyConversation(t *testing.T) {
	s := seeded(t)
	f, err := s.AddFriend("Olga")
	require.NoError(t, err)
	dm, ok := s.Snapshot().DirectMessageForFriend(f.ID)
	require.True(t, ok)
	require.NoError(t, s.OpenDM(dm.ID))

	out := plain(MainContent(mainProps(t, s.Snapshot())))
	assert.Contains(t, out, EmptyConversation)
}

func TestMainContent_Channel(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.SelectServer("1"))
	st := s.Snapshot()

	out := plain(MainContent(mainProps(t, st)))
	assert.Contains(t, out, "# general")
	assert.Equal(t, "Message #general", Placeholder(st))
}

func TestMainContent_Friends(t *testing.T) {
	s := seeded(t)
	s.ShowFriends()
	out := plain(MainContent(mainProps(t, s.Snapshot())))
	assert.Contains(t, out, "Alexander")
	assert.Contains(t, out, "Dmitry")
	assert.Contains(t, out, "Offline")

	empty := store.New(testProfile)
	empty.ShowFriends()
	out = plain(MainContent(mainProps(t, empty.Snapshot())))
	assert.Contains(t, out, EmptyFriends)
}

func TestMainContent_SettingsAndNotifications(t *testing.T) {
	s := seeded(t)
	s.ShowSettings()
	out := plain(MainContent(mainProps(t, s.Snapshot())))
	assert.Contains(t, out, "Username")
	assert.Contains(t, out, "Email")

	s.ShowNotifications()
	out = plain(MainContent(mainProps(t, s.Snapshot())))
	assert.Contains(t, out, EmptyNotifications)
}

func TestMainContent_CallBar(t *testing.T) {
	s := seeded(t)
	props := mainProps(t, s.Snapshot())
	props.Width = 120
	props.Call = call.Session{State: call.StateActive, Participant: "Maria", MicOn: false, StartedAt: props.Now.Add(-65 * time.Second)}

	out := plain(MainContent(props))
	assert.Contains(t, out, "Call: Maria")
	assert.Contains(t, out, "01:05")
	assert.Contains(t, out, "Muted")
	assert.Contains(t, out, "Hang up")

	props.Call = call.Session{State: call.StateStarting, Participant: "Maria"}
	assert.Contains(t, plain(MainContent(props)), "Connecting...")
}

func TestRenderMessage_Markdown(t *testing.T) {
	theme := styles.NewTheme(styles.ModeDark)
	m := model.Message{Author: "Maria", Timestamp: "14:32", Content: "**bold** text"}

	raw := plain(RenderMessage(theme, NewMarkdown(false, true, 60), m, 60))
	assert.Contains(t, raw, "**bold**")

	md := NewMarkdown(true, true, 60)
	require.True(t, md.Enabled())
	rendered := plain(RenderMessage(theme, md, m, 60))
	assert.Contains(t, rendered, "bold")
	assert.NotContains(t, rendered, "**")
}

// =============================================================================
// CALL DIALOG
// =============================================================================

func TestCallDialog(t *testing.T) {
	theme := styles.NewTheme(styles.ModeDark)

	tests := []struct {
		name    string
		session call.Session
		want    []string
	}{
		{
			name:    "audio waiting",
			session: call.Session{State: call.StateActive, Participant: "Maria", MicOn: true, HasLocal: true, Preview: call.PreviewCamera},
			want:    []string{"Call", "Call with Maria", "You", WaitingForPeer, "audio only"},
		},
		{
			name:    "video",
			session: call.Session{State: call.StateActive, Participant: "Maria", CameraOn: true, Preview: call.PreviewCamera},
			want:    []string{"Video call", "camera"},
		},
		{
			name:    "screen with remote",
			session: call.Session{State: call.StateActive, Participant: "Maria", Sharing: true, Preview: call.PreviewScreen, HasRemote: true, RemoteTracks: 2},
			want:    []string{"Screen share", "screen", "2 track(s)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := plain(CallDialog(CallDialogProps{Theme: theme, Call: tt.session, Now: time.Now()}))
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestCallDialog_NoRemoteHidesWaitingOnceConnected(t *testing.T) {
	theme := styles.NewTheme(styles.ModeDark)
	out := plain(CallDialog(CallDialogProps{
		Theme: theme,
		Call:  call.Session{State: call.StateActive, Participant: "Maria", HasRemote: true, RemoteTracks: 1},
	}))
	assert.False(t, strings.Contains(out, WaitingForPeer))
}
