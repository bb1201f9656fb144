// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/huddle/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	profile := model.Profile{Username: "You", Tag: "0001"}
	s := New(profile)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	s.now = func() time.Time {
		return time.Date(2025, 1, 1, 9, 5, 0, 0, time.UTC)
	}
	s.Seed(profile)
	return s
}

// =============================================================================
// SEED
// =============================================================================

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	st := s.Snapshot()

	assert.Equal(t, model.ViewDM, st.View)
	assert.Len(t, st.Servers, 4)
	assert.Len(t, st.Friends, 3)
	assert.Len(t, st.DirectMessages, 3)
	assert.Equal(t, "You", st.Profile.Username)

	for _, dm := range st.DirectMessages {
		_, ok := st.Friend(dm.FriendID)
		assert.True(t, ok, "dm %s references missing friend", dm.ID)
	}
	assert.Len(t, st.ServerChannels("1", model.ChannelVoice), 2)
	assert.Len(t, st.ServerChannels("1", ""), 4)
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestSelectServer(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.OpenDM("dm-f1"))
	require.NoError(t, s.SelectServer("2"))

	st := s.Snapshot()
	assert.Equal(t, model.ViewServer, st.View)
	assert.Equal(t, "2", st.SelectedServer)
	assert.Equal(t, "2-general", st.SelectedChannel)
	assert.Empty(t, st.SelectedDM)

	ch, ok := st.CurrentChannel()
	require.True(t, ok)
	assert.Equal(t, model.ChannelText, ch.Kind)
}

func TestSelectServer_Unknown(t *testing.T) {
	s := newTestStore(t)
	err := s.SelectServer("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, model.ViewDM, s.Snapshot().View)
}

func TestSelectChannel(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SelectServer("1"))

	require.NoError(t, s.SelectChannel("1-important"))
	assert.Equal(t, "1-important", s.Snapshot().SelectedChannel)

	require.NoError(t, s.SelectChannel("1-general"))
	ch, _ := s.Snapshot().Channel("1-general")
	assert.Zero(t, ch.Unread, "selecting a channel clears unread")
}

func TestSelectChannel_VoiceKeepsSelection(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SelectServer("1"))

	err := s.SelectChannel("1-voice-1")
	assert.ErrorIs(t, err, ErrVoiceChannel)
	assert.Equal(t, "1-general", s.Snapshot().SelectedChannel)
}

func TestSelectChannel_OtherServer(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SelectServer("1"))
	assert.ErrorIs(t, s.SelectChannel("2-general"), ErrNotFound)
}

func TestSelectHome_ClearsServer(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SelectServer("3"))
	s.SelectHome()

	st := s.Snapshot()
	assert.Equal(t, model.ViewDM, st.View)
	assert.Empty(t, st.SelectedServer)
	assert.Empty(t, st.SelectedChannel)
}

func TestOpenDM(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SelectServer("1"))
	require.NoError(t, s.OpenDM("dm-f1"))

	st := s.Snapshot()
	assert.Equal(t, model.ViewDM, st.View)
	assert.Equal(t, "dm-f1", st.SelectedDM)
	assert.Empty(t, st.SelectedServer)

	dm, ok := st.CurrentDM()
	require.True(t, ok)
	assert.Zero(t, dm.Unread)
	assert.Len(t, st.Conversation(), 1)
}

func TestHomePanels_ClearSelection(t *testing.T) {
	panels := map[model.View]func(*Store){
		model.ViewFriends:       (*Store).ShowFriends,
		model.ViewSettings:      (*Store).ShowSettings,
		model.ViewNotifications: (*Store).ShowNotifications,
	}
	for view, show := range panels {
		t.Run(view.String(), func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, s.OpenDM("dm-f2"))
			show(s)

			st := s.Snapshot()
			assert.Equal(t, view, st.View)
			assert.Empty(t, st.SelectedDM)
			assert.Empty(t, st.ConversationKey())
			assert.Nil(t, st.Conversation())
		})
	}
}

// =============================================================================
// SERVERS & FRIENDS
// =============================================================================

func TestAddServer(t *testing.T) {
	s := newTestStore(t)
	srv, err := s.AddServer("  Book club ", "")
	require.NoError(t, err)
	assert.Equal(t, "Book club", srv.Name)
	assert.Equal(t, DefaultServerIcon, srv.Icon)

	st := s.Snapshot()
	assert.Len(t, st.Servers, 5)
	chans := st.ServerChannels(srv.ID, "")
	require.Len(t, chans, 2)
	assert.Equal(t, "general", chans[0].Name)
	assert.False(t, chans[0].IsVoice())
	assert.Equal(t, "Voice 1", chans[1].Name)
	assert.True(t, chans[1].IsVoice())

	_, err = s.AddServer("   ", "x")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestAddFriend(t *testing.T) {
	s := newTestStore(t)
	f, err := s.AddFriend("Olga")
	require.NoError(t, err)
	assert.Equal(t, model.PresenceOnline, f.Status)

	st := s.Snapshot()
	dm, ok := st.DirectMessageForFriend(f.ID)
	require.True(t, ok)
	assert.Equal(t, NewConversationPreview, dm.LastMessage)
	assert.Equal(t, "09:05", dm.Timestamp)
	assert.Equal(t, "Olga", dm.FriendName)
}

func TestAddFriend_Duplicate(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddFriend("maria")
	assert.ErrorIs(t, err, ErrDuplicate)
	_, err = s.AddFriend("")
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.Len(t, s.Snapshot().Friends, 3)
}

func TestRemoveFriend_CascadesDirectMessages(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.OpenDM("dm-f2"))
	before := s.Snapshot()

	require.NoError(t, s.RemoveFriend("f2"))
	st := s.Snapshot()

	_, ok := st.Friend("f2")
	assert.False(t, ok)
	for _, dm := range st.DirectMessages {
		assert.NotEqual(t, "f2", dm.FriendID)
	}
	assert.NotContains(t, st.Messages, "dm-f2")
	assert.Empty(t, st.SelectedDM)

	// Unrelated conversations keep their content.
	for _, id := range []string{"dm-f1", "dm-f3"} {
		want, _ := before.DirectMessage(id)
		got, ok := st.DirectMessage(id)
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, before.Messages[id], st.Messages[id])
	}
}

func TestRemoveFriend_KeepsOtherSelection(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.OpenDM("dm-f1"))

	require.NoError(t, s.RemoveFriend("f2"))
	st := s.Snapshot()
	assert.Equal(t, "dm-f1", st.SelectedDM)
	assert.Len(t, st.DirectMessages, 2)
	assert.NotEmpty(t, s.Messages())
}

func TestRemoveFriend_Unknown(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.RemoveFriend("ghost"), ErrNotFound)
}

// =============================================================================
// MESSAGES
// =============================================================================

func TestSendMessage_DM(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.OpenDM("dm-f1"))

	msg, err := s.SendMessage("  see you soon  ")
	require.NoError(t, err)
	assert.True(t, msg.IsOwn)
	assert.Equal(t, "You", msg.Author)
	assert.Equal(t, "see you soon", msg.Content)
	assert.Equal(t, "09:05", msg.Timestamp)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, msg, msgs[1])

	dm, _ := s.Snapshot().DirectMessage("dm-f1")
	assert.Equal(t, "see you soon", dm.LastMessage)
	assert.Equal(t, "09:05", dm.Timestamp)
}

func TestSendMessage_Channel(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SelectServer("4"))
	_, err := s.SendMessage("hello channel")
	require.NoError(t, err)
	assert.Len(t, s.Messages(), 4)
}

func TestSendMessage_Rejects(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.OpenDM("dm-f1"))
	_, err := s.SendMessage(" \n\t ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	s.ShowFriends()
	_, err = s.SendMessage("hello")
	assert.ErrorIs(t, err, ErrNoConversation)

	// No DM selected yet in the home view.
	s.SelectHome()
	_, err = s.SendMessage("hello")
	assert.ErrorIs(t, err, ErrNoConversation)
}

func TestSnapshot_IsCopy(t *testing.T) {
	s := newTestStore(t)
	st := s.Snapshot()
	st.Friends[0].Name = "changed"
	st.Messages["dm-f1"][0].Content = "changed"

	fresh := s.Snapshot()
	assert.Equal(t, "Alexander", fresh.Friends[0].Name)
	assert.Equal(t, "Hi! How are you?", fresh.Messages["dm-f1"][0].Content)
}

// =============================================================================
// PROFILE
// =============================================================================

func TestSaveSettings(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveSettings(model.Profile{Username: "Neo", Email: "neo@example.com"}))

	p := s.Snapshot().Profile
	assert.Equal(t, "Neo", p.Username)
	assert.Equal(t, "0001", p.Tag, "blank tag keeps the previous one")

	assert.ErrorIs(t, s.SaveSettings(model.Profile{Username: " "}), ErrInvalidName)
	assert.Error(t, s.SaveSettings(model.Profile{Username: "Neo", Email: "nope"}))
}

func TestSetUsername(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetUsername("Trinity"))
	require.NoError(t, s.OpenDM("dm-f3"))
	msg, err := s.SendMessage("hi")
	require.NoError(t, err)
	assert.Equal(t, "Trinity", msg.Author)
	assert.ErrorIs(t, s.SetUsername(""), ErrInvalidName)
}
