// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"github.com/samber/lo"

	"github.com/jeranaias/huddle/internal/model"
)

// =============================================================================
// STATE SNAPSHOT
// =============================================================================

// State is a point-in-time copy of everything the UI renders.
type State struct {
	View            model.View
	SelectedServer  string
	SelectedChannel string
	SelectedDM      string

	Servers        []model.Server
	Channels       []model.Channel
	Friends        []model.Friend
	DirectMessages []model.DirectMessage

	// Messages is keyed by conversation: a text channel ID or a DM ID.
	Messages map[string][]model.Message

	Profile model.Profile
}

// clone returns a deep copy of the state.
func (st State) clone() State {
	out := st
	out.Servers = append([]model.Server(nil), st.Servers...)
	out.Channels = append([]model.Channel(nil), st.Channels...)
	out.Friends = append([]model.Friend(nil), st.Friends...)
	out.DirectMessages = append([]model.DirectMessage(nil), st.DirectMessages...)
	out.Messages = make(map[string][]model.Message, len(st.Messages))
	for k, v := range st.Messages {
		out.Messages[k] = append([]model.Message(nil), v...)
	}
	return out
}

// =============================================================================
// LOOKUPS
// =============================================================================

// Server returns the server with the given ID.
func (st State) Server(id string) (model.Server, bool) {
	return lo.Find(st.Servers, func(s model.Server) bool { return s.ID == id })
}

// Channel returns the channel with the given ID.
func (st State) Channel(id string) (model.Channel, bool) {
	return lo.Find(st.Channels, func(c model.Channel) bool { return c.ID == id })
}

// Friend returns the friend with the given ID.
func (st State) Friend(id string) (model.Friend, bool) {
	return lo.Find(st.Friends, func(f model.Friend) bool { return f.ID == id })
}

// DirectMessage returns the direct message with the given ID.
func (st State) DirectMessage(id string) (model.DirectMessage, bool) {
	return lo.Find(st.DirectMessages, func(dm model.DirectMessage) bool { return dm.ID == id })
}

// DirectMessageForFriend returns the conversation linked to a friend.
func (st State) DirectMessageForFriend(friendID string) (model.DirectMessage, bool) {
	return lo.Find(st.DirectMessages, func(dm model.DirectMessage) bool { return dm.FriendID == friendID })
}

// ServerChannels returns the channels of a server, optionally filtered by kind.
// An empty kind returns every channel.
func (st State) ServerChannels(serverID string, kind model.ChannelKind) []model.Channel {
	return lo.Filter(st.Channels, func(c model.Channel, _ int) bool {
		return c.ServerID == serverID && (kind == "" || c.Kind == kind)
	})
}

// CurrentServer returns the selected server when the server view is active.
func (st State) CurrentServer() (model.Server, bool) {
	if st.View != model.ViewServer {
		return model.Server{}, false
	}
	return st.Server(st.SelectedServer)
}

// CurrentChannel returns the selected channel when the server view is active.
func (st State) CurrentChannel() (model.Channel, bool) {
	if st.View != model.ViewServer {
		return model.Channel{}, false
	}
	return st.Channel(st.SelectedChannel)
}

// CurrentDM returns the selected direct message when the dm view is active.
func (st State) CurrentDM() (model.DirectMessage, bool) {
	if st.View != model.ViewDM {
		return model.DirectMessage{}, false
	}
	return st.DirectMessage(st.SelectedDM)
}

// ConversationKey returns the key of the active conversation, or "" if the
// current view has none.
func (st State) ConversationKey() string {
	switch st.View {
	case model.ViewServer:
		return st.SelectedChannel
	case model.ViewDM:
		return st.SelectedDM
	default:
		return ""
	}
}

// Conversation returns the ordered history of the active conversation.
func (st State) Conversation() []model.Message {
	key := st.ConversationKey()
	if key == "" {
		return nil
	}
	return st.Messages[key]
}
