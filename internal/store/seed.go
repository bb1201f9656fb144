// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"github.com/jeranaias/huddle/internal/model"
)

// Seed replaces the store contents with the demo workspace shown on first
// launch and installs the given profile.
func (s *Store) Seed(profile model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	servers := []model.Server{
		{ID: "1", Name: "Home", Icon: "🏠"},
		{ID: "2", Name: "Work", Icon: "💼"},
		{ID: "3", Name: "Friends", Icon: "🎮"},
		{ID: "4", Name: "Projects", Icon: "🚀"},
	}

	var channels []model.Channel
	for _, srv := range servers {
		channels = append(channels,
			model.Channel{ID: srv.ID + "-general", ServerID: srv.ID, Name: "general", Kind: model.ChannelText, Unread: 3},
			model.Channel{ID: srv.ID + "-important", ServerID: srv.ID, Name: "important", Kind: model.ChannelText},
			model.Channel{ID: srv.ID + "-voice-1", ServerID: srv.ID, Name: "Voice 1", Kind: model.ChannelVoice},
			model.Channel{ID: srv.ID + "-voice-2", ServerID: srv.ID, Name: "Voice 2", Kind: model.ChannelVoice},
		)
	}

	friends := []model.Friend{
		{ID: "f1", Name: "Alexander", Status: model.PresenceOnline, Avatar: model.AvatarURL("Alexander")},
		{ID: "f2", Name: "Maria", Status: model.PresenceOnline, Avatar: model.AvatarURL("Maria")},
		{ID: "f3", Name: "Dmitry", Status: model.PresenceOffline, Avatar: model.AvatarURL("Dmitry")},
	}

	seedMessages := []model.Message{
		{ID: "m1", Author: "Alexander", Avatar: model.AvatarURL("Alexander"), Content: "Hi! How are you?", Timestamp: "14:30"},
		{ID: "m2", Author: "Maria", Avatar: model.AvatarURL("Maria"), Content: "Great! Working on a new project", Timestamp: "14:32"},
		{ID: "m3", Author: "Dmitry", Avatar: model.AvatarURL("Dmitry"), Content: "Who's up for a call in 10 minutes?", Timestamp: "14:35"},
	}

	dms := make([]model.DirectMessage, 0, len(friends))
	messages := make(map[string][]model.Message)
	for i, f := range friends {
		dm := model.DirectMessage{
			ID:           "dm-" + f.ID,
			FriendID:     f.ID,
			FriendName:   f.Name,
			FriendAvatar: f.Avatar,
			LastMessage:  seedMessages[i].Content,
			Timestamp:    seedMessages[i].Timestamp,
			Status:       f.Status,
		}
		if i == 0 {
			dm.Unread = 1
		}
		dms = append(dms, dm)
		messages[dm.ID] = []model.Message{seedMessages[i]}
	}

	// Every server's general channel starts with the same short history.
	for _, srv := range servers {
		messages[srv.ID+"-general"] = append([]model.Message(nil), seedMessages...)
	}

	s.state = State{
		View:           model.ViewDM,
		Servers:        servers,
		Channels:       channels,
		Friends:        friends,
		DirectMessages: dms,
		Messages:       messages,
		Profile:        profile,
	}
}
