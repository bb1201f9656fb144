// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jeranaias/huddle/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when an ID does not reference a known entity.
	ErrNotFound = errors.New("not found")

	// ErrEmptyMessage is returned when a message is blank after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNoConversation is returned when sending without an open conversation.
	ErrNoConversation = errors.New("no conversation selected")

	// ErrDuplicate is returned when adding a friend that already exists.
	ErrDuplicate = errors.New("already exists")

	// ErrVoiceChannel is returned when selecting a voice channel as a conversation.
	ErrVoiceChannel = errors.New("voice channel")

	// ErrInvalidName is returned for blank names.
	ErrInvalidName = errors.New("name must not be empty")
)

// DefaultServerIcon is used when a server is added without a glyph.
const DefaultServerIcon = "💬"

// NewConversationPreview is the DM preview shown before any message is sent.
const NewConversationPreview = "Start a conversation"

// =============================================================================
// STORE
// =============================================================================

// Store is the mutable view-state container.
type Store struct {
	mu    sync.RWMutex
	state State

	newID func() string
	now   func() time.Time
}

// New creates an empty store in the home view for the given profile.
func New(profile model.Profile) *Store {
	return &Store{
		state: State{
			View:     model.ViewDM,
			Messages: make(map[string][]model.Message),
			Profile:  profile,
		},
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Messages returns a copy of the active conversation's history.
func (s *Store) Messages() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Message(nil), s.state.Conversation()...)
}

// =============================================================================
// NAVIGATION
// =============================================================================

// SelectHome switches to the direct message view and clears server selection.
func (s *Store) SelectHome() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.View = model.ViewDM
	s.state.SelectedServer = ""
	s.state.SelectedChannel = ""
}

// SelectServer switches to the server view and selects its first text channel.
func (s *Store) SelectServer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Server(id); !ok {
		return fmt.Errorf("server %s: %w", id, ErrNotFound)
	}

	s.state.View = model.ViewServer
	s.state.SelectedServer = id
	s.state.SelectedDM = ""
	s.state.SelectedChannel = ""
	if text := s.state.ServerChannels(id, model.ChannelText); len(text) > 0 {
		s.state.SelectedChannel = text[0].ID
	}
	return nil
}

// SelectChannel selects a text channel of the current server and clears its
// unread badge. Voice channels return ErrVoiceChannel and leave the selection
// untouched.
func (s *Store) SelectChannel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, ok := lo.FindIndexOf(s.state.Channels, func(c model.Channel) bool {
		return c.ID == id && c.ServerID == s.state.SelectedServer
	})
	if !ok || s.state.View != model.ViewServer {
		return fmt.Errorf("channel %s: %w", id, ErrNotFound)
	}
	if s.state.Channels[idx].IsVoice() {
		return ErrVoiceChannel
	}

	s.state.Channels[idx].Unread = 0
	s.state.SelectedChannel = id
	return nil
}

// OpenDM switches to the dm view with the given conversation selected.
func (s *Store) OpenDM(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, ok := lo.FindIndexOf(s.state.DirectMessages, func(dm model.DirectMessage) bool {
		return dm.ID == id
	})
	if !ok {
		return fmt.Errorf("direct message %s: %w", id, ErrNotFound)
	}

	s.state.DirectMessages[idx].Unread = 0
	s.state.View = model.ViewDM
	s.state.SelectedDM = id
	s.state.SelectedServer = ""
	s.state.SelectedChannel = ""
	return nil
}

// ShowFriends switches to the friends list.
func (s *Store) ShowFriends() {
	s.showHomePanel(model.ViewFriends)
}

// ShowSettings switches to the account settings panel.
func (s *Store) ShowSettings() {
	s.showHomePanel(model.ViewSettings)
}

// ShowNotifications switches to the notifications panel.
func (s *Store) ShowNotifications() {
	s.showHomePanel(model.ViewNotifications)
}

func (s *Store) showHomePanel(v model.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.View = v
	s.state.SelectedServer = ""
	s.state.SelectedChannel = ""
	s.state.SelectedDM = ""
}

// =============================================================================
// SERVERS
// =============================================================================

// AddServer creates a server with a default text and voice channel.
func (s *Store) AddServer(name, icon string) (model.Server, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Server{}, ErrInvalidName
	}
	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = DefaultServerIcon
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	srv := model.Server{ID: s.newID(), Name: name, Icon: icon}
	s.state.Servers = append(s.state.Servers, srv)
	s.state.Channels = append(s.state.Channels,
		model.Channel{ID: s.newID(), ServerID: srv.ID, Name: "general", Kind: model.ChannelText},
		model.Channel{ID: s.newID(), ServerID: srv.ID, Name: "Voice 1", Kind: model.ChannelVoice},
	)
	return srv, nil
}

// =============================================================================
// FRIENDS
// =============================================================================

// AddFriend creates an online friend and the direct conversation linked to it.
func (s *Store) AddFriend(name string) (model.Friend, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Friend{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if lo.ContainsBy(s.state.Friends, func(f model.Friend) bool { return strings.EqualFold(f.Name, name) }) {
		return model.Friend{}, fmt.Errorf("friend %q: %w", name, ErrDuplicate)
	}

	friend := model.Friend{
		ID:     s.newID(),
		Name:   name,
		Status: model.PresenceOnline,
		Avatar: model.AvatarURL(name),
	}
	s.state.Friends = append(s.state.Friends, friend)
	s.state.DirectMessages = append(s.state.DirectMessages, model.DirectMessage{
		ID:           s.newID(),
		FriendID:     friend.ID,
		FriendName:   friend.Name,
		FriendAvatar: friend.Avatar,
		LastMessage:  NewConversationPreview,
		Timestamp:    model.FormatTimestamp(s.now()),
		Status:       friend.Status,
	})
	return friend, nil
}

// RemoveFriend deletes a friend together with every direct conversation that
// references it. Unrelated conversations are left untouched.
func (s *Store) RemoveFriend(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Friend(id); !ok {
		return fmt.Errorf("friend %s: %w", id, ErrNotFound)
	}

	s.state.Friends = lo.Filter(s.state.Friends, func(f model.Friend, _ int) bool {
		return f.ID != id
	})
	kept, removed := lo.FilterReject(s.state.DirectMessages, func(dm model.DirectMessage, _ int) bool {
		return dm.FriendID != id
	})
	s.state.DirectMessages = kept
	for _, dm := range removed {
		delete(s.state.Messages, dm.ID)
		if s.state.SelectedDM == dm.ID {
			s.state.SelectedDM = ""
		}
	}
	return nil
}

// =============================================================================
// MESSAGES
// =============================================================================

// SendMessage appends an own message to the active conversation.
func (s *Store) SendMessage(text string) (model.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.state.ConversationKey()
	if key == "" {
		return model.Message{}, ErrNoConversation
	}

	msg := model.NewMessage(s.newID(), s.state.Profile.Username, text, s.now(), true)
	s.state.Messages[key] = append(s.state.Messages[key], msg)

	if s.state.View == model.ViewDM {
		for i := range s.state.DirectMessages {
			if s.state.DirectMessages[i].ID == key {
				s.state.DirectMessages[i].LastMessage = msg.Content
				s.state.DirectMessages[i].Timestamp = msg.Timestamp
			}
		}
	}
	return msg, nil
}

// =============================================================================
// PROFILE
// =============================================================================

// SetUsername changes the display name used for new messages.
func (s *Store) SetUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Profile.Username = name
	return nil
}

// SaveSettings replaces the profile after validating it.
func (s *Store) SaveSettings(p model.Profile) error {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	if p.Username == "" {
		return ErrInvalidName
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return fmt.Errorf("invalid email %q", p.Email)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Tag == "" {
		p.Tag = s.state.Profile.Tag
	}
	s.state.Profile = p
	return nil
}
