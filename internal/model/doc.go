// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for servers, channels, friends and messages.
//
// This package defines the plain records held in memory for the lifetime of the
// client. Nothing here is persisted; the store package owns every instance and
// hands out copies for rendering.
//
// # Key Types
//
//   - Server: A guild-like container with a name and an icon glyph
//   - Channel: A text or voice channel belonging to a server
//   - Message: A single chat line with author, content and display timestamp
//   - Friend: A contact with a presence status
//   - DirectMessage: A one-to-one conversation linked to a Friend
//   - View: The panel currently shown in the main area
//
// # Usage
//
//	msg := model.NewMessage("m1", "Alex", "Hello!", time.Now(), true)
//	fmt.Println(msg.Author, msg.Timestamp)
package model
