// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the in-memory view-state container for huddle.
//
// The Store holds the current selection (server, channel, direct message and
// view mode) together with the lists the sidebars and message view render.
// Setters are the only mutation path; readers take a Snapshot, which is a deep
// copy safe to hand to render functions.
//
// Invariants maintained by every setter:
//
//   - every DirectMessage references an existing Friend; removing a friend
//     removes the conversations that point at it
//   - the server view always has a server and one of its text channels selected
//   - the dm view never has a server selected
//   - the friends, settings and notifications views have no selection at all
//
// Nothing in the store is persisted. A new process starts from Seed.
package store
