// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package call owns the lifecycle of the single call session.
//
// A Controller acquires local media through media.Devices, creates one peer
// connection per session through media.PeerFactory, and tears everything down
// on End or Close. Microphone, camera and screen sharing are independent
// flags of an active session.
//
// # State Machine
//
//	Idle -> Starting -> Active -> Idle
//
// Start moves Idle to Starting while capture is pending and to Active once
// the peer connection holds the local tracks. End from Starting or Active
// returns to Idle. There is no retry, reconnection or signaling.
//
// # Events
//
// Spontaneous callbacks from tracks and the peer connection arrive as Event
// values through HandleEvent. Every session gets a new generation number and
// events carry the generation they were registered under, so callbacks from a
// session that already ended are dropped.
//
// Every change is published on the hub topic event.CallUpdated with a Session
// snapshot. Failures are reported once through event.Notifier.
package call
