// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package media is the capability boundary between huddle and the machinery
// that captures audio, video and screen content and moves it between peers.
//
// # Key Types
//
//   - Track: an audio or video track handle that can be muted and stopped
//   - Stream: an ordered group of tracks (camera/mic, display or remote)
//   - Devices: asynchronous capture with grant or deny outcomes
//   - PeerFactory / PeerConnection: one peer connection per call
//
// # Implementations
//
// VirtualDevices produces pion TrackLocalStaticSample tracks and decides
// grant or deny from a Policy, optionally after a prompt delay. PionFactory
// builds github.com/pion/webrtc/v4 peer connections. The mediatest package
// has in-memory fakes of both for tests.
package media
