// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package call

import "github.com/jeranaias/huddle/internal/media"

// Event is an inbound callback delivered to Controller.HandleEvent.
type Event interface {
	generation() uint64
}

// RemoteTrackEvent reports a track received from the peer.
type RemoteTrackEvent struct {
	Generation uint64
	Track      media.Track
	StreamID   string
}

// TrackEndedEvent reports that a track ended by itself.
type TrackEndedEvent struct {
	Generation uint64
	TrackID    string
}

// ICECandidateEvent reports a locally gathered ICE candidate.
type ICECandidateEvent struct {
	Generation uint64
	Candidate  string
}

// PeerStateEvent reports a peer connection state change.
type PeerStateEvent struct {
	Generation uint64
	State      string
}

func (e RemoteTrackEvent) generation() uint64  { return e.Generation }
func (e TrackEndedEvent) generation() uint64   { return e.Generation }
func (e ICECandidateEvent) generation() uint64 { return e.Generation }
func (e PeerStateEvent) generation() uint64    { return e.Generation }
