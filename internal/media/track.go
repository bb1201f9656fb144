// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package media

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"
)

// Kind is the media type carried by a track.
type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Track is an audio or video track handle.
//
// Stop is called by the owner and never fires the ended handlers. Ended
// handlers fire only when the track ends on its own, such as the user
// stopping a screen share from outside the app or a remote peer going away.
type Track interface {
	ID() string
	Kind() Kind
	Label() string

	Enabled() bool
	SetEnabled(enabled bool)

	Stop()
	Stopped() bool

	// OnEnded registers fn to be called once when the track ends by itself.
	OnEnded(fn func())
}

// =============================================================================
// TRACK STATE
// =============================================================================

// trackState holds the mutable bits shared by local and remote tracks.
type trackState struct {
	mu      sync.Mutex
	enabled bool
	stopped bool
	onEnded []func()
}

func (s *trackState) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *trackState) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.enabled = enabled
	}
}

func (s *trackState) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *trackState) OnEnded(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnded = append(s.onEnded, fn)
}

// stop marks the track stopped. It reports whether this call did the work.
func (s *trackState) stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.stopped = true
	s.enabled = false
	return true
}

// end stops the track and runs the ended handlers outside the lock.
func (s *trackState) end() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.enabled = false
	handlers := s.onEnded
	s.onEnded = nil
	s.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// =============================================================================
// LOCAL TRACK
// =============================================================================

// LocalTrack is a captured track backed by a pion sample track.
type LocalTrack struct {
	trackState

	id    string
	kind  Kind
	label string
	rtp   *webrtc.TrackLocalStaticSample

	onStop func()
}

// NewLocalTrack creates an enabled local track for the given stream.
func NewLocalTrack(kind Kind, label, streamID string) (*LocalTrack, error) {
	codec := webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 2}
	if kind == KindVideo {
		codec = webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8, ClockRate: 90000}
	}

	id := kind.String() + "-" + uuid.NewString()
	rtp, err := webrtc.NewTrackLocalStaticSample(codec, id, streamID)
	if err != nil {
		return nil, fmt.Errorf("create %s track: %w", kind, err)
	}

	return &LocalTrack{
		trackState: trackState{enabled: true},
		id:         id,
		kind:       kind,
		label:      label,
		rtp:        rtp,
	}, nil
}

func (t *LocalTrack) ID() string    { return t.id }
func (t *LocalTrack) Kind() Kind    { return t.kind }
func (t *LocalTrack) Label() string { return t.label }

// RTP returns the pion track used when the track is sent to a peer.
func (t *LocalTrack) RTP() webrtc.TrackLocal {
	return t.rtp
}

// Stop releases the capture. It does not fire the ended handlers.
func (t *LocalTrack) Stop() {
	if t.stop() && t.onStop != nil {
		t.onStop()
	}
}

// =============================================================================
// REMOTE TRACK
// =============================================================================

// remoteTrack wraps a track received from the peer.
type remoteTrack struct {
	trackState
	remote *webrtc.TrackRemote
}

func newRemoteTrack(tr *webrtc.TrackRemote) *remoteTrack {
	return &remoteTrack{trackState: trackState{enabled: true}, remote: tr}
}

func (t *remoteTrack) ID() string    { return t.remote.ID() }
func (t *remoteTrack) Label() string { return t.remote.StreamID() }

func (t *remoteTrack) Kind() Kind {
	if t.remote.Kind() == webrtc.RTPCodecTypeVideo {
		return KindVideo
	}
	return KindAudio
}

func (t *remoteTrack) Stop() {
	t.stop()
}

// drain reads packets until the remote side stops sending, then ends the
// track. Nothing consumes the media itself.
func (t *remoteTrack) drain() {
	buf := make([]byte, 1500)
	for {
		if _, _, err := t.remote.Read(buf); err != nil {
			t.end()
			return
		}
		if t.Stopped() {
			return
		}
	}
}
