// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package media

import (
	"errors"
	"fmt"

	"github.com/pion/webrtc/v4"
	"go.uber.org/zap"
)

// ErrUnsupportedTrack is returned when a track cannot be sent by a peer
// connection implementation.
var ErrUnsupportedTrack = errors.New("track cannot be sent on this connection")

// DefaultICEServers is used when no STUN server is configured.
var DefaultICEServers = []string{"stun:stun.l.google.com:19302"}

// Sender is the handle returned when a track is attached to a connection.
type Sender interface {
	Track() Track
}

// PeerConnection is a single call's connection to the remote peer.
type PeerConnection interface {
	AddTrack(t Track) (Sender, error)
	RemoveTrack(s Sender) error
	Close() error
}

// PeerConfig configures a new connection.
type PeerConfig struct {
	ICEServers []string
}

// PeerHandlers receive inbound callbacks. They may be called from any
// goroutine. Nil handlers are ignored.
type PeerHandlers struct {
	OnTrack        func(t Track, streamID string)
	OnICECandidate func(candidate string)
	OnStateChange  func(state string)
}

// PeerFactory creates peer connections.
type PeerFactory interface {
	NewPeerConnection(cfg PeerConfig, h PeerHandlers) (PeerConnection, error)
}

// =============================================================================
// PION
// =============================================================================

// PionFactory creates github.com/pion/webrtc peer connections.
type PionFactory struct {
	logger *zap.Logger
}

// NewPionFactory returns a factory that logs connection lifecycle to logger.
func NewPionFactory(logger *zap.Logger) *PionFactory {
	return &PionFactory{logger: logger}
}

// NewPeerConnection creates a connection and wires h to its callbacks.
func (f *PionFactory) NewPeerConnection(cfg PeerConfig, h PeerHandlers) (PeerConnection, error) {
	conf := webrtc.Configuration{}
	if len(cfg.ICEServers) > 0 {
		conf.ICEServers = []webrtc.ICEServer{{URLs: cfg.ICEServers}}
	}

	pc, err := webrtc.NewPeerConnection(conf)
	if err != nil {
		return nil, fmt.Errorf("create peer connection: %w", err)
	}

	pc.OnTrack(func(tr *webrtc.TrackRemote, _ *webrtc.RTPReceiver) {
		rt := newRemoteTrack(tr)
		f.logger.Debug("remote track", zap.String("id", tr.ID()), zap.String("kind", tr.Kind().String()))
		if h.OnTrack != nil {
			h.OnTrack(rt, tr.StreamID())
		}
		go rt.drain()
	})
	pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		// nil marks the end of gathering.
		if c == nil || h.OnICECandidate == nil {
			return
		}
		h.OnICECandidate(c.String())
	})
	pc.OnConnectionStateChange(func(s webrtc.PeerConnectionState) {
		f.logger.Debug("peer connection state", zap.String("state", s.String()))
		if h.OnStateChange != nil {
			h.OnStateChange(s.String())
		}
	})

	return &pionConnection{pc: pc}, nil
}

type pionConnection struct {
	pc *webrtc.PeerConnection
}

type pionSender struct {
	track  Track
	sender *webrtc.RTPSender
}

func (s *pionSender) Track() Track {
	return s.track
}

func (c *pionConnection) AddTrack(t Track) (Sender, error) {
	local, ok := t.(interface{ RTP() webrtc.TrackLocal })
	if !ok {
		return nil, fmt.Errorf("%s: %w", t.ID(), ErrUnsupportedTrack)
	}
	sender, err := c.pc.AddTrack(local.RTP())
	if err != nil {
		return nil, fmt.Errorf("add track %s: %w", t.ID(), err)
	}
	return &pionSender{track: t, sender: sender}, nil
}

func (c *pionConnection) RemoveTrack(s Sender) error {
	ps, ok := s.(*pionSender)
	if !ok {
		return ErrUnsupportedTrack
	}
	if err := c.pc.RemoveTrack(ps.sender); err != nil {
		return fmt.Errorf("remove track %s: %w", ps.track.ID(), err)
	}
	return nil
}

func (c *pionConnection) Close() error {
	return c.pc.Close()
}
