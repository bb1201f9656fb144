// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package mediatest provides in-memory fakes of the media capability
// boundary for tests.
package mediatest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jeranaias/huddle/internal/media"
)

// =============================================================================
// TRACK
// =============================================================================

// Track is a fake media.Track. End simulates the track ending by itself.
type Track struct {
	mu      sync.Mutex
	id      string
	kind    media.Kind
	enabled bool
	stopped bool
	onEnded []func()
}

// NewTrack returns an enabled fake track.
func NewTrack(id string, kind media.Kind) *Track {
	return &Track{id: id, kind: kind, enabled: true}
}

func (t *Track) ID() string       { return t.id }
func (t *Track) Kind() media.Kind { return t.kind }
func (t *Track) Label() string    { return "fake " + t.kind.String() }

func (t *Track) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

func (t *Track) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

func (t *Track) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *Track) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *Track) OnEnded(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEnded = append(t.onEnded, fn)
}

// End stops the track and fires the ended handlers.
func (t *Track) End() {
	t.mu.Lock()
	t.stopped = true
	handlers := t.onEnded
	t.onEnded = nil
	t.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// =============================================================================
// DEVICES
// =============================================================================

// Devices is a fake media.Devices.
//
// UserErr and DisplayErr make the next requests fail. When Gate is non-nil
// every request blocks until it is closed or ctx is done, and Entered (if
// set) receives a value once the request is waiting.
type Devices struct {
	mu sync.Mutex

	UserErr    error
	DisplayErr error
	Gate       chan struct{}
	Entered    chan struct{}

	Requests []media.Constraints
	Displays int
	Streams  []*media.Stream

	seq int
}

func (d *Devices) UserMedia(ctx context.Context, c media.Constraints) (*media.Stream, error) {
	d.mu.Lock()
	d.Requests = append(d.Requests, c)
	err := d.UserErr
	d.mu.Unlock()

	if werr := d.wait(ctx); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	s := media.NewStream(fmt.Sprintf("user-%d", d.seq))
	if c.Audio {
		s.AddTrack(NewTrack(fmt.Sprintf("audio-%d", d.seq), media.KindAudio))
	}
	if c.Video {
		s.AddTrack(NewTrack(fmt.Sprintf("video-%d", d.seq), media.KindVideo))
	}
	d.Streams = append(d.Streams, s)
	return s, nil
}

func (d *Devices) DisplayMedia(ctx context.Context) (*media.Stream, error) {
	d.mu.Lock()
	d.Displays++
	err := d.DisplayErr
	d.mu.Unlock()

	if werr := d.wait(ctx); werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	s := media.NewStream(fmt.Sprintf("display-%d", d.seq),
		NewTrack(fmt.Sprintf("screen-%d", d.seq), media.KindVideo))
	d.Streams = append(d.Streams, s)
	return s, nil
}

// Last returns the most recently captured stream.
func (d *Devices) Last() *media.Stream {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Streams) == 0 {
		return nil
	}
	return d.Streams[len(d.Streams)-1]
}

func (d *Devices) wait(ctx context.Context) error {
	if d.Gate == nil {
		return nil
	}
	if d.Entered != nil {
		d.Entered <- struct{}{}
	}
	select {
	case <-d.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// =============================================================================
// PEER CONNECTION
// =============================================================================

// Sender is a fake media.Sender.
type Sender struct {
	track media.Track
}

func (s *Sender) Track() media.Track { return s.track }

// PeerConnection is a fake media.PeerConnection that records its senders.
type PeerConnection struct {
	mu       sync.Mutex
	Config   media.PeerConfig
	Handlers media.PeerHandlers
	senders  []*Sender
	closed   bool
	AddErr   error
}

func (pc *PeerConnection) AddTrack(t media.Track) (media.Sender, error) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.AddErr != nil {
		return nil, pc.AddErr
	}
	s := &Sender{track: t}
	pc.senders = append(pc.senders, s)
	return s, nil
}

func (pc *PeerConnection) RemoveTrack(s media.Sender) error {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	for i, x := range pc.senders {
		if x == s {
			pc.senders = append(pc.senders[:i], pc.senders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown sender")
}

func (pc *PeerConnection) Close() error {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.closed = true
	return nil
}

// Closed reports whether Close was called.
func (pc *PeerConnection) Closed() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.closed
}

// SentTrackIDs returns the IDs of the tracks currently attached.
func (pc *PeerConnection) SentTrackIDs() []string {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	ids := make([]string, 0, len(pc.senders))
	for _, s := range pc.senders {
		ids = append(ids, s.track.ID())
	}
	return ids
}

// PeerFactory is a fake media.PeerFactory.
type PeerFactory struct {
	mu    sync.Mutex
	Err   error
	Conns []*PeerConnection
}

func (f *PeerFactory) NewPeerConnection(cfg media.PeerConfig, h media.PeerHandlers) (media.PeerConnection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	pc := &PeerConnection{Config: cfg, Handlers: h}
	f.Conns = append(f.Conns, pc)
	return pc, nil
}

// Last returns the most recently created connection.
func (f *PeerFactory) Last() *PeerConnection {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Conns) == 0 {
		return nil
	}
	return f.Conns[len(f.Conns)-1]
}
