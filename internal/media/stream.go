// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package media

import (
	"sync"

	"github.com/samber/lo"
)

// Stream is an ordered group of tracks that render together.
type Stream struct {
	mu     sync.Mutex
	id     string
	tracks []Track
}

// NewStream creates a stream holding the given tracks.
func NewStream(id string, tracks ...Track) *Stream {
	return &Stream{id: id, tracks: append([]Track(nil), tracks...)}
}

// ID returns the stream identifier.
func (s *Stream) ID() string {
	return s.id
}

// Tracks returns a copy of all tracks in insertion order.
func (s *Stream) Tracks() []Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Track(nil), s.tracks...)
}

// AudioTracks returns the audio tracks.
func (s *Stream) AudioTracks() []Track {
	return s.byKind(KindAudio)
}

// VideoTracks returns the video tracks.
func (s *Stream) VideoTracks() []Track {
	return s.byKind(KindVideo)
}

func (s *Stream) byKind(kind Kind) []Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Filter(s.tracks, func(t Track, _ int) bool { return t.Kind() == kind })
}

// Track looks up a track by ID.
func (s *Stream) Track(id string) (Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Find(s.tracks, func(t Track) bool { return t.ID() == id })
}

// AddTrack appends a track unless one with the same ID is present.
func (s *Stream) AddTrack(t Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lo.ContainsBy(s.tracks, func(x Track) bool { return x.ID() == t.ID() }) {
		return
	}
	s.tracks = append(s.tracks, t)
}

// RemoveTrack drops the track with the given ID and reports whether it was
// present. The track is not stopped.
func (s *Stream) RemoveTrack(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.tracks)
	s.tracks = lo.Filter(s.tracks, func(t Track, _ int) bool { return t.ID() != id })
	return len(s.tracks) != n
}

// Len returns the number of tracks.
func (s *Stream) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tracks)
}

// Stop stops every track in the stream.
func (s *Stream) Stop() {
	for _, t := range s.Tracks() {
		t.Stop()
	}
}
