// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package call

import "time"

// State is the lifecycle state of the call session.
type State string

const (
	StateIdle     State = "idle"
	StateStarting State = "starting"
	StateActive   State = "active"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// Preview names the local stream shown in the "You" pane.
type Preview string

const (
	PreviewNone   Preview = "none"
	PreviewCamera Preview = "camera"
	PreviewScreen Preview = "screen"
)

// Session is a point-in-time copy of the call state for rendering.
type Session struct {
	Generation  uint64
	State       State
	Participant string
	StartedAt   time.Time

	MicOn    bool
	CameraOn bool
	Sharing  bool
	Preview  Preview

	HasLocal     bool
	HasRemote    bool
	RemoteTracks int

	PeerState     string
	ICECandidates int
}

// InCall reports whether a session is starting or active.
func (s Session) InCall() bool {
	return s.State != StateIdle
}

// Active reports whether the session is fully set up.
func (s Session) Active() bool {
	return s.State == StateActive
}

// Title returns the overlay title for the session.
func (s Session) Title() string {
	switch {
	case s.Sharing:
		return "Screen share"
	case s.CameraOn:
		return "Video call"
	default:
		return "Call"
	}
}

// Elapsed returns how long the session has been active, truncated to seconds.
func (s Session) Elapsed(now time.Time) time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(s.StartedAt).Truncate(time.Second)
}
