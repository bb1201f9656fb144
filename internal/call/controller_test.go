// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package call

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/huddle/internal/event"
	"github.com/jeranaias/huddle/internal/event/mock_event"
	"github.com/jeranaias/huddle/internal/media"
	"github.com/jeranaias/huddle/internal/media/mediatest"
)

type fixture struct {
	c        *Controller
	devices  *mediatest.Devices
	peers    *mediatest.PeerFactory
	notifier *mock_event.MockNotifier
	hub      *hub.Hub
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		devices:  &mediatest.Devices{},
		peers:    &mediatest.PeerFactory{},
		notifier: mock_event.NewMockNotifier(ctrl),
		hub:      hub.New(),
	}
	f.c = NewController(f.devices, f.peers, f.notifier, f.hub, zap.NewNop(), Options{ICEServers: media.DefaultICEServers})
	return f
}

// start runs a successful Start and consumes its notification.
func (f *fixture) start(t *testing.T, withVideo bool) {
	t.Helper()
	f.notifier.EXPECT().Notify("Call with Maria started", false)
	require.NoError(t, f.c.Start(context.Background(), "Maria", withVideo))
}

func assertIdle(t *testing.T, s Session) {
	t.Helper()
	assert.Equal(t, StateIdle, s.State)
	assert.False(t, s.HasLocal)
	assert.False(t, s.HasRemote)
	assert.False(t, s.Sharing)
	assert.False(t, s.MicOn)
	assert.False(t, s.CameraOn)
	assert.Equal(t, PreviewNone, s.Preview)
	assert.Empty(t, s.Participant)
}

// =============================================================================
// START / END
// =============================================================================

func TestStartAndEnd(t *testing.T) {
	t.Parallel()
	f := setup(t)

	f.start(t, false)
	s := f.c.Snapshot()
	assert.Equal(t, StateActive, s.State)
	assert.True(t, s.HasLocal)
	assert.True(t, s.MicOn)
	assert.False(t, s.CameraOn)
	assert.Equal(t, PreviewCamera, s.Preview)
	assert.Equal(t, "Maria", s.Participant)
	assert.Equal(t, "Call", s.Title())

	require.Len(t, f.devices.Requests, 1)
	assert.Equal(t, media.Constraints{Audio: true}, f.devices.Requests[0])

	pc := f.peers.Last()
	require.NotNil(t, pc)
	assert.Equal(t, media.DefaultICEServers, pc.Config.ICEServers)
	assert.Len(t, pc.SentTrackIDs(), 1)

	local := f.devices.Last()
	f.notifier.EXPECT().Notify("Call ended", false)
	f.c.End()

	assertIdle(t, f.c.Snapshot())
	assert.True(t, pc.Closed())
	for _, tr := range local.Tracks() {
		assert.True(t, tr.Stopped())
	}
}

func TestStart_Video(t *testing.T) {
	t.Parallel()
	f := setup(t)

	f.start(t, true)
	s := f.c.Snapshot()
	assert.True(t, s.CameraOn)
	assert.Equal(t, "Video call", s.Title())
	assert.Len(t, f.peers.Last().SentTrackIDs(), 2)
}

func TestEnd_Twice(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, false)

	sub := f.hub.Subscribe(10, event.CallUpdated)
	defer f.hub.Unsubscribe(sub)

	f.notifier.EXPECT().Notify("Call ended", false).Times(1)
	f.c.End()
	f.c.End()

	assertIdle(t, f.c.Snapshot())
	// Only the first End publishes.
	<-sub.Receiver
	select {
	case m := <-sub.Receiver:
		t.Fatalf("unexpected publish: %v", m.Fields)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEnd_WithoutSession(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.c.End()
	assertIdle(t, f.c.Snapshot())
}

func TestStart_PermissionDenied(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.devices.UserErr = media.ErrPermissionDenied

	f.notifier.EXPECT().Notify("Could not start call: permission denied", true).Times(1)
	err := f.c.Start(context.Background(), "Maria", true)

	assert.ErrorIs(t, err, media.ErrPermissionDenied)
	assertIdle(t, f.c.Snapshot())
	assert.Nil(t, f.peers.Last(), "no peer connection is created")
}

func TestStart_PeerConnectionFailure(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.peers.Err = errors.New("no ice agent")

	f.notifier.EXPECT().Notify("Could not start call: no ice agent", true)
	err := f.c.Start(context.Background(), "Maria", false)

	require.Error(t, err)
	assertIdle(t, f.c.Snapshot())
	for _, tr := range f.devices.Last().Tracks() {
		assert.True(t, tr.Stopped(), "captured tracks are released")
	}
}

func TestStart_WhileInProgress(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, false)

	err := f.c.Start(context.Background(), "Dmitry", false)
	assert.ErrorIs(t, err, ErrCallInProgress)
	assert.Equal(t, "Maria", f.c.Snapshot().Participant)
}

func TestEnd_DuringStarting(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.devices.Gate = make(chan struct{})
	f.devices.Entered = make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		done <- f.c.Start(context.Background(), "Maria", false)
	}()

	<-f.devices.Entered
	assert.Equal(t, StateStarting, f.c.Snapshot().State)

	// No "Call ended" toast for a call that never became active.
	f.c.End()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrCallAborted)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after End")
	}
	assertIdle(t, f.c.Snapshot())
	assert.Nil(t, f.peers.Last())
}

func TestClose(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, true)
	pc := f.peers.Last()

	f.notifier.EXPECT().Notify("Call ended", false)
	require.NoError(t, f.c.Close())
	require.NoError(t, f.c.Close())

	assertIdle(t, f.c.Snapshot())
	assert.True(t, pc.Closed())
	assert.ErrorIs(t, f.c.Start(context.Background(), "Maria", false), ErrClosed)
}

// =============================================================================
// TOGGLES
// =============================================================================

func TestToggleMicrophone(t *testing.T) {
	t.Parallel()
	f := setup(t)

	// No stream: nothing happens.
	f.c.ToggleMicrophone()
	assert.False(t, f.c.Snapshot().MicOn)

	f.start(t, false)
	audio := f.devices.Last().AudioTracks()[0]

	f.c.ToggleMicrophone()
	assert.False(t, f.c.Snapshot().MicOn)
	assert.False(t, audio.Enabled())

	f.c.ToggleMicrophone()
	assert.True(t, f.c.Snapshot().MicOn)
	assert.True(t, audio.Enabled())
}

func TestToggleMicrophone_AfterAudioTrackEnded(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, false)
	audio := f.devices.Last().AudioTracks()[0].(*mediatest.Track)

	audio.End()
	require.False(t, f.c.Snapshot().MicOn)
	require.True(t, f.c.Snapshot().HasLocal)

	f.c.ToggleMicrophone()
	assert.False(t, f.c.Snapshot().MicOn)
}

func TestToggleCamera(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, false)
	pc := f.peers.Last()

	require.NoError(t, f.c.ToggleCamera(context.Background()))
	s := f.c.Snapshot()
	assert.True(t, s.CameraOn)
	assert.Equal(t, media.Constraints{Video: true}, f.devices.Requests[1])
	assert.Len(t, pc.SentTrackIDs(), 2)
	cam := f.devices.Last().VideoTracks()[0]

	require.NoError(t, f.c.ToggleCamera(context.Background()))
	s = f.c.Snapshot()
	assert.False(t, s.CameraOn)
	assert.True(t, cam.Stopped())
	assert.Len(t, pc.SentTrackIDs(), 1)
	assert.True(t, s.MicOn, "mic is untouched")
}

func TestToggleCamera_Failure(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, false)
	before := f.c.Snapshot()

	f.devices.UserErr = media.ErrPermissionDenied
	f.notifier.EXPECT().Notify("Could not turn on camera: permission denied", true).Times(1)

	err := f.c.ToggleCamera(context.Background())
	assert.ErrorIs(t, err, media.ErrPermissionDenied)
	assert.Equal(t, before, f.c.Snapshot())
}

func TestToggleCamera_NoSession(t *testing.T) {
	t.Parallel()
	f := setup(t)
	assert.NoError(t, f.c.ToggleCamera(context.Background()))
	assert.Empty(t, f.devices.Requests)
}

func TestToggleScreenShare(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, true)
	pc := f.peers.Last()

	require.NoError(t, f.c.ToggleScreenShare(context.Background()))
	s := f.c.Snapshot()
	assert.True(t, s.Sharing)
	assert.Equal(t, PreviewScreen, s.Preview)
	assert.Equal(t, "Screen share", s.Title())
	assert.Len(t, pc.SentTrackIDs(), 3)
	screen := f.devices.Last().VideoTracks()[0]

	require.NoError(t, f.c.ToggleScreenShare(context.Background()))
	s = f.c.Snapshot()
	assert.False(t, s.Sharing)
	assert.Equal(t, PreviewCamera, s.Preview)
	assert.True(t, screen.Stopped())
	assert.Len(t, pc.SentTrackIDs(), 2)
}

func TestToggleScreenShare_Denied(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, true)
	before := f.c.Snapshot()

	f.devices.DisplayErr = media.ErrDisplayCaptureDenied
	f.notifier.EXPECT().Notify("Could not share screen: screen capture was denied", true).Times(1)

	err := f.c.ToggleScreenShare(context.Background())
	assert.ErrorIs(t, err, media.ErrDisplayCaptureDenied)
	assert.Equal(t, before, f.c.Snapshot())
}

func TestScreenShare_EndedExternallyRestoresCamera(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, true)
	pc := f.peers.Last()

	require.NoError(t, f.c.ToggleScreenShare(context.Background()))
	screen := f.devices.Last().VideoTracks()[0].(*mediatest.Track)

	// The user stops sharing from outside the app.
	screen.End()

	s := f.c.Snapshot()
	assert.False(t, s.Sharing)
	assert.True(t, s.CameraOn)
	assert.Equal(t, PreviewCamera, s.Preview)
	assert.Equal(t, "Video call", s.Title())
	assert.NotContains(t, pc.SentTrackIDs(), screen.ID())
}

// =============================================================================
// INBOUND EVENTS
// =============================================================================

func TestRemoteTrack(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, false)
	pc := f.peers.Last()

	remote := mediatest.NewTrack("remote-audio", media.KindAudio)
	pc.Handlers.OnTrack(remote, "peer-stream")

	s := f.c.Snapshot()
	assert.True(t, s.HasRemote)
	assert.Equal(t, 1, s.RemoteTracks)

	remote.End()
	assert.False(t, f.c.Snapshot().HasRemote)
}

func TestPeerStateAndCandidates(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, false)
	pc := f.peers.Last()

	pc.Handlers.OnICECandidate("candidate:1 1 udp 2130706431 10.0.0.1 5000 typ host")
	pc.Handlers.OnStateChange("failed")

	s := f.c.Snapshot()
	assert.Equal(t, 1, s.ICECandidates)
	assert.Equal(t, "failed", s.PeerState)
	assert.Equal(t, StateActive, s.State, "a failed connection does not end the call")
}

func TestStaleEventsIgnored(t *testing.T) {
	t.Parallel()
	f := setup(t)
	f.start(t, false)
	old := f.peers.Last()

	f.notifier.EXPECT().Notify("Call ended", false)
	f.c.End()
	f.start(t, false)

	stale := mediatest.NewTrack("late", media.KindVideo)
	old.Handlers.OnTrack(stale, "old-stream")
	old.Handlers.OnStateChange("connected")

	s := f.c.Snapshot()
	assert.False(t, s.HasRemote)
	assert.Empty(t, s.PeerState)
	assert.True(t, stale.Stopped())
}

func TestPublishesSnapshots(t *testing.T) {
	t.Parallel()
	f := setup(t)
	sub := f.hub.Subscribe(10, event.CallUpdated)
	defer f.hub.Unsubscribe(sub)

	f.start(t, false)

	var states []State
	for len(states) < 2 {
		select {
		case m := <-sub.Receiver:
			s, ok := m.Fields[event.FieldSession].(Session)
			require.True(t, ok)
			states = append(states, s.State)
		case <-time.After(time.Second):
			t.Fatal("missing call.updated")
		}
	}
	assert.Equal(t, []State{StateStarting, StateActive}, states)
}
