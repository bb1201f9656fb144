// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package call

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/jeranaias/huddle/internal/event"
	"github.com/jeranaias/huddle/internal/media"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrCallInProgress is returned by Start when a session already exists.
	ErrCallInProgress = errors.New("call already in progress")

	// ErrCallAborted is returned when the session ended while an operation
	// was waiting for capture.
	ErrCallAborted = errors.New("call ended before setup finished")

	// ErrClosed is returned by Start after Close.
	ErrClosed = errors.New("call controller closed")
)

// Options configures a Controller.
type Options struct {
	// ICEServers are passed to every new peer connection.
	ICEServers []string
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller manages the single call session.
type Controller struct {
	devices  media.Devices
	peers    media.PeerFactory
	notifier event.Notifier
	hub      *hub.Hub
	logger   *zap.Logger
	opts     Options
	now      func() time.Time

	mu          sync.Mutex
	closed      bool
	gen         uint64
	state       State
	participant string
	startedAt   time.Time
	cancelStart context.CancelFunc

	local   *media.Stream // microphone and camera
	display *media.Stream
	remote  *media.Stream
	pc      media.PeerConnection
	senders map[string]media.Sender

	micOn    bool
	cameraOn bool

	// capture requests in flight, so repeated key presses do not stack
	cameraPending bool
	sharePending  bool

	peerState  string
	candidates int
}

// NewController creates an idle controller.
func NewController(devices media.Devices, peers media.PeerFactory, notifier event.Notifier, h *hub.Hub, logger *zap.Logger, opts Options) *Controller {
	return &Controller{
		devices:  devices,
		peers:    peers,
		notifier: notifier,
		hub:      h,
		logger:   logger.Named("call"),
		opts:     opts,
		now:      time.Now,
		state:    StateIdle,
	}
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Session {
	s := Session{
		Generation:    c.gen,
		State:         c.state,
		Participant:   c.participant,
		StartedAt:     c.startedAt,
		MicOn:         c.micOn,
		CameraOn:      c.cameraOn,
		Sharing:       c.display != nil,
		HasLocal:      c.local != nil,
		HasRemote:     c.remote != nil,
		PeerState:     c.peerState,
		ICECandidates: c.candidates,
		Preview:       PreviewNone,
	}
	if c.remote != nil {
		s.RemoteTracks = c.remote.Len()
	}
	switch {
	case c.display != nil:
		s.Preview = PreviewScreen
	case c.local != nil:
		s.Preview = PreviewCamera
	}
	return s
}

func (c *Controller) publish() {
	c.hub.Publish(hub.Message{
		Name:   event.CallUpdated,
		Fields: hub.Fields{event.FieldSession: c.Snapshot()},
	})
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start acquires microphone (and camera when withVideo is set), creates the
// peer connection and attaches the local tracks. On failure the user is
// notified once and the controller is left idle with nothing retained.
func (c *Controller) Start(ctx context.Context, participant string, withVideo bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrCallInProgress
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(ctx)
	c.state = StateStarting
	c.participant = participant
	c.cancelStart = cancel
	c.mu.Unlock()
	defer cancel()

	c.publish()
	log := c.logger.With(zap.Uint64("generation", gen), zap.String("participant", participant))

	stream, err := c.devices.UserMedia(ctx, media.Constraints{Audio: true, Video: withVideo})
	if err != nil {
		return c.failStart(gen, log, err)
	}

	pc, err := c.peers.NewPeerConnection(media.PeerConfig{ICEServers: c.opts.ICEServers}, c.handlers(gen))
	if err != nil {
		stream.Stop()
		return c.failStart(gen, log, err)
	}

	senders := make(map[string]media.Sender)
	for _, t := range stream.Tracks() {
		s, err := pc.AddTrack(t)
		if err != nil {
			stream.Stop()
			c.closePeer(pc, log)
			return c.failStart(gen, log, err)
		}
		senders[t.ID()] = s
	}

	c.mu.Lock()
	if c.gen != gen || c.state != StateStarting {
		c.mu.Unlock()
		stream.Stop()
		c.closePeer(pc, log)
		log.Info("call start aborted")
		return ErrCallAborted
	}
	c.state = StateActive
	c.cancelStart = nil
	c.startedAt = c.now()
	c.local = stream
	c.pc = pc
	c.senders = senders
	c.micOn = true
	c.cameraOn = withVideo
	for _, t := range stream.Tracks() {
		c.watchEndedLocked(gen, t)
	}
	c.mu.Unlock()

	log.Info("call started", zap.Bool("video", withVideo))
	c.notifier.Notify(fmt.Sprintf("Call with %s started", participant), false)
	c.publish()
	return nil
}

// failStart resets a Starting session after a setup error. When End already
// took the session down, the error is swallowed and ErrCallAborted returned.
func (c *Controller) failStart(gen uint64, log *zap.Logger, err error) error {
	c.mu.Lock()
	if c.gen != gen || c.state != StateStarting {
		c.mu.Unlock()
		log.Info("call start aborted", zap.Error(err))
		return ErrCallAborted
	}
	c.resetLocked()
	c.mu.Unlock()

	log.Warn("call start failed", zap.Error(err))
	c.notifier.Notify(failureMessage("Could not start call", err), true)
	c.publish()
	return fmt.Errorf("start call: %w", err)
}

// End hangs up. All local, display and remote tracks are stopped and the peer
// connection is closed. Without a session it does nothing.
func (c *Controller) End() {
	c.mu.Lock()
	if c.state == StateIdle {
		c.mu.Unlock()
		return
	}
	wasActive := c.state == StateActive
	cancel := c.cancelStart
	local, display, remote, pc := c.local, c.display, c.remote, c.pc
	gen := c.gen
	c.gen++
	c.resetLocked()
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, s := range []*media.Stream{display, local, remote} {
		if s != nil {
			s.Stop()
		}
	}
	log := c.logger.With(zap.Uint64("generation", gen))
	if pc != nil {
		c.closePeer(pc, log)
	}

	log.Info("call ended", zap.Bool("was_active", wasActive))
	if wasActive {
		c.notifier.Notify("Call ended", false)
	}
	c.publish()
}

// Close ends any session and refuses new ones. It is safe to call more than once.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.End()
	return nil
}

func (c *Controller) resetLocked() {
	c.state = StateIdle
	c.participant = ""
	c.startedAt = time.Time{}
	c.cancelStart = nil
	c.local, c.display, c.remote, c.pc = nil, nil, nil, nil
	c.senders = nil
	c.micOn, c.cameraOn = false, false
	c.cameraPending, c.sharePending = false, false
	c.peerState = ""
	c.candidates = 0
}

func (c *Controller) closePeer(pc media.PeerConnection, log *zap.Logger) {
	if err := pc.Close(); err != nil {
		log.Warn("failed to close peer connection", zap.Error(err))
	}
}

// =============================================================================
// TOGGLES
// =============================================================================

// ToggleMicrophone mutes or unmutes the local audio tracks. It does nothing
// without a local audio track.
func (c *Controller) ToggleMicrophone() {
	c.mu.Lock()
	if c.local == nil || len(c.local.AudioTracks()) == 0 {
		c.mu.Unlock()
		return
	}
	c.micOn = !c.micOn
	for _, t := range c.local.AudioTracks() {
		t.SetEnabled(c.micOn)
	}
	on := c.micOn
	c.mu.Unlock()

	c.logger.Debug("microphone toggled", zap.Bool("on", on))
	c.publish()
}

// ToggleCamera adds a camera track to the active session or removes it.
// A capture failure is reported once and leaves the session unchanged.
func (c *Controller) ToggleCamera(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateActive || c.local == nil || c.cameraPending {
		c.mu.Unlock()
		return nil
	}
	if c.cameraOn {
		for _, t := range c.local.VideoTracks() {
			c.dropLocalTrackLocked(t)
		}
		c.cameraOn = false
		c.mu.Unlock()
		c.logger.Debug("camera off")
		c.publish()
		return nil
	}
	gen := c.gen
	c.cameraPending = true
	c.mu.Unlock()

	stream, err := c.devices.UserMedia(ctx, media.Constraints{Video: true})

	c.mu.Lock()
	if c.gen != gen || c.state != StateActive {
		c.mu.Unlock()
		if stream != nil {
			stream.Stop()
		}
		return ErrCallAborted
	}
	c.cameraPending = false
	if err == nil && len(stream.VideoTracks()) == 0 {
		err = media.ErrDeviceNotFound
	}
	if err != nil {
		c.mu.Unlock()
		if stream != nil {
			stream.Stop()
		}
		c.logger.Warn("camera capture failed", zap.Error(err))
		c.notifier.Notify(failureMessage("Could not turn on camera", err), true)
		return fmt.Errorf("toggle camera: %w", err)
	}

	track := stream.VideoTracks()[0]
	sender, err := c.pc.AddTrack(track)
	if err != nil {
		c.mu.Unlock()
		stream.Stop()
		c.logger.Warn("failed to send camera track", zap.Error(err))
		c.notifier.Notify(failureMessage("Could not turn on camera", err), true)
		return fmt.Errorf("toggle camera: %w", err)
	}
	c.local.AddTrack(track)
	c.senders[track.ID()] = sender
	c.cameraOn = true
	c.watchEndedLocked(gen, track)
	c.mu.Unlock()

	c.logger.Debug("camera on", zap.String("track", track.ID()))
	c.publish()
	return nil
}

// ToggleScreenShare starts or stops display capture. While sharing, the
// display stream is the local preview and its track is sent to the peer.
func (c *Controller) ToggleScreenShare(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateActive || c.sharePending {
		c.mu.Unlock()
		return nil
	}
	if c.display != nil {
		c.stopSharingLocked()
		c.mu.Unlock()
		c.logger.Debug("screen share stopped")
		c.publish()
		return nil
	}
	gen := c.gen
	c.sharePending = true
	c.mu.Unlock()

	stream, err := c.devices.DisplayMedia(ctx)

	c.mu.Lock()
	if c.gen != gen || c.state != StateActive {
		c.mu.Unlock()
		if stream != nil {
			stream.Stop()
		}
		return ErrCallAborted
	}
	c.sharePending = false
	if err == nil && len(stream.VideoTracks()) == 0 {
		err = media.ErrDisplayCaptureDenied
	}
	if err != nil {
		c.mu.Unlock()
		if stream != nil {
			stream.Stop()
		}
		c.logger.Warn("display capture failed", zap.Error(err))
		c.notifier.Notify(failureMessage("Could not share screen", err), true)
		return fmt.Errorf("toggle screen share: %w", err)
	}

	track := stream.VideoTracks()[0]
	sender, err := c.pc.AddTrack(track)
	if err != nil {
		c.mu.Unlock()
		stream.Stop()
		c.logger.Warn("failed to send display track", zap.Error(err))
		c.notifier.Notify(failureMessage("Could not share screen", err), true)
		return fmt.Errorf("toggle screen share: %w", err)
	}
	c.display = stream
	c.senders[track.ID()] = sender
	c.watchEndedLocked(gen, track)
	c.mu.Unlock()

	c.logger.Debug("screen share started", zap.String("track", track.ID()))
	c.publish()
	return nil
}

func (c *Controller) stopSharingLocked() {
	for _, t := range c.display.Tracks() {
		c.removeSenderLocked(t.ID())
		t.Stop()
	}
	c.display = nil
}

func (c *Controller) dropLocalTrackLocked(t media.Track) {
	c.removeSenderLocked(t.ID())
	t.Stop()
	c.local.RemoveTrack(t.ID())
}

func (c *Controller) removeSenderLocked(trackID string) {
	s, ok := c.senders[trackID]
	if !ok {
		return
	}
	delete(c.senders, trackID)
	if c.pc == nil {
		return
	}
	if err := c.pc.RemoveTrack(s); err != nil {
		c.logger.Warn("failed to remove sender", zap.String("track", trackID), zap.Error(err))
	}
}

// =============================================================================
// INBOUND EVENTS
// =============================================================================

func (c *Controller) handlers(gen uint64) media.PeerHandlers {
	return media.PeerHandlers{
		OnTrack: func(t media.Track, streamID string) {
			c.HandleEvent(RemoteTrackEvent{Generation: gen, Track: t, StreamID: streamID})
		},
		OnICECandidate: func(candidate string) {
			c.HandleEvent(ICECandidateEvent{Generation: gen, Candidate: candidate})
		},
		OnStateChange: func(state string) {
			c.HandleEvent(PeerStateEvent{Generation: gen, State: state})
		},
	}
}

func (c *Controller) watchEndedLocked(gen uint64, t media.Track) {
	id := t.ID()
	t.OnEnded(func() {
		c.HandleEvent(TrackEndedEvent{Generation: gen, TrackID: id})
	})
}

// HandleEvent applies an inbound callback. Events from a session other than
// the current one are ignored.
func (c *Controller) HandleEvent(ev Event) {
	c.mu.Lock()
	if ev.generation() != c.gen || c.state == StateIdle {
		c.mu.Unlock()
		if rt, ok := ev.(RemoteTrackEvent); ok && rt.Track != nil {
			rt.Track.Stop()
		}
		return
	}

	changed := false
	switch e := ev.(type) {
	case RemoteTrackEvent:
		if c.remote == nil {
			c.remote = media.NewStream(e.StreamID)
		}
		c.remote.AddTrack(e.Track)
		c.watchEndedLocked(e.Generation, e.Track)
		c.logger.Debug("remote track attached", zap.String("track", e.Track.ID()), zap.String("kind", e.Track.Kind().String()))
		changed = true

	case TrackEndedEvent:
		changed = c.trackEndedLocked(e.TrackID)

	case ICECandidateEvent:
		// No signaling channel exists, so candidates are only counted.
		c.candidates++
		c.logger.Debug("ice candidate gathered", zap.String("candidate", e.Candidate))

	case PeerStateEvent:
		c.peerState = e.State
		c.logger.Info("peer connection state changed", zap.String("state", e.State))
		changed = true
	}
	c.mu.Unlock()

	if changed {
		c.publish()
	}
}

func (c *Controller) trackEndedLocked(id string) bool {
	if c.display != nil {
		if _, ok := c.display.Track(id); ok {
			c.stopSharingLocked()
			c.logger.Info("screen share ended by capture source")
			return true
		}
	}
	if c.local != nil {
		if t, ok := c.local.Track(id); ok {
			c.dropLocalTrackLocked(t)
			c.cameraOn = len(c.local.VideoTracks()) > 0
			if len(c.local.AudioTracks()) == 0 {
				c.micOn = false
			}
			c.logger.Info("local track ended", zap.String("track", id))
			return true
		}
	}
	if c.remote != nil {
		if c.remote.RemoveTrack(id) {
			if c.remote.Len() == 0 {
				c.remote = nil
			}
			c.logger.Info("remote track ended", zap.String("track", id))
			return true
		}
	}
	return false
}

// =============================================================================
// HELPERS
// =============================================================================

func failureMessage(action string, err error) string {
	switch {
	case errors.Is(err, media.ErrPermissionDenied):
		return action + ": permission denied"
	case errors.Is(err, media.ErrDisplayCaptureDenied):
		return action + ": screen capture was denied"
	case errors.Is(err, media.ErrDeviceNotFound):
		return action + ": device not found"
	case errors.Is(err, context.DeadlineExceeded):
		return action + ": permission prompt timed out"
	default:
		return fmt.Sprintf("%s: %v", action, err)
	}
}
