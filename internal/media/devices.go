// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package media

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrPermissionDenied is returned when microphone or camera access is refused.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDisplayCaptureDenied is returned when screen capture is refused.
	ErrDisplayCaptureDenied = errors.New("display capture denied")

	// ErrDeviceNotFound is returned when a requested device does not exist.
	ErrDeviceNotFound = errors.New("device not found")
)

// Constraints selects which kinds of capture a UserMedia request wants.
type Constraints struct {
	Audio bool
	Video bool
}

// Devices captures local media.
//
// Both methods may block while the user is asked for permission and must
// honour ctx cancellation. A failed request returns no stream.
type Devices interface {
	UserMedia(ctx context.Context, c Constraints) (*Stream, error)
	DisplayMedia(ctx context.Context) (*Stream, error)
}

// =============================================================================
// POLICY
// =============================================================================

// Permission is the answer a virtual device gives to a capture request.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionMissing Permission = "missing"
)

// IsValid reports whether p is a known permission.
func (p Permission) IsValid() bool {
	switch p {
	case PermissionGranted, PermissionDenied, PermissionMissing:
		return true
	}
	return false
}

// Policy decides the outcome of capture requests for VirtualDevices.
type Policy struct {
	Microphone Permission
	Camera     Permission
	Display    Permission

	// PromptDelay simulates the time a user takes to answer a prompt.
	PromptDelay time.Duration

	// ShareMaxDuration ends display capture on its own after this long.
	// Zero disables it.
	ShareMaxDuration time.Duration
}

// DefaultPolicy grants everything immediately.
func DefaultPolicy() Policy {
	return Policy{
		Microphone: PermissionGranted,
		Camera:     PermissionGranted,
		Display:    PermissionGranted,
	}
}

// =============================================================================
// VIRTUAL DEVICES
// =============================================================================

// VirtualDevices captures silent pion sample tracks according to a Policy.
type VirtualDevices struct {
	policy Policy
	logger *zap.Logger
}

// NewVirtualDevices creates devices answering requests from policy.
func NewVirtualDevices(policy Policy, logger *zap.Logger) *VirtualDevices {
	return &VirtualDevices{policy: policy, logger: logger}
}

// UserMedia captures microphone and/or camera tracks.
func (d *VirtualDevices) UserMedia(ctx context.Context, c Constraints) (*Stream, error) {
	if !c.Audio && !c.Video {
		return nil, errors.New("no media kinds requested")
	}
	if err := d.prompt(ctx); err != nil {
		return nil, err
	}

	if c.Audio {
		if err := check(d.policy.Microphone, "microphone", ErrPermissionDenied); err != nil {
			return nil, err
		}
	}
	if c.Video {
		if err := check(d.policy.Camera, "camera", ErrPermissionDenied); err != nil {
			return nil, err
		}
	}

	streamID := "user-" + uuid.NewString()
	stream := NewStream(streamID)
	if c.Audio {
		t, err := NewLocalTrack(KindAudio, "Virtual microphone", streamID)
		if err != nil {
			return nil, err
		}
		stream.AddTrack(t)
	}
	if c.Video {
		t, err := NewLocalTrack(KindVideo, "Virtual camera", streamID)
		if err != nil {
			stream.Stop()
			return nil, err
		}
		stream.AddTrack(t)
	}

	d.logger.Debug("user media granted",
		zap.String("stream", streamID),
		zap.Bool("audio", c.Audio),
		zap.Bool("video", c.Video))
	return stream, nil
}

// DisplayMedia captures the screen as a single video track.
func (d *VirtualDevices) DisplayMedia(ctx context.Context) (*Stream, error) {
	if err := d.prompt(ctx); err != nil {
		return nil, err
	}
	if err := check(d.policy.Display, "display", ErrDisplayCaptureDenied); err != nil {
		return nil, err
	}

	streamID := "display-" + uuid.NewString()
	t, err := NewLocalTrack(KindVideo, "Screen", streamID)
	if err != nil {
		return nil, err
	}

	if limit := d.policy.ShareMaxDuration; limit > 0 {
		timer := time.AfterFunc(limit, func() {
			d.logger.Debug("display capture ended", zap.String("track", t.ID()))
			t.end()
		})
		t.onStop = func() { timer.Stop() }
	}

	d.logger.Debug("display media granted", zap.String("stream", streamID))
	return NewStream(streamID, t), nil
}

func (d *VirtualDevices) prompt(ctx context.Context) error {
	if d.policy.PromptDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.policy.PromptDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func check(p Permission, device string, denied error) error {
	switch p {
	case PermissionGranted:
		return nil
	case PermissionMissing:
		return fmt.Errorf("%s: %w", device, ErrDeviceNotFound)
	default:
		return fmt.Errorf("%s: %w", device, denied)
	}
}
