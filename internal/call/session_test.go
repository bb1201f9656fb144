// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package call

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/huddle/internal/media"
)

func TestSession_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		s    Session
		want string
	}{
		{"audio", Session{State: StateActive}, "Call"},
		{"camera", Session{State: StateActive, CameraOn: true}, "Video call"},
		{"sharing wins", Session{State: StateActive, CameraOn: true, Sharing: true}, "Screen share"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.s.Title())
		})
	}
}

func TestSession_Elapsed(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s := Session{State: StateActive, StartedAt: start}
	assert.Equal(t, 90*time.Second, s.Elapsed(start.Add(90*time.Second+400*time.Millisecond)))
	assert.Zero(t, Session{}.Elapsed(start))

	assert.True(t, s.InCall())
	assert.True(t, s.Active())
	assert.False(t, Session{State: StateIdle}.InCall())
	assert.False(t, Session{State: StateStarting}.Active())
}

func TestFailureMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x: permission denied", failureMessage("x", fmt.Errorf("microphone: %w", media.ErrPermissionDenied)))
	assert.Equal(t, "x: screen capture was denied", failureMessage("x", media.ErrDisplayCaptureDenied))
	assert.Equal(t, "x: device not found", failureMessage("x", media.ErrDeviceNotFound))
	assert.Equal(t, "x: permission prompt timed out", failureMessage("x", context.DeadlineExceeded))
	assert.Equal(t, "x: boom", failureMessage("x", errors.New("boom")))
}
