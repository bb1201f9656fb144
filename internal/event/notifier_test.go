// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package event

import (
	"testing"
	"time"

	"github.com/leandro-lugaresi/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubNotifier(t *testing.T) {
	t.Parallel()

	h := hub.New()
	sub := h.Subscribe(10, NotifyToast)
	defer h.Unsubscribe(sub)

	NewHubNotifier(h).Notify("Call with Maria started", false)
	NewHubNotifier(h).Notify("Microphone access denied", true)

	var got []hub.Message
	for len(got) < 2 {
		select {
		case m := <-sub.Receiver:
			got = append(got, m)
		case <-time.After(time.Second):
			t.Fatal("notification was not published")
		}
	}

	msg, isErr, ok := ToastFromMessage(got[0])
	require.True(t, ok)
	assert.Equal(t, "Call with Maria started", msg)
	assert.False(t, isErr)

	msg, isErr, ok = ToastFromMessage(got[1])
	require.True(t, ok)
	assert.Equal(t, "Microphone access denied", msg)
	assert.True(t, isErr)
}

func TestToastFromMessage_OtherTopic(t *testing.T) {
	t.Parallel()

	_, _, ok := ToastFromMessage(hub.Message{Name: CallUpdated})
	assert.False(t, ok)
}
