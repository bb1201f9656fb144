//go:generate mockgen -source=$GOFILE -destination=mock_$GOPACKAGE/mock_$GOFILE
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package event

import (
	"github.com/leandro-lugaresi/hub"
)

// Notifier shows a short message to the user.
type Notifier interface {
	// Notify shows message. isError marks it as a failure.
	Notify(message string, isError bool)
}

// HubNotifier publishes notifications on the NotifyToast topic.
type HubNotifier struct {
	hub *hub.Hub
}

// NewHubNotifier creates a notifier publishing to h.
func NewHubNotifier(h *hub.Hub) *HubNotifier {
	return &HubNotifier{hub: h}
}

// Notify implements Notifier.
func (n *HubNotifier) Notify(message string, isError bool) {
	n.hub.Publish(hub.Message{
		Name: NotifyToast,
		Fields: hub.Fields{
			FieldMessage: message,
			FieldError:   isError,
		},
	})
}

// ToastFromMessage extracts a notification published by HubNotifier.
func ToastFromMessage(m hub.Message) (message string, isError bool, ok bool) {
	if m.Topic() != NotifyToast {
		return "", false, false
	}
	message, ok = m.Fields[FieldMessage].(string)
	isError, _ = m.Fields[FieldError].(bool)
	return message, isError, ok
}
