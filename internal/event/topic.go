// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package event holds the hub topic names huddle publishes on and the
// notification boundary used to surface user-facing messages.
package event

const (
	// CallUpdated the call session changed state or a media flag flipped
	// 	Fields:
	// 		session: call.Session
	CallUpdated = "call.updated"

	// NotifyToast a message should be shown to the user
	// 	Fields:
	// 		message: string
	// 		error: bool
	NotifyToast = "notify.toast"

	// ConfigReloaded the config file changed on disk and was loaded again
	// 	Fields:
	// 		config: *config.Config
	ConfigReloaded = "config.reloaded"
)

// Field names used in hub.Fields.
const (
	FieldSession = "session"
	FieldMessage = "message"
	FieldError   = "error"
	FieldConfig  = "config"
)
