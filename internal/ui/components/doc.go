// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components renders the huddle layout.

Every component is a pure function of a props struct and returns a string.
Components read a store.State snapshot and a call.Session copy; they never
mutate either.

# Layout

	┌──────┬──────────────┬───────────────────────────────┐
	│ rail │ channel      │ call bar (while in a call)    │
	│      │ sidebar      │ header                        │
	│ 🏠   │              │ messages / friends / settings │
	│ 💼   │              │                               │
	│ +    │ profile      │ input                         │
	└──────┴──────────────┴───────────────────────────────┘

ServerSidebar (sidebar.go) - Home button, server glyphs and the add entry.
ChannelSidebar (sidebar.go) - Channels of the selected server, or the home
entries and DM list, with the profile footer.
MainContent (main_content.go) - Call bar, header and the body of the view.
CallDialog (call_dialog.go) - Local and remote panes of the call overlay.

# Navigation

RailEntries and SidebarItems return the activatable rows in render order, so
the app can keep cursors as plain indexes.

# Toasts

ToastManager (toast.go) holds error, warning, status and success toasts and
expires them on ToastTickMsg. RenderToastStack and OverlayBottomRight draw
them in the bottom-right corner without blocking input.

# Markdown

Markdown (markdown.go) wraps a glamour renderer for message bodies.
*/
package components
