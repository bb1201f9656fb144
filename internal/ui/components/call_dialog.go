// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/huddle/internal/call"
	"github.com/jeranaias/huddle/internal/ui/styles"
)

// WaitingForPeer is shown in the remote pane until a remote stream exists.
const WaitingForPeer = "Waiting for connection..."

// CallDialogProps configures CallDialog.
type CallDialogProps struct {
	Theme  *styles.Theme
	Call   call.Session
	Width  int
	Height int
	Now    time.Time
}

// CallDialog renders the call overlay centered in Width x Height. It shows
// the local preview source and the remote pane side by side.
func CallDialog(p CallDialogProps) string {
	t := p.Theme
	s := p.Call

	title := t.DialogTitle.Render(s.Title())
	var desc string
	if s.Participant != "" {
		desc = t.DialogDesc.Render("Call with " + s.Participant)
	}

	local := renderPane(t, "You", localPreview(s))
	remote := renderPane(t, s.Participant, remotePreview(t, s))
	panes := lipgloss.JoinHorizontal(lipgloss.Top, local, "  ", remote)

	footer := t.Muted.Render(fmt.Sprintf("%s  ·  peer: %s  ·  ice candidates: %d",
		elapsedOrConnecting(s, p.Now), peerStateLabel(s.PeerState), s.ICECandidates))
	keys := t.ShortcutKey.Render("[o]") + t.ShortcutDesc.Render(" close  ") +
		t.ShortcutKey.Render("[e]") + t.ShortcutDesc.Render(" hang up")

	box := t.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, title, desc, "", panes, "", footer, keys))
	if p.Width <= 0 || p.Height <= 0 {
		return box
	}
	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, box)
}

func renderPane(t *styles.Theme, label, content string) string {
	return t.Pane.Render(content + "\n\n" + t.PaneLabel.Render(label))
}

func localPreview(s call.Session) string {
	switch s.Preview {
	case call.PreviewScreen:
		return "🖥  screen"
	case call.PreviewCamera:
		if s.CameraOn {
			return "📷 camera"
		}
		if !s.MicOn {
			return "🔇 muted"
		}
		return "🎙  audio only"
	default:
		return "…"
	}
}

func remotePreview(t *styles.Theme, s call.Session) string {
	if !s.HasRemote {
		return t.PanePlacehold.Render("👤\n" + WaitingForPeer)
	}
	return fmt.Sprintf("📡 %d track(s)", s.RemoteTracks)
}

func elapsedOrConnecting(s call.Session, now time.Time) string {
	if !s.Active() {
		return "Connecting..."
	}
	return formatElapsed(s.Elapsed(now))
}

func peerStateLabel(state string) string {
	if state == "" {
		return "new"
	}
	return state
}
