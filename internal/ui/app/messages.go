// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandro-lugaresi/hub"
)

// callOp names the controller operation a callResultMsg reports on.
type callOp int

const (
	opStart callOp = iota
	opCamera
	opShare
)

// callResultMsg carries the outcome of a controller call run as a tea.Cmd.
type callResultMsg struct {
	op    callOp
	video bool
	err   error
}

// hubEventMsg forwards a hub message into the program.
type hubEventMsg struct {
	msg hub.Message
}

// waitForHub blocks on the subscription and delivers the next message. It
// returns nil once the subscription is closed.
func waitForHub(sub hub.Subscription) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-sub.Receiver
		if !ok {
			return nil
		}
		return hubEventMsg{msg: msg}
	}
}
