// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/huddle/internal/call"
	"github.com/jeranaias/huddle/internal/config"
	"github.com/jeranaias/huddle/internal/event"
	"github.com/jeranaias/huddle/internal/model"
	"github.com/jeranaias/huddle/internal/store"
	"github.com/jeranaias/huddle/internal/ui/components"
	"github.com/jeranaias/huddle/internal/ui/styles"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case hubEventMsg:
		m.handleHubEvent(msg)
		return m, waitForHub(m.sub)

	case callResultMsg:
		m.handleCallResult(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.prompt != nil {
		m.prompt.input, cmd = m.prompt.input.Update(msg)
	} else if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.help.Width = width

	mainWidth := m.theme.MainWidth()
	m.input.Width = max(mainWidth-8, 10)
	m.markdown = components.NewMarkdown(m.cfg.UI.Markdown, m.theme.IsDark, max(mainWidth-4, 20))
	if m.focus == focusSidebar && m.theme.GetLayoutMode() == styles.LayoutNarrow {
		m.focus = focusRail
	}
}

// =============================================================================
// HUB EVENTS
// =============================================================================

func (m *Model) handleHubEvent(msg hubEventMsg) {
	switch msg.msg.Topic() {
	case event.CallUpdated:
		m.refreshSession()

	case event.NotifyToast:
		text, isError, ok := event.ToastFromMessage(msg.msg)
		if !ok {
			return
		}
		if isError {
			m.toasts.AddError(text)
		} else {
			m.toasts.AddStatus(text)
		}

	case event.ConfigReloaded:
		if err, ok := msg.msg.Fields[event.FieldError].(error); ok && err != nil {
			m.logger.Warn("config reload failed", zap.Error(err))
			m.toasts.AddWarning(fmt.Sprintf("Config not reloaded: %v", err))
			return
		}
		cfg, ok := msg.msg.Fields[event.FieldConfig].(*config.Config)
		if !ok || cfg == nil {
			return
		}
		m.applyConfig(cfg)
		m.toasts.AddStatus("Configuration reloaded")
	}
}

// applyConfig swaps in a reloaded configuration. The media policy and ICE
// servers are bound at startup and do not change here.
func (m *Model) applyConfig(cfg *config.Config) {
	old := m.cfg
	m.cfg = cfg

	if cfg.User.Username != "" && cfg.User.Username != m.store.Snapshot().Profile.Username {
		if err := m.store.SetUsername(cfg.User.Username); err != nil {
			m.logger.Warn("reloaded username rejected", zap.Error(err))
		}
	}
	m.toasts.SetDuration(cfg.UI.ToastDuration())

	if old == nil || old.UI.Theme != cfg.UI.Theme || old.UI.Markdown != cfg.UI.Markdown {
		m.theme = styles.NewTheme(cfg.UI.Theme)
		m.resize(m.width, m.height)
	}
}

func (m *Model) refreshSession() {
	m.session = m.calls.Snapshot()
	if !m.session.InCall() {
		m.dialogOpen = false
		m.callChannel = ""
	}
}

// =============================================================================
// CALL COMMANDS
// =============================================================================

func (m *Model) handleCallResult(msg callResultMsg) {
	m.refreshSession()

	switch {
	case errors.Is(msg.err, call.ErrCallInProgress):
		m.toasts.AddWarning("A call is already in progress")
		return
	case msg.err != nil:
		// The controller has already told the user.
		m.logger.Debug("call operation failed", zap.Error(msg.err))
		return
	}

	if !m.cfg.Call.AutoOpenDialog || !m.session.Active() {
		return
	}
	switch msg.op {
	case opStart:
		if msg.video {
			m.dialogOpen = true
		}
	case opShare:
		if m.session.Sharing {
			m.dialogOpen = true
		}
	}
}

func (m *Model) promptContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.cfg.Call.PromptTimeout())
}

func (m *Model) startCall(participant string, video bool) tea.Cmd {
	if m.session.InCall() {
		m.toasts.AddWarning("A call is already in progress")
		return nil
	}
	ctx, cancel := m.promptContext()
	calls := m.calls
	return func() tea.Msg {
		defer cancel()
		return callResultMsg{op: opStart, video: video, err: calls.Start(ctx, participant, video)}
	}
}

func (m *Model) toggleCamera() tea.Cmd {
	ctx, cancel := m.promptContext()
	calls := m.calls
	return func() tea.Msg {
		defer cancel()
		return callResultMsg{op: opCamera, err: calls.ToggleCamera(ctx)}
	}
}

func (m *Model) toggleScreenShare() tea.Cmd {
	ctx, cancel := m.promptContext()
	calls := m.calls
	return func() tea.Msg {
		defer cancel()
		return callResultMsg{op: opShare, err: calls.ToggleScreenShare(ctx)}
	}
}

// callTarget picks who a call key rings: the open DM, or the friend under the
// cursor in the friends list.
func (m *Model) callTarget() (string, bool) {
	st := m.store.Snapshot()
	switch st.View {
	case model.ViewDM:
		if dm, ok := st.CurrentDM(); ok {
			return dm.FriendName, true
		}
	case model.ViewFriends:
		if m.mainCursor < len(st.Friends) {
			return st.Friends[m.mainCursor].Name, true
		}
	}
	return "", false
}

// toggleVoiceChannel joins or leaves the call bound to a voice channel.
func (m *Model) toggleVoiceChannel(name string) tea.Cmd {
	if m.session.InCall() {
		if m.callChannel == name {
			m.calls.End()
			m.refreshSession()
			return nil
		}
		m.toasts.AddWarning("A call is already in progress")
		return nil
	}
	m.callChannel = name
	return m.startCall(name, false)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.shutdown()
		return m, tea.Quit
	}
	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}
	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}

	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, k.NextFocus):
		return m, m.cycleFocus(1)
	case key.Matches(msg, k.PrevFocus):
		return m, m.cycleFocus(-1)
	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
	case key.Matches(msg, k.Activate):
		return m, m.activate()
	case key.Matches(msg, k.FocusText):
		return m, m.focusInput()

	case key.Matches(msg, k.AudioCall), key.Matches(msg, k.VideoCall):
		target, ok := m.callTarget()
		if !ok {
			m.toasts.AddWarning("Open a conversation to start a call")
			return m, nil
		}
		return m, m.startCall(target, key.Matches(msg, k.VideoCall))
	case key.Matches(msg, k.Mic):
		m.calls.ToggleMicrophone()
		m.refreshSession()
	case key.Matches(msg, k.Camera):
		if m.session.Active() {
			return m, m.toggleCamera()
		}
	case key.Matches(msg, k.ScreenShare):
		if m.session.Active() {
			return m, m.toggleScreenShare()
		}
	case key.Matches(msg, k.EndCall):
		m.calls.End()
		m.refreshSession()
	case key.Matches(msg, k.ToggleDialog):
		if m.session.InCall() {
			m.dialogOpen = !m.dialogOpen
		}

	case key.Matches(msg, k.AddFriend):
		return m, m.openPrompt(promptAddFriend, "Add friend", "")
	case key.Matches(msg, k.RemoveFriend):
		m.removeFriend()
	case key.Matches(msg, k.AddServer):
		return m, m.openPrompt(promptAddServer, "Server name", "")
	case key.Matches(msg, k.Invite):
		if m.store.Snapshot().View == model.ViewServer {
			m.toasts.AddStatus("Invite link copied")
		}
	case key.Matches(msg, k.ServerPrefs):
		if m.store.Snapshot().View == model.ViewServer {
			m.toasts.AddStatus("Server settings are not available")
		}

	case key.Matches(msg, k.Home):
		m.store.SelectHome()
		m.railCursor = 0
	case key.Matches(msg, k.Friends):
		m.store.ShowFriends()
		m.railCursor, m.mainCursor = 0, 0
	case key.Matches(msg, k.Notifications):
		m.store.ShowNotifications()
		m.railCursor = 0
	case key.Matches(msg, k.Settings):
		m.store.ShowSettings()
		m.railCursor, m.mainCursor = 0, 0

	case key.Matches(msg, k.DismissToast):
		m.toasts.DismissNewest()
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.clampCursors()
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.input.Blur()
		m.focus = focusMain
		return m, nil

	case key.Matches(msg, m.keys.NextFocus):
		return m, m.cycleFocus(1)

	case key.Matches(msg, m.keys.Activate):
		_, err := m.store.SendMessage(m.input.Value())
		switch {
		case err == nil:
			m.input.Reset()
		case errors.Is(err, store.ErrEmptyMessage):
		default:
			m.toasts.AddError(fmt.Sprintf("Could not send message: %v", err))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// FOCUS AND CURSORS
// =============================================================================

func (m *Model) focusOrder() []focus {
	order := []focus{focusRail}
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		order = append(order, focusSidebar)
	}
	order = append(order, focusMain)
	if m.hasInput() {
		order = append(order, focusInput)
	}
	return order
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	return m.setFocus(order[idx])
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	if f == focusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// hasInput reports whether the current view shows a message input.
func (m *Model) hasInput() bool {
	st := m.store.Snapshot()
	return st.View.HasConversation() && st.ConversationKey() != ""
}

func (m *Model) focusInput() tea.Cmd {
	if !m.hasInput() {
		return nil
	}
	return m.setFocus(focusInput)
}

func (m *Model) moveCursor(delta int) {
	switch m.focus {
	case focusRail:
		m.railCursor += delta
	case focusSidebar:
		m.sidebarCursor += delta
	case focusMain:
		m.mainCursor += delta
	}
	m.clampCursors()
}

func clamp(v, n int) int {
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

func (m *Model) clampCursors() {
	st := m.store.Snapshot()
	m.railCursor = clamp(m.railCursor, len(components.RailEntries(st)))
	m.sidebarCursor = clamp(m.sidebarCursor, len(components.SidebarItems(st)))

	rows := 0
	switch st.View {
	case model.ViewFriends:
		rows = len(st.Friends)
	case model.ViewSettings:
		rows = len(components.SettingsFields)
	}
	m.mainCursor = clamp(m.mainCursor, rows)

	if m.focus == focusInput && !m.hasInput() {
		m.setFocus(focusMain)
	}
}

// =============================================================================
// ACTIVATION
// =============================================================================

func (m *Model) activate() tea.Cmd {
	defer m.clampCursors()

	switch m.focus {
	case focusRail:
		return m.activateRail()
	case focusSidebar:
		return m.activateSidebar()
	case focusMain:
		return m.activateMain()
	}
	return nil
}

func (m *Model) activateRail() tea.Cmd {
	entries := components.RailEntries(m.store.Snapshot())
	if m.railCursor >= len(entries) {
		return nil
	}
	e := entries[m.railCursor]
	switch {
	case e.Add:
		return m.openPrompt(promptAddServer, "Server name", "")
	case e.ServerID == "":
		m.store.SelectHome()
	default:
		if err := m.store.SelectServer(e.ServerID); err != nil {
			m.toasts.AddError(err.Error())
			return nil
		}
	}
	m.sidebarCursor = 0
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		m.focus = focusSidebar
	}
	return nil
}

func (m *Model) activateSidebar() tea.Cmd {
	items := components.SidebarItems(m.store.Snapshot())
	if m.sidebarCursor >= len(items) {
		return nil
	}
	it := items[m.sidebarCursor]
	switch it.Kind {
	case components.ItemFriends:
		m.store.ShowFriends()
		m.mainCursor = 0
		m.focus = focusMain
	case components.ItemNotifications:
		m.store.ShowNotifications()
	case components.ItemDM:
		if err := m.store.OpenDM(it.ID); err != nil {
			m.toasts.AddError(err.Error())
			return nil
		}
		return m.setFocus(focusInput)
	case components.ItemTextChannel, components.ItemVoiceChannel:
		err := m.store.SelectChannel(it.ID)
		if errors.Is(err, store.ErrVoiceChannel) {
			return m.toggleVoiceChannel(it.Label)
		}
		if err != nil {
			m.toasts.AddError(err.Error())
			return nil
		}
		return m.setFocus(focusInput)
	}
	return nil
}

func (m *Model) activateMain() tea.Cmd {
	st := m.store.Snapshot()
	switch st.View {
	case model.ViewFriends:
		if m.mainCursor >= len(st.Friends) {
			return nil
		}
		dm, ok := st.DirectMessageForFriend(st.Friends[m.mainCursor].ID)
		if !ok {
			return nil
		}
		if err := m.store.OpenDM(dm.ID); err != nil {
			m.toasts.AddError(err.Error())
			return nil
		}
		m.sidebarCursor = m.sidebarIndex(dm.ID)
		return m.setFocus(focusInput)

	case model.ViewSettings:
		if m.mainCursor == 0 {
			return m.openPrompt(promptUsername, "Username", st.Profile.Username)
		}
		return m.openPrompt(promptEmail, "Email", st.Profile.Email)
	}
	return nil
}

func (m *Model) sidebarIndex(id string) int {
	for i, it := range components.SidebarItems(m.store.Snapshot()) {
		if it.ID == id {
			return i
		}
	}
	return m.sidebarCursor
}

// removeFriend removes the friend under the cursor in the friends list, or
// the friend of the DM under the sidebar cursor.
func (m *Model) removeFriend() {
	st := m.store.Snapshot()
	var friend model.Friend
	switch {
	case st.View == model.ViewFriends && m.focus == focusMain && m.mainCursor < len(st.Friends):
		friend = st.Friends[m.mainCursor]
	case m.focus == focusSidebar:
		items := components.SidebarItems(st)
		if m.sidebarCursor >= len(items) || items[m.sidebarCursor].Kind != components.ItemDM {
			return
		}
		dm, ok := st.DirectMessage(items[m.sidebarCursor].ID)
		if !ok {
			return
		}
		friend, ok = st.Friend(dm.FriendID)
		if !ok {
			return
		}
	default:
		return
	}

	if err := m.store.RemoveFriend(friend.ID); err != nil {
		m.toasts.AddError(err.Error())
		return
	}
	m.toasts.AddSuccess("Removed " + friend.Name)
}

// =============================================================================
// PROMPTS
// =============================================================================

func (m *Model) openPrompt(kind promptKind, label, value string) tea.Cmd {
	in := textinput.New()
	in.Prompt = label + ": "
	in.CharLimit = 64
	in.Width = 32
	in.SetValue(value)
	m.input.Blur()
	m.prompt = &prompt{kind: kind, label: label, input: in}
	return m.prompt.input.Focus()
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		m.prompt = nil
		return m, nil
	case key.Matches(msg, m.keys.Activate):
		p := m.prompt
		if m.submitPrompt(p.kind, p.input.Value()) {
			m.prompt = nil
			m.clampCursors()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

// submitPrompt applies a prompt value. It reports whether the prompt should close.
func (m *Model) submitPrompt(kind promptKind, value string) bool {
	switch kind {
	case promptAddFriend:
		f, err := m.store.AddFriend(value)
		switch {
		case errors.Is(err, store.ErrDuplicate):
			m.toasts.AddWarning(fmt.Sprintf("%s is already your friend", value))
			return false
		case err != nil:
			m.toasts.AddError(fmt.Sprintf("Could not add friend: %v", err))
			return false
		}
		m.toasts.AddSuccess("Added " + f.Name)

	case promptAddServer:
		srv, err := m.store.AddServer(value, "")
		if err != nil {
			m.toasts.AddError(fmt.Sprintf("Could not create server: %v", err))
			return false
		}
		m.toasts.AddSuccess("Created " + srv.Name)

	case promptUsername, promptEmail:
		p := m.store.Snapshot().Profile
		if kind == promptUsername {
			p.Username = value
		} else {
			p.Email = value
		}
		if err := m.store.SaveSettings(p); err != nil {
			m.toasts.AddError(fmt.Sprintf("Could not save settings: %v", err))
			return false
		}
		m.persistProfile()
		m.toasts.AddSuccess("Settings saved")
	}
	return true
}

// persistProfile writes the edited profile back to the config file. Only
// the user section is handed over, so startup overrides stay in memory.
func (m *Model) persistProfile() {
	prof := m.store.Snapshot().Profile
	cfg := m.cfg.Clone()
	cfg.User.Username = prof.Username
	cfg.User.Tag = prof.Tag
	cfg.User.Email = prof.Email
	m.cfg = cfg

	if m.saveUser == nil {
		return
	}
	if err := m.saveUser(cfg.User); err != nil {
		m.logger.Warn("failed to persist settings", zap.Error(err))
		m.toasts.AddWarning(fmt.Sprintf("Settings not written to disk: %v", err))
	}
}
