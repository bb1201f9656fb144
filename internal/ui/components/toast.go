// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jeranaias/huddle/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	ToastKindStatus ToastKind = iota
	ToastKindError
	ToastKindWarning
	ToastKindSuccess
)

// DefaultToastDuration is used when a manager is created with a zero duration.
const DefaultToastDuration = 5 * time.Second

// MaxToasts is the number of toasts kept on screen at once.
const MaxToasts = 5

// ToastTickInterval is how often expired toasts are swept.
const ToastTickInterval = 250 * time.Millisecond

// Toast is a non-blocking notification shown in the bottom-right corner.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// ExpiresAt returns when the toast is dismissed automatically.
func (t Toast) ExpiresAt() time.Time {
	return t.CreatedAt.Add(t.Duration)
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager keeps the visible toasts, newest first.
type ToastManager struct {
	mu       sync.Mutex
	toasts   []Toast
	nextID   int
	duration time.Duration
	now      func() time.Time
}

// NewToastManager creates a manager whose status and success toasts last d.
// Warnings last half again as long and errors twice as long.
func NewToastManager(d time.Duration) *ToastManager {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return &ToastManager{
		nextID:   1,
		duration: d,
		now:      time.Now,
	}
}

// SetDuration changes the base duration for toasts added afterwards.
func (m *ToastManager) SetDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *ToastManager) durationFor(kind ToastKind) time.Duration {
	switch kind {
	case ToastKindError:
		return 2 * m.duration
	case ToastKindWarning:
		return m.duration * 3 / 2
	default:
		return m.duration
	}
}

// Add adds a toast and returns its ID.
func (m *ToastManager) Add(message string, kind ToastKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Toast{
		ID:        m.nextID,
		Message:   message,
		Kind:      kind,
		CreatedAt: m.now(),
		Duration:  m.durationFor(kind),
	}
	m.nextID++

	m.toasts = append([]Toast{t}, m.toasts...)
	if len(m.toasts) > MaxToasts {
		m.toasts = m.toasts[:MaxToasts]
	}
	return t.ID
}

func (m *ToastManager) AddError(message string) int   { return m.Add(message, ToastKindError) }
func (m *ToastManager) AddWarning(message string) int { return m.Add(message, ToastKindWarning) }
func (m *ToastManager) AddStatus(message string) int  { return m.Add(message, ToastKindStatus) }
func (m *ToastManager) AddSuccess(message string) int { return m.Add(message, ToastKindSuccess) }

// DismissNewest removes the most recent toast. It reports whether one was removed.
func (m *ToastManager) DismissNewest() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.toasts) == 0 {
		return false
	}
	m.toasts = m.toasts[1:]
	return true
}

// Tick drops expired toasts and returns the remaining ones.
func (m *ToastManager) Tick() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	active := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.ExpiresAt()) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return append([]Toast(nil), m.toasts...)
}

// Toasts returns a copy of the current toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast(nil), m.toasts...)
}

// HasToasts reports whether any toast is visible.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg is sent periodically to expire toasts.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next ToastTickMsg.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(ToastTickInterval, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

func toastAccent(kind ToastKind) (lipgloss.AdaptiveColor, string) {
	switch kind {
	case ToastKindError:
		return styles.Red, "✕"
	case ToastKindWarning:
		return styles.Yellow, "!"
	case ToastKindSuccess:
		return styles.Green, "✓"
	default:
		return styles.Blurple, "i"
	}
}

// RenderToast renders a single toast no wider than width.
func RenderToast(t Toast, width int, now time.Time) string {
	maxWidth := 48
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 20 {
		maxWidth = 20
	}

	color, icon := toastAccent(t.Kind)
	iconStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	body := wordwrap.String(t.Message, maxWidth-8)

	content := iconStyle.Render(icon) + " " + lipgloss.NewStyle().Foreground(styles.TextPrimary).Render(body)

	if left := t.ExpiresAt().Sub(now); left > 0 {
		hint := "[d] dismiss  " + strconv.Itoa(int(left.Round(time.Second)/time.Second)) + "s"
		content += "\n" + lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true).Render(hint)
	}

	return lipgloss.NewStyle().
		Background(styles.Overlay).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(content)
}

// RenderToastStack renders toasts stacked vertically with the newest at the bottom.
func RenderToastStack(toasts []Toast, width int, now time.Time) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for i := len(toasts) - 1; i >= 0; i-- {
		rendered = append(rendered, RenderToast(toasts[i], width, now))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// OverlayBottomRight draws fg over the bottom-right corner of bg, leaving
// bottomMargin rows free below it.
func OverlayBottomRight(bg, fg string, width, bottomMargin int) string {
	if fg == "" {
		return bg
	}
	bgLines := strings.Split(bg, "\n")
	fgLines := strings.Split(fg, "\n")

	start := len(bgLines) - len(fgLines) - bottomMargin
	if start < 0 {
		start = 0
	}
	for i, line := range fgLines {
		row := start + i
		if row >= len(bgLines) {
			break
		}
		w := ansi.StringWidth(line)
		cut := width - w - 1
		if cut < 0 {
			cut = 0
		}
		base := ansi.Truncate(bgLines[row], cut, "")
		if pad := cut - ansi.StringWidth(base); pad > 0 {
			base += strings.Repeat(" ", pad)
		}
		bgLines[row] = base + " " + line
	}
	return strings.Join(bgLines, "\n")
}
