// Package feedback implements transient operator feedback: toast
// notifications and per-region loading placeholders.
package feedback

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/mfgtrace/tracectl/pkg/domain"
)

// Toast timings: visible for DisplayDuration, then fading for FadeDuration.
const (
	DisplayDuration = 3 * time.Second
	FadeDuration    = 500 * time.Millisecond
)

const toastWidth = 36

// fadeMsg moves a toast from visible to fading.
type fadeMsg struct{ id uuid.UUID }

// disposeMsg removes a fading toast.
type disposeMsg struct{ id uuid.UUID }

// Toaster holds the stack of live toasts. Each toast owns its own pair of
// ticks; there is no queue limit and no deduplication.
type Toaster struct {
	toasts []domain.Notification
	now    func() time.Time
}

// NewToaster returns an empty toaster.
func NewToaster() Toaster {
	return Toaster{now: time.Now}
}

// Notify pushes a visible toast and returns the command that starts its
// display timer.
func (t Toaster) Notify(title, message string, severity domain.Severity) (Toaster, tea.Cmd) {
	now := time.Now
	if t.now != nil {
		now = t.now
	}
	n := domain.NewNotification(title, message, severity, now())
	t.toasts = append(append([]domain.Notification(nil), t.toasts...), n)
	id := n.ID
	return t, tea.Tick(DisplayDuration, func(time.Time) tea.Msg {
		return fadeMsg{id: id}
	})
}

// Update advances toast lifecycles and accepts notifications delivered by
// an Inbox.
func (t Toaster) Update(msg tea.Msg) (Toaster, tea.Cmd) {
	switch msg := msg.(type) {
	case NotifyMsg:
		var cmds []tea.Cmd
		for _, note := range msg.Notes {
			var cmd tea.Cmd
			t, cmd = t.Notify(note.Title, note.Message, note.Severity)
			cmds = append(cmds, cmd)
		}
		return t, tea.Batch(cmds...)

	case fadeMsg:
		if i := t.index(msg.id); i >= 0 && t.toasts[i].State == domain.NotificationVisible {
			t.toasts = append([]domain.Notification(nil), t.toasts...)
			t.toasts[i].State = domain.NotificationFading
			id := msg.id
			return t, tea.Tick(FadeDuration, func(time.Time) tea.Msg {
				return disposeMsg{id: id}
			})
		}

	case disposeMsg:
		if i := t.index(msg.id); i >= 0 {
			kept := make([]domain.Notification, 0, len(t.toasts)-1)
			kept = append(kept, t.toasts[:i]...)
			t.toasts = append(kept, t.toasts[i+1:]...)
		}
	}
	return t, nil
}

// Toasts returns the live toasts, oldest first.
func (t Toaster) Toasts() []domain.Notification {
	return t.toasts
}

func (t Toaster) index(id uuid.UUID) int {
	for i, n := range t.toasts {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// View renders the toast stack, newest at the bottom, right-aligned to width.
func (t Toaster) View(width int) string {
	if len(t.toasts) == 0 {
		return ""
	}
	var lines []string
	for _, n := range t.toasts {
		box := toastStyle(n.Severity, n.State == domain.NotificationFading).Render(
			toastTitleStyle.Render(n.Title) + "\n" + n.Message,
		)
		for _, l := range strings.Split(box, "\n") {
			pad := width - lipgloss.Width(l) - 1
			if pad < 0 {
				pad = 0
			}
			lines = append(lines, strings.Repeat(" ", pad)+l)
		}
	}
	return strings.Join(lines, "\n")
}

var toastTitleStyle = lipgloss.NewStyle().Bold(true)

// severityColors mirrors the web panel: background, foreground.
var severityColors = map[domain.Severity][2]string{
	domain.SeverityInfo:    {"#cce5ff", "#004085"},
	domain.SeveritySuccess: {"#d4edda", "#155724"},
	domain.SeverityError:   {"#f8d7da", "#721c24"},
}

func toastStyle(severity domain.Severity, fading bool) lipgloss.Style {
	c, ok := severityColors[severity]
	if !ok {
		c = severityColors[domain.SeverityInfo]
	}
	s := lipgloss.NewStyle().
		Width(toastWidth).
		Padding(0, 1).
		Background(lipgloss.Color(c[0])).
		Foreground(lipgloss.Color(c[1]))
	if fading {
		s = s.Faint(true)
	}
	return s
}
