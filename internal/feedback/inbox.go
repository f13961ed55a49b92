package feedback

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfgtrace/tracectl/pkg/domain"
)

// Note is a notification request before it becomes a toast.
type Note struct {
	Title    string
	Message  string
	Severity domain.Severity
}

// NotifyMsg delivers queued notes to the UI event loop.
type NotifyMsg struct {
	Notes []Note
}

// Inbox is a client.Notifier usable from any goroutine. Gateway calls run
// inside tea.Cmd goroutines; the Inbox queues their notes and hands them to
// the event loop through Listen, so toasts are only touched on one thread.
// Notify never blocks.
type Inbox struct {
	mu      sync.Mutex
	pending []Note
	ready   chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewInbox returns an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Notify queues a note.
func (b *Inbox) Notify(title, message string, severity domain.Severity) {
	b.mu.Lock()
	b.pending = append(b.pending, Note{Title: title, Message: message, Severity: severity})
	b.mu.Unlock()
	select {
	case b.ready <- struct{}{}:
	default:
	}
}

// Listen waits for queued notes and returns them as one NotifyMsg. The
// caller re-arms it after each delivery. It returns nil once the inbox is
// closed.
func (b *Inbox) Listen() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-b.ready:
				if notes := b.drain(); len(notes) > 0 {
					return NotifyMsg{Notes: notes}
				}
			case <-b.done:
				return nil
			}
		}
	}
}

// Close releases any pending Listen.
func (b *Inbox) Close() {
	b.once.Do(func() { close(b.done) })
}

func (b *Inbox) drain() []Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	notes := b.pending
	b.pending = nil
	return notes
}
