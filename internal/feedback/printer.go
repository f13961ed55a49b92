package feedback

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfgtrace/tracectl/pkg/domain"
)

// Printer is a client.Notifier for plain CLI commands: each note becomes
// one styled line on w.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

var printerMarks = map[domain.Severity]string{
	domain.SeverityInfo:    "i",
	domain.SeveritySuccess: "✔",
	domain.SeverityError:   "✖",
}

// Notify writes the note.
func (p *Printer) Notify(title, message string, severity domain.Severity) {
	c, ok := severityColors[severity]
	if !ok {
		c = severityColors[domain.SeverityInfo]
	}
	mark := lipgloss.NewStyle().Foreground(lipgloss.Color(c[1])).Bold(true).Render(printerMarks[severity])
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %s: %s\n", mark, title, message) //nolint:errcheck
}
