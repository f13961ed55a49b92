package feedback

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Loading tracks which UI regions currently show a loading placeholder.
// There is no nesting: Show on an active region is a no-op and Hide always
// clears. Callers Show before a fetch and Hide when its result message
// arrives, whether it succeeded or failed.
//
// Loading is shared by pointer between the app and its pages and must only
// be touched from the event loop.
type Loading struct {
	regions map[string]bool
	spinner spinner.Model
}

// NewLoading returns a tracker with no active regions.
func NewLoading() *Loading {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d474"))
	return &Loading{
		regions: make(map[string]bool),
		spinner: s,
	}
}

// Show puts region into the loading state. The returned command starts the
// spinner when no region was loading before.
func (l *Loading) Show(region string) tea.Cmd {
	idle := !l.any()
	l.regions[region] = true
	if idle {
		return l.spinner.Tick
	}
	return nil
}

// Hide clears region's loading state.
func (l *Loading) Hide(region string) {
	delete(l.regions, region)
}

// Active reports whether region is loading.
func (l *Loading) Active(region string) bool {
	return l.regions[region]
}

// Update advances the spinner while any region is loading.
func (l *Loading) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	if !l.any() {
		return nil
	}
	return cmd
}

// View is the placeholder that replaces region's content while loading.
func (l *Loading) View(region string) string {
	if !l.Active(region) {
		return ""
	}
	return " " + l.spinner.View() + " 加载中..."
}

func (l *Loading) any() bool {
	return len(l.regions) > 0
}
