package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/mfgtrace/tracectl/internal/feedback"
	"github.com/mfgtrace/tracectl/pkg/client"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

const regionDashboardStats = "dashboard-stats"

// -- messages --

type dashboardLoadedMsg struct {
	stats *domain.DashboardStats
	err   error
}

// -- model --

type dashboardModel struct {
	client  *client.Client
	loading *feedback.Loading
	stats   *domain.DashboardStats
	width   int
	height  int
}

func newDashboardModel(c *client.Client, l *feedback.Loading) dashboardModel {
	return dashboardModel{client: c, loading: l}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Show(regionDashboardStats), m.loadStats())
}

func (m dashboardModel) loadStats() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		stats, err := c.DashboardStats(context.Background())
		return dashboardLoadedMsg{stats: stats, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case dashboardLoadedMsg:
		m.loading.Hide(regionDashboardStats)
		if msg.err != nil {
			log.Debug().Err(msg.err).Msg("dashboard stats not loaded")
			return m, nil
		}
		m.stats = msg.stats
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.loading.Active(regionDashboardStats) {
		return m.loading.View(regionDashboardStats) + "\n"
	}
	if m.stats == nil {
		return ""
	}
	s := m.stats

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("总产品数", fmt.Sprintf("%d", s.Overview.TotalProducts)),
		statCard("合格率", fmt.Sprintf("%.1f%%", s.Quality.PassRate)),
		statCard("活跃设备", fmt.Sprintf("%d", s.Devices.Active)),
		statCard("追踪产品", fmt.Sprintf("%d", s.Overview.TotalTracking)),
	)

	var b strings.Builder
	b.WriteString(indent(cards, 1) + "\n\n")
	b.WriteString(" " + sectionHeaderStyle.Render("最近活动") + "\n")
	if len(s.RecentActivities) == 0 {
		b.WriteString(" " + dimStyle.Render("暂无活动") + "\n")
		return b.String()
	}
	for _, a := range s.RecentActivities {
		fmt.Fprintf(&b, " %s %s\n", normalStyle.Render(a.ProductName), metaStyle.Render("("+a.ProductCode+")"))
		fmt.Fprintf(&b, "   %s  %s\n", dimStyle.Render(a.CheckType+" - "+a.Result), metaStyle.Render(formatDateTime(a.Time)))
	}
	return b.String()
}

func statCard(label, value string) string {
	return statCardStyle.Render(statValueStyle.Render(value) + "\n" + dimStyle.Render(label))
}

// indent prefixes every line of s with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
