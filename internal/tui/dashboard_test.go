package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mfgtrace/tracectl/internal/feedback"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

func newTestDashboardModel() dashboardModel {
	m := newDashboardModel(nil, feedback.NewLoading())
	m.width = 100
	m.height = 30
	return m
}

func makeTestStats() *domain.DashboardStats {
	s := &domain.DashboardStats{}
	s.Overview.TotalProducts = 128
	s.Overview.TotalTracking = 96
	s.Quality.PassRate = 87.46
	s.Devices.Active = 7
	s.RecentActivities = []domain.Activity{{
		ProductName: "锂电池组",
		ProductCode: "BAT-001",
		CheckType:   "final",
		Result:      "合格",
		Time:        domain.Timestamp{Time: time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)},
	}}
	return s
}

func TestDashboardRendersStats(t *testing.T) {
	m := newTestDashboardModel()
	m.loading.Show(regionDashboardStats)
	m, _ = m.Update(dashboardLoadedMsg{stats: makeTestStats()})

	if m.loading.Active(regionDashboardStats) {
		t.Error("expected loading cleared after result")
	}
	view := m.View()
	for _, want := range []string{"总产品数", "128", "87.5%", "活跃设备", "7", "追踪产品", "96", "锂电池组", "BAT-001", "final - 合格", "2024-05-01 08:30"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in dashboard view, got:\n%s", want, view)
		}
	}
}

func TestDashboardShowsSpinnerWhileLoading(t *testing.T) {
	m := newTestDashboardModel()
	m.loading.Show(regionDashboardStats)

	if view := m.View(); !strings.Contains(view, "加载中") {
		t.Errorf("expected loading placeholder, got:\n%s", view)
	}
}

func TestDashboardErrorClearsLoading(t *testing.T) {
	m := newTestDashboardModel()
	m.loading.Show(regionDashboardStats)
	m, _ = m.Update(dashboardLoadedMsg{err: errors.New("请求失败")})

	if m.loading.Active(regionDashboardStats) {
		t.Error("expected loading cleared after failure")
	}
	if view := m.View(); view != "" {
		t.Errorf("expected empty region after failure, got:\n%s", view)
	}
}

func TestDashboardNoActivities(t *testing.T) {
	m := newTestDashboardModel()
	stats := makeTestStats()
	stats.RecentActivities = nil
	m, _ = m.Update(dashboardLoadedMsg{stats: stats})

	if view := m.View(); !strings.Contains(view, "暂无活动") {
		t.Errorf("expected empty activity notice, got:\n%s", view)
	}
}
