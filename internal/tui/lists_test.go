package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfgtrace/tracectl/internal/feedback"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

func newTestListModel(def listDef) listModel {
	m := newListModel(def, nil, feedback.NewLoading())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	return m
}

func TestListEmptyState(t *testing.T) {
	tests := []struct {
		def listDef
		want string
	}{
		{qualityList, "暂无质量检测数据"},
		{supplierList, "暂无供应商数据"},
		{deviceList, "暂无设备数据"},
	}
	for _, tc := range tests {
		t.Run(tc.def.region, func(t *testing.T) {
			m := newTestListModel(tc.def)
			m, _ = m.Update(listLoadedMsg{region: tc.def.region})
			if view := m.View(); !strings.Contains(view, tc.want) {
				t.Errorf("expected %q, got:\n%s", tc.want, view)
			}
		})
	}
}

func TestListIgnoresOtherRegions(t *testing.T) {
	m := newTestListModel(deviceList)
	m.loading.Show(regionDeviceTable)

	m, _ = m.Update(listLoadedMsg{region: regionSupplierTable, rows: []table.Row{{"x"}}})
	if !m.loading.Active(regionDeviceTable) || m.loaded {
		t.Error("result for another region must not touch this list")
	}

	m, _ = m.Update(listLoadedMsg{region: regionDeviceTable, err: errors.New("请求失败")})
	if m.loading.Active(regionDeviceTable) {
		t.Error("expected loading cleared on failure")
	}
}

func TestListRendersRowsAndTotal(t *testing.T) {
	m := newTestListModel(deviceList)
	rows := deviceRows([]domain.Device{
		{DeviceCode: "D-1", DeviceName: "检测仪", Status: "maintenance"},
	})
	m, _ = m.Update(listLoadedMsg{region: regionDeviceTable, rows: rows, total: 3})

	view := m.View()
	for _, want := range []string{"D-1", "检测仪", "维护中", "共 3 条"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q, got:\n%s", want, view)
		}
	}
}

func TestQualityRows(t *testing.T) {
	rows := qualityRows([]domain.QualityCheck{
		{ID: 1, ProductID: 9, CheckType: "final", PassStatus: true, CheckTime: domain.Timestamp{Time: time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC)}},
		{ID: 2, ProductID: 9, PassStatus: false},
	})
	if rows[0][4] != "合格" || rows[1][4] != "不合格" {
		t.Errorf("results = %q / %q", rows[0][4], rows[1][4])
	}
	if rows[0][3] != "2024-01-02 03:04" || rows[1][3] != "-" {
		t.Errorf("times = %q / %q", rows[0][3], rows[1][3])
	}
	if rows[1][2] != "-" {
		t.Errorf("empty check type = %q, want -", rows[1][2])
	}
}

func TestSupplierRows(t *testing.T) {
	rating := 4.5
	rows := supplierRows([]domain.Supplier{
		{SupplierCode: "S-1", SupplierName: "宁德", Rating: &rating, Status: "suspended"},
		{SupplierCode: "S-2", Status: "blocked"},
	})
	if rows[0][4] != "4.5" || rows[0][5] != "暂停" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1][4] != "-" || rows[1][5] != "blocked" {
		t.Errorf("row 1 = %v", rows[1])
	}
}
