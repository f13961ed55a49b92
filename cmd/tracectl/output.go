package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mfgtrace/tracectl/internal/tui"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

var loginTips = [...]string{
	"扫描二维码前请先登录。",
	"登录后可查看产品的完整生产记录。",
	"质量检测与设备状态需要登录后才能访问。",
	"没有账号? 使用 tracectl register 注册。",
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	headStyle  = cellStyle.Foreground(lipgloss.Color("#8890a0")).Bold(true)
)

func printLoginHint(w io.Writer) {
	tip := loginTips[rand.IntN(len(loginTips))]
	fmt.Fprintf(w, "\n%s\n\n%s\n\n%s\n\n", //nolint:errcheck
		titleStyle.Render("追溯系统"),
		dimStyle.Italic(true).Render(tip),
		dimStyle.Render("登录: tracectl login"))
}

func printUser(w io.Writer, u *domain.User) {
	if u == nil {
		return
	}
	field(w, "用户名", u.Username)
	field(w, "邮箱", u.Email)
	field(w, "角色", u.Role)
	field(w, "部门", u.Department)
}

func printScanResult(w io.Writer, res *domain.ScanResult) {
	if res.Product != nil {
		field(w, "产品名称", res.Product.ProductName)
		field(w, "产品编码", res.Product.ProductCode)
	}
	if res.Tracking != nil {
		status := res.Tracking.CurrentStatus
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("当前状态:"), //nolint:errcheck
			tui.BadgeStyle(domain.StatusClass(status)).Render(domain.StatusLabel(status)))
		field(w, "当前位置", res.Tracking.CurrentLocation)
	} else {
		field(w, "当前状态", "")
		field(w, "当前位置", "")
	}

	if len(res.ProductionHistory) == 0 {
		return
	}
	rows := make([][]string, 0, len(res.ProductionHistory))
	for _, r := range res.ProductionHistory {
		rows = append(rows, []string{r.ProcessStep, formatTime(r.StartTime), formatTime(r.EndTime), orDash(r.Status)})
	}
	fmt.Fprintln(w, "\n"+labelStyle.Render("生产记录")) //nolint:errcheck
	fmt.Fprintln(w, renderTable([]string{"工序", "开始", "结束", "状态"}, rows)) //nolint:errcheck
}

func printProducts(w io.Writer, products []domain.Product) {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.ProductCode,
			p.ProductName,
			orDash(p.ProductType),
			orDash(p.Manufacturer),
			formatTime(p.ProductionDate),
			domain.StatusLabel(p.Status),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"产品编码", "产品名称", "类型", "制造商", "生产日期", "状态"}, rows)) //nolint:errcheck
}

func printTracking(w io.Writer, records []domain.TrackingData) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ProductID),
			orDash(r.QRCode),
			domain.StatusLabel(r.CurrentStatus),
			orDash(r.CurrentLocation),
			formatTime(r.LastUpdated),
		})
	}
	fmt.Fprintln(w, renderTable([]string{"产品ID", "二维码", "状态", "位置", "更新时间"}, rows)) //nolint:errcheck
}

func printStats(w io.Writer, s *domain.DashboardStats) {
	fmt.Fprintln(w, renderTable([]string{"总产品数", "合格率", "活跃设备", "追踪产品"}, [][]string{{ //nolint:errcheck
		fmt.Sprintf("%d", s.Overview.TotalProducts),
		fmt.Sprintf("%.1f%%", s.Quality.PassRate),
		fmt.Sprintf("%d", s.Devices.Active),
		fmt.Sprintf("%d", s.Overview.TotalTracking),
	}}))

	fmt.Fprintln(w, "\n"+labelStyle.Render("最近活动")) //nolint:errcheck
	if len(s.RecentActivities) == 0 {
		fmt.Fprintln(w, dimStyle.Render("暂无活动")) //nolint:errcheck
		return
	}
	for _, a := range s.RecentActivities {
		fmt.Fprintf(w, "%s (%s)  %s - %s  %s\n", a.ProductName, a.ProductCode, a.CheckType, a.Result, //nolint:errcheck
			dimStyle.Render(formatTime(a.Time)))
	}
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#2a2a3a"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label+":"), orDash(strings.TrimSpace(value))) //nolint:errcheck
}

func formatTime(t domain.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
