package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/mfgtrace/tracectl/internal/feedback"
	"github.com/mfgtrace/tracectl/pkg/client"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

const (
	regionQualityTable  = "quality-table-body"
	regionSupplierTable = "supplier-table-body"
	regionDeviceTable   = "device-table-body"
)

// listDef describes one read-only list page.
type listDef struct {
	region  string
	columns []table.Column
	empty   string
	fetch   func(ctx context.Context, c *client.Client) (rows []table.Row, total int, err error)
}

// -- messages --

type listLoadedMsg struct {
	region string
	rows   []table.Row
	total  int
	err    error
}

// -- model --

type listModel struct {
	def     listDef
	client  *client.Client
	loading *feedback.Loading
	rows    []table.Row
	total   int
	loaded  bool
	table   table.Model
	width   int
	height  int
}

func newListModel(def listDef, c *client.Client, l *feedback.Loading) listModel {
	return listModel{
		def:     def,
		client:  c,
		loading: l,
		table:   newTable(def.columns),
	}
}

func (m listModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Show(m.def.region), m.load())
}

func (m listModel) load() tea.Cmd {
	c := m.client
	def := m.def
	return func() tea.Msg {
		rows, total, err := def.fetch(context.Background(), c)
		return listLoadedMsg{region: def.region, rows: rows, total: total, err: err}
	}
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-2, 3))

	case listLoadedMsg:
		if msg.region != m.def.region {
			return m, nil
		}
		m.loading.Hide(m.def.region)
		if msg.err != nil {
			log.Debug().Err(msg.err).Str("region", msg.region).Msg("list not loaded")
			return m, nil
		}
		m.rows = msg.rows
		m.total = msg.total
		m.loaded = true
		m.table.SetRows(m.rows)
		m.table.SetCursor(0)

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m listModel) View() string {
	if m.loading.Active(m.def.region) {
		return m.loading.View(m.def.region) + "\n"
	}
	if !m.loaded {
		return ""
	}
	if len(m.rows) == 0 {
		return " " + dimStyle.Render(m.def.empty) + "\n"
	}
	var b strings.Builder
	b.WriteString(indent(m.table.View(), 1) + "\n")
	b.WriteString(" " + metaStyle.Render(fmt.Sprintf("共 %d 条", max(m.total, len(m.rows)))) + "\n")
	return b.String()
}

// -- page definitions --

var qualityList = listDef{
	region: regionQualityTable,
	columns: []table.Column{
		{Title: "ID", Width: 6},
		{Title: "产品ID", Width: 8},
		{Title: "检测类型", Width: 12},
		{Title: "检测时间", Width: 17},
		{Title: "结果", Width: 8},
		{Title: "备注", Width: 20},
	},
	empty: "暂无质量检测数据",
	fetch: func(ctx context.Context, c *client.Client) ([]table.Row, int, error) {
		res, err := c.ListQualityChecks(ctx, client.ListOptions{PerPage: pageSize})
		if err != nil {
			return nil, 0, err
		}
		return qualityRows(res.QualityChecks), res.Total, nil
	},
}

var supplierList = listDef{
	region: regionSupplierTable,
	columns: []table.Column{
		{Title: "供应商编码", Width: 12},
		{Title: "供应商名称", Width: 18},
		{Title: "联系人", Width: 10},
		{Title: "联系电话", Width: 14},
		{Title: "评级", Width: 6},
		{Title: "状态", Width: 8},
	},
	empty: "暂无供应商数据",
	fetch: func(ctx context.Context, c *client.Client) ([]table.Row, int, error) {
		res, err := c.ListSuppliers(ctx, client.ListOptions{PerPage: pageSize})
		if err != nil {
			return nil, 0, err
		}
		return supplierRows(res.Suppliers), res.Total, nil
	},
}

var deviceList = listDef{
	region: regionDeviceTable,
	columns: []table.Column{
		{Title: "设备编码", Width: 12},
		{Title: "设备名称", Width: 16},
		{Title: "设备类型", Width: 12},
		{Title: "位置", Width: 12},
		{Title: "状态", Width: 8},
		{Title: "下次维护", Width: 12},
	},
	empty: "暂无设备数据",
	fetch: func(ctx context.Context, c *client.Client) ([]table.Row, int, error) {
		res, err := c.ListDevices(ctx, client.ListOptions{PerPage: pageSize})
		if err != nil {
			return nil, 0, err
		}
		return deviceRows(res.Devices), res.Total, nil
	},
}

var supplierStatusLabels = map[string]string{
	"active":    "合作中",
	"inactive":  "停用",
	"suspended": "暂停",
}

var deviceStatusLabels = map[string]string{
	"active":      "运行中",
	"maintenance": "维护中",
	"inactive":    "停用",
}

func labelOr(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return orDash(key)
}

func qualityRows(checks []domain.QualityCheck) []table.Row {
	rows := make([]table.Row, 0, len(checks))
	for _, qc := range checks {
		result := "不合格"
		if qc.PassStatus {
			result = "合格"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(qc.ID),
			strconv.Itoa(qc.ProductID),
			orDash(qc.CheckType),
			formatDateTime(qc.CheckTime),
			result,
			truncStr(qc.Comments, 20),
		})
	}
	return rows
}

func supplierRows(suppliers []domain.Supplier) []table.Row {
	rows := make([]table.Row, 0, len(suppliers))
	for _, s := range suppliers {
		rating := "-"
		if s.Rating != nil {
			rating = fmt.Sprintf("%.1f", *s.Rating)
		}
		rows = append(rows, table.Row{
			s.SupplierCode,
			s.SupplierName,
			orDash(s.ContactPerson),
			orDash(s.ContactPhone),
			rating,
			labelOr(supplierStatusLabels, s.Status),
		})
	}
	return rows
}

func deviceRows(devices []domain.Device) []table.Row {
	rows := make([]table.Row, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, table.Row{
			d.DeviceCode,
			d.DeviceName,
			orDash(d.DeviceType),
			orDash(d.Location),
			labelOr(deviceStatusLabels, d.Status),
			formatDate(d.NextMaintenance),
		})
	}
	return rows
}
