package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/mfgtrace/tracectl/internal/feedback"
	"github.com/mfgtrace/tracectl/pkg/client"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

const regionScanResult = "scan-result"

// -- messages --

type scanResultMsg struct {
	result *domain.ScanResult
	err    error
}

type copyResultMsg struct {
	text string
	err  error
}

// -- model --

type trackingModel struct {
	client  *client.Client
	loading *feedback.Loading
	input   textinput.Model
	result  *domain.ScanResult
	width   int
}

func newTrackingModel(c *client.Client, l *feedback.Loading) trackingModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = inputPromptStyle
	ti.Placeholder = "输入或扫描二维码数据"
	ti.PlaceholderStyle = inputPlaceholderStyle
	ti.CharLimit = maxInputLen
	ti.Focus()
	return trackingModel{client: c, loading: l, input: ti}
}

// Init starts the cursor blink. Nothing is fetched until a code is submitted.
func (m trackingModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m trackingModel) editing() bool {
	return m.input.Focused()
}

func (m trackingModel) scan(qrCode string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		res, err := c.ScanQRCode(context.Background(), qrCode)
		return scanResultMsg{result: res, err: err}
	}
}

func (m trackingModel) Update(msg tea.Msg) (trackingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-6, 10)

	case scanResultMsg:
		m.loading.Hide(regionScanResult)
		if msg.err != nil {
			log.Debug().Err(msg.err).Msg("scan failed")
			return m, nil
		}
		m.result = msg.result
		return m, notify("成功", "扫描成功", domain.SeveritySuccess)

	case copyResultMsg:
		if msg.err != nil {
			return m, notify("错误", "复制失败: "+msg.err.Error(), domain.SeverityError)
		}
		return m, notify("提示", "已复制 "+msg.text, domain.SeverityInfo)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m trackingModel) handleKey(msg tea.KeyMsg) (trackingModel, tea.Cmd) {
	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			qr := m.input.Value()
			if qr == "" {
				return m, notify("错误", "请输入二维码数据", domain.SeverityError)
			}
			return m, tea.Batch(m.loading.Show(regionScanResult), m.scan(qr))
		case "esc":
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter", "/":
		return m, m.input.Focus()
	case "c":
		if m.result != nil && m.result.Product != nil {
			text := m.result.Product.ProductCode
			return m, func() tea.Msg {
				return copyResultMsg{text: text, err: clipboard.WriteAll(text)}
			}
		}
	}
	return m, nil
}

func (m trackingModel) View() string {
	var b strings.Builder
	b.WriteString(" " + m.input.View() + "\n\n")

	if m.loading.Active(regionScanResult) {
		b.WriteString(m.loading.View(regionScanResult) + "\n")
		return b.String()
	}
	if m.result == nil || m.result.Product == nil {
		return b.String()
	}

	p := m.result.Product
	status, location := "-", "-"
	if tr := m.result.Tracking; tr != nil {
		status = BadgeStyle(domain.StatusClass(tr.CurrentStatus)).Render(domain.StatusLabel(tr.CurrentStatus))
		location = orDash(tr.CurrentLocation)
	}
	lines := []string{
		sectionHeaderStyle.Render("产品信息"),
		cardLabelStyle.Render("产品名称: ") + normalStyle.Render(orDash(p.ProductName)),
		cardLabelStyle.Render("产品编码: ") + normalStyle.Render(orDash(p.ProductCode)),
		cardLabelStyle.Render("当前状态: ") + status,
		cardLabelStyle.Render("当前位置: ") + normalStyle.Render(location),
	}
	if n := len(m.result.ProductionHistory); n > 0 {
		lines = append(lines, "", sectionHeaderStyle.Render("生产记录"))
		for _, rec := range m.result.ProductionHistory {
			lines = append(lines, dimStyle.Render(formatDateTime(rec.StartTime))+"  "+normalStyle.Render(rec.ProcessStep)+"  "+metaStyle.Render(rec.Status))
		}
	}
	b.WriteString(indent(cardStyle.Render(strings.Join(lines, "\n")), 1) + "\n")
	return b.String()
}
