package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/mfgtrace/tracectl/internal/feedback"
	"github.com/mfgtrace/tracectl/pkg/client"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

const (
	regionProductTable  = "product-table-body"
	regionProductDetail = "product-detail"
)

const (
	msgNoProducts      = "暂无产品数据"
	msgNoSearchResults = "没有找到匹配的产品"
)

// -- messages --

type productsLoadedMsg struct {
	products []domain.Product
	detail   *domain.Product
	keyword  string // "" for the unfiltered list
	err      error
}

type productDetailMsg struct {
	product *domain.Product
	err     error
}

// -- model --

type productsModel struct {
	client   *client.Client
	loading  *feedback.Loading
	products []domain.Product
	detail   *domain.Product
	keyword  string
	loaded   bool
	table    table.Model
	search   textinput.Model
	width    int
	height   int
}

var productColumns = []table.Column{
	{Title: "产品编码", Width: 14},
	{Title: "产品名称", Width: 18},
	{Title: "产品类型", Width: 12},
	{Title: "生产日期", Width: 12},
	{Title: "状态", Width: 8},
}

func newProductsModel(c *client.Client, l *feedback.Loading) productsModel {
	si := textinput.New()
	si.Prompt = "/ "
	si.PromptStyle = inputPromptStyle
	si.Placeholder = "搜索产品编码或名称"
	si.PlaceholderStyle = inputPlaceholderStyle
	si.CharLimit = maxInputLen

	return productsModel{
		client:  c,
		loading: l,
		table:   newTable(productColumns),
		search:  si,
	}
}

func (m productsModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Show(regionProductTable), m.loadProducts())
}

// editing reports whether the search input owns the keyboard.
func (m productsModel) editing() bool {
	return m.search.Focused()
}

func (m productsModel) loadProducts() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		res, err := c.ListProducts(context.Background(), client.ListOptions{PerPage: pageSize})
		if err != nil {
			return productsLoadedMsg{err: err}
		}
		return productsLoadedMsg{products: res.Products}
	}
}

func (m productsModel) searchProducts(keyword string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		products, err := c.SearchProducts(context.Background(), keyword)
		return productsLoadedMsg{products: products, keyword: keyword, err: err}
	}
}

func (m productsModel) loadDetail(id int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		p, err := c.GetProduct(context.Background(), id)
		return productDetailMsg{product: p, err: err}
	}
}

func (m productsModel) Update(msg tea.Msg) (productsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// search(1) + detail(2) around the table
		m.table.SetHeight(max(msg.Height-3, 3))

	case productsLoadedMsg:
		m.loading.Hide(regionProductTable)
		if msg.err != nil {
			log.Debug().Err(msg.err).Str("keyword", msg.keyword).Msg("products not loaded")
			return m, nil
		}
		m.products = msg.products
		m.keyword = msg.keyword
		m.loaded = true
		m.detail = nil
		m.table.SetRows(productRows(m.products))
		m.table.SetCursor(0)

	case productDetailMsg:
		m.loading.Hide(regionProductDetail)
		if msg.err != nil {
			log.Debug().Err(msg.err).Msg("product detail not loaded")
			return m, nil
		}
		m.detail = msg.product

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m productsModel) handleKey(msg tea.KeyMsg) (productsModel, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "enter":
			keyword := m.search.Value()
			m.search.Blur()
			if keyword == "" {
				return m, nil
			}
			return m, tea.Batch(m.loading.Show(regionProductTable), m.searchProducts(keyword))
		case "esc":
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "/":
		return m, m.search.Focus()
	case "enter":
		p, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.loading.Show(regionProductDetail), m.loadDetail(p.ID))
	case "esc":
		if m.detail != nil {
			m.detail = nil
			return m, nil
		}
		if m.keyword != "" {
			m.search.Reset()
			return m, tea.Batch(m.loading.Show(regionProductTable), m.loadProducts())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	if p, ok := m.selected(); m.detail != nil && (!ok || p.ID != m.detail.ID) {
		m.detail = nil
	}
	return m, cmd
}

func (m productsModel) View() string {
	var b strings.Builder

	switch {
	case m.search.Focused():
		b.WriteString(" " + m.search.View() + "\n")
	case m.keyword != "":
		b.WriteString(" " + dimStyle.Render("搜索: ") + normalStyle.Render(m.keyword) + "  " + metaStyle.Render("esc 清除") + "\n")
	default:
		b.WriteString("\n")
	}

	if m.loading.Active(regionProductTable) {
		b.WriteString(m.loading.View(regionProductTable) + "\n")
		return b.String()
	}
	if !m.loaded {
		return b.String()
	}
	if len(m.products) == 0 {
		empty := msgNoProducts
		if m.keyword != "" {
			empty = msgNoSearchResults
		}
		b.WriteString(" " + dimStyle.Render(empty) + "\n")
		return b.String()
	}

	b.WriteString(indent(m.table.View(), 1) + "\n")
	if p, ok := m.selected(); ok {
		badge := BadgeStyle(domain.StatusClass(p.Status)).Render(domain.StatusLabel(p.Status))
		b.WriteString(" " + badge + "  " + dimStyle.Render(orDash(p.Manufacturer)) + "\n")
	}
	switch {
	case m.loading.Active(regionProductDetail):
		b.WriteString(m.loading.View(regionProductDetail) + "\n")
	case m.detail != nil:
		b.WriteString(indent(productCard(*m.detail), 1) + "\n")
	}
	return b.String()
}

func productCard(p domain.Product) string {
	warranty := "-"
	if p.WarrantyPeriod != nil {
		warranty = fmt.Sprintf("%d 个月", *p.WarrantyPeriod)
	}
	lines := []string{
		cardLabelStyle.Render("产品名称: ") + normalStyle.Render(orDash(p.ProductName)),
		cardLabelStyle.Render("产品编码: ") + normalStyle.Render(orDash(p.ProductCode)),
		cardLabelStyle.Render("制造商: ") + normalStyle.Render(orDash(p.Manufacturer)),
		cardLabelStyle.Render("生产日期: ") + normalStyle.Render(formatDate(p.ProductionDate)),
		cardLabelStyle.Render("保修期: ") + normalStyle.Render(warranty),
	}
	if len(p.Specifications) > 0 {
		keys := make([]string, 0, len(p.Specifications))
		for k := range p.Specifications {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, metaStyle.Render(fmt.Sprintf("  %s: %v", k, p.Specifications[k])))
		}
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m productsModel) selected() (domain.Product, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.products) {
		return domain.Product{}, false
	}
	return m.products[i], true
}

func productRows(products []domain.Product) []table.Row {
	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, table.Row{
			p.ProductCode,
			p.ProductName,
			p.ProductType,
			formatDate(p.ProductionDate),
			domain.StatusLabel(p.Status),
		})
	}
	return rows
}

// newTable returns a focused table with the shared look.
func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(tableBorderStyle).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(selectedStyle.GetForeground()).
		Background(borderColor).
		Bold(true)
	t.SetStyles(s)
	return t
}
