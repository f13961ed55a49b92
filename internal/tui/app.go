package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/mfgtrace/tracectl/internal/feedback"
	"github.com/mfgtrace/tracectl/internal/session"
	"github.com/mfgtrace/tracectl/pkg/client"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

// bootstrapMsg runs the authentication gate and page dispatch.
type bootstrapMsg struct{}

// navigateMsg asks the app to move to path.
type navigateMsg struct {
	path string
}

// notifyMsg raises a toast from code already running on the event loop.
type notifyMsg feedback.Note

func navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

func notify(title, message string, severity domain.Severity) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{Title: title, Message: message, Severity: severity}
	}
}

// App is the root Bubbletea model. It gates every page on the session,
// dispatches the current path to its page and owns the toast stack.
type App struct {
	client    *client.Client
	session   *session.Manager
	router    *Router
	inbox     *feedback.Inbox
	loading   *feedback.Loading
	toaster   feedback.Toaster
	current   page
	login     loginModel
	dashboard dashboardModel
	products  productsModel
	tracking  trackingModel
	quality   listModel
	suppliers listModel
	devices   listModel
	width     int
	height    int
}

// NewApp creates the TUI. inbox must be the Notifier the client was built
// with so gateway failures surface as toasts.
func NewApp(c *client.Client, mgr *session.Manager, router *Router, inbox *feedback.Inbox) App {
	if inbox == nil {
		inbox = feedback.NewInbox()
	}
	l := feedback.NewLoading()
	return App{
		client:    c,
		session:   mgr,
		router:    router,
		inbox:     inbox,
		loading:   l,
		toaster:   feedback.NewToaster(),
		login:     newLoginModel(c, modeLogin),
		dashboard: newDashboardModel(c, l),
		products:  newProductsModel(c, l),
		tracking:  newTrackingModel(c, l),
		quality:   newListModel(qualityList, c, l),
		suppliers: newListModel(supplierList, c, l),
		devices:   newListModel(deviceList, c, l),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.inbox.Listen(), func() tea.Msg { return bootstrapMsg{} })
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		body := a.bodySize()
		a.login, _ = a.login.Update(body)
		a.dashboard, _ = a.dashboard.Update(body)
		a.products, _ = a.products.Update(body)
		a.tracking, _ = a.tracking.Update(body)
		a.quality, _ = a.quality.Update(body)
		a.suppliers, _ = a.suppliers.Update(body)
		a.devices, _ = a.devices.Update(body)
		return a, nil

	case bootstrapMsg:
		return a.route()

	case navigateMsg:
		a.router.Redirect(msg.path)
		return a.route()

	case feedback.NotifyMsg:
		var cmd tea.Cmd
		a.toaster, cmd = a.toaster.Update(msg)
		return a, tea.Batch(cmd, a.inbox.Listen())

	case notifyMsg:
		var cmd tea.Cmd
		a.toaster, cmd = a.toaster.Notify(msg.Title, msg.Message, msg.Severity)
		return a, cmd

	case spinner.TickMsg:
		return a, a.loading.Update(msg)

	case loggedInMsg:
		return a.handleLoggedIn(msg)

	case registeredMsg:
		if msg.err != nil {
			var cmd tea.Cmd
			a.login, cmd = a.login.retry()
			return a, cmd
		}
		log.Info().Str("username", msg.username).Msg("account registered")
		a.router.Redirect(session.LoginPath)
		next, cmd := a.route()
		return next, tea.Batch(cmd, notify("成功", "注册成功，请登录", domain.SeveritySuccess))

	case dashboardLoadedMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		return a, cmd

	case productsLoadedMsg, productDetailMsg:
		var cmd tea.Cmd
		a.products, cmd = a.products.Update(msg)
		return a, cmd

	case scanResultMsg, copyResultMsg:
		var cmd tea.Cmd
		a.tracking, cmd = a.tracking.Update(msg)
		return a, cmd

	case listLoadedMsg:
		a.quality, _ = a.quality.Update(msg)
		a.suppliers, _ = a.suppliers.Update(msg)
		a.devices, _ = a.devices.Update(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.isEditing() {
			if next, cmd, ok := a.handleGlobalKey(msg); ok {
				return next, cmd
			}
		}
	}

	// Toast lifecycle ticks and everything else for the current page
	var cmd tea.Cmd
	a.toaster, cmd = a.toaster.Update(msg)
	cmds = append(cmds, cmd)

	a, cmd = a.updateCurrent(msg)
	cmds = append(cmds, cmd)

	if a.router.takePending() {
		a, cmd = a.route()
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleGlobalKey(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	switch key := msg.String(); key {
	case "q":
		return a, tea.Quit, true
	case "x":
		if a.session.Context().User() == nil {
			return a, nil, false
		}
		a.session.Logout()
		next, cmd := a.route()
		return next, cmd, true
	case "r":
		next, cmd := a.route()
		return next, cmd, true
	default:
		if r, ok := routeForKey(key); ok {
			if a.current == r.page {
				return a, nil, true
			}
			a.router.Redirect("/" + r.fragment)
			next, cmd := a.route()
			return next, cmd, true
		}
	}
	return a, nil, false
}

func (a App) handleLoggedIn(msg loggedInMsg) (App, tea.Cmd) {
	if msg.err != nil {
		var cmd tea.Cmd
		a.login, cmd = a.login.retry()
		return a, cmd
	}
	if err := a.session.Login(msg.result.AccessToken, msg.result.User); err != nil {
		log.Error().Err(err).Msg("could not store credentials")
		var cmd tea.Cmd
		a.login, cmd = a.login.retry()
		return a, tea.Batch(cmd, notify("错误", "无法保存登录信息", domain.SeverityError))
	}
	log.Info().Str("username", msg.result.User.Username).Msg("logged in")
	a.router.Redirect(session.HomePath)
	next, cmd := a.route()
	title := msg.result.Message
	if title == "" {
		title = "登录成功"
	}
	return next, tea.Batch(cmd, notify("成功", title, domain.SeveritySuccess))
}

// route runs the authentication gate and then initializes the page for the
// current path. An unmatched path leaves the body empty.
func (a App) route() (App, tea.Cmd) {
	outcome := a.session.EnsureAuthenticated()
	a.router.takePending()
	path := a.router.Path()
	log.Debug().Str("path", path).Str("session", outcome.String()).Msg("route")

	if isAuthPath(path) {
		mode := modeLogin
		if strings.Contains(path, session.RegisterPath) {
			mode = modeRegister
		}
		a.current = pageLogin
		a.login = newLoginModel(a.client, mode)
		a.login, _ = a.login.Update(a.bodySize())
		return a, a.login.Init()
	}

	r, ok := matchRoute(path)
	if !ok {
		a.current = pageNone
		return a, nil
	}
	return a.enter(r.page)
}

// enter resets a page to a fresh state and starts its initializer.
func (a App) enter(p page) (App, tea.Cmd) {
	a.current = p
	body := a.bodySize()
	switch p {
	case pageDashboard:
		a.dashboard, _ = newDashboardModel(a.client, a.loading).Update(body)
		return a, a.dashboard.Init()
	case pageProducts:
		a.products, _ = newProductsModel(a.client, a.loading).Update(body)
		return a, a.products.Init()
	case pageTracking:
		a.tracking, _ = newTrackingModel(a.client, a.loading).Update(body)
		return a, a.tracking.Init()
	case pageQuality:
		a.quality, _ = newListModel(qualityList, a.client, a.loading).Update(body)
		return a, a.quality.Init()
	case pageSuppliers:
		a.suppliers, _ = newListModel(supplierList, a.client, a.loading).Update(body)
		return a, a.suppliers.Init()
	case pageDevices:
		a.devices, _ = newListModel(deviceList, a.client, a.loading).Update(body)
		return a, a.devices.Init()
	}
	return a, nil
}

func (a App) updateCurrent(msg tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch a.current {
	case pageLogin:
		a.login, cmd = a.login.Update(msg)
	case pageDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case pageProducts:
		a.products, cmd = a.products.Update(msg)
	case pageTracking:
		a.tracking, cmd = a.tracking.Update(msg)
	case pageQuality:
		a.quality, cmd = a.quality.Update(msg)
	case pageSuppliers:
		a.suppliers, cmd = a.suppliers.Update(msg)
	case pageDevices:
		a.devices, cmd = a.devices.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	switch a.current {
	case pageLogin:
		return true
	case pageProducts:
		return a.products.editing()
	case pageTracking:
		return a.tracking.editing()
	}
	return false
}

// Chrome: navbar(1) + blank(1) + help(1)
const chromeHeight = 3

func (a App) bodySize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: max(a.height-chromeHeight, 0)}
}

func (a App) View() string {
	width := a.width
	if width <= 0 {
		width = 80
	}

	var body, help string
	switch a.current {
	case pageLogin:
		body = a.login.View()
		help = " " + helpEntry("tab", "下一项") + "  " + helpEntry("enter", "提交") + "  " + helpEntry("ctrl+c", "退出")
	case pageDashboard:
		body = a.dashboard.View()
		help = a.navHelp()
	case pageProducts:
		body = a.products.View()
		if a.products.editing() {
			help = " " + helpEntry("enter", "搜索") + "  " + helpEntry("esc", "取消")
		} else {
			help = a.navHelp() + "  " + helpEntry("j/k", "选择") + "  " + helpEntry("enter", "详情") + "  " + helpEntry("/", "搜索")
		}
	case pageTracking:
		body = a.tracking.View()
		if a.tracking.editing() {
			help = " " + helpEntry("enter", "扫描") + "  " + helpEntry("esc", "导航")
		} else {
			help = a.navHelp() + "  " + helpEntry("enter", "输入") + "  " + helpEntry("c", "复制编码")
		}
	case pageQuality:
		body = a.quality.View()
		help = a.navHelp() + "  " + helpEntry("j/k", "选择")
	case pageSuppliers:
		body = a.suppliers.View()
		help = a.navHelp() + "  " + helpEntry("j/k", "选择")
	case pageDevices:
		body = a.devices.View()
		help = a.navHelp() + "  " + helpEntry("j/k", "选择")
	default:
		body = " " + dimStyle.Render(fmt.Sprintf("未知页面 %s", a.router.Path())) + "\n"
		help = a.navHelp()
	}

	if toasts := a.toaster.View(width); toasts != "" {
		body = toasts + "\n" + body
	}
	if a.height > 0 {
		body = truncateToHeight(body, a.height-chromeHeight)
	}
	body = strings.TrimRight(body, "\n")

	navbar := renderNavbar(a.session.Context(), a.current, width)
	return fmt.Sprintf("%s\n\n%s\n%s", navbar, body, help)
}

func (a App) navHelp() string {
	h := " " + helpEntry("1-6", "页面") + "  " + helpEntry("r", "刷新")
	if a.session.Context().User() != nil {
		h += "  " + helpEntry("x", "登出")
	}
	return h + "  " + helpEntry("q", "退出")
}
