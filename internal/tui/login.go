package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mfgtrace/tracectl/pkg/client"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// -- messages --

type loggedInMsg struct {
	result *domain.LoginResult
	err    error
}

type registeredMsg struct {
	username string
	err      error
}

// authFields backs the huh form. It lives on the heap so the form's value
// pointers stay valid across model copies.
type authFields struct {
	username   string
	password   string
	email      string
	role       string
	department string
}

// -- model --

type loginModel struct {
	client     *client.Client
	mode       authMode
	fields     *authFields
	form       *huh.Form
	submitting bool
	width      int
}

func newLoginModel(c *client.Client, mode authMode) loginModel {
	return newLoginModelWith(c, mode, &authFields{role: "operator"})
}

// newLoginModelWith builds the form over f. huh copies field values when
// the inputs are built, so f must be filled in before this call.
func newLoginModelWith(c *client.Client, mode authMode, f *authFields) loginModel {
	return loginModel{client: c, mode: mode, fields: f, form: buildAuthForm(mode, f)}
}

func (m loginModel) Init() tea.Cmd {
	return m.form.Init()
}

// retry rebuilds the form after a rejected submission, keeping the username.
func (m loginModel) retry() (loginModel, tea.Cmd) {
	f := &authFields{username: m.fields.username, role: "operator"}
	m = newLoginModelWith(m.client, m.mode, f)
	return m, m.form.Init()
}

func (m loginModel) submit() tea.Cmd {
	c := m.client
	f := *m.fields
	if m.mode == modeRegister {
		return func() tea.Msg {
			err := c.Register(context.Background(), domain.Registration{
				Username:   strings.TrimSpace(f.username),
				Email:      strings.TrimSpace(f.email),
				Password:   f.password,
				Role:       f.role,
				Department: strings.TrimSpace(f.department),
			})
			return registeredMsg{username: f.username, err: err}
		}
	}
	return func() tea.Msg {
		res, err := c.Login(context.Background(), strings.TrimSpace(f.username), f.password)
		return loggedInMsg{result: res, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		m.form = m.form.WithWidth(min(max(ws.Width-4, 20), 60))
	}
	if m.submitting {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+r" {
		target := "/register"
		if m.mode == modeRegister {
			target = "/login"
		}
		return m, navigate(target)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.submitting = true
		return m, tea.Batch(cmd, m.submit())
	case huh.StateAborted:
		return m, tea.Quit
	}
	return m, cmd
}

func (m loginModel) View() string {
	title := "登录"
	switchHint := helpEntry("ctrl+r", "注册新用户")
	if m.mode == modeRegister {
		title = "注册新用户"
		switchHint = helpEntry("ctrl+r", "返回登录")
	}
	var b strings.Builder
	b.WriteString("\n " + brandStyle.Render("制造业产品追溯系统") + "  " + selectedStyle.Render(title) + "\n\n")
	if m.submitting {
		msg := "正在登录..."
		if m.mode == modeRegister {
			msg = "正在注册..."
		}
		b.WriteString(" " + dimStyle.Render(msg) + "\n")
		return b.String()
	}
	b.WriteString(indent(m.form.View(), 1) + "\n\n")
	b.WriteString(" " + switchHint + "\n")
	return b.String()
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s不能为空", label)
		}
		return nil
	}
}

func buildAuthForm(mode authMode, f *authFields) *huh.Form {
	username := huh.NewInput().
		Title("用户名").
		Value(&f.username).
		Validate(required("用户名"))
	password := huh.NewInput().
		Title("密码").
		EchoMode(huh.EchoModePassword).
		Value(&f.password).
		Validate(required("密码"))

	if mode == modeLogin {
		return huh.NewForm(huh.NewGroup(username, password)).WithShowHelp(false)
	}

	email := huh.NewInput().
		Title("邮箱").
		Value(&f.email).
		Validate(func(s string) error {
			if !strings.Contains(s, "@") {
				return fmt.Errorf("邮箱格式不正确")
			}
			return nil
		})
	role := huh.NewSelect[string]().
		Title("角色").
		Options(
			huh.NewOption("操作员", "operator"),
			huh.NewOption("质检员", "inspector"),
			huh.NewOption("管理员", "admin"),
		).
		Value(&f.role)
	department := huh.NewInput().
		Title("部门").
		Value(&f.department)

	return huh.NewForm(huh.NewGroup(username, email, password, role, department)).WithShowHelp(false)
}
