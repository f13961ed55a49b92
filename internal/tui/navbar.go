package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mfgtrace/tracectl/internal/session"
)

// renderNavbar draws the brand, the page tabs and the user-info region.
// The user-info region shows "欢迎, <username>" and the logout control
// whenever the session context holds a user.
func renderNavbar(ctx *session.Context, current page, width int) string {
	left := " " + brandStyle.Render("追溯系统")

	var tabs []string
	for _, r := range routes {
		if r.page == current {
			tabs = append(tabs, accentStyle.Render(r.key)+" "+selectedStyle.Underline(true).Render(r.title))
		} else {
			tabs = append(tabs, metaStyle.Render(r.key)+" "+dimStyle.Render(r.title))
		}
	}
	left += "   " + strings.Join(tabs, "  ")

	right := userInfo(ctx)
	if right == "" {
		return left
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

func userInfo(ctx *session.Context) string {
	name := ctx.Username()
	if name == "" {
		return ""
	}
	return normalStyle.Render("欢迎, "+name) + "  " + helpEntry("x", "登出")
}
