package tui

import (
	"strings"
	"testing"

	"github.com/mfgtrace/tracectl/pkg/domain"
)

func TestBadgeStyleKnownClasses(t *testing.T) {
	for _, status := range []string{domain.StatusProduced, domain.StatusShipped, domain.StatusSold, domain.StatusRecalled} {
		class := domain.StatusClass(status)
		if _, ok := badgeColors[class]; !ok {
			t.Errorf("no badge color for class %q (status %q)", class, status)
		}
		if got := BadgeStyle(class).Render(domain.StatusLabel(status)); !strings.Contains(got, domain.StatusLabel(status)) {
			t.Errorf("BadgeStyle(%q) did not render label: %q", class, got)
		}
	}
}

func TestBadgeStyleUnknownClassFallback(t *testing.T) {
	if BadgeStyle("nope").GetForeground() != BadgeStyle("secondary").GetForeground() {
		t.Error("unknown class should use the secondary color")
	}
}

func TestHelpEntryMultipleKeys(t *testing.T) {
	tests := []struct {
		key   string
		label string
	}{
		{"1-6", "页面"},
		{"x", "登出"},
		{"esc", "取消"},
		{"ctrl+r", "注册新用户"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			result := helpEntry(tc.key, tc.label)
			if !strings.Contains(result, tc.key) {
				t.Errorf("helpEntry(%q, %q) missing key", tc.key, tc.label)
			}
			if !strings.Contains(result, tc.label) {
				t.Errorf("helpEntry(%q, %q) missing label", tc.key, tc.label)
			}
		})
	}
}

func TestNavbarUserInfo(t *testing.T) {
	bar := renderNavbar(nil, pageDashboard, 120)
	if strings.Contains(bar, "欢迎") {
		t.Errorf("navbar without session should have no greeting: %q", bar)
	}
	for _, r := range routes {
		if !strings.Contains(bar, r.title) {
			t.Errorf("navbar missing tab %q", r.title)
		}
	}
}
