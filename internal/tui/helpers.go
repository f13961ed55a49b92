package tui

import (
	"unicode/utf8"

	"github.com/mfgtrace/tracectl/pkg/domain"
)

// formatDate renders a timestamp as a calendar date, or "-" when unset.
func formatDate(t domain.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// formatDateTime renders a timestamp with minutes, or "-" when unset.
func formatDateTime(t domain.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// orDash returns s, or "-" when it is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
