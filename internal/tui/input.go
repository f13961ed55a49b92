package tui

// pageSize is the number of rows fetched per list call.
const pageSize = 50

// maxInputLen is the maximum number of runes accepted by search and scan inputs.
const maxInputLen = 256

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
