package ui

import (
	"strings"
	"unicode/utf8"
)

// DefaultTitleWidth is how many characters of an issue title are shown in
// per-issue output.
const DefaultTitleWidth = 60

// TruncateSimple performs simple end truncation with "..." suffix.
// UTF-8 safe.
func TruncateSimple(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}

// TruncateTitle shortens a title to maxLen runes, breaking at a word
// boundary when one is near the cut.
func TruncateTitle(title string, maxLen int) string {
	title = strings.Join(strings.Fields(title), " ")
	if utf8.RuneCountInString(title) <= maxLen {
		return title
	}
	if maxLen <= 3 {
		return "..."
	}

	runes := []rune(title)
	cut := maxLen - 3
	for i := cut; i > cut-15 && i > 0; i-- {
		if runes[i] == ' ' {
			return strings.TrimRight(string(runes[:i]), " ") + "..."
		}
	}
	return TruncateSimple(title, maxLen)
}
