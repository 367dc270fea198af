// Package clipboard pulls journal text from the system clipboard so
// `wave journal` works without retyping a note.
package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"
)

var clipboardReadAll = clipboard.ReadAll

// maxJournalLen bounds clipboard input; anything longer is almost
// certainly not a journal note.
const maxJournalLen = 4096

// ReadJournalText returns trimmed clipboard text suitable for
// classification, or "" when the clipboard is empty, unreadable, too
// long, or holds something that is clearly not prose (a bare URL).
func ReadJournalText() string {
	text, err := clipboardReadAll()
	if err != nil {
		return ""
	}
	return sanitize(text)
}

func sanitize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxJournalLen {
		return ""
	}
	if !strings.Contains(text, " ") && (strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")) {
		return ""
	}
	return text
}
