package clipboard

import (
	"strings"
	"testing"
)

func TestSanitizeTrims(t *testing.T) {
	if got := sanitize("  felt calm today  \n"); got != "felt calm today" {
		t.Errorf("sanitize = %q", got)
	}
}

func TestSanitizeRejectsEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		if got := sanitize(in); got != "" {
			t.Errorf("sanitize(%q) = %q, want empty", in, got)
		}
	}
}

func TestSanitizeRejectsBareURL(t *testing.T) {
	if got := sanitize("https://example.com/file.zip"); got != "" {
		t.Errorf("sanitize(url) = %q, want empty", got)
	}
	// A sentence mentioning a URL is still prose.
	if got := sanitize("read https://example.com today and felt calm"); got == "" {
		t.Error("prose containing a URL should pass")
	}
}

func TestSanitizeRejectsOversizedText(t *testing.T) {
	if got := sanitize(strings.Repeat("a ", 3000)); got != "" {
		t.Error("oversized clipboard text should be rejected")
	}
}
