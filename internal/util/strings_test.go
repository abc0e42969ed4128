package util

import (
	"strings"
	"testing"
)

func TestTruncateString(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"tiny max", "hello", 3, "..."},
		{"empty string", "", 10, ""},
		{"multibyte runes", "héllo wörld", 8, "héllo..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateString(tc.input, tc.maxLen); got != tc.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestTruncateANSI(t *testing.T) {
	plain := strings.Repeat("x", 20)
	got := TruncateANSI(plain, 10)
	if len(got) > 13 {
		t.Errorf("expected truncation, got %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis tail, got %q", got)
	}

	if got := TruncateANSI("short", 10); got != "short" {
		t.Errorf("short string should be unchanged, got %q", got)
	}

	// Styled text keeps its escape sequences intact when not truncated.
	styled := "\x1b[1mbold\x1b[0m"
	if got := TruncateANSI(styled, 10); got != styled {
		t.Errorf("styled string should be unchanged, got %q", got)
	}
}
