package ui

import (
	"strings"
	"testing"
)

func TestChatBannerTitle(t *testing.T) {
	title := chatBannerTitle("Maria Silva")
	if want := "💬  Chat - Maria Silva"; title != want {
		t.Errorf("chatBannerTitle() = %q, want %q", title, want)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	out := RenderTable([]string{"ID", "NAME"}, nil)
	if !strings.Contains(out, "No resources found") {
		t.Errorf("RenderTable(empty) = %q, want placeholder", out)
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"ID", "NAME"},
		[][]string{
			{"1", "Ana"},
			{"22", "João Pedro"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("RenderTable() produced %d lines, want 3", len(lines))
	}
	for _, line := range lines {
		if !strings.Contains(line, "  ") {
			t.Errorf("row %q missing column gap", line)
		}
	}
	if !strings.Contains(lines[2], "João Pedro") {
		t.Errorf("last row = %q, want contact name", lines[2])
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 4); got != "ab  " {
		t.Errorf("pad() = %q, want %q", got, "ab  ")
	}
	if got := pad("abcd", 2); got != "abcd" {
		t.Errorf("pad() must not truncate: %q", got)
	}
}
