package components

import (
	"strings"
	"testing"
)

func TestRenderMarkdownStripsMarkers(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		notWant string
	}{
		{"heading", "# Next steps", "Next steps", "#"},
		{"bullet", "- first point", "• first point", "- "},
		{"star bullet", "* second point", "• second point", "* "},
		{"ordered list keeps numbering", "1. do this", "1. do this", ""},
		{"bold", "this is **important** here", "important", "**"},
		{"italic", "an _aside_ remark", "aside", "_"},
		{"inline code", "run `forge profile add`", "forge profile add", "`"},
		{"plain text untouched", "just a sentence", "just a sentence", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderMarkdown(tt.in)
			if !strings.Contains(got, tt.want) {
				t.Errorf("renderMarkdown(%q) = %q, missing %q", tt.in, got, tt.want)
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("renderMarkdown(%q) = %q, still contains %q", tt.in, got, tt.notWant)
			}
		})
	}
}

func TestRenderMarkdownKeepsLineCount(t *testing.T) {
	in := "first\nsecond\nthird"
	got := renderMarkdown(in)
	if strings.Count(got, "\n") != 2 {
		t.Errorf("line structure changed: %q", got)
	}
}
