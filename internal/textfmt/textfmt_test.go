package textfmt

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFromMarkdown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"**bold**", "*bold*"},
		{"*italic*", "_italic_"},
		{"**bold** and *italic*", "*bold* and _italic_"},
		{"~~gone~~", "~gone~"},
		{"## Title\nbody", "*Title*\nbody"},
		{"> quoted\nplain", "quoted\nplain"},
		{"no markup", "no markup"},
	}
	for _, tt := range tests {
		if got := FromMarkdown(tt.in); got != tt.want {
			t.Errorf("FromMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitShort(t *testing.T) {
	got := Split("hello", MaxLen)
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("Split = %q", got)
	}
}

func TestSplitPrefersParagraphs(t *testing.T) {
	first := strings.Repeat("a", 30)
	second := strings.Repeat("b", 30)
	got := Split(first+"\n\n"+second, 40)
	if len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("Split = %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	text := "One sentence here. Another sentence follows and runs on"
	got := Split(text, 30)
	if got[0] != "One sentence here." {
		t.Fatalf("first chunk = %q", got[0])
	}
	if strings.Join(got, " ") != text {
		t.Fatalf("chunks lose text: %q", got)
	}
}

func TestSplitHardCut(t *testing.T) {
	text := strings.Repeat("x", 25)
	got := Split(text, 10)
	if len(got) != 3 || got[0] != strings.Repeat("x", 10) || got[2] != "xxxxx" {
		t.Fatalf("Split = %q", got)
	}
}

func TestSplitKeepsRunesWhole(t *testing.T) {
	text := strings.Repeat("é", 20) // 2 bytes each
	for _, c := range Split(text, 7) {
		if !utf8.ValidString(c) {
			t.Fatalf("invalid UTF-8 chunk %q", c)
		}
		if len(c) > 7 {
			t.Fatalf("chunk too long: %d bytes", len(c))
		}
	}
}
