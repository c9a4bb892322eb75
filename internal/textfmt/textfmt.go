// Package textfmt prepares free text for WhatsApp text messages.
package textfmt

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxLen is the longest body WhatsApp accepts for a text message, in bytes.
const MaxLen = 4096

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*(.+?)\*`)
	reStrike     = regexp.MustCompile(`~~(.+?)~~`)
	reHeading    = regexp.MustCompile(`(?m)^#{1,3} +(.+)$`)
	reBlockquote = regexp.MustCompile(`(?m)^> ?`)
)

// FromMarkdown rewrites common Markdown emphasis into WhatsApp markup:
// **bold** becomes *bold*, *italic* becomes _italic_, ~~strike~~ becomes
// ~strike~ and headings turn bold. Blockquote markers are dropped.
func FromMarkdown(text string) string {
	// Bold is parked on a control byte so the italic pass cannot see it.
	const bold = "\x01"

	out := reBold.ReplaceAllString(text, bold+"$1"+bold)
	out = reItalic.ReplaceAllString(out, "_${1}_")
	out = strings.ReplaceAll(out, bold, "*")
	out = reStrike.ReplaceAllString(out, "~$1~")
	out = reHeading.ReplaceAllString(out, "*$1*")
	return reBlockquote.ReplaceAllString(out, "")
}

// breaks are tried in order; the first one found far enough into a chunk wins.
var breaks = []func(chunk string) int{
	func(c string) int { return strings.LastIndex(c, "\n\n") },
	func(c string) int { return strings.LastIndex(c, "\n") },
	sentenceEnd,
	func(c string) int { return strings.LastIndex(c, " ") },
}

func sentenceEnd(c string) int {
	best := -1
	for _, sep := range []string{". ", "? ", "! "} {
		if i := strings.LastIndex(c, sep); i >= 0 && i+1 > best {
			best = i + 1
		}
	}
	return best
}

// Split cuts text into chunks of at most maxLen bytes, preferring paragraph,
// line, sentence and word boundaries in that order. A boundary closer to the
// start than a quarter of maxLen is ignored. Chunks are trimmed and never
// split a UTF-8 sequence.
func Split(text string, maxLen int) []string {
	if maxLen <= 0 || len(text) <= maxLen {
		return []string{text}
	}

	minCut := maxLen / 4
	var chunks []string
	for len(text) > maxLen {
		cut := runeBoundary(text, maxLen)
		chunk := text[:cut]
		for _, find := range breaks {
			if i := find(chunk); i > 0 && i >= minCut {
				cut = i
				break
			}
		}
		if part := strings.TrimSpace(text[:cut]); part != "" {
			chunks = append(chunks, part)
		}
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// runeBoundary returns the largest n <= max such that text[:n] ends on a
// rune boundary.
func runeBoundary(text string, max int) int {
	n := max
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	if n == 0 {
		return max
	}
	return n
}
