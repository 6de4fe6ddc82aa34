// Package document converts between plain editor text and the markup
// stored in session files.
package document

import (
	"html"
	"regexp"
	"strings"
)

// Empty is the markup of a document with a single empty paragraph.
const Empty = "<p></p>"

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	paragraphPattern = regexp.MustCompile(`(?is)<p(?:\s[^>]*)?>(.*?)</p>`)
	breakPattern     = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// IsEmpty reports whether markup has no user visible content.
func IsEmpty(markup string) bool {
	return strings.TrimSpace(PlainText(markup)) == ""
}

// PlainText strips tags and decodes entities. Paragraph boundaries are lost.
func PlainText(markup string) string {
	text := breakPattern.ReplaceAllString(markup, " ")
	text = tagPattern.ReplaceAllString(text, " ")
	return html.UnescapeString(text)
}

// FromText renders one paragraph per line of text.
func FromText(text string) string {
	if text == "" {
		return Empty
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}

// ToText is the inverse of FromText. Markup produced elsewhere is accepted
// too: <br> becomes a newline and unknown tags are dropped.
func ToText(markup string) string {
	matches := paragraphPattern.FindAllStringSubmatch(markup, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(decode(markup))
	}
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, decode(m[1]))
	}
	return strings.Join(lines, "\n")
}

// WordCount counts whitespace separated words of visible text.
func WordCount(markup string) int {
	return len(strings.Fields(PlainText(markup)))
}

func decode(fragment string) string {
	fragment = breakPattern.ReplaceAllString(fragment, "\n")
	fragment = tagPattern.ReplaceAllString(fragment, "")
	return html.UnescapeString(fragment)
}
