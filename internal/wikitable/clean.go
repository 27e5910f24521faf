package wikitable

import (
	"html"
	"regexp"
	"strings"
)

var (
	referenceMarker = regexp.MustCompile(`(?i)\[\s*(note)?\s*\d+\s*\]`)
	whitespaceRun   = regexp.MustCompile(`[\s\p{Zs}]{2,}`)
	lineBreaks      = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")
)

// Clean turns raw cell markup text into a single plain line: entities
// decoded, reference markers such as "[1]" or "[note 2]" removed and
// whitespace collapsed.
func Clean(s string) string {
	return cleanText(html.UnescapeString(s))
}

// cleanText is Clean for text the HTML parser already decoded.
func cleanText(text string) string {
	text = lineBreaks.Replace(text)
	text = strings.TrimSpace(text)
	text = referenceMarker.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
