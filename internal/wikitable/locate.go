package wikitable

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const wikitableClass = "wikitable"

// Parse builds a queryable document from raw HTML.
func Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// ParseBytes is Parse over an in-memory page.
func ParseBytes(b []byte) (*goquery.Document, error) {
	return Parse(bytes.NewReader(b))
}

// Locate returns every table whose class attribute contains "wikitable", in
// document order. It returns ErrNoTables when there are none.
func Locate(doc *goquery.Document) ([]*goquery.Selection, error) {
	var tables []*goquery.Selection
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		if class, ok := s.Attr("class"); ok && strings.Contains(class, wikitableClass) {
			tables = append(tables, s)
		}
	})
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	return tables, nil
}

// CaptionText returns the cleaned text of the first caption inside table, or
// "" when it has none.
func CaptionText(table *goquery.Selection) string {
	caption := table.Find("caption").First()
	if caption.Length() == 0 {
		return ""
	}
	return cleanText(caption.Text())
}
