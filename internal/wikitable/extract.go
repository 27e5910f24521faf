package wikitable

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Extract flattens table into a rectangular grid. Headers come from the first
// row's th cells, or its td cells when it has no th. Rows of nested tables
// are ignored. When no header is found, Col1..ColN are synthesized from the
// widest row.
func Extract(table *goquery.Selection) Table {
	t := Table{Caption: CaptionText(table)}
	rows := ownRows(table)
	if rows.Length() == 0 {
		return t
	}

	first := rows.First()
	headerCells := first.ChildrenFiltered("th")
	if headerCells.Length() == 0 {
		headerCells = first.ChildrenFiltered("td")
	}
	t.Headers = cellTexts(headerCells)

	rows.Slice(1, goquery.ToEnd).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("th, td")
		if cells.Length() == 0 {
			return
		}
		row := cellTexts(cells)
		if len(t.Headers) > 0 {
			row = Align(row, len(t.Headers))
		}
		t.Rows = append(t.Rows, row)
	})

	if len(t.Headers) == 0 && len(t.Rows) > 0 {
		t.Headers = genericHeaders(widest(t.Rows))
		for i, row := range t.Rows {
			t.Rows[i] = Align(row, len(t.Headers))
		}
	}
	return t
}

// ownRows returns the tr elements whose nearest table ancestor is table.
func ownRows(table *goquery.Selection) *goquery.Selection {
	root := table.Get(0)
	return table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").Get(0) == root
	})
}

func cellTexts(cells *goquery.Selection) []string {
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		out = append(out, cleanText(nodeText(c.Get(0))))
	})
	return out
}

// nodeText concatenates the text below n. Line breaks become spaces, style
// and script content is dropped.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Style, atom.Script:
				return
			case atom.Br:
				b.WriteByte(' ')
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func widest(rows [][]string) int {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

func genericHeaders(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "Col" + strconv.Itoa(i+1)
	}
	return out
}
