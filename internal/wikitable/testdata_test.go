package wikitable

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const samplePage = `<!DOCTYPE html>
<html><body>
<table class="infobox"><tr><th>Not</th></tr><tr><td>counted</td></tr></table>
<table class="wikitable sortable">
  <caption>Largest cities[1]</caption>
  <tr><th>City</th><th>Population</th></tr>
  <tr><td>Paris</td><td>2,100,000[2]</td></tr>
</table>
<table class="wikitable">
  <caption>Rivers of Europe</caption>
  <tr><th>River</th><th>Length</th><th>Outflow</th></tr>
  <tr><td>Danube</td><td>2,850 km</td><td>Black Sea</td></tr>
  <tr><td>Rhine</td><td>1,230 km</td></tr>
  <tr><td>Volga</td><td>3,530 km</td><td>Caspian Sea</td><td>extra</td></tr>
</table>
<table class="wikitable">
  <tr><td>a</td><td>b</td></tr>
</table>
</body></html>`

func mustDoc(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func mustLocate(t *testing.T, page string) []*goquery.Selection {
	t.Helper()
	tables, err := Locate(mustDoc(t, page))
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	return tables
}
