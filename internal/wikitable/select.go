package wikitable

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Select picks one table from candidates using selector:
//   - an integer selects by index, clamped to the valid range;
//   - otherwise the first table whose caption contains the selector
//     (case-insensitive) wins;
//   - otherwise the table with the most rows is returned.
//
// An empty selector means index 0. Select returns (nil, -1) when candidates
// is empty.
func Select(candidates []*goquery.Selection, selector string) (*goquery.Selection, int) {
	if len(candidates) == 0 {
		return nil, -1
	}
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return candidates[0], 0
	}
	if idx, err := strconv.Atoi(sel); err == nil {
		i := clamp(idx, 0, len(candidates)-1)
		return candidates[i], i
	}
	if i := matchCaption(candidates, sel); i >= 0 {
		return candidates[i], i
	}
	i := largest(candidates)
	return candidates[i], i
}

func matchCaption(candidates []*goquery.Selection, sel string) int {
	needle := strings.ToLower(sel)
	for i, t := range candidates {
		if t.Find("caption").Length() == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(CaptionText(t)), needle) {
			return i
		}
	}
	return -1
}

// largest returns the index of the table with the most own rows, so nested
// tables do not count; ties keep the earliest table.
func largest(candidates []*goquery.Selection) int {
	best, bestRows := 0, -1
	for i, t := range candidates {
		if n := ownRows(t).Length(); n > bestRows {
			best, bestRows = i, n
		}
	}
	return best
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
