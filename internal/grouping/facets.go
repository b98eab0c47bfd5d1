package grouping

import (
	"slices"

	"github.com/llehouerou/tablib/internal/catalog"
)

// Bands returns the distinct band names in entries, sorted.
func Bands(entries []catalog.Entry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if !seen[e.Band] {
			seen[e.Band] = true
			out = append(out, e.Band)
		}
	}
	c := NewComparer()
	slices.SortFunc(out, c.Compare)
	return out
}

// Albums returns the distinct named albums in entries, sorted. When band is
// not empty only that band's albums are listed.
func Albums(entries []catalog.Entry, band string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if band != "" && e.Band != band {
			continue
		}
		if e.Album == "" || seen[e.Album] {
			continue
		}
		seen[e.Album] = true
		out = append(out, e.Album)
	}
	c := NewComparer()
	slices.SortFunc(out, c.Compare)
	return out
}
