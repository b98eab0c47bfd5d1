package grouping

import (
	"strings"

	"github.com/llehouerou/tablib/internal/catalog"
)

// Filters restrict the view. Empty fields are not applied; set fields must
// all match.
type Filters struct {
	Band  string
	Album string
	Query string // case-insensitive substring of "band album song"
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return f.Band == "" && f.Album == "" && f.Query == ""
}

// Match reports whether e passes every set filter.
func (f Filters) Match(e catalog.Entry) bool {
	if f.Band != "" && e.Band != f.Band {
		return false
	}
	if f.Album != "" && e.Album != f.Album {
		return false
	}
	if f.Query != "" {
		haystack := strings.ToLower(e.Band + " " + e.Album + " " + e.Song)
		if !strings.Contains(haystack, strings.ToLower(f.Query)) {
			return false
		}
	}
	return true
}

// Filter returns the entries that match f, preserving their order.
func Filter(entries []catalog.Entry, f Filters) []catalog.Entry {
	out := make([]catalog.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
