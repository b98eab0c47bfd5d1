// Package grouping derives the Band → Album → Song view of the catalog and
// the flat sequence used for previous/next navigation. Everything here is
// pure: the same inputs always give the same output.
package grouping

import (
	"fmt"
	"strings"

	"github.com/llehouerou/tablib/internal/catalog"
)

// SortKey selects which level of the tree the user is sorting by.
type SortKey string

const (
	SortBand         SortKey = "band"
	SortAlbum        SortKey = "album"
	SortSong         SortKey = "song"
	SortLastModified SortKey = "lastModified"
)

// SortKeys lists the keys in the order the UI cycles through them.
var SortKeys = []SortKey{SortBand, SortAlbum, SortSong, SortLastModified}

// ParseSortKey accepts a key name, ignoring case.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q (want band, album, song or lastModified)", s)
}

// Next returns the key after k, wrapping around.
func (k SortKey) Next() SortKey {
	for i, key := range SortKeys {
		if key == k {
			return SortKeys[(i+1)%len(SortKeys)]
		}
	}
	return SortBand
}

// Title is the human label of the key.
func (k SortKey) Title() string {
	switch k {
	case SortBand:
		return "Band"
	case SortAlbum:
		return "Album"
	case SortSong:
		return "Song"
	case SortLastModified:
		return "Last Modified"
	}
	return string(k)
}

// Criteria is everything the user chose that shapes the view.
type Criteria struct {
	Filters   Filters
	Key       SortKey
	Ascending bool
}

// DefaultCriteria sorts by band, ascending, without filters.
func DefaultCriteria() Criteria {
	return Criteria{Key: SortBand, Ascending: true}
}

// WithBand selects a band filter. The album filter is cleared since it
// belonged to the previous band.
func (c Criteria) WithBand(band string) Criteria {
	c.Filters.Band = band
	c.Filters.Album = ""
	return c
}

// AlbumGroup is one album of a band with its songs in display order.
type AlbumGroup struct {
	Album          string
	LatestModified int64
	Entries        []catalog.Entry
}

// BandGroup is one band with its albums in display order.
type BandGroup struct {
	Band           string
	LatestModified int64
	Albums         []AlbumGroup
}

// Projection is the grouped, ordered view of the catalog.
type Projection []BandGroup

// Len returns the number of entries in the projection.
func (p Projection) Len() int {
	n := 0
	for _, b := range p {
		for _, a := range b.Albums {
			n += len(a.Entries)
		}
	}
	return n
}

// Build filters entries and groups the result.
func Build(entries []catalog.Entry, c Criteria) Projection {
	return Group(Filter(entries, c.Filters), c.Key, c.Ascending)
}
