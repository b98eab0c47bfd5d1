package grouping

import (
	"cmp"
	"slices"
	"strings"

	"github.com/llehouerou/tablib/internal/catalog"
)

type albumAcc struct {
	entries []catalog.Entry
	latest  int64
}

type bandAcc struct {
	albums     map[string]*albumAcc
	albumOrder []string
	latest     int64
}

// Group partitions entries by band, then by album (absent albums go to
// catalog.SingleAlbum), and orders every level for key and direction.
//
// Bands are ordered by name, or by their most recent modification when key
// is SortLastModified. Albums follow the same rule. Songs are ordered by
// title, or by modification time for SortLastModified. The direction
// applies to every level at once.
func Group(entries []catalog.Entry, key SortKey, ascending bool) Projection {
	bands := make(map[string]*bandAcc)
	var bandOrder []string

	for _, e := range entries {
		band := e.Band
		if band == "" {
			band = catalog.UnknownBand
		}
		album := e.AlbumOrSingle()

		b, ok := bands[band]
		if !ok {
			b = &bandAcc{albums: make(map[string]*albumAcc), latest: e.LastModified}
			bands[band] = b
			bandOrder = append(bandOrder, band)
		}
		a, ok := b.albums[album]
		if !ok {
			a = &albumAcc{latest: e.LastModified}
			b.albums[album] = a
			b.albumOrder = append(b.albumOrder, album)
		}

		a.entries = append(a.entries, e)
		a.latest = max(a.latest, e.LastModified)
		b.latest = max(b.latest, a.latest)
	}

	o := newOrdering(key, ascending)

	slices.SortStableFunc(bandOrder, func(x, y string) int {
		return o.groups(key == SortBand, x, y, bands[x].latest, bands[y].latest)
	})

	out := make(Projection, 0, len(bandOrder))
	for _, band := range bandOrder {
		b := bands[band]

		slices.SortStableFunc(b.albumOrder, func(x, y string) int {
			return o.groups(key == SortAlbum, x, y, b.albums[x].latest, b.albums[y].latest)
		})

		albums := make([]AlbumGroup, 0, len(b.albumOrder))
		for _, album := range b.albumOrder {
			a := b.albums[album]
			songs := slices.Clone(a.entries)
			slices.SortStableFunc(songs, o.songs)
			albums = append(albums, AlbumGroup{
				Album:          album,
				LatestModified: a.latest,
				Entries:        songs,
			})
		}

		out = append(out, BandGroup{
			Band:           band,
			LatestModified: b.latest,
			Albums:         albums,
		})
	}
	return out
}

// ordering holds the comparison rules for one Group call.
type ordering struct {
	key SortKey
	dir int
	cmp *Comparer
}

func newOrdering(key SortKey, ascending bool) ordering {
	dir := 1
	if !ascending {
		dir = -1
	}
	return ordering{key: key, dir: dir, cmp: NewComparer()}
}

// names compares display names, breaking collation ties bytewise so the
// order is total.
func (o ordering) names(x, y string) int {
	if c := o.cmp.Compare(x, y); c != 0 {
		return c
	}
	return strings.Compare(x, y)
}

// groups orders band or album names. byName is true when the sort key is
// this level's own field; by-name is also the fallback for other keys.
func (o ordering) groups(byName bool, x, y string, latestX, latestY int64) int {
	if !byName && o.key == SortLastModified {
		if c := cmp.Compare(latestX, latestY); c != 0 {
			return o.dir * c
		}
	}
	return o.dir * o.names(x, y)
}

func (o ordering) songs(x, y catalog.Entry) int {
	if o.key == SortLastModified {
		if c := cmp.Compare(x.LastModified, y.LastModified); c != 0 {
			return o.dir * c
		}
	}
	if c := o.names(x.Song, y.Song); c != 0 {
		return o.dir * c
	}
	return o.dir * strings.Compare(x.ID, y.ID)
}
