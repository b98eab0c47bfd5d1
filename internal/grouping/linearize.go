package grouping

import "github.com/llehouerou/tablib/internal/catalog"

// Linearize flattens the projection in the order it is read top to bottom:
// band by band, album by album, song by song.
func Linearize(p Projection) []catalog.Entry {
	seq := make([]catalog.Entry, 0, p.Len())
	for _, b := range p {
		for _, a := range b.Albums {
			seq = append(seq, a.Entries...)
		}
	}
	return seq
}

// IndexOf returns the position of the entry with id in seq, or -1.
func IndexOf(seq []catalog.Entry, id string) int {
	if id == "" {
		return -1
	}
	for i, e := range seq {
		if e.ID == id {
			return i
		}
	}
	return -1
}
