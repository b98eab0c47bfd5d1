// Package catalog owns the persisted set of library entries.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/llehouerou/tablib/internal/fsaccess"
)

const (
	// UnknownBand is used when no band can be derived for an entry.
	UnknownBand = "Unknown"
	// SingleAlbum is the album shown for entries without one.
	SingleAlbum = "Single"
)

// ErrInvalidEntry is returned for entries that cannot be normalized.
var ErrInvalidEntry = errors.New("invalid catalog entry")

// Entry is one document in the library.
type Entry struct {
	ID           string       `json:"id"`
	Band         string       `json:"band"`
	Album        string       `json:"album,omitempty"` // empty means no album
	Song         string       `json:"song"`
	Notes        string       `json:"notes,omitempty"`
	Ref          fsaccess.Ref `json:"ref"`
	FileName     string       `json:"fileName"`
	FileSize     int64        `json:"fileSize"`
	LastModified int64        `json:"lastModified"` // epoch milliseconds
}

// MakeID derives the id of a file from its name and modification time.
// Re-importing an unchanged file yields the same id.
func MakeID(fileName string, lastModified int64) string {
	return fmt.Sprintf("%s:%d", fileName, lastModified)
}

// HasAlbum reports whether the entry belongs to a named album.
func (e Entry) HasAlbum() bool {
	return e.Album != ""
}

// AlbumOrSingle returns the album used for grouping and display.
func (e Entry) AlbumOrSingle() string {
	if e.Album == "" {
		return SingleAlbum
	}
	return e.Album
}

// Label is the "Band — Album — Song" caption shown for the entry.
func (e Entry) Label() string {
	return e.Band + " — " + e.AlbumOrSingle() + " — " + e.Song
}

// Normalize fills the required fields. Band defaults to UnknownBand and
// Song to the file name without its extension.
func Normalize(e Entry) (Entry, error) {
	if e.ID == "" {
		return e, fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if strings.TrimSpace(e.Band) == "" {
		e.Band = UnknownBand
	}
	if strings.TrimSpace(e.Song) == "" {
		e.Song = strings.TrimSuffix(e.FileName, filepath.Ext(e.FileName))
	}
	if strings.TrimSpace(e.Song) == "" {
		return e, fmt.Errorf("%w: %s has no title", ErrInvalidEntry, e.ID)
	}
	return e, nil
}

// Patch names the fields an update replaces. Nil fields are left alone;
// a non-nil empty Album clears the album.
type Patch struct {
	Band  *string
	Album *string
	Song  *string
	Notes *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Band == nil && p.Album == nil && p.Song == nil && p.Notes == nil
}

func (p Patch) apply(e Entry) Entry {
	if p.Band != nil {
		e.Band = *p.Band
	}
	if p.Album != nil {
		e.Album = *p.Album
	}
	if p.Song != nil {
		e.Song = *p.Song
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	return e
}
