// Package importer builds catalog entries from a folder laid out as
// Band/Album/Song documents, and lists loose documents for quick viewing.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/llehouerou/tablib/internal/catalog"
	"github.com/llehouerou/tablib/internal/fsaccess"
)

// DefaultExtensions are collected when no extensions are configured.
var DefaultExtensions = []string{".pdf"}

// Importer walks folders through a file-access provider.
type Importer struct {
	provider fsaccess.Provider
	exts     []string
}

// New returns an importer collecting files with the given extensions.
// Extensions are matched case-insensitively, with or without a leading dot.
func New(provider fsaccess.Provider, exts []string) *Importer {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	norm := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		norm = append(norm, ext)
	}
	return &Importer{provider: provider, exts: norm}
}

// Collect walks root recursively and returns an entry for every document
// found, in walk order. Read permission on root is requested first; a
// refusal returns fsaccess.ErrPermissionDenied and nothing is walked.
// Unreadable subfolders and files that cannot be inspected are skipped.
func (im *Importer) Collect(ctx context.Context, root fsaccess.Ref) ([]catalog.Entry, error) {
	if err := im.authorize(ctx, root); err != nil {
		return nil, err
	}

	var out []catalog.Entry
	if err := im.walk(ctx, root, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (im *Importer) authorize(ctx context.Context, ref fsaccess.Ref) error {
	granted, err := im.provider.RequestPermission(ctx, ref)
	if err != nil {
		return fmt.Errorf("request permission: %w", err)
	}
	if !granted {
		return fmt.Errorf("%s: %w", ref, fsaccess.ErrPermissionDenied)
	}
	return nil
}

func (im *Importer) walk(ctx context.Context, dir fsaccess.Ref, segments []string, out *[]catalog.Entry, top bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	children, err := im.provider.ReadDir(ctx, dir)
	if err != nil {
		if top || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("read folder: %w", err)
		}
		slog.Warn("skipping unreadable folder", "ref", dir, "error", err)
		return nil
	}

	for _, child := range children {
		path := append(segments[:len(segments):len(segments)], child.Name)
		switch child.Kind {
		case fsaccess.KindDir:
			if err := im.walk(ctx, child.Ref, path, out, false); err != nil {
				return err
			}
		case fsaccess.KindFile:
			if _, ok := im.matchExt(child.Name); !ok {
				continue
			}
			e, err := im.entry(ctx, child, path)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				slog.Warn("skipping file", "ref", child.Ref, "error", err)
				continue
			}
			*out = append(*out, e)
		}
	}
	return nil
}

func (im *Importer) entry(ctx context.Context, child fsaccess.DirEntry, segments []string) (catalog.Entry, error) {
	info, err := im.provider.Stat(ctx, child.Ref)
	if err != nil {
		return catalog.Entry{}, err
	}
	meta := im.ParseSegments(segments)
	modified := info.ModTimeMillis()
	return catalog.Entry{
		ID:           catalog.MakeID(child.Name, modified),
		Band:         meta.Band,
		Album:        meta.Album,
		Song:         meta.Song,
		Ref:          child.Ref,
		FileName:     child.Name,
		FileSize:     info.Size,
		LastModified: modified,
	}, nil
}

// Meta is the catalog metadata derived from a document's path.
type Meta struct {
	Band  string
	Album string
	Song  string
}

// ParseSegments derives metadata from the path of a document relative to
// the imported folder, file name last. With three or more segments the
// last three are band, album and song; with two, band and song; with one,
// only the song is known.
func (im *Importer) ParseSegments(segments []string) Meta {
	switch n := len(segments); {
	case n >= 3:
		return Meta{
			Band:  segments[n-3],
			Album: segments[n-2],
			Song:  im.StripExt(segments[n-1]),
		}
	case n == 2:
		return Meta{Band: segments[0], Song: im.StripExt(segments[1])}
	case n == 1:
		return Meta{Band: catalog.UnknownBand, Song: im.StripExt(segments[0])}
	}
	return Meta{Band: catalog.UnknownBand, Song: catalog.UnknownBand}
}

// StripExt removes a collected extension from name.
func (im *Importer) StripExt(name string) string {
	if ext, ok := im.matchExt(name); ok {
		return name[:len(name)-len(ext)]
	}
	return name
}

func (im *Importer) matchExt(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, ext := range im.exts {
		if strings.HasSuffix(lower, ext) && len(name) > len(ext) {
			return ext, true
		}
	}
	return "", false
}
