package importer

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/llehouerou/tablib/internal/fsaccess"
	"github.com/llehouerou/tablib/internal/grouping"
)

// Document is a loose document found in a folder, outside the catalog.
type Document struct {
	Name string
	Ref  fsaccess.Ref
}

// ListFolder returns the documents directly inside dir, sorted by name with
// numbers compared by value. It asks for read permission first.
func (im *Importer) ListFolder(ctx context.Context, dir fsaccess.Ref) ([]Document, error) {
	if err := im.authorize(ctx, dir); err != nil {
		return nil, err
	}

	children, err := im.provider.ReadDir(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	var docs []Document
	for _, c := range children {
		if c.Kind != fsaccess.KindFile {
			continue
		}
		if _, ok := im.matchExt(c.Name); ok {
			docs = append(docs, Document{Name: c.Name, Ref: c.Ref})
		}
	}

	cmp := grouping.NewComparer()
	slices.SortStableFunc(docs, func(a, b Document) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return docs, nil
}
