package fsaccess

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OS resolves references as absolute paths on the local filesystem.
type OS struct{}

// NewOS returns the local filesystem provider.
func NewOS() OS {
	return OS{}
}

// RefFor converts a path into a reference, making it absolute.
func (OS) RefFor(path string) (Ref, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return Ref(abs), nil
}

// Path returns the filesystem path behind a reference produced by RefFor.
func (OS) Path(ref Ref) string {
	return string(ref)
}

func (OS) RequestPermission(ctx context.Context, ref Ref) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	f, err := os.Open(string(ref))
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return false, nil
		}
		return false, classify(ref, err)
	}
	return true, f.Close()
}

func (OS) ReadDir(ctx context.Context, ref Ref) ([]DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(string(ref))
	if err != nil {
		return nil, classify(ref, err)
	}

	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		kind := KindFile
		if e.IsDir() {
			kind = KindDir
		} else if !e.Type().IsRegular() {
			continue // sockets, devices, symlinks
		}
		out = append(out, DirEntry{
			Name: e.Name(),
			Kind: kind,
			Ref:  Ref(filepath.Join(string(ref), e.Name())),
		})
	}
	return out, nil
}

func (OS) Stat(ctx context.Context, ref Ref) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, err
	}
	info, err := os.Stat(string(ref))
	if err != nil {
		return FileInfo{}, classify(ref, err)
	}
	return FileInfo{
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

func (OS) Read(ctx context.Context, ref Ref) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(string(ref))
	if err != nil {
		return nil, classify(ref, err)
	}
	return data, nil
}

// classify maps filesystem errors onto the package sentinels.
func classify(ref Ref, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", ref, ErrStaleReference)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: %w", ref, ErrPermissionDenied)
	}
	return err
}
