package catalog

import (
	"context"
	"fmt"

	"github.com/llehouerou/tablib/internal/fsaccess"
)

// LastFolder returns the folder last opened for quick browsing.
func (s *Store) LastFolder() (fsaccess.Ref, bool) {
	return s.folder, s.folder != ""
}

// RememberFolder persists ref as the last opened folder.
func (s *Store) RememberFolder(ctx context.Context, ref fsaccess.Ref) error {
	if err := s.kv.Set(ctx, folderKey, []byte(ref)); err != nil {
		return fmt.Errorf("save last folder: %w", err)
	}
	s.folder = ref
	return nil
}

// ForgetFolder clears the last opened folder.
func (s *Store) ForgetFolder(ctx context.Context) error {
	if err := s.kv.Delete(ctx, folderKey); err != nil {
		return fmt.Errorf("forget last folder: %w", err)
	}
	s.folder = ""
	return nil
}
