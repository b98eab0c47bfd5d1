package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	ctx := context.Background()

	s, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "catalog/v1", []byte(`{"items":[]}`)))
	require.NoError(t, s.Set(ctx, "folder/last", []byte("/tabs")))
	require.NoError(t, s.Delete(ctx, "folder/last"))
	require.NoError(t, s.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)

	v, ok, err := reopened.Get(ctx, "catalog/v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"items":[]}`, string(v))

	_, ok, err = reopened.Get(ctx, "folder/last")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should not linger")
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CorruptFileMovedAside(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := OpenFile(path)
	require.NoError(t, err)

	_, ok, err := s.Get(context.Background(), "catalog/v1")
	require.NoError(t, err)
	assert.False(t, ok, "a corrupt file opens empty")

	kept, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(kept))

	require.NoError(t, s.Set(context.Background(), "folder/last", []byte("/tabs")))
	require.NoError(t, s.Close())

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(context.Background(), "folder/last")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/tabs", string(v))
}

func TestFileStore_Closed(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Set(context.Background(), "k", nil), ErrClosed)
}
