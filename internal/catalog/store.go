package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/llehouerou/tablib/internal/fsaccess"
	"github.com/llehouerou/tablib/internal/state"
)

// Storage keys.
const (
	catalogKey = "catalog/v1"
	folderKey  = "folder/last"
)

// record is the persisted layout of the catalog.
type record struct {
	Items []Entry `json:"items"`
}

// Store holds the catalog in memory and mirrors every change to the
// key-value store before it becomes visible. It is not safe for concurrent
// use; all calls come from one control flow.
type Store struct {
	kv      state.Store
	entries []Entry
	index   map[string]int
	folder  fsaccess.Ref
}

// New returns an empty store backed by kv. Call Load to read saved state.
func New(kv state.Store) *Store {
	return &Store{kv: kv, index: make(map[string]int)}
}

// Load replaces the in-memory catalog with the persisted one and returns a
// snapshot. Missing or unreadable state yields an empty catalog; problems
// are logged, never returned.
func (s *Store) Load(ctx context.Context) []Entry {
	s.replace(s.read(ctx))

	s.folder = ""
	if v, ok, err := s.kv.Get(ctx, folderKey); err != nil {
		slog.Warn("read last folder", "key", folderKey, "err", err)
	} else if ok {
		s.folder = fsaccess.Ref(v)
	}

	return s.Entries()
}

func (s *Store) read(ctx context.Context) []Entry {
	data, ok, err := s.kv.Get(ctx, catalogKey)
	if err != nil {
		slog.Warn("read catalog", "key", catalogKey, "err", err)
		return nil
	}
	if !ok {
		return nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("catalog record is corrupt, starting empty", "key", catalogKey, "err", err)
		return nil
	}

	entries := make([]Entry, 0, len(rec.Items))
	seen := make(map[string]int, len(rec.Items))
	for _, item := range rec.Items {
		e, err := Normalize(item)
		if err != nil {
			slog.Warn("dropping catalog entry", "err", err)
			continue
		}
		if i, dup := seen[e.ID]; dup {
			entries[i] = e
			continue
		}
		seen[e.ID] = len(entries)
		entries = append(entries, e)
	}
	return entries
}

// Entries returns a snapshot of the catalog in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Get returns the entry with id.
func (s *Store) Get(id string) (Entry, bool) {
	i, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// ImportMerge upserts entries by id and persists the merged catalog.
// Existing ids keep their position; new ids are appended. Invalid entries
// are skipped and logged.
func (s *Store) ImportMerge(ctx context.Context, entries []Entry) error {
	next := s.Entries()
	index := make(map[string]int, len(next)+len(entries))
	for i, e := range next {
		index[e.ID] = i
	}

	for _, in := range entries {
		e, err := Normalize(in)
		if err != nil {
			slog.Warn("skipping import entry", "file", in.FileName, "err", err)
			continue
		}
		if i, ok := index[e.ID]; ok {
			next[i] = e
			continue
		}
		index[e.ID] = len(next)
		next = append(next, e)
	}

	return s.persist(ctx, next)
}

// Update applies patch to the entry with id. A missing id is a no-op.
func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	i, ok := s.index[id]
	if !ok || patch.IsEmpty() {
		return nil
	}

	e, err := Normalize(patch.apply(s.entries[i]))
	if err != nil {
		return err
	}

	next := s.Entries()
	next[i] = e
	return s.persist(ctx, next)
}

// Remove deletes the entry with id from the catalog. The document itself is
// untouched. A missing id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	i, ok := s.index[id]
	if !ok {
		return nil
	}

	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	return s.persist(ctx, next)
}

// persist writes next and, only once the write succeeded, makes it the
// in-memory catalog.
func (s *Store) persist(ctx context.Context, next []Entry) error {
	if next == nil {
		next = []Entry{}
	}
	data, err := json.Marshal(record{Items: next})
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.kv.Set(ctx, catalogKey, data); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	s.replace(next)
	return nil
}

func (s *Store) replace(entries []Entry) {
	s.entries = entries
	s.index = make(map[string]int, len(entries))
	for i, e := range entries {
		s.index[e.ID] = i
	}
}
