//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		minCount int
	}{
		{"global context", "global", 3},
		{"library context", "library", 10},
		{"dialog context", "dialog", 2},
		{"unknown context returns empty", "unknown", 0},
		{"empty context returns empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)

			assert.GreaterOrEqual(t, len(result), tt.minCount)
			if tt.minCount == 0 {
				assert.Empty(t, result)
			}
			for _, b := range result {
				assert.Equal(t, tt.context, b.Context)
			}
		})
	}
}

func TestNoDuplicateKeysWithinContext(t *testing.T) {
	for _, ctx := range []string{"global", "library", "dialog"} {
		seen := make(map[string]Action)
		for _, b := range ByContext(ctx) {
			for _, k := range b.Keys {
				if prev, dup := seen[k]; dup {
					t.Errorf("key %q in %s bound to both %s and %s", k, ctx, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
}

func TestNoDuplicateKeysAcrossGlobalAndLibrary(t *testing.T) {
	r := ForContexts("global")
	for _, b := range ByContext("library") {
		for _, k := range b.Keys {
			assert.Empty(t, r.Resolve(k), "library key %q shadows a global binding", k)
		}
	}
}

func TestHelp(t *testing.T) {
	bindings := []Binding{
		{ActionPrevious, []string{"left", "h"}, "Previous document", "library"},
		{ActionSearch, []string{"/"}, "Search", "global"},
		{ActionHelp, nil, "Ignored", "global"},
	}

	assert.Equal(t, "← previous document · / search", Help(bindings, " · "))
}
