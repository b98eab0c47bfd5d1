package keymap

import "strings"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "library", "dialog"
}

// All contains every key binding of the library screen.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},
	{ActionSearch, []string{"/"}, "Search", "global"},
	{ActionSwitch, []string{"tab"}, "Library / folder", "global"},

	// Library
	{ActionMoveDown, []string{"j", "down"}, "Move down", "library"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "library"},
	{ActionJumpStart, []string{"g", "home"}, "First song", "library"},
	{ActionJumpEnd, []string{"G", "end"}, "Last song", "library"},
	{ActionOpen, []string{"enter"}, "Open song", "library"},
	{ActionPrevious, []string{"left", "h"}, "Previous document", "library"},
	{ActionNext, []string{"right", "l"}, "Next document", "library"},
	{ActionCycleBand, []string{"b"}, "Cycle band filter", "library"},
	{ActionCycleAlbum, []string{"a"}, "Cycle album filter", "library"},
	{ActionClearFilters, []string{"c"}, "Clear filters", "library"},
	{ActionCycleSort, []string{"s"}, "Cycle sort key", "library"},
	{ActionToggleOrder, []string{"o"}, "Toggle sort direction", "library"},
	{ActionImport, []string{"i"}, "Import folder", "library"},
	{ActionOpenFolder, []string{"f"}, "Quick-open folder", "library"},
	{ActionForgetFolder, []string{"F"}, "Forget last folder", "library"},
	{ActionRemove, []string{"d", "delete"}, "Remove from library", "library"},

	// Dialogs
	{ActionConfirm, []string{"y", "enter"}, "Confirm", "dialog"},
	{ActionCancel, []string{"n", "esc"}, "Cancel", "dialog"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Help formats bindings as "key description" pairs joined by sep, using
// the first key of each binding.
func Help(bindings []Binding, sep string) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		parts = append(parts, displayKey(b.Keys[0])+" "+strings.ToLower(b.Description))
	}
	return strings.Join(parts, sep)
}

func displayKey(k string) string {
	switch k {
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return k
}
