// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionHelp   Action = "help"
	ActionSearch Action = "search"
	ActionSwitch Action = "switch_pane"

	// Library list
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionOpen      Action = "open"

	// Document navigation
	ActionPrevious Action = "previous"
	ActionNext     Action = "next"

	// Filters and ordering
	ActionCycleBand    Action = "cycle_band"
	ActionCycleAlbum   Action = "cycle_album"
	ActionClearFilters Action = "clear_filters"
	ActionCycleSort    Action = "cycle_sort"
	ActionToggleOrder  Action = "toggle_order"

	// Catalog maintenance
	ActionImport       Action = "import"
	ActionOpenFolder   Action = "open_folder"
	ActionForgetFolder Action = "forget_folder"
	ActionRemove       Action = "remove"

	// Prompts and dialogs
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)
