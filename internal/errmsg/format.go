// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogLoad Op = "load catalog"
	OpEntryUpdate Op = "update entry"
	OpEntryRemove Op = "remove entry"

	// Import operations
	OpImportFolder Op = "import folder"
	OpReadAccess   Op = "get read access"

	// Viewer operations
	OpDocumentOpen Op = "open document"
	OpFolderOpen   Op = "open folder"
	OpFolderForget Op = "forget folder"

	// Initialization
	OpInitialize Op = "initialize application"
)

// StaleDocument is shown when a catalogued document can no longer be read.
const StaleDocument = "Cannot open document. It may have been moved. Re-import to relink."

// PermissionDenied is shown when the user refuses read access to a folder.
const PermissionDenied = "Read access was not granted. Nothing was imported."

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
