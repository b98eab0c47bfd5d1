package app

import (
	"github.com/llehouerou/tablib/internal/catalog"
	"github.com/llehouerou/tablib/internal/fsaccess"
	"github.com/llehouerou/tablib/internal/importer"
	"github.com/llehouerou/tablib/internal/navctl"
)

// DocumentLoadedMsg carries a fetched library document.
type DocumentLoadedMsg navctl.Result

// ImportedMsg is sent when a folder import finishes.
type ImportedMsg struct {
	Root    fsaccess.Ref
	Entries []catalog.Entry
	Err     error
}

// FolderListedMsg is sent when a quick-open folder has been listed.
type FolderListedMsg struct {
	Dir  fsaccess.Ref
	Docs []importer.Document
	Err  error
	// Restore is set when listing the remembered folder at startup.
	Restore bool
}

// RawLoadedMsg carries a document opened from the folder pane.
type RawLoadedMsg struct {
	Seq     uint64
	Name    string
	Content []byte
	Err     error
}

// RemoteMsg is a next or previous request from the MPRIS remote.
type RemoteMsg struct {
	Forward bool
}
