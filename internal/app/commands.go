package app

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tablib/internal/fsaccess"
	"github.com/llehouerou/tablib/internal/importer"
	"github.com/llehouerou/tablib/internal/navctl"
	"github.com/llehouerou/tablib/internal/notify"
)

// fetchCmd reads the document of req off the UI loop.
func fetchCmd(ctx context.Context, r fsaccess.Reader, req navctl.Request) tea.Cmd {
	return func() tea.Msg {
		return DocumentLoadedMsg(navctl.Fetch(ctx, r, req))
	}
}

// importCmd collects the documents under root.
func importCmd(ctx context.Context, im *importer.Importer, root fsaccess.Ref) tea.Cmd {
	return func() tea.Msg {
		entries, err := im.Collect(ctx, root)
		if err != nil {
			slog.Warn("import failed", "root", root, "error", err)
		} else {
			slog.Info("import collected", "root", root, "count", len(entries))
		}
		return ImportedMsg{Root: root, Entries: entries, Err: err}
	}
}

// listFolderCmd lists the documents directly inside dir.
func listFolderCmd(ctx context.Context, im *importer.Importer, dir fsaccess.Ref, restore bool) tea.Cmd {
	return func() tea.Msg {
		docs, err := im.ListFolder(ctx, dir)
		return FolderListedMsg{Dir: dir, Docs: docs, Err: err, Restore: restore}
	}
}

// readRawCmd reads a document that is not in the library.
func readRawCmd(ctx context.Context, r fsaccess.Reader, seq uint64, doc importer.Document) tea.Cmd {
	return func() tea.Msg {
		data, err := r.Read(ctx, doc.Ref)
		return RawLoadedMsg{Seq: seq, Name: doc.Name, Content: data, Err: err}
	}
}

// notifyCmd shows a desktop notification. Failures are only logged.
func notifyCmd(n notify.Notifier, note notify.Notification) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		if _, err := n.Notify(note); err != nil {
			slog.Debug("desktop notification failed", "error", err)
		}
		return nil
	}
}
