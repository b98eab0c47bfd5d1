package cli

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tablib/internal/app"
	"github.com/llehouerou/tablib/internal/mpris"
	"github.com/llehouerou/tablib/internal/notify"
	"github.com/llehouerou/tablib/internal/stderr"
)

func (r *runner) runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := r.env.Config

	capture, err := stderr.Start(func(line string) {
		slog.Warn("stderr", "line", line)
	})
	if err != nil {
		slog.Warn("stderr capture unavailable", "error", err)
	} else {
		defer capture.Stop()
	}

	var notifier notify.Notifier
	if cfg.Notifications {
		if notifier, err = notify.New(); err != nil {
			slog.Warn("desktop notifications unavailable", "error", err)
			notifier = nil
		}
	}

	remote := app.NewRemote()
	m := app.New(ctx, app.Options{
		Catalog:     r.env.Catalog,
		Files:       r.env.Files,
		Extensions:  cfg.Extensions,
		Criteria:    cfg.Criteria(),
		LibraryRoot: cfg.LibraryRoot,
		Remote:      remote,
		Notifier:    notifier,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	remote.Attach(p.Send)

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(remote)
		if err != nil {
			slog.Warn("mpris unavailable", "error", err)
		} else {
			defer adapter.Close()
		}
	}

	slog.Info("starting", "entries", r.env.Catalog.Len())
	_, err = p.Run()
	return err
}
