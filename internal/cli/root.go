// Package cli is the tablib command line. Without a subcommand it runs the
// terminal UI; subcommands work on the library headlessly.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tablib/internal/app"
	"github.com/llehouerou/tablib/internal/catalog"
	"github.com/llehouerou/tablib/internal/config"
	"github.com/llehouerou/tablib/internal/fsaccess"
	"github.com/llehouerou/tablib/internal/state"
)

// Env is what commands work on.
type Env struct {
	Config  *config.Config
	Catalog *catalog.Store
	Files   app.Files
	Close   func() error // optional
}

// Opener builds the Env for a loaded config.
type Opener func(ctx context.Context, cfg *config.Config) (*Env, error)

// OpenEnv opens the configured storage backend over the local file system.
func OpenEnv(ctx context.Context, cfg *config.Config) (*Env, error) {
	kv, err := state.OpenBackend(ctx, cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	store := catalog.New(kv)
	store.Load(ctx)
	return &Env{Config: cfg, Catalog: store, Files: fsaccess.NewOS(), Close: kv.Close}, nil
}

type runner struct {
	open        Opener
	configFiles []string
	env         *Env
	closers     []func() error
}

// NewRootCmd creates the tablib command with every subcommand registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(OpenEnv)
}

func newRootCmd(open Opener) *cobra.Command {
	r := &runner{open: open}
	root := &cobra.Command{
		Use:   "tablib",
		Short: "Browse and page through a library of tabs and scores",
		Long: `tablib keeps a catalog of tab and score documents grouped by band and
album, and shows them one at a time in the terminal.

Run without a command to open the library browser.`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  r.setup,
		PersistentPostRunE: r.teardown,
		RunE:               r.runTUI,
	}
	root.PersistentFlags().StringArrayVar(&r.configFiles, "config", nil, "extra config file, applied last (repeatable)")

	root.AddCommand(
		newImportCmd(r),
		newListCmd(r),
		newShowCmd(r),
		newUpdateCmd(r),
		newRemoveCmd(r),
		newFolderCmd(r),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(r.configFiles...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	if cmd == cmd.Root() {
		// the terminal belongs to the UI
		if err := r.logToFile(cfg, level); err != nil {
			return err
		}
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	}

	env, err := r.open(cmd.Context(), cfg)
	if err != nil {
		// PersistentPostRunE does not run after a failed setup
		return errors.Join(err, r.teardown(cmd, nil))
	}
	r.env = env
	if env.Close != nil {
		r.closers = append(r.closers, env.Close)
	}
	return nil
}

func (r *runner) teardown(*cobra.Command, []string) error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i]())
	}
	r.closers = nil
	return errors.Join(errs...)
}

func (r *runner) logToFile(cfg *config.Config, level slog.Level) error {
	path, err := cfg.LogPath()
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	r.closers = append(r.closers, f.Close)
	return nil
}
