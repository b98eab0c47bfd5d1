package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tablib/internal/catalog"
	"github.com/llehouerou/tablib/internal/config"
	"github.com/llehouerou/tablib/internal/grouping"
	"github.com/llehouerou/tablib/internal/importer"
	"github.com/llehouerou/tablib/internal/navctl"
	"github.com/llehouerou/tablib/internal/ui/render"
	"github.com/llehouerou/tablib/internal/viewer"
)

func newImportCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Add every document under a folder to the library",
		Long: `Import walks a folder recursively and adds every document with a
configured extension. Band, album and song come from the last folders of
each path: Band/Album/Song.pdf, Band/Song.pdf or Song.pdf.

Importing the same folder twice changes nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env := r.env
			root, err := env.Files.RefFor(config.ExpandPath(args[0]))
			if err != nil {
				return err
			}

			im := importer.New(env.Files, env.Config.Extensions)
			entries, err := im.Collect(ctx, root)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			if err := env.Catalog.ImportMerge(ctx, entries); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d documents, %d in library\n", len(entries), env.Catalog.Len())
			return nil
		},
	}
}

type listFlags struct {
	band, album, query string
	sort               string
	desc               bool
}

func newListCmd(r *runner) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the library in reading order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crit := r.env.Config.Criteria()
			crit.Filters = grouping.Filters{Band: f.band, Album: f.album, Query: f.query}
			if cmd.Flags().Changed("sort") {
				key, err := grouping.ParseSortKey(f.sort)
				if err != nil {
					return err
				}
				crit.Key = key
			}
			if cmd.Flags().Changed("desc") {
				crit.Ascending = !f.desc
			}

			seq := grouping.Linearize(grouping.Build(r.env.Catalog.Entries(), crit))
			printEntries(cmd.OutOrStdout(), seq)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.band, "band", "", "only this band")
	cmd.Flags().StringVar(&f.album, "album", "", "only this album")
	cmd.Flags().StringVar(&f.query, "query", "", "case-insensitive text search")
	cmd.Flags().StringVar(&f.sort, "sort", "", "band, album, song or lastModified (default from config)")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "descending order")
	return cmd
}

// printEntries writes one aligned row per entry. Widths are measured in
// terminal cells so wide band names keep the columns straight.
func printEntries(w io.Writer, seq []catalog.Entry) {
	if len(seq) == 0 {
		fmt.Fprintln(w, "No documents.")
		return
	}
	header := []string{"BAND", "ALBUM", "SONG", "ID"}
	rows := make([][]string, 0, len(seq))
	for _, e := range seq {
		rows = append(rows, []string{e.Band, e.AlbumOrSingle(), e.Song, e.ID})
	}

	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(render.Sanitize(cell)))
		}
	}
	for _, row := range append([][]string{header}, rows...) {
		cells := make([]string, len(row))
		for i, cell := range row {
			cell = render.Sanitize(cell)
			if i < len(row)-1 {
				cell = runewidth.FillRight(cell, widths[i])
			}
			cells[i] = cell
		}
		fmt.Fprintln(w, strings.Join(cells, "  "))
	}
}

func newShowCmd(r *runner) *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Open a document and describe it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := r.lookup(args[0])
			if err != nil {
				return err
			}

			surface := viewer.New(render.DefaultTabWidth)
			nav := navctl.New(surface)
			if nav.OpenAndWait(cmd.Context(), r.env.Files, e) == navctl.Failed {
				return errors.New(nav.Notice())
			}

			seq := grouping.Linearize(grouping.Build(r.env.Catalog.Entries(), r.env.Config.Criteria()))
			pos := nav.Position(seq)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, e.Label())
			fmt.Fprintln(out, surface.Summary())
			fmt.Fprintf(out, "%d of %d\n", pos.Index+1, len(seq))
			if e.Notes != "" {
				fmt.Fprintln(out, "Notes:", e.Notes)
			}
			if text && surface.Document().Kind == viewer.KindText {
				fmt.Fprintln(out)
				fmt.Fprintln(out, strings.Join(surface.Document().Lines, "\n"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print the content of text documents")
	return cmd
}

func newUpdateCmd(r *runner) *cobra.Command {
	var band, album, song, notes string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the band, album, song or notes of an entry",
		Long: `Update replaces the given fields of an entry. An empty --album moves the
song out of its album; an empty --band files it under Unknown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := r.lookup(args[0]); err != nil {
				return err
			}

			var patch catalog.Patch
			flags := cmd.Flags()
			if flags.Changed("band") {
				patch.Band = &band
			}
			if flags.Changed("album") {
				patch.Album = &album
			}
			if flags.Changed("song") {
				patch.Song = &song
			}
			if flags.Changed("notes") {
				patch.Notes = &notes
			}
			if patch.IsEmpty() {
				return errors.New("nothing to update: give at least one of --band, --album, --song or --notes")
			}

			if err := r.env.Catalog.Update(cmd.Context(), args[0], patch); err != nil {
				return err
			}
			e, _ := r.env.Catalog.Get(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), "Updated", e.Label())
			return nil
		},
	}
	cmd.Flags().StringVar(&band, "band", "", "band name")
	cmd.Flags().StringVar(&album, "album", "", "album name, empty for none")
	cmd.Flags().StringVar(&song, "song", "", "song title")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func newRemoveCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an entry from the library; the file is kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := r.lookup(args[0])
			if err != nil {
				return err
			}
			if err := r.env.Catalog.Remove(cmd.Context(), e.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed", e.Label())
			return nil
		},
	}
}

func newFolderCmd(r *runner) *cobra.Command {
	var forget bool
	cmd := &cobra.Command{
		Use:   "folder [dir]",
		Short: "Show, set or forget the quick-open folder",
		Long: `Folder lists the documents of the quick-open folder, numbers sorted by
value. Giving a folder remembers it; --forget clears it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env := r.env
			out := cmd.OutOrStdout()

			if forget {
				if err := env.Catalog.ForgetFolder(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "Folder forgotten")
				return nil
			}

			dir, ok := env.Catalog.LastFolder()
			if len(args) == 1 {
				ref, err := env.Files.RefFor(config.ExpandPath(args[0]))
				if err != nil {
					return err
				}
				dir, ok = ref, true
			}
			if !ok {
				fmt.Fprintln(out, "No folder remembered.")
				return nil
			}

			im := importer.New(env.Files, env.Config.Extensions)
			docs, err := im.ListFolder(ctx, dir)
			if err != nil {
				return fmt.Errorf("open folder %s: %w", env.Files.Path(dir), err)
			}
			if len(args) == 1 {
				if err := env.Catalog.RememberFolder(ctx, dir); err != nil {
					return err
				}
			}

			fmt.Fprintln(out, env.Files.Path(dir))
			for _, d := range docs {
				fmt.Fprintln(out, "  "+d.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&forget, "forget", false, "forget the remembered folder")
	return cmd
}

func (r *runner) lookup(id string) (catalog.Entry, error) {
	e, ok := r.env.Catalog.Get(id)
	if !ok {
		return catalog.Entry{}, fmt.Errorf("no entry with id %q", id)
	}
	return e, nil
}
