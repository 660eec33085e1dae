package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/calltape/calltape/internal/store"
)

// IndexOptions holds flags for the index command.
type IndexOptions struct {
	*RootOptions
	IndexPath  string
	Identifier string
}

// IndexResult holds the index command output.
type IndexResult struct {
	IndexPath  string        `json:"index_path"`
	Stats      store.Stats   `json:"stats"`
	Recordings []store.Entry `json:"recordings,omitempty"`
}

// NewIndexCommand creates the index command.
func NewIndexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IndexOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the SQLite catalog over the recordings directory",
		Long: `Rebuild the SQLite catalog over the recordings directory and print
aggregate stats.

The recordings directory stays the source of truth; the catalog is derived
and can be rebuilt at any time.

Examples:
  calltape index --dir ./recordings
  calltape index --index-path ./recordings/index.db --ident Widget.resize`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.IndexPath, "index-path", "", "catalog database path (default <dir>/index.db)")
	cmd.Flags().StringVar(&opts.Identifier, "ident", "", "also list cataloged recordings for this identifier")

	return cmd
}

func runIndex(opts *IndexOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open recordings directory", err)
	}

	path := opts.IndexPath
	if path == "" {
		path = opts.Config.IndexPath
	}
	if path == "" {
		path = filepath.Join(opts.Dir, "index.db")
	}

	ix, err := store.OpenIndex(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open catalog", err)
	}
	defer ix.Close()

	ctx := cmd.Context()
	if err := ix.Rebuild(ctx, st); err != nil {
		return WrapExitError(ExitCommandError, "failed to rebuild catalog", err)
	}

	stats, err := ix.Stats(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read catalog stats", err)
	}

	result := IndexResult{IndexPath: path, Stats: stats}
	if opts.Identifier != "" {
		entries, err := ix.List(ctx, opts.Identifier)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list cataloged recordings", err)
		}
		result.Recordings = entries
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		return outputJSON(w, result)
	}

	fmt.Fprintf(w, "Catalog rebuilt at %s\n", path)
	fmt.Fprintf(w, "  Recordings:  %d (%d ok, %d failed)\n", stats.Total, stats.Succeeded, stats.Failed)
	fmt.Fprintf(w, "  Identifiers: %d\n", stats.Identifiers)
	for _, e := range result.Recordings {
		status := "ok"
		if !e.Success {
			status = "failed"
		}
		fmt.Fprintf(w, "  %-8s %s  %s\n", status, e.RecordedAt, e.Filename)
	}
	return nil
}
