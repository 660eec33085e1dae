package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/calltape/calltape/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Identifier string
}

// ListEntry is one recording in the list output.
type ListEntry struct {
	Filename   string `json:"filename"`
	Identifier string `json:"identifier"`
	Success    bool   `json:"success"`
	Caller     string `json:"caller,omitempty"`
}

// ListResult holds the list command output.
type ListResult struct {
	Recordings []ListEntry `json:"recordings"`
	Total      int         `json:"total"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings in the recordings directory",
		Long: `List recordings in the recordings directory.

Examples:
  calltape list --dir ./recordings
  calltape list --ident Widget.resize
  calltape list --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Identifier, "ident", "", "filter by function identifier")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open recordings directory", err)
	}

	var filenames []string
	if opts.Identifier != "" {
		filenames, err = st.Find(opts.Identifier)
	} else {
		filenames, err = st.FindAll()
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to enumerate recordings", err)
	}
	// Directory enumeration order is unspecified; sort for stable output.
	sort.Strings(filenames)

	result := ListResult{Recordings: make([]ListEntry, 0, len(filenames)), Total: len(filenames)}
	for _, filename := range filenames {
		rec, err := st.Read(filename)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", filename), err)
		}
		result.Recordings = append(result.Recordings, ListEntry{
			Filename:   filename,
			Identifier: rec.Identifier(),
			Success:    rec.Success,
			Caller:     rec.Metadata.CallerName,
		})
	}

	if opts.Format == "json" {
		return outputJSON(cmd.OutOrStdout(), result)
	}

	w := cmd.OutOrStdout()
	if result.Total == 0 {
		fmt.Fprintln(w, "No recordings found.")
		return nil
	}
	fmt.Fprintf(w, "%d recording(s)\n\n", result.Total)
	for _, e := range result.Recordings {
		status := "ok"
		if !e.Success {
			status = "failed"
		}
		fmt.Fprintf(w, "%-8s %-30s %s\n", status, e.Identifier, e.Filename)
		if opts.Verbose && e.Caller != "" {
			fmt.Fprintf(w, "         caller: %s\n", e.Caller)
		}
	}
	return nil
}
