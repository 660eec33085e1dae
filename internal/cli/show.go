package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calltape/calltape/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <filename>",
		Short: "Print one recording",
		Long: `Print one recording.

Example:
  calltape show record_Widget.resize_20240102150405123456.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *ShowOptions, filename string, cmd *cobra.Command) error {
	st, err := store.Open(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open recordings directory", err)
	}

	rec, err := st.Read(filename)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", filename), err)
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		return outputJSON(w, rec)
	}

	fmt.Fprintf(w, "Recording: %s\n", filename)
	fmt.Fprintf(w, "  Identifier: %s\n", rec.Identifier())
	fmt.Fprintf(w, "  Success:    %v\n", rec.Success)
	fmt.Fprintf(w, "  Caller:     %s (%s)\n", rec.Metadata.CallerName, rec.Metadata.CallerFile)
	if rec.Metadata.CallerModule != "" {
		fmt.Fprintf(w, "  Module:     %s\n", rec.Metadata.CallerModule)
	}

	body, err := json.MarshalIndent(rec, "  ", "  ")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to render record", err)
	}
	fmt.Fprintf(w, "  Record:\n  %s\n", body)
	return nil
}
