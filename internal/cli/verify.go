package cli

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/calltape/calltape/internal/schema"
	"github.com/calltape/calltape/internal/store"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
}

// VerifyEntry is the validation result for one recording file.
type VerifyEntry struct {
	Filename string `json:"filename"`
	Valid    bool   `json:"valid"`
	Err      string `json:"error,omitempty"`
}

// VerifyResult holds the overall verify result.
type VerifyResult struct {
	Files    []VerifyEntry `json:"files"`
	Total    int           `json:"total"`
	Invalid  int           `json:"invalid"`
	AllValid bool          `json:"all_valid"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Validate every recording against the recording schema",
		Long: `Validate every recording in the recordings directory against the
embedded CUE schema.

Exit codes:
  0 - All recordings are valid
  1 - One or more recordings failed validation
  2 - Command error (directory not found, etc.)

Examples:
  calltape verify --dir ./recordings
  calltape verify --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open recordings directory", err)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compile recording schema", err)
	}

	filenames, err := st.FindAll()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to enumerate recordings", err)
	}
	sort.Strings(filenames)

	result := VerifyResult{Files: make([]VerifyEntry, 0, len(filenames)), Total: len(filenames), AllValid: true}
	for _, filename := range filenames {
		entry := VerifyEntry{Filename: filename, Valid: true}
		if err := validator.ValidateFile(filepath.Join(st.Dir(), filename)); err != nil {
			entry.Valid = false
			entry.Err = err.Error()
			result.Invalid++
			result.AllValid = false
		}
		result.Files = append(result.Files, entry)
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		if !result.AllValid {
			if err := outputJSONError(w, "E_VERIFY", "schema validation failed", result); err != nil {
				return err
			}
			return NewExitError(ExitFailure, "schema validation failed")
		}
		return outputJSON(w, result)
	}

	fmt.Fprintf(w, "Verified %d recording(s)\n", result.Total)
	for _, entry := range result.Files {
		if entry.Valid {
			if opts.Verbose {
				fmt.Fprintf(w, "  ok      %s\n", entry.Filename)
			}
			continue
		}
		fmt.Fprintf(w, "  invalid %s\n    %s\n", entry.Filename, entry.Err)
	}

	if !result.AllValid {
		fmt.Fprintf(w, "%d recording(s) failed validation\n", result.Invalid)
		return NewExitError(ExitFailure, "schema validation failed")
	}
	fmt.Fprintln(w, "All recordings valid.")
	return nil
}
