// Package cli implements the calltape command line interface: inspection,
// validation, indexing, and test generation over a recordings directory.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Dir        string // recordings directory
	ConfigPath string

	// Config holds file-level defaults, loaded before any command runs.
	// Subcommands consult it for values their flags leave unset.
	Config Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the calltape CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "calltape",
		Short: "calltape - record, replay, and regenerate function calls as tests",
		Long: `calltape inspects a directory of invocation recordings, validates them
against the recording schema, catalogs them, and renders standalone test
source files from them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			cfg, err := LoadConfig(opts.ConfigPath)
			if err != nil {
				return err
			}
			applyConfig(opts, cmd, cfg)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", "recordings", "recordings directory")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default calltape.yaml if present)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewVerifyCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewIndexCommand(opts))

	return cmd
}

// applyConfig fills in options the user did not set on the command line.
func applyConfig(opts *RootOptions, cmd *cobra.Command, cfg Config) {
	opts.Config = cfg
	if cfg.RecordingsDir != "" && !cmd.PersistentFlags().Changed("dir") {
		opts.Dir = cfg.RecordingsDir
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
