package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calltape/calltape/internal/store"
	"github.com/calltape/calltape/internal/testgen"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	Out        string
	Module     string
	ModuleRoot string
	Source     string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate <recording-filename>",
		Short: "Render a standalone test file from one recording",
		Long: `Render a standalone test source file from one recording.

The recording supplies the function identity, arguments, and success flag;
--source names the file defining the recorded callable so the generated test
can import its package.

Example:
  calltape generate record_Add_20240102150405123456.json \
    --out recorded_add_test.go \
    --module github.com/example/calc --module-root . \
    --source calc/add.go`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "path of the test file to write (required)")
	_ = cmd.MarkFlagRequired("out")
	cmd.Flags().StringVar(&opts.Source, "source", "", "source file defining the recorded callable (required)")
	_ = cmd.MarkFlagRequired("source")
	cmd.Flags().StringVar(&opts.Module, "module", "", "import path of the module under test (default from config)")
	cmd.Flags().StringVar(&opts.ModuleRoot, "module-root", "", "directory the module path maps to (default from config)")

	return cmd
}

func runGenerate(opts *GenerateOptions, filename string, cmd *cobra.Command) error {
	module := opts.Module
	if module == "" {
		module = opts.Config.Module
	}
	moduleRoot := opts.ModuleRoot
	if moduleRoot == "" {
		moduleRoot = opts.Config.ModuleRoot
	}
	if module == "" || moduleRoot == "" {
		return NewExitError(ExitCommandError, "--module and --module-root are required (flags or config)")
	}

	st, err := store.Open(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open recordings directory", err)
	}

	rec, err := st.Read(filename)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", filename), err)
	}

	gen := testgen.New(module, moduleRoot, opts.Dir)
	in := testgen.Input{
		ClassName:         rec.ClassName,
		FunctionName:      rec.FunctionName,
		SourceFile:        opts.Source,
		Args:              rec.Arguments.Args,
		Kwargs:            rec.Arguments.Kwargs,
		RecordingFilename: filename,
		Success:           rec.Success,
	}
	if err := gen.Generate(opts.Out, in); err != nil {
		return WrapExitError(ExitCommandError, "failed to generate test", err)
	}

	if opts.Format == "json" {
		return outputJSON(cmd.OutOrStdout(), map[string]string{
			"recording": filename,
			"out":       opts.Out,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %s from %s\n", opts.Out, filename)
	return nil
}
