// Package testgen renders standalone test source files from Invocation
// Records.
//
// A generated test is a self-contained _test.go file: it reconstructs the
// recorded arguments as literals, invokes the target Callable, and checks
// the outcome against the recording it was generated from. The templating
// system is a black box taking a context mapping and a template name;
// generated output is not validated for well-formedness.
package testgen

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/calltape/calltape/internal/record"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// templateName is the test-source template rendered by Generate.
const templateName = "recorded_test.go.tmpl"

// Generator renders test files for recordings of callables defined under one
// target module.
//
// By convention the target package exports each instrumented callable as a
// package-level variable named after the function, so the generated test can
// reference it as target.<FunctionName>.
type Generator struct {
	// Module is the import path of the target module.
	Module string
	// Root is the filesystem directory Module maps to. Source file paths
	// are resolved relative to it.
	Root string
	// RecordingsDir is the recordings directory path embedded in generated
	// tests, relative to where the tests will run.
	RecordingsDir string
}

// New creates a Generator for a target module.
func New(module, root, recordingsDir string) *Generator {
	return &Generator{Module: module, Root: root, RecordingsDir: recordingsDir}
}

// Input carries everything one generated test binds: the recorded call's
// identity and source location, its originally captured arguments, the
// recording filename, and the recorded success flag.
type Input struct {
	ClassName    string
	FunctionName string
	// SourceFile is the path of the file defining the callable.
	SourceFile string
	Args       []record.Value
	Kwargs     record.Object
	// RecordingFilename names the recording the test replays. Its
	// timestamp segment becomes the generated test's unique suffix.
	RecordingFilename string
	Success           bool
}

// Render produces the test source for one recording.
//
// Literal rendering of an unrepresentable argument value fails the whole
// render; no partial output is produced.
func (g *Generator) Render(in Input) ([]byte, error) {
	modulePath, err := g.moduleRef(in.SourceFile)
	if err != nil {
		return nil, fmt.Errorf("render test: %w", err)
	}

	args, err := argsLiteral(in.Args, in.Kwargs)
	if err != nil {
		return nil, fmt.Errorf("render test: render arguments: %w", err)
	}

	call, err := invocation(in.FunctionName, in.Args, in.Kwargs)
	if err != nil {
		return nil, fmt.Errorf("render test: render invocation: %w", err)
	}

	identifier := record.Identifier(in.ClassName, in.FunctionName)
	binding := map[string]any{
		"ModulePath":        modulePath,
		"FuncName":          in.FunctionName,
		"TestName":          strings.ReplaceAll(identifier, ".", "_"),
		"Invocation":        call,
		"ArgsLiteral":       args,
		"RecordingFilename": in.RecordingFilename,
		"RecordingsDir":     filepath.ToSlash(g.RecordingsDir),
		"Success":           in.Success,
		"TestID":            record.TimestampSegment(in.RecordingFilename),
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("render test: parse templates: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, templateName, binding); err != nil {
		return nil, fmt.Errorf("render test: execute %s: %w", templateName, err)
	}
	return buf.Bytes(), nil
}

// Generate renders a test for one recording and writes it to outPath,
// overwriting any existing content. Either the complete file is written or
// generation fails outright.
func (g *Generator) Generate(outPath string, in Input) error {
	data, err := g.Render(in)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write generated test %s: %w", outPath, err)
	}
	return nil
}

// moduleRef computes the import path for the package defining sourceFile:
// the path relative to Root with the file segment dropped, joined onto
// Module with forward slashes.
func (g *Generator) moduleRef(sourceFile string) (string, error) {
	rel, err := filepath.Rel(g.Root, sourceFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("source file %s is outside module root %s", sourceFile, g.Root)
	}
	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		return g.Module, nil
	}
	return g.Module + "/" + dir, nil
}
