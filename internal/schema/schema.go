// Package schema validates recording files against a CUE schema.
//
// The schema (record.cue, embedded) describes the recording file shape.
// Validation is structural: a file that unifies with #Record is a recording
// the rest of the system can read.
package schema

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed record.cue
var recordCUE string

// Validator checks recording documents against the embedded schema.
// Compile the schema once, validate many files.
type Validator struct {
	ctx    *cue.Context
	record cue.Value
}

// NewValidator compiles the embedded recording schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(recordCUE, cue.Filename("record.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	recordDef := schema.LookupPath(cue.ParsePath("#Record"))
	if err := recordDef.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	return &Validator{ctx: ctx, record: recordDef}, nil
}

// Validate checks one recording document. name labels error positions,
// typically the recording filename. JSON is a subset of CUE, so the document
// compiles directly.
func (v *Validator) Validate(data []byte, name string) error {
	doc := v.ctx.CompileBytes(data, cue.Filename(name))
	if err := doc.Err(); err != nil {
		return formatCUEError(err)
	}

	unified := v.record.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// ValidateFile reads and validates a recording file on disk.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read recording: %w", err)
	}
	return v.Validate(data, path)
}

// ValidationError carries a schema violation with source position.
type ValidationError struct {
	Message string
	Pos     token.Pos
}

func (e *ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &ValidationError{
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
