// Package replay re-executes stored calls against a live Callable and
// compares outcomes to detect behavioral drift.
//
// Replay only reads the store. One bad record never blocks the rest: every
// matching recording produces exactly one Outcome, pass or fail.
package replay

import (
	"context"
	"fmt"

	"github.com/calltape/calltape/internal/intercept"
	"github.com/calltape/calltape/internal/record"
	"github.com/calltape/calltape/internal/store"
)

// Outcome is the replay verdict for a single recording.
type Outcome struct {
	Filename string `json:"filename"`
	Passed   bool   `json:"passed"`
	Err      string `json:"error,omitempty"`
}

// Replayer regression-checks a Callable against all of its recorded
// behavior.
type Replayer struct {
	store      *store.Store
	callable   intercept.Callable
	identifier string
}

// New creates a Replayer for a callable. className and functionName resolve
// the identifier exactly as the Recorder does: empty className for free
// functions.
func New(st *store.Store, c intercept.Callable, className, functionName string) *Replayer {
	return &Replayer{
		store:      st,
		callable:   c,
		identifier: record.Identifier(className, functionName),
	}
}

// Identifier returns the function identifier being replayed.
func (r *Replayer) Identifier() string {
	return r.identifier
}

// Run replays every stored recording of the identifier and returns one
// outcome per matching file, in store enumeration order.
//
// A recording passes iff it captured a success AND the freshly computed
// result equals the stored result under canonical value comparison. A
// recording that captured a failure can never pass: even a live error with a
// matching message counts as a fail.
//
// Zero matching recordings is a *NoRecordingsError, not an empty slice.
func (r *Replayer) Run(ctx context.Context) ([]Outcome, error) {
	filenames, err := r.store.Find(r.identifier)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", r.identifier, err)
	}
	if len(filenames) == 0 {
		return nil, &NoRecordingsError{Identifier: r.identifier}
	}

	outcomes := make([]Outcome, 0, len(filenames))
	for _, filename := range filenames {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("replay %s: %w", r.identifier, err)
		}
		outcomes = append(outcomes, r.replayOne(ctx, filename))
	}
	return outcomes, nil
}

// replayOne evaluates a single recording. Never returns an error: any
// problem with this recording becomes a failed outcome so the remaining
// recordings are still evaluated.
func (r *Replayer) replayOne(ctx context.Context, filename string) Outcome {
	rec, err := r.store.Read(filename)
	if err != nil {
		return Outcome{Filename: filename, Err: fmt.Sprintf("unreadable recording: %v", err)}
	}

	result, err := r.callable.Invoke(ctx, intercept.ArgsFromRecord(rec.Arguments))
	if err != nil {
		return Outcome{Filename: filename, Err: err.Error()}
	}

	if !rec.Success {
		// The recording captured a failure; a live call that now succeeds
		// (or fails differently) is drift either way under this policy.
		return Outcome{
			Filename: filename,
			Err:      fmt.Sprintf("recording captured a failure (%s); replay succeeded", stringify(rec.Result)),
		}
	}

	if result == nil {
		result = record.Null{}
	}
	equal, err := record.Equal(result, rec.Result)
	if err != nil {
		return Outcome{Filename: filename, Err: fmt.Sprintf("compare results: %v", err)}
	}
	if !equal {
		return Outcome{
			Filename: filename,
			Err:      fmt.Sprintf("result drifted: got %s, recorded %s", stringify(result), stringify(rec.Result)),
		}
	}

	return Outcome{Filename: filename, Passed: true}
}

// stringify renders a value for failure messages.
func stringify(v record.Value) string {
	data, err := record.MarshalCanonical(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
