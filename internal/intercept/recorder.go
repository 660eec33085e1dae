package intercept

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calltape/calltape/internal/record"
	"github.com/calltape/calltape/internal/store"
)

// Recorder wraps a Callable and persists one Invocation Record per call.
//
// It is itself a Callable with the same observable call semantics as the
// wrapped one: the value and error it returns are the wrapped call's, and a
// failing call's error propagates with its message intact. The recording is
// a side effect - one file write per invocation, always performed before the
// outcome reaches the caller.
type Recorder struct {
	callable     Callable
	store        *store.Store
	className    string
	functionName string
	caller       CallerInfo
	now          func() time.Time
	newID        func() string
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the timestamp source used for record filenames.
// Tests use this to make filenames deterministic.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithIDGenerator overrides the record UUID source.
func WithIDGenerator(newID func() string) Option {
	return func(r *Recorder) { r.newID = newID }
}

// NewRecorder wraps a callable for recording.
//
// className is empty for free functions; for bound methods it names the
// class the callee is bound to. caller describes the instrumented call site
// and is captured once at construction because the instrumentation point has
// static knowledge of its own context.
func NewRecorder(c Callable, st *store.Store, className, functionName string, caller CallerInfo, opts ...Option) *Recorder {
	r := &Recorder{
		callable:     c,
		store:        st,
		className:    className,
		functionName: functionName,
		caller:       caller,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Identifier returns the wrapped function's identifier,
// "ClassName.FunctionName" or bare "FunctionName".
func (r *Recorder) Identifier() string {
	return record.Identifier(r.className, r.functionName)
}

// Invoke calls the wrapped callable, persists an Invocation Record, and
// forwards the call's outcome.
//
// On success the record carries the returned value; on failure it carries
// the stringified error and the error is returned after the record write.
// A persistence failure never silently masks the call's own error: the two
// are joined so the caller observes both. On a successful call with a failed
// write, the value is still returned alongside the write error.
func (r *Recorder) Invoke(ctx context.Context, args Args) (record.Value, error) {
	result, callErr := r.callable.Invoke(ctx, args)

	rec := &record.Record{
		Metadata: record.Metadata{
			RecordID:     r.newID(),
			CallerFile:   r.caller.File,
			CallerName:   r.caller.Function,
			CallerModule: r.caller.Module,
		},
		ClassName:    r.className,
		FunctionName: r.functionName,
		Arguments:    args.Arguments(),
	}
	if callErr != nil {
		rec.Success = false
		rec.Result = record.String(callErr.Error())
	} else {
		rec.Success = true
		if result == nil {
			rec.Result = record.Null{}
		} else {
			rec.Result = result
		}
	}

	filename := record.Filename(r.Identifier(), r.now())
	if writeErr := r.store.Write(rec, filename); writeErr != nil {
		writeErr = fmt.Errorf("persist recording %s: %w", filename, writeErr)
		if callErr != nil {
			return nil, errors.Join(writeErr, callErr)
		}
		return result, writeErr
	}

	return result, callErr
}
