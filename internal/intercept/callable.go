package intercept

import (
	"context"

	"github.com/calltape/calltape/internal/record"
)

// Args carries one call's inputs: ordered positional values and a keyword
// mapping. Either part may be empty.
type Args struct {
	Positional []record.Value
	Keyword    record.Object
}

// Arguments converts Args to the record form.
func (a Args) Arguments() record.Arguments {
	return record.Arguments{Args: a.Positional, Kwargs: a.Keyword}
}

// ArgsFromRecord converts stored arguments back to invocation form.
func ArgsFromRecord(args record.Arguments) Args {
	return Args{Positional: args.Args, Keyword: args.Kwargs}
}

// Callable is the capability both recording and replay wrap: invoke with
// arguments, get a value or an error. Implementations adapt concrete
// functions or methods into this contract at the instrumentation point.
type Callable interface {
	Invoke(ctx context.Context, args Args) (record.Value, error)
}

// Func adapts a plain function into a Callable.
type Func func(ctx context.Context, args Args) (record.Value, error)

// Invoke implements Callable.
func (f Func) Invoke(ctx context.Context, args Args) (record.Value, error) {
	return f(ctx, args)
}

// CallerInfo identifies the call site that reaches a recorded function:
// source file, enclosing function or method name, and logical module name.
// Module may be empty when unknown.
//
// The instrumentation point supplies this statically rather than the
// recorder walking the runtime stack, so behavior stays deterministic.
type CallerInfo struct {
	File     string
	Function string
	Module   string
}
