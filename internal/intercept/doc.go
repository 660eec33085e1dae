// Package intercept implements the Recording Interceptor: a transparent
// wrapper around a Callable that persists one Invocation Record per call and
// forwards the call's outcome unchanged.
//
// The Callable contract (Invoke(ctx, Args) (Value, error)) is the explicit
// adapter both recording and replay build on; concrete functions are lifted
// into it at the instrumentation point, which also supplies caller context
// statically instead of walking the runtime stack.
package intercept
