// ◄◄◄ errors.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

import "fmt"

// ErrKind categorizes why Process failed. See spec §4.8 / §7.
type ErrKind int

const (
	// ErrConfig covers invalid dimensions, a missing output profile, or an
	// internal strategy-selection mistake.
	ErrConfig ErrKind = iota
	// ErrResource covers any allocation that would exceed the context's
	// max-malloc cap, or that the allocator otherwise refused.
	ErrResource
	// ErrInternal covers bugs: reprocessing a used Context, an unhandled
	// strategy case. The Context must be discarded, not reused, after one
	// of these.
	ErrInternal
)

func (k ErrKind) String() string {
	switch k {
	case ErrConfig:
		return "config"
	case ErrResource:
		return "resource"
	case ErrInternal:
		return "internal"
	}
	return "unknown"
}

// Error is the error type returned by Context.Process. The first error set
// on a Context wins; later calls to setError are ignored (spec §7
// "Propagation policy").
type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Kind == ErrInternal {
		return "internal error: " + e.Msg
	}
	return e.Msg
}

func newError(kind ErrKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// setError records ctx's first error. Subsequent calls are no-ops, matching
// imagew-api.c's iw_set_error one-error-wins policy.
func (ctx *Context) setError(kind ErrKind, format string, args ...interface{}) {
	if ctx.err != nil {
		return
	}
	ctx.err = newError(kind, format, args...)
}

func (ctx *Context) hasError() bool {
	return ctx.err != nil
}

// warnf records a non-fatal policy conflict (spec §7 "Warnings"). It is
// delivered to the installed warning callback, if any, and is never fatal.
func (ctx *Context) warnf(format string, args ...interface{}) {
	if ctx.warningCB == nil {
		return
	}
	ctx.warningCB(fmt.Sprintf(format, args...))
}

// progressf reports a non-fatal progress message, mirroring fpresize's
// fp.progressMsgf. A no-op unless a progress callback was installed.
func (ctx *Context) progressf(format string, args ...interface{}) {
	if ctx.progressCB == nil {
		return
	}
	ctx.progressCB(fmt.Sprintf(format, args...))
}
