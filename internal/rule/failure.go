package rule

import (
	"fmt"

	"github.com/pkg/errors"
	"parsekit/internal/state"
)

// HardFailure is a hard failure: it escapes the combinator algebra
// entirely, bypassing every enclosing alt/opt/rep*/except without
// backtracking, and is only ever caught at an Intercept boundary or at the
// outermost match.Match call. It is raised by panicking, since that is the
// only way a Go function returning a plain Result can unwind past callers
// that have no way to distinguish "soft fail, try something else" from
// "abort the whole parse" in their return type.
type HardFailure struct {
	Err error
}

func (h HardFailure) Error() string { return h.Err.Error() }
func (h HardFailure) Unwrap() error { return h.Err }

func raiseHard(err error) {
	panic(HardFailure{Err: err})
}

// PositionedError pairs a raised error with the token position it was
// raised at and, if one was active, the innermost WithLabel text. A
// diagnostics layer built on top of this package (see SPEC_FULL.md
// Component F) recovers these structurally with errors.As rather than by
// re-parsing a formatted message, and then recovers the original cause
// (e.g. a grammar-specific error carrying its own stable code) the same
// way.
type PositionedError struct {
	Pos   int
	Label string
	Err   error
}

func (p *PositionedError) Error() string {
	if p.Label != "" {
		return fmt.Sprintf("at position %d, while matching %s: %v", p.Pos, p.Label, p.Err)
	}
	return fmt.Sprintf("at position %d: %v", p.Pos, p.Err)
}

func (p *PositionedError) Unwrap() error { return p.Err }

// Failpoint runs r; if r fails (a soft failure), hook is invoked with the
// pre-call state and its return becomes Failpoint's result. A hook that
// wants to turn the soft failure into a hard one should use Raise, or call
// raiseHard itself via a helper; a hook that just wants to downgrade to a
// different soft Result may return one directly.
func Failpoint[T any](r Rule[T], hook func(s state.State[T]) Result[T]) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		res := r.Apply(s)
		if res.Ok {
			return res
		}
		return hook(s)
	})
}

// Raise builds a Failpoint hook that unconditionally raises a hard failure
// wrapping err in a PositionedError, annotated with the innermost active
// WithLabel text (if any) and the failing position. The label wrapping
// goes through pkg/errors so a "while matching X" frame is attached
// without losing err's own identity for a later errors.As.
func Raise[T any](err error) func(state.State[T]) Result[T] {
	return func(s state.State[T]) Result[T] {
		wrapped := err
		label := CurrentLabel[T](s)
		if label != "" {
			wrapped = errors.Wrapf(err, "while matching %s", label)
		}
		raiseHard(&PositionedError{Pos: s.Position(), Label: label, Err: wrapped})
		panic("unreachable")
	}
}

// RaiseMessage is a convenience over Raise for a plain string message.
func RaiseMessage[T any](format string, args ...any) func(state.State[T]) Result[T] {
	return Raise[T](fmt.Errorf(format, args...))
}

// RaiseAt immediately raises a hard failure wrapping err, annotated with
// the label active at s (if any) and s's position. Unlike Raise/Failpoint,
// which only fire on a soft failure, this is for a rule body (built with
// New) that has already succeeded far enough to know the parse cannot be
// completed validly — e.g. a map literal with an odd number of forms — and wants
// to abort rather than let some other alternative be tried instead.
func RaiseAt[T any](s state.State[T], err error) {
	Raise[T](err)(s)
}

// Intercept wraps the evaluation of r so that hook receives a thunk which,
// when invoked, applies r to the current state; hook's return value
// becomes Intercept's result. A hook that wants to bridge a HardFailure
// raised inside r back into an ordinary Result should call Recover(thunk)
// instead of invoking the thunk directly.
func Intercept[T any](r Rule[T], hook func(thunk func() Result[T]) Result[T]) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		thunk := func() Result[T] { return r.Apply(s) }
		return hook(thunk)
	})
}

// Recover invokes thunk, catching a HardFailure raised inside it and
// returning it as hard rather than letting it continue to unwind. Any
// other panic is not ours to catch and is re-raised unchanged.
func Recover[T any](thunk func() Result[T]) (res Result[T], hard *HardFailure) {
	defer func() {
		if rec := recover(); rec != nil {
			if hf, ok := rec.(HardFailure); ok {
				hard = &hf
				return
			}
			panic(rec)
		}
	}()
	res = thunk()
	return
}
