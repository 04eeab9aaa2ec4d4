// Package match implements the matcher driver (Component C): running a
// top-level rule against an initial state, enforcing match-to-end, and
// invoking failure/incomplete callbacks.
package match

import (
	"parsekit/internal/rule"
	"parsekit/internal/state"
)

// OnFailure is invoked when the outermost rule fails outright (a soft
// failure at the very first token).
type OnFailure[T any] func(s state.State[T]) any

// OnIncomplete is invoked when the outermost rule succeeds but leaves
// input unconsumed.
type OnIncomplete[T any] func(product any, next state.State[T], initial state.State[T]) any

// Match runs r against s. If r fails, onFailure(s) is returned. If r
// succeeds but s' still has remaining input, onIncomplete(product, s', s)
// is returned. Otherwise the product is returned directly. A hard failure
// raised anywhere inside r (via rule.Failpoint/rule.Raise) is not routed
// through either callback: it propagates out of Match as a Go error,
// since it represents an abort rather than an ordinary non-match.
//
// Either callback may be nil, in which case it defaults to producing nil.
func Match[T any](r rule.Rule[T], s state.State[T], onFailure OnFailure[T], onIncomplete OnIncomplete[T]) (result any, err error) {
	if onFailure == nil {
		onFailure = func(state.State[T]) any { return nil }
	}
	if onIncomplete == nil {
		onIncomplete = func(any, state.State[T], state.State[T]) any { return nil }
	}

	defer func() {
		if rec := recover(); rec != nil {
			if hf, ok := rec.(rule.HardFailure); ok {
				err = hf
				return
			}
			panic(rec)
		}
	}()

	res := r.Apply(s)
	if !res.Ok {
		return onFailure(s), nil
	}
	if !res.Next.AtEnd() {
		return onIncomplete(res.Product, res.Next, s), nil
	}
	return res.Product, nil
}
