// Package rule implements the parser-combinator algebra: primitive rules
// and the combinators that build larger rules from smaller ones, over an
// arbitrary token type T. A Rule's product is carried as `any` so that
// heterogeneous grammars (the Lisp reader's symbols, numbers, lists, and
// so on) can be expressed without a different Rule type per shape; callers
// that want a statically typed result cast at the point of use, the same
// way a grammar built from participle.Build[T] ends up type-asserting its
// way down a sum-typed AST.
package rule

import (
	"parsekit/internal/ids"
	"parsekit/internal/state"
)

// Result is the outcome of applying a Rule to a State: a Success pairs a
// product with the state that follows it; a zero-value Result is a
// Failure, carrying no further information.
type Result[T any] struct {
	Ok      bool
	Product any
	Next    state.State[T]
}

// Success builds a successful Result.
func Success[T any](product any, next state.State[T]) Result[T] {
	return Result[T]{Ok: true, Product: product, Next: next}
}

// Fail builds a (soft) Failure.
func Fail[T any]() Result[T] {
	return Result[T]{}
}

// Rule is an opaque value behaving as a function State -> Result. Every
// Rule carries an identity assigned at construction time (see internal/ids)
// used as half of the memoization key; two structurally identical rules
// never share one, since either may close over different side effects.
type Rule[T any] struct {
	id  ids.ID
	run func(state.State[T]) Result[T]
}

// ID returns the rule's construction-time identity.
func (r Rule[T]) ID() ids.ID { return r.id }

// Apply runs the rule against s.
func (r Rule[T]) Apply(s state.State[T]) Result[T] { return r.run(s) }

func build[T any](run func(state.State[T]) Result[T]) Rule[T] {
	return Rule[T]{id: ids.New(), run: run}
}

// New builds a Rule directly from its State -> Result function. It exists
// for grammar packages (like the Lisp reader) whose own rules need state
// access that the existing combinators don't expose — e.g. raising a hard
// failure with the current position rather than just transforming a
// product.
func New[T any](run func(state.State[T]) Result[T]) Rule[T] {
	return build(run)
}
