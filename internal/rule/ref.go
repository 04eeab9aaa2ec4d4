package rule

import (
	"github.com/sasha-s/go-deadlock"
	"parsekit/internal/ids"
	"parsekit/internal/state"
)

// Ref is a forward-referenced rule: a box that can be read (via Rule) long
// before it is written (via Set), which is what lets a mutually recursive
// grammar — forms containing forms — be expressed as plain Go values
// instead of requiring every rule to be a named, indirectly-dispatched
// function. Ref.Rule() always returns a value with the same identity, so
// every call site that forward-references the same Ref shares one memo
// key, which matters for the left-recursion handling in Remember.
type Ref[T any] struct {
	id    ids.ID
	mu    deadlock.RWMutex
	inner *Rule[T]
}

// NewRef allocates an unset forward reference.
func NewRef[T any]() *Ref[T] {
	return &Ref[T]{id: ids.New()}
}

// Set binds the forward reference to r. It is expected to be called
// exactly once, after every rule that needs to refer to it has already
// captured the Ref (not its eventual Rule value).
func (b *Ref[T]) Set(r Rule[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rc := r
	b.inner = &rc
}

// Rule returns a Rule value that forwards to whatever was last passed to
// Set. Calling Rule before Set panics, since that indicates a grammar
// wiring bug (a cycle with no base case reachable yet), not a parse
// failure.
func (b *Ref[T]) Rule() Rule[T] {
	return Rule[T]{id: b.id, run: func(s state.State[T]) Result[T] {
		b.mu.RLock()
		inner := b.inner
		b.mu.RUnlock()
		if inner == nil {
			panic("parsekit: rule.Ref used before Set")
		}
		return inner.Apply(s)
	}}
}
