package rule

import "parsekit/internal/state"

// Complex is the monadic sequencing sugar: a builder of named bindings,
// each of which may carry a guard evaluated against every binding made so
// far, finished off by a body function that computes the final product
// from the accumulated environment. It expresses the same thing as Conc
// plus per-step validation, but reads like a let-binding instead of a
// positional tuple (see reader/numbers.go's numberForm for a worked
// example: it binds the sign, the integer part and the tail by name).
type Complex[T any] struct {
	bindings []complexBinding[T]
}

type complexBinding[T any] struct {
	name string
	rule Rule[T]
	when func(env map[string]any) bool
}

// NewComplex starts a new binding sequence.
func NewComplex[T any]() *Complex[T] {
	return &Complex[T]{}
}

// Bind appends a step: run r, bind its product to name in the environment.
func (c *Complex[T]) Bind(name string, r Rule[T]) *Complex[T] {
	c.bindings = append(c.bindings, complexBinding[T]{name: name, rule: r})
	return c
}

// When attaches a guard to the most recently added Bind step: after that
// step's product is bound, pred is evaluated against the environment so
// far, and the whole Complex fails if it returns false.
func (c *Complex[T]) When(pred func(env map[string]any) bool) *Complex[T] {
	if len(c.bindings) == 0 {
		panic("parsekit: Complex.When called before any Bind")
	}
	c.bindings[len(c.bindings)-1].when = pred
	return c
}

// Build finishes the sequence: body computes the final product from the
// bound environment once every step has succeeded and every guard held.
func (c *Complex[T]) Build(body func(env map[string]any) any) Rule[T] {
	bindings := c.bindings
	return build(func(s state.State[T]) Result[T] {
		env := make(map[string]any, len(bindings))
		cur := s
		for _, bd := range bindings {
			res := bd.rule.Apply(cur)
			if !res.Ok {
				return Fail[T]()
			}
			env[bd.name] = res.Product
			cur = res.Next
			if bd.when != nil && !bd.when(env) {
				return Fail[T]()
			}
		}
		return Success[T](body(env), cur)
	})
}
