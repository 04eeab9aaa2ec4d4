package rule

import "parsekit/internal/state"

// Validate runs r; on success it succeeds only if pred(product) holds.
func Validate[T any](r Rule[T], pred func(any) bool) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		res := r.Apply(s)
		if !res.Ok || !pred(res.Product) {
			return Fail[T]()
		}
		return res
	})
}

// AntiValidate runs r; it succeeds only if pred(product) is false. label is
// advisory and surfaces in diagnostics built on WithLabel/CurrentLabel, not
// in matching behavior.
func AntiValidate[T any](r Rule[T], pred func(any) bool, label string) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		tagged := WithLabel[T](label, r)
		res := tagged.Apply(s)
		if !res.Ok || pred(res.Product) {
			return Fail[T]()
		}
		return res
	})
}

// Semantics replaces a successful product with f(product).
func Semantics[T any](r Rule[T], f func(any) any) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		res := r.Apply(s)
		if !res.Ok {
			return Fail[T]()
		}
		return Success[T](f(res.Product), res.Next)
	})
}

// ConstantSemantics replaces a successful product with the constant k.
func ConstantSemantics[T any](r Rule[T], k any) Rule[T] {
	return Semantics[T](r, func(any) any { return k })
}

// Conc sequences rs in order; the product is the slice of sub-products, as
// []any. Any failure restores the pre-call state: the caller of Conc never
// observes a partially-advanced state. Conc is unconditionally memoized
// (see Remember), since grammars nest conc heavily and re-traversal of a
// deep concatenation chain is the dominant cost in a naive implementation.
func Conc[T any](rs ...Rule[T]) Rule[T] {
	return Remember[T](build(func(s state.State[T]) Result[T] {
		cur := s
		products := make([]any, 0, len(rs))
		for _, r := range rs {
			res := r.Apply(cur)
			if !res.Ok {
				return Fail[T]()
			}
			products = append(products, res.Product)
			cur = res.Next
		}
		return Success[T](products, cur)
	}))
}

// Alt tries each rule in order from the same state; the first success
// wins. There is no commit point: every alternative starts fresh from the
// pre-call state, so alt is not commutative (see SPEC_FULL.md §9).
func Alt[T any](rs ...Rule[T]) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		for _, r := range rs {
			if res := r.Apply(s); res.Ok {
				return res
			}
		}
		return Fail[T]()
	})
}

// Opt never fails: it is alt(r, emptiness).
func Opt[T any](r Rule[T]) Rule[T] {
	return Alt[T](r, Emptiness[T]())
}

// RepStar greedily matches r zero or more times; it never fails. Its
// product is nil when no repetition matched, otherwise []any in order.
// Implemented iteratively (not via RepPlus/RepStar mutual recursion) so
// that a long run of matches does not grow the Go call stack.
func RepStar[T any](r Rule[T]) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		var products []any
		cur := s
		for {
			res := r.Apply(cur)
			if !res.Ok {
				break
			}
			products = append(products, res.Product)
			cur = res.Next
		}
		if len(products) == 0 {
			return Success[T](nil, cur)
		}
		return Success[T](products, cur)
	})
}

// RepPlus matches r one or more times; it fails iff the first application
// fails.
func RepPlus[T any](r Rule[T]) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		first := r.Apply(s)
		if !first.Ok {
			return Fail[T]()
		}
		products := []any{first.Product}
		cur := first.Next
		for {
			res := r.Apply(cur)
			if !res.Ok {
				break
			}
			products = append(products, res.Product)
			cur = res.Next
		}
		return Success[T](products, cur)
	})
}

func repetitionCount(product any) int {
	if product == nil {
		return 0
	}
	if items, ok := product.([]any); ok {
		return len(items)
	}
	return 1
}

// RepEq matches RepStar(r), succeeding only if it matched exactly n times.
func RepEq[T any](n int, r Rule[T]) Rule[T] {
	return Validate[T](RepStar(r), func(p any) bool { return repetitionCount(p) == n })
}

// RepLt matches RepStar(r), succeeding only if it matched fewer than n
// times.
func RepLt[T any](n int, r Rule[T]) Rule[T] {
	return Validate[T](RepStar(r), func(p any) bool { return repetitionCount(p) < n })
}

// RepLte matches RepStar(r), succeeding only if it matched n times or
// fewer.
func RepLte[T any](n int, r Rule[T]) Rule[T] {
	return Validate[T](RepStar(r), func(p any) bool { return repetitionCount(p) <= n })
}

// FactorEq matches r exactly n times in sequence (conc(r,...,r)).
func FactorEq[T any](n int, r Rule[T]) Rule[T] {
	rs := make([]Rule[T], n)
	for i := range rs {
		rs[i] = r
	}
	return Conc[T](rs...)
}

// FactorLt tries FactorEq(n-1, r), falling back to RepLt(n, r); it never
// fails.
func FactorLt[T any](n int, r Rule[T]) Rule[T] {
	if n <= 1 {
		return RepLt[T](n, r)
	}
	return Alt[T](FactorEq[T](n-1, r), RepLt[T](n, r))
}

// FactorLte tries FactorEq(n, r), falling back to RepLt(n, r); it never
// fails.
func FactorLte[T any](n int, r Rule[T]) Rule[T] {
	return Alt[T](FactorEq[T](n, r), RepLt[T](n, r))
}

// FollowedBy is positive lookahead: on success it yields r's product but
// restores the pre-call state; on failure it fails. It never consumes.
func FollowedBy[T any](r Rule[T]) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		res := r.Apply(s)
		if !res.Ok {
			return Fail[T]()
		}
		return Success[T](res.Product, s)
	})
}

// NotFollowedBy is negative lookahead: it succeeds with product true iff r
// fails, and never consumes.
func NotFollowedBy[T any](r Rule[T]) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		if r.Apply(s).Ok {
			return Fail[T]()
		}
		return Success[T](true, s)
	})
}

// Except succeeds with a's product iff a succeeds and b would fail at the
// same pre-call state.
func Except[T any](a, b Rule[T]) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		resA := a.Apply(s)
		if !resA.Ok {
			return Fail[T]()
		}
		if b.Apply(s).Ok {
			return Fail[T]()
		}
		return resA
	})
}

func asProducts(p any) []any {
	items, _ := p.([]any)
	return items
}

// PrefixConc matches pre then main, yielding main's product.
func PrefixConc[T any](pre, main Rule[T]) Rule[T] {
	return Semantics[T](Conc[T](pre, main), func(p any) any {
		return asProducts(p)[1]
	})
}

// SuffixConc matches main then post, yielding main's product.
func SuffixConc[T any](main, post Rule[T]) Rule[T] {
	return Semantics[T](Conc[T](main, post), func(p any) any {
		return asProducts(p)[0]
	})
}

// CircumfixConc matches open, body, close in order, yielding body's
// product.
func CircumfixConc[T any](open, body, close Rule[T]) Rule[T] {
	return Semantics[T](Conc[T](open, body, close), func(p any) any {
		return asProducts(p)[1]
	})
}

// InvisiConc matches every rule in rs in order, yielding the first
// sub-product regardless of how many follow.
func InvisiConc[T any](rs ...Rule[T]) Rule[T] {
	return Semantics[T](Conc[T](rs...), func(p any) any {
		return asProducts(p)[0]
	})
}

// Effects succeeds with a nil product, invoking fn against the current
// state for a caller-supplied side effect. The library permits side
// effects here by contract; callers are responsible for idempotence under
// backtracking and memoized re-application.
func Effects[T any](fn func(state.State[T])) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		fn(s)
		return Success[T](nil, s)
	})
}
