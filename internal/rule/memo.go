package rule

import "parsekit/internal/state"

// Remember wraps r so that (rule identity, position) -> result is cached
// in the current parse run's memo table. The first invocation at a given
// position stores the result; later invocations at the same position
// return it directly without re-running r.
//
// Remember also gives direct left recursion somewhere to land. A rule such
// as L := L "-" N | N, evaluated through Remember at position p, sees its
// own recursive invocation at the same (rule, p) hit an in-progress
// "growing" entry seeded with failure, so the L branch of the alternative
// fails immediately and the N branch is tried instead; once that succeeds,
// the seed is grown by re-running r with the better seed in place, and the
// loop repeats until a pass makes no further progress (the
// seed-parsing/grow-the-seed technique). This only resolves *direct* left
// recursion (a rule recurring into itself with no rule in between that
// advances the position) — mutual indirect left recursion across two or
// more distinct rules is not handled and will seed-and-settle at whichever
// rule is entered first, which is a known, documented limitation rather
// than a detected error.
func Remember[T any](r Rule[T]) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		memo := s.Memo()
		key := state.MemoKey{Rule: r.id, Pos: s.Position()}

		if e, ok := memo.Get(key); ok {
			return entryResult[T](e, s)
		}

		memo.Put(key, state.Entry{Growing: true, Ok: false})
		for {
			// Any rule memoized at or after this position during the previous
			// attempt (in particular a Conc nested inside r that recursed back
			// through this same key and saw the old, smaller seed) is now
			// stale: it may have cached a failure that only held because the
			// seed hadn't grown yet. Evict before every retry so the next
			// attempt re-derives those results against the current seed.
			memo.ForgetFrom(s.Position(), key)
			res := r.Apply(s)
			cur, _ := memo.Get(key)
			if !res.Ok {
				break
			}
			if cur.Ok && res.Next.Position() <= cur.NextPos {
				break
			}
			memo.Put(key, state.Entry{
				Growing:  true,
				Ok:       true,
				Product:  res.Product,
				NextPos:  res.Next.Position(),
				NextInfo: res.Next.InfoSnapshot(),
			})
		}
		final, _ := memo.Get(key)
		final.Growing = false
		memo.Put(key, final)
		// The last attempt above either failed to improve on final or was the
		// very attempt that produced it; either way, any sub-rule results it
		// left behind were computed against the accepted seed and are safe to
		// drop too, so a later independent query at the same positions
		// recomputes cleanly rather than inheriting trial-and-error leftovers.
		memo.ForgetFrom(s.Position(), key)
		memo.Put(key, final)
		return entryResult[T](final, s)
	})
}

func entryResult[T any](e state.Entry, s state.State[T]) Result[T] {
	if !e.Ok {
		return Fail[T]()
	}
	next := s.WithPositionAndInfo(e.NextPos, e.NextInfo)
	return Success[T](e.Product, next)
}
