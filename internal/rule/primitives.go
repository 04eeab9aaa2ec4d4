package rule

import "parsekit/internal/state"

// Anything succeeds with the head token iff the remainder is non-empty,
// consuming one token.
func Anything[T any]() Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		tok, ok := s.Peek()
		if !ok {
			return Fail[T]()
		}
		return Success[T](tok, s.Advance())
	})
}

// Emptiness always succeeds with a nil product and consumes nothing.
func Emptiness[T any]() Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		return Success[T](nil, s)
	})
}

// Nothing always fails.
func Nothing[T any]() Rule[T] {
	return build(func(state.State[T]) Result[T] {
		return Fail[T]()
	})
}

// EndOfInput succeeds with a nil product iff the remainder is empty.
func EndOfInput[T any]() Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		if s.AtEnd() {
			return Success[T](nil, s)
		}
		return Fail[T]()
	})
}

// Term succeeds with the head token iff pred(token) holds.
func Term[T any](pred func(T) bool) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		tok, ok := s.Peek()
		if !ok || !pred(tok) {
			return Fail[T]()
		}
		return Success[T](tok, s.Advance())
	})
}

// Lit matches a single token equal to x.
func Lit[T comparable](x T) Rule[T] {
	return Term[T](func(tok T) bool { return tok == x })
}

// GetState succeeds with the current state itself as its product, without
// consuming anything.
func GetState[T any]() Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		return Success[T](s, s)
	})
}

// SetState replaces the state wholesale, succeeding with the new state as
// its product.
func SetState[T any](ns state.State[T]) Rule[T] {
	return build(func(state.State[T]) Result[T] {
		return Success[T](ns, ns)
	})
}

// GetInfo succeeds with the current value of a side-info key (nil if
// absent), without consuming anything.
func GetInfo[T any](key string) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		return Success[T](s.GetInfo(key), s)
	})
}

// SetInfo replaces a side-info key's value, succeeding with the key's
// prior value.
func SetInfo[T any](key string, val any) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		old, next := s.SetInfo(key, val)
		return Success[T](old, next)
	})
}

// UpdateInfo applies fn to a side-info key's current value and stores the
// result, succeeding with the prior value.
func UpdateInfo[T any](key string, fn func(any) any) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		old, next := s.UpdateInfo(key, fn)
		return Success[T](old, next)
	})
}
