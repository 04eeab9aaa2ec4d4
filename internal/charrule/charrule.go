// Package charrule provides the character-level rule kit (Component D):
// convenience rules over rune tokens built on top of internal/rule's
// generic algebra — literal and set-literal matching, radix digits, and a
// cascading accumulator used to assemble multi-digit numbers in one pass.
package charrule

import "parsekit/internal/rule"

// MapConc matches the characters of s in order, discarding the
// intermediate per-character products (its own product is the []any Conc
// would produce; callers that just want "matched literally" typically
// wrap it in rule.ConstantSemantics).
func MapConc(s string) rule.Rule[rune] {
	runes := []rune(s)
	lits := make([]rule.Rule[rune], len(runes))
	for i, c := range runes {
		lits[i] = rule.Lit(c)
	}
	return rule.Conc[rune](lits...)
}

// MapAlt builds alt(fn(items[0]), fn(items[1]), ...).
func MapAlt[X any](fn func(X) rule.Rule[rune], items []X) rule.Rule[rune] {
	rs := make([]rule.Rule[rune], len(items))
	for i, x := range items {
		rs[i] = fn(x)
	}
	return rule.Alt[rune](rs...)
}

// SetLit matches any single rune present in chars.
func SetLit(label string, chars string) rule.Rule[rune] {
	set := make(map[rune]struct{}, len(chars))
	for _, c := range chars {
		set[c] = struct{}{}
	}
	return rule.WithLabel[rune](label, rule.Term[rune](func(c rune) bool {
		_, ok := set[c]
		return ok
	}))
}

// AntiLit matches any single rune other than c.
func AntiLit(c rune) rule.Rule[rune] {
	return rule.Term[rune](func(x rune) bool { return x != c })
}

// AnythingExcept matches any token, provided r would not match at the same
// position.
func AnythingExcept(label string, r rule.Rule[rune]) rule.Rule[rune] {
	return rule.WithLabel[rune](label, rule.Except[rune](rule.Anything[rune](), r))
}

// RadixDigit matches one character that is a digit in the given base
// (2..36, case-insensitive for letter digits), yielding its integer value.
func RadixDigit(base int) rule.Rule[rune] {
	return rule.Semantics[rune](rule.Term[rune](func(c rune) bool {
		_, ok := DigitValue(c, base)
		return ok
	}), func(p any) any {
		v, _ := DigitValue(p.(rune), base)
		return v
	})
}

// DigitValue reports the value of c as a digit in the given base, and
// whether c is a valid digit in that base at all.
func DigitValue(c rune, base int) (int, bool) {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return 0, false
	}
	if v >= base {
		return 0, false
	}
	return v, true
}

// CascadingRepPlus matches rep+(r), folding the matched products into a
// single accumulator: init turns the first product into the initial
// accumulator, step folds each subsequent product in. It is used to
// assemble a natural number (or its fractional part) digit by digit
// without building an intermediate []any that the grammar then has to
// fold itself.
func CascadingRepPlus[Acc any](r rule.Rule[rune], init func(first any) Acc, step func(acc Acc, next any) Acc) rule.Rule[rune] {
	return rule.Semantics[rune](rule.RepPlus[rune](r), func(p any) any {
		items := p.([]any)
		acc := init(items[0])
		for _, it := range items[1:] {
			acc = step(acc, it)
		}
		return acc
	})
}

// Lex treats r as atomic for documentation purposes at the grammar level:
// Conc already restores the pre-call state on any internal failure, so
// this is semantically a no-op, but marks the intent that r's internal
// structure should not be picked apart by surrounding backtracking.
func Lex(r rule.Rule[rune]) rule.Rule[rune] {
	return r
}
