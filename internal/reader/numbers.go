package reader

import (
	"math/big"
	"strconv"
	"strings"

	"parsekit/internal/charrule"
	"parsekit/internal/errors"
	"parsekit/internal/rule"
	"parsekit/internal/state"
)

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isAlnum(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func runesToString(items []any) string {
	rs := make([]rune, len(items))
	for i, it := range items {
		rs[i] = it.(rune)
	}
	return string(rs)
}

// digitString matches one-or-more base-10 digits, yielding them as a
// string rather than the raw []any Conc/RepPlus would produce.
func digitString() rule.Rule[rune] {
	return rule.Semantics[rune](rule.RepPlus[rune](rule.Term[rune](isDigit)), func(p any) any {
		return runesToString(p.([]any))
	})
}

// digitStringStar is digitString but zero-or-more, yielding "" rather than
// nil when nothing matched.
func digitStringStar() rule.Rule[rune] {
	return rule.Semantics[rune](rule.RepStar[rune](rule.Term[rune](isDigit)), func(p any) any {
		if p == nil {
			return ""
		}
		return runesToString(p.([]any))
	})
}

type ratTail struct{ denominator string }

type radixTail struct{ digits string }

type impreciseTail struct {
	hasFrac bool
	frac    string
	hasExp  bool
	expSign int
	exp     string
	big     bool
}

type emptyTail struct{ big bool }

func signValue(p any) int {
	if p == nil {
		return 1
	}
	if p.(rune) == '-' {
		return -1
	}
	return 1
}

// tailRationalRule matches "/" digitString, but only when the denominator
// is non-zero: a zero denominator makes the rational tail fail to match at
// all — an ordinary soft failure that numberForm's tail alternation
// backtracks out of, rather than building a Rational and raising a hard
// failure once it's too late to try anything else.
func tailRationalRule() rule.Rule[rune] {
	parsed := rule.Semantics[rune](rule.Conc[rune](rule.Lit('/'), digitString()), func(p any) any {
		items := p.([]any)
		return ratTail{denominator: items[1].(string)}
	})
	return rule.Validate[rune](parsed, func(p any) bool {
		den := new(big.Int)
		den.SetString(p.(ratTail).denominator, 10)
		return den.Sign() != 0
	})
}

func tailRadixRule() rule.Rule[rune] {
	marker := charrule.SetLit("radix marker", "rR")
	digits := rule.Semantics[rune](rule.RepPlus[rune](rule.Term[rune](isAlnum)), func(p any) any {
		return runesToString(p.([]any))
	})
	return rule.Semantics[rune](rule.Conc[rune](marker, digits), func(p any) any {
		items := p.([]any)
		return radixTail{digits: items[1].(string)}
	})
}

func tailImpreciseRule() rule.Rule[rune] {
	frac := rule.Opt[rune](rule.Semantics[rune](rule.Conc[rune](rule.Lit('.'), digitStringStar()), func(p any) any {
		return p.([]any)[1].(string)
	}))
	exp := rule.Opt[rune](rule.Semantics[rune](rule.Conc[rune](
		charrule.SetLit("exponent marker", "eE"),
		rule.Opt[rune](charrule.SetLit("sign", "+-")),
		digitString(),
	), func(p any) any {
		items := p.([]any)
		return []any{signValue(items[1]), items[2].(string)}
	}))
	bigMarker := rule.Opt[rune](rule.Lit('M'))

	whole := rule.Conc[rune](frac, exp, bigMarker)
	present := rule.Validate[rune](whole, func(p any) bool {
		items := p.([]any)
		return items[0] != nil || items[1] != nil
	})
	return rule.Semantics[rune](present, func(p any) any {
		items := p.([]any)
		t := impreciseTail{big: items[2] != nil}
		if items[0] != nil {
			t.hasFrac = true
			t.frac = items[0].(string)
		}
		if items[1] != nil {
			t.hasExp = true
			pair := items[1].([]any)
			t.expSign = pair[0].(int)
			t.exp = pair[1].(string)
		}
		return t
	})
}

func tailEmptyRule() rule.Rule[rune] {
	return rule.Semantics[rune](rule.Opt[rune](rule.Lit('N')), func(p any) any {
		return emptyTail{big: p != nil}
	})
}

// numberForm is the full number literal: [sign] digits tail, followed by a
// form terminator so that "123abc" cannot parse as a number with a
// dangling symbol tail — the terminator check is what makes this grammar
// node fail over to the symbol alternative instead.
func numberForm() rule.Rule[rune] {
	sign := rule.Opt[rune](charrule.SetLit("sign", "+-"))
	intPart := digitString()
	tail := rule.Alt[rune](tailRationalRule(), tailRadixRule(), tailImpreciseRule(), tailEmptyRule())

	body := rule.New[rune](func(s state.State[rune]) rule.Result[rune] {
		c := rule.NewComplex[rune]().
			Bind("sign", sign).
			Bind("int", intPart).
			Bind("tail", tail).
			Build(func(env map[string]any) any {
				return numberValue(env["sign"], env["int"].(string), env["tail"])
			})
		res := c.Apply(s)
		if !res.Ok {
			return res
		}
		if raised, ok := res.Product.(hardFailureSignal); ok {
			rule.RaiseAt[rune](s, raised.err)
			panic("unreachable")
		}
		return res
	})

	return rule.SuffixConc[rune](body, formTerminator())
}

// hardFailureSignal lets numberValue report a hard failure (invalid radix,
// invalid radix digit, malformed float) through its ordinary return value;
// numberForm is the one place with state in hand to actually raise it.
type hardFailureSignal struct{ err error }

func numberValue(signProduct any, intStr string, tail any) any {
	sign := signValue(signProduct)

	switch t := tail.(type) {
	case ratTail:
		// tailRationalRule already rejected a zero denominator with a soft
		// failure, so den is guaranteed non-zero here.
		num := new(big.Int)
		num.SetString(intStr, 10)
		den := new(big.Int)
		den.SetString(t.denominator, 10)
		if sign < 0 {
			num.Neg(num)
		}
		g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
		if g.Sign() != 0 {
			num.Quo(num, g)
			den.Quo(den, g)
		}
		if den.Sign() < 0 {
			num.Neg(num)
			den.Neg(den)
		}
		return Rational{Numerator: num, Denominator: den}

	case radixTail:
		base, err := strconv.Atoi(intStr)
		if err != nil || base < 2 || base > 36 {
			return hardFailureSignal{err: errors.NewReaderError(errors.CodeInvalidRadix, "radix must be between 2 and 36, got %s", intStr)}
		}
		acc := new(big.Int)
		baseBig := big.NewInt(int64(base))
		for _, c := range t.digits {
			v, ok := charrule.DigitValue(c, base)
			if !ok {
				return hardFailureSignal{err: errors.NewReaderError(errors.CodeInvalidRadixDigit, "%q is not a valid digit in base %d", c, base)}
			}
			acc.Mul(acc, baseBig)
			acc.Add(acc, big.NewInt(int64(v)))
		}
		if sign < 0 {
			acc.Neg(acc)
		}
		return shrinkBigInt(acc)

	case impreciseTail:
		var lit strings.Builder
		if sign < 0 {
			lit.WriteByte('-')
		}
		lit.WriteString(intStr)
		if t.hasFrac {
			lit.WriteByte('.')
			lit.WriteString(t.frac)
		}
		if t.hasExp {
			lit.WriteByte('e')
			if t.expSign < 0 {
				lit.WriteByte('-')
			}
			lit.WriteString(t.exp)
		}
		if t.big {
			f, _, err := big.ParseFloat(lit.String(), 10, 200, big.ToNearestEven)
			if err != nil {
				return hardFailureSignal{err: errors.NewReaderError(errors.CodeMalformedNumber, "%v", err)}
			}
			return f
		}
		f, err := strconv.ParseFloat(lit.String(), 64)
		if err != nil {
			return hardFailureSignal{err: errors.NewReaderError(errors.CodeMalformedNumber, "%v", err)}
		}
		return f

	case emptyTail:
		n := new(big.Int)
		n.SetString(intStr, 10)
		if sign < 0 {
			n.Neg(n)
		}
		if t.big {
			return n
		}
		return shrinkBigInt(n)
	}
	panic("parsekit: unreachable number tail kind")
}

// shrinkBigInt returns v as an int64 when it fits, else as *big.Int,
// matching the "fixed-width when it fits, else arbitrary precision"
// fallback for an un-suffixed integer literal.
func shrinkBigInt(v *big.Int) any {
	if v.IsInt64() {
		return v.Int64()
	}
	return v
}
