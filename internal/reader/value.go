// Package reader implements the Lisp reader grammar (Component E): a
// concrete grammar, built from internal/rule and internal/charrule, that
// turns a rune stream into the Lisp value tree described below.
package reader

import (
	"math/big"
)

// Symbol is an optionally namespace-qualified identifier.
type Symbol struct {
	Namespace string // "" when unqualified
	Name      string
}

// Keyword is an optionally namespace-qualified keyword. Namespace is the
// sentinel currentNamespace for a keyword spelled with a leading "::".
type Keyword struct {
	Namespace string
	Name      string
}

// currentNamespace is the placeholder namespace assigned to an
// auto-resolved "::kw" keyword. Resolving it against a real alias table is
// explicitly out of scope; the reader only records that resolution is
// owed.
const currentNamespace = "__current__"

// Rational is a reduced-to-lowest-terms fraction, sign normalized onto the
// numerator, with a non-zero denominator.
type Rational struct {
	Numerator   *big.Int
	Denominator *big.Int
}

// Nil is the reader's representation of the symbol `nil` read as a value,
// distinct from a Go nil interface so a reader-produced list can hold it as
// an element without losing track of its presence.
type Nil struct{}

// List, Vector, MapVal and SetVal are the reader's aggregate forms. List is
// also how every wrapper form (quote, syntax-quote, unquote,
// unquote-splicing, deref, var, meta, with-meta, mini-fn) is represented:
// a List whose first element is the Symbol naming the wrapper.
type List struct {
	Items []any
}

type Vector struct {
	Items []any
}

// MapVal preserves insertion order for deterministic round-tripping even
// though Lisp maps are unordered; Keys/Vals are parallel slices.
type MapVal struct {
	Keys []any
	Vals []any
}

type SetVal struct {
	Items []any
}

// Wrapper head symbols, used both to build and to recognize prefix/dispatch
// forms.
var (
	symQuote           = Symbol{Name: "quote"}
	symSyntaxQuote     = Symbol{Name: "syntax-quote"}
	symUnquote         = Symbol{Name: "unquote"}
	symUnquoteSplicing = Symbol{Name: "unquote-splicing"}
	symDeref           = Symbol{Name: "deref"}
	symVar             = Symbol{Name: "var"}
	symMeta            = Symbol{Name: "meta"}
	symWithMeta        = Symbol{Name: "with-meta"}
	symMiniFn          = Symbol{Name: "mini-fn"}
)

func wrap(head Symbol, form any) List {
	return List{Items: []any{head, form}}
}
