package reader

import (
	"fmt"
	"math/big"
	"strings"
)

// Sprint renders a reader value (or a []any of top-level forms, as returned
// by Document) back into Lisp surface syntax. It exists for front ends
// (Component G's CLI, and ad-hoc debugging) that want to echo a read value
// tree rather than dump it with Go's own %#v formatting. Two kinds of value
// do not print as reader syntax: a character prints as a Go rune literal
// (e.g. 'x', not \x), and a float64 with no fractional part prints without
// a decimal point (16.0 prints as 16, which reads back as an integer).
func Sprint(v any) string {
	var b strings.Builder
	sprintInto(&b, v)
	return b.String()
}

func sprintInto(b *strings.Builder, v any) {
	switch val := v.(type) {
	case []any:
		sprintSeq(b, "", "", val)
	case List:
		sprintSeq(b, "(", ")", val.Items)
	case Vector:
		sprintSeq(b, "[", "]", val.Items)
	case SetVal:
		sprintSeq(b, "#{", "}", val.Items)
	case MapVal:
		b.WriteByte('{')
		for i := range val.Keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			sprintInto(b, val.Keys[i])
			b.WriteByte(' ')
			sprintInto(b, val.Vals[i])
		}
		b.WriteByte('}')
	case Symbol:
		if val.Namespace != "" {
			fmt.Fprintf(b, "%s/%s", val.Namespace, val.Name)
		} else {
			b.WriteString(val.Name)
		}
	case Keyword:
		b.WriteByte(':')
		if val.Namespace != "" {
			fmt.Fprintf(b, "%s/%s", val.Namespace, val.Name)
		} else {
			b.WriteString(val.Name)
		}
	case Nil:
		b.WriteString("nil")
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case rune:
		fmt.Fprintf(b, "%q", val)
	case string:
		fmt.Fprintf(b, "%q", val)
	case int64:
		fmt.Fprintf(b, "%d", val)
	case float64:
		fmt.Fprintf(b, "%g", val)
	case *big.Int:
		fmt.Fprintf(b, "%sN", val.String())
	case *big.Float:
		fmt.Fprintf(b, "%sM", val.Text('g', -1))
	case Rational:
		fmt.Fprintf(b, "%s/%s", val.Numerator.String(), val.Denominator.String())
	default:
		fmt.Fprintf(b, "%v", val)
	}
}

func sprintSeq(b *strings.Builder, open, close string, items []any) {
	b.WriteString(open)
	for i, it := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		sprintInto(b, it)
	}
	b.WriteString(close)
}
