package reader

import (
	"parsekit/internal/errors"
	"parsekit/internal/rule"
	"parsekit/internal/state"
)

// formSeriesRule is zero-or-more forms with a trailing optional whitespace
// run; each element already consumes its own leading ws? (see form), so
// nothing extra is needed between elements.
func formSeriesRule(form rule.Rule[rune]) rule.Rule[rune] {
	items := rule.Semantics[rune](rule.RepStar[rune](form), func(p any) any {
		if p == nil {
			return []any{}
		}
		return p.([]any)
	})
	return rule.SuffixConc[rune](items, wsOptRule(form))
}

// closingDelimiter matches a collection's literal close-rune, but raises a
// hard failure instead of an ordinary soft one when it's missing: once the
// matching open delimiter has already succeeded, there is no other
// form-grammar alternative a partially-read collection could fall back to,
// so backtracking out of it silently would just report the failure at the
// wrong (much earlier) position.
func closingDelimiter(c rune, kind string) rule.Rule[rune] {
	return rule.Failpoint[rune](rule.Lit(c), rule.Raise[rune](
		errors.NewReaderError(errors.CodeUnterminatedForm, "unterminated %s, expected %q", kind, string(c)),
	))
}

func listRule(series rule.Rule[rune]) rule.Rule[rune] {
	return rule.Semantics[rune](rule.CircumfixConc[rune](rule.Lit('('), series, closingDelimiter(')', "list")), func(p any) any {
		return List{Items: p.([]any)}
	})
}

func vectorRule(series rule.Rule[rune]) rule.Rule[rune] {
	return rule.Semantics[rune](rule.CircumfixConc[rune](rule.Lit('['), series, closingDelimiter(']', "vector")), func(p any) any {
		return Vector{Items: p.([]any)}
	})
}

// mapRule reads "{" form-series "}"; an odd number of sub-forms has no
// paired value, and a repeated key violates the map's declared uniqueness,
// so both are hard failures rather than quietly building a malformed or
// invariant-violating MapVal.
func mapRule(series rule.Rule[rune]) rule.Rule[rune] {
	body := rule.New[rune](func(s state.State[rune]) rule.Result[rune] {
		res := series.Apply(s)
		if !res.Ok {
			return res
		}
		items := res.Product.([]any)
		if len(items)%2 != 0 {
			rule.RaiseAt[rune](s, errors.NewReaderError(errors.CodeOddMapLiteral, "map literal must have an even number of forms, got %d", len(items)))
		}
		m := MapVal{Keys: make([]any, 0, len(items)/2), Vals: make([]any, 0, len(items)/2)}
		seen := make(map[any]struct{}, len(items)/2)
		for i := 0; i < len(items); i += 2 {
			k := items[i]
			if key, hashable := hashKey(k); hashable {
				if _, dup := seen[key]; dup {
					rule.RaiseAt[rune](s, errors.NewReaderError(errors.CodeDuplicateMapKey, "duplicate map key: %v", k))
				}
				seen[key] = struct{}{}
			}
			m.Keys = append(m.Keys, k)
			m.Vals = append(m.Vals, items[i+1])
		}
		return rule.Success[rune](m, res.Next)
	})
	return rule.CircumfixConc[rune](rule.Lit('{'), body, closingDelimiter('}', "map"))
}

// setInnerRule reads "{" form-series "}" (reached only via the "#{...}"
// dispatch form, since set and map literals share the same delimiters); a
// duplicate element by value equality is a hard failure.
func setInnerRule(series rule.Rule[rune]) rule.Rule[rune] {
	body := rule.New[rune](func(s state.State[rune]) rule.Result[rune] {
		res := series.Apply(s)
		if !res.Ok {
			return res
		}
		items := res.Product.([]any)
		seen := make(map[any]struct{}, len(items))
		for _, it := range items {
			key, hashable := hashKey(it)
			if hashable {
				if _, dup := seen[key]; dup {
					rule.RaiseAt[rune](s, errors.NewReaderError(errors.CodeDuplicateSetElement, "duplicate set element: %v", it))
				}
				seen[key] = struct{}{}
			}
		}
		return rule.Success[rune](SetVal{Items: items}, res.Next)
	})
	return rule.CircumfixConc[rune](rule.Lit('{'), body, closingDelimiter('}', "set"))
}

// hashKey reduces a reader value to something usable as a Go map key for
// duplicate detection. Compound values (lists, vectors, maps, sets) are not
// themselves comparable, so duplicate detection among them is skipped
// rather than attempted structurally.
func hashKey(v any) (any, bool) {
	switch v.(type) {
	case List, Vector, MapVal, SetVal:
		return nil, false
	default:
		return v, true
	}
}
