package reader

import "parsekit/internal/rule"

// dispatchSetRule is "#{" form-series "}".
func dispatchSetRule(series rule.Rule[rune]) rule.Rule[rune] {
	return rule.PrefixConc[rune](rule.Lit('#'), setInnerRule(series))
}

// dispatchMiniFnRule is "#(" form-series ")", wrapped as (mini-fn body...);
// %-argument expansion is a downstream concern left to whatever consumes
// the reader's output.
func dispatchMiniFnRule(series rule.Rule[rune]) rule.Rule[rune] {
	inner := rule.Semantics[rune](rule.CircumfixConc[rune](rule.Lit('('), series, closingDelimiter(')', "anonymous function")), func(p any) any {
		return List{Items: append([]any{symMiniFn}, p.([]any)...)}
	})
	return rule.PrefixConc[rune](rule.Lit('#'), inner)
}

// dispatchVarRule is "#'form", identical in shape to the plain var prefix
// but reached through the dispatch sigil.
func dispatchVarRule(form rule.Rule[rune]) rule.Rule[rune] {
	return varRule(form)
}

// dispatchMetaRule is "#^metadata form", wrapped as (with-meta form
// metadata). metadata is either a map form or a keyword/symbol k, which is
// shorthand for the map {:tag k}.
func dispatchMetaRule(form rule.Rule[rune]) rule.Rule[rune] {
	header := rule.Conc[rune](rule.Lit('#'), rule.Lit('^'))
	return rule.Semantics[rune](rule.Conc[rune](header, form, form), func(p any) any {
		items := p.([]any)
		meta := normalizeMetadata(items[1])
		payload := items[2]
		return List{Items: []any{symWithMeta, payload, meta}}
	})
}

// dispatchRule is the "dispatched" alternative of form: every "#..." form
// other than the reader macros handled elsewhere (strings, characters,
// etc. don't start with "#"). Order matters only where two branches could
// both start matching the same prefix; #^ and #' and #{ and #( are
// distinguished by their second character, so ordering among them is free.
func dispatchRule(form, series rule.Rule[rune]) rule.Rule[rune] {
	return rule.Alt[rune](
		dispatchMetaRule(form),
		dispatchVarRule(form),
		dispatchSetRule(series),
		dispatchMiniFnRule(series),
	)
}

func normalizeMetadata(v any) any {
	switch t := v.(type) {
	case MapVal:
		return t
	case Keyword, Symbol:
		return MapVal{Keys: []any{Keyword{Name: "tag"}}, Vals: []any{t}}
	default:
		return v
	}
}
