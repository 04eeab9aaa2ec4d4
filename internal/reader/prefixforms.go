package reader

import (
	"parsekit/internal/rule"
	"parsekit/internal/state"
)

func quoteRule(form rule.Rule[rune]) rule.Rule[rune] {
	return rule.Semantics[rune](rule.PrefixConc[rune](rule.Lit('\''), form), func(p any) any {
		return wrap(symQuote, p)
	})
}

func syntaxQuoteRule(form rule.Rule[rune]) rule.Rule[rune] {
	return rule.Semantics[rune](rule.PrefixConc[rune](rule.Lit('`'), form), func(p any) any {
		return wrap(symSyntaxQuote, p)
	})
}

// unquoteSplicingRule is atomic ("~@") and is tried before plain unquote;
// otherwise plain unquote would consume just "~" and read "@x" as its own
// form (deref of x), so "~@x" would come out as (unquote (deref x)) rather
// than (unquote-splicing x).
func unquoteSplicingRule(form rule.Rule[rune]) rule.Rule[rune] {
	return charrulePrefix("~@", symUnquoteSplicing, form)
}

func unquoteRule(form rule.Rule[rune]) rule.Rule[rune] {
	return rule.Semantics[rune](rule.PrefixConc[rune](rule.Lit('~'), form), func(p any) any {
		return wrap(symUnquote, p)
	})
}

func derefRule(form rule.Rule[rune]) rule.Rule[rune] {
	return rule.Semantics[rune](rule.PrefixConc[rune](rule.Lit('@'), form), func(p any) any {
		return wrap(symDeref, p)
	})
}

func varRule(form rule.Rule[rune]) rule.Rule[rune] {
	return charrulePrefix("#'", symVar, form)
}

const warningsInfoKey = "warnings"

func appendWarning(text string) func(any) any {
	return func(old any) any {
		var warnings []string
		if old != nil {
			warnings = old.([]string)
		}
		return append(warnings, text)
	}
}

// deprecatedMetaRule is "^" followed by a form, wrapped as (meta form);
// the leading sigil is deprecated in favor of the "#^" dispatch form
// (dispatchMetaRule in dispatch.go),
// and reading one appends a warning to the state's "warnings" info key
// rather than failing the parse.
func deprecatedMetaRule(form rule.Rule[rune]) rule.Rule[rune] {
	warn := rule.UpdateInfo[rune](warningsInfoKey, appendWarning("^metadata is deprecated; use #^metadata instead"))
	return rule.Semantics[rune](rule.Conc[rune](rule.Lit('^'), warn, form), func(p any) any {
		items := p.([]any)
		return wrap(symMeta, items[2])
	})
}

// Warnings returns the non-fatal warnings accumulated in s's info map (one
// per deprecated "^meta" prefix read), in the order encountered. A front end
// driving match.Match calls this against the final state once a parse
// finishes, since match.Match itself only returns the product on success.
func Warnings(s state.State[rune]) []string {
	if w, ok := s.GetInfo(warningsInfoKey).([]string); ok {
		return w
	}
	return nil
}

func charrulePrefix(sigil string, head Symbol, form rule.Rule[rune]) rule.Rule[rune] {
	runes := []rune(sigil)
	lits := make([]rule.Rule[rune], len(runes))
	for i, c := range runes {
		lits[i] = rule.Lit(c)
	}
	open := rule.Conc[rune](lits...)
	return rule.Semantics[rune](rule.PrefixConc[rune](open, form), func(p any) any {
		return wrap(head, p)
	})
}
