package reader

import "parsekit/internal/rule"

// Form is the top-level rule: ws? then one of the reader's surface forms,
// in the order the distilled grammar specifies. Ordering matters: a
// peculiar-symbol must be tried before symbol (else "nil"/"true"/"false"
// would just read as ordinary symbols), division-symbol before symbol
// (else "/" has nothing to match, since normalSymbolRule requires an ASCII
// letter head), and number requires its own trailing form-terminator check
// so "123abc" falls through to symbol instead of matching a truncated
// number.
func Form() rule.Rule[rune] {
	formRef := rule.NewRef[rune]()
	form := formRef.Rule()
	series := formSeriesRule(form)

	body := rule.PrefixConc[rune](wsOptRule(form), rule.Alt[rune](
		listRule(series),
		vectorRule(series),
		mapRule(series),
		dispatchRule(form, series),
		stringFormRule(),
		syntaxQuoteRule(form),
		unquoteSplicingRule(form),
		unquoteRule(form),
		quoteRule(form),
		derefRule(form),
		divisionSymbolRule(),
		deprecatedMetaRule(form),
		characterFormRule(),
		keywordRule(),
		peculiarSymbolRule(),
		symbolRule(),
		numberForm(),
	))
	formRef.Set(rule.Remember[rune](body))
	return form
}

// Document is form-series followed by end-of-input: the whole input must
// be consumed by zero-or-more top-level forms, or the parse is incomplete.
func Document() rule.Rule[rune] {
	form := Form()
	series := formSeriesRule(form)
	return rule.SuffixConc[rune](series, rule.EndOfInput[rune]())
}
