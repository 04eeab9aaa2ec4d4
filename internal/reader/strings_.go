package reader

import (
	"strings"

	"parsekit/internal/charrule"
	"parsekit/internal/errors"
	"parsekit/internal/rule"
)

var stringEscapes = map[rune]rune{
	't':  '\t',
	'n':  '\n',
	'\\': '\\',
	'"':  '"',
	'r':  '\r',
}

func stringEscapeRule() rule.Rule[rune] {
	return rule.Semantics[rune](rule.Conc[rune](rule.Lit('\\'), rule.Term[rune](func(c rune) bool {
		_, ok := stringEscapes[c]
		return ok
	})), func(p any) any {
		c := p.([]any)[1].(rune)
		return stringEscapes[c]
	})
}

func stringBodyCharRule() rule.Rule[rune] {
	return rule.Alt[rune](stringEscapeRule(), charrule.AntiLit('"'))
}

// stringFormRule reads a '"'-delimited string; a missing closing quote is a
// hard failure rather than an ordinary soft failure, since by the time
// we've consumed the opening quote there is no other alternative in the
// form grammar a malformed string could fall back to.
func stringFormRule() rule.Rule[rune] {
	body := rule.Semantics[rune](rule.RepStar[rune](stringBodyCharRule()), func(p any) any {
		if p == nil {
			return ""
		}
		items := p.([]any)
		var b strings.Builder
		for _, it := range items {
			b.WriteRune(it.(rune))
		}
		return b.String()
	})
	closeQuote := rule.Failpoint[rune](rule.Lit('"'), rule.Raise[rune](errors.NewReaderError(errors.CodeUnterminatedString, "unterminated string literal")))
	return rule.PrefixConc[rune](rule.Lit('"'), rule.SuffixConc[rune](body, closeQuote))
}
