package reader

import (
	"strings"

	"parsekit/internal/charrule"
	"parsekit/internal/rule"
)

func asciiLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// normalSymbolRule matches one ASCII letter then zero-or-more symbol-chars,
// yielding an unqualified Symbol.
func normalSymbolRule() rule.Rule[rune] {
	head := rule.Term[rune](asciiLetter)
	rest := rule.RepStar[rune](rule.Term[rune](isSymbolChar))
	return rule.Semantics[rune](rule.Conc[rune](head, rest), func(p any) any {
		items := p.([]any)
		var b strings.Builder
		b.WriteRune(items[0].(rune))
		if items[1] != nil {
			for _, it := range items[1].([]any) {
				b.WriteRune(it.(rune))
			}
		}
		return Symbol{Name: b.String()}
	})
}

// nsQualifiedSymbolRule is atomic (lex): ASCII letter, zero-or-more
// ns-chars, "/", one-or-more symbol-chars.
func nsQualifiedSymbolRule() rule.Rule[rune] {
	head := rule.Term[rune](asciiLetter)
	nsRest := rule.RepStar[rune](rule.Term[rune](isNsChar))
	slash := rule.Lit('/')
	name := rule.RepPlus[rune](rule.Term[rune](isSymbolChar))
	return charrule.Lex(rule.Semantics[rune](rule.Conc[rune](head, nsRest, slash, name), func(p any) any {
		items := p.([]any)
		var ns strings.Builder
		ns.WriteRune(items[0].(rune))
		if items[1] != nil {
			for _, it := range items[1].([]any) {
				ns.WriteRune(it.(rune))
			}
		}
		var n strings.Builder
		for _, it := range items[3].([]any) {
			n.WriteRune(it.(rune))
		}
		return Symbol{Namespace: ns.String(), Name: n.String()}
	}))
}

// divisionSymbolRule matches a bare "/", yielding the symbol named "/".
func divisionSymbolRule() rule.Rule[rune] {
	return rule.ConstantSemantics[rune](rule.Lit('/'), Symbol{Name: "/"})
}

// symbolRule resolves the open question left by the distilled grammar:
// ns-qualified-symbol must be tried first (and atomically), or "a/b" would
// be read as the symbol "a" followed by a dangling "/b".
func symbolRule() rule.Rule[rune] {
	return rule.Alt[rune](nsQualifiedSymbolRule(), divisionSymbolRule(), normalSymbolRule())
}

// peculiarSymbolRule matches the literal spellings nil/true/false,
// provided a form terminator follows, so "truex" reads as the symbol
// "truex" rather than the boolean true followed by a stray "x".
func peculiarSymbolRule() rule.Rule[rune] {
	nilR := rule.ConstantSemantics[rune](charrule.MapConc("nil"), Nil{})
	trueR := rule.ConstantSemantics[rune](charrule.MapConc("true"), true)
	falseR := rule.ConstantSemantics[rune](charrule.MapConc("false"), false)
	return charrule.Lex(rule.SuffixConc[rune](rule.Alt[rune](nilR, trueR, falseR), formTerminator()))
}

// keywordRule matches ":" or the auto-resolved "::" followed by symbolRule,
// carrying the symbol's namespace/name into a Keyword. A leading "::" is
// recorded with the sentinel currentNamespace rather than resolved against
// any alias table (namespace-alias resolution is out of scope).
func keywordRule() rule.Rule[rune] {
	// "::name" auto-resolves against the reader's current (alias-free)
	// namespace; it never itself carries a namespace segment, so only the
	// unqualified symbol form applies here.
	autoResolved := rule.Semantics[rune](rule.Conc[rune](rule.Lit(':'), rule.Lit(':'), normalSymbolRule()), func(p any) any {
		sym := p.([]any)[2].(Symbol)
		return Keyword{Namespace: currentNamespace, Name: sym.Name}
	})
	plain := rule.Semantics[rune](rule.Conc[rune](rule.Lit(':'), symbolRule()), func(p any) any {
		sym := p.([]any)[1].(Symbol)
		return Keyword{Namespace: sym.Namespace, Name: sym.Name}
	})
	return charrule.Lex(rule.Alt[rune](autoResolved, plain))
}
