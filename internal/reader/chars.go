package reader

import (
	"parsekit/internal/charrule"
	"parsekit/internal/errors"
	"parsekit/internal/rule"
	"parsekit/internal/state"
)

// charNames is the fixed table of named character escapes; a bare
// single-character spelling after "\" (e.g. "\a") is handled separately by
// bareCharRule once none of these names match.
var charNames = map[string]rune{
	"newline":   '\n',
	"space":     ' ',
	"tab":       '\t',
	"backspace": '\b',
	"formfeed":  '\f',
	"return":    '\r',
}

func unicodeCharRule() rule.Rule[rune] {
	hexDigit := rule.Term[rune](func(c rune) bool {
		_, ok := charrule.DigitValue(c, 16)
		return ok
	})
	return rule.Semantics[rune](rule.Conc[rune](rule.Lit('u'), hexDigit, hexDigit, hexDigit, hexDigit), func(p any) any {
		items := p.([]any)
		v := 0
		for _, it := range items[1:] {
			d, _ := charrule.DigitValue(it.(rune), 16)
			v = v*16 + d
		}
		return rune(v)
	})
}

func namedCharRule() rule.Rule[rune] {
	names := make([]string, 0, len(charNames))
	for name := range charNames {
		names = append(names, name)
	}
	// Longest name first so e.g. "space" isn't shadowed by a bare-char
	// reading of its own first letter.
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && len(names[j]) > len(names[j-1]); j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	rules := make([]rule.Rule[rune], len(names))
	for i, name := range names {
		n := name
		rules[i] = rule.ConstantSemantics[rune](charrule.MapConc(n), charNames[n])
	}
	return rule.Alt[rune](rules...)
}

func bareCharRule() rule.Rule[rune] {
	return rule.Anything[rune]()
}

// unknownCharNameRule recognizes a run of two-or-more symbol-chars after
// the "\" that neither namedCharRule nor unicodeCharRule matched: that
// shape is unambiguously an attempted (but unrecognized) character name,
// as opposed to a single literal character like "\(" or "\1", so it is a
// hard failure rather than silently falling through to bareCharRule and
// leaving the rest of the name dangling as a separate symbol.
func unknownCharNameRule() rule.Rule[rune] {
	run := rule.Semantics[rune](rule.RepPlus[rune](rule.Term[rune](isSymbolChar)), func(p any) any {
		return runesToString(p.([]any))
	})
	return rule.New[rune](func(s state.State[rune]) rule.Result[rune] {
		res := run.Apply(s)
		if !res.Ok {
			return res
		}
		name := res.Product.(string)
		if len(name) <= 1 {
			return rule.Fail[rune]()
		}
		rule.RaiseAt[rune](s, errors.NewReaderError(errors.CodeUnknownCharacterName, `unsupported character: \%s`, name))
		panic("unreachable")
	})
}

// characterFormRule is "\" followed by a character name, a "\uXXXX" escape,
// an unrecognized (and therefore rejected) multi-char name, or a single
// literal character.
func characterFormRule() rule.Rule[rune] {
	body := rule.Alt[rune](namedCharRule(), unicodeCharRule(), unknownCharNameRule(), bareCharRule())
	return charrule.Lex(rule.PrefixConc[rune](rule.Lit('\\'), body))
}
