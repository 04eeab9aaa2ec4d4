package reader

import "parsekit/internal/rule"

// indicatorChars are the characters that can never appear inside a bare
// symbol or number: delimiters, the comment/quote/dispatch sigils, and the
// string/character escape leader.
const indicatorChars = ";()[]{}\\\"'@^`#"

const whitespaceChars = " ,\t\n"

func isWhitespace(c rune) bool {
	for _, w := range whitespaceChars {
		if c == w {
			return true
		}
	}
	return false
}

func isIndicator(c rune) bool {
	for _, i := range indicatorChars {
		if c == i {
			return true
		}
	}
	return false
}

func isSeparator(c rune) bool {
	return isWhitespace(c) || isIndicator(c)
}

func isSymbolChar(c rune) bool {
	return !isSeparator(c)
}

func isNsChar(c rune) bool {
	return isSymbolChar(c) && c != '/'
}

// formTerminator is a zero-width lookahead: satisfied by a separator ahead
// or by end-of-input. Used after symbols, peculiar symbols, and numbers so
// that e.g. "123abc" cannot parse as a number followed by a dangling
// symbol tail.
func formTerminator() rule.Rule[rune] {
	return rule.Alt[rune](
		rule.FollowedBy[rune](rule.Term[rune](isSeparator)),
		rule.EndOfInput[rune](),
	)
}
