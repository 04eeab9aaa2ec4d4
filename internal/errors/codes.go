package errors

import "fmt"

// Reader error codes identify a distinct kind of hard parse failure, so an
// editor or script can filter or suppress diagnostics by code instead of
// matching message text. Each is assigned once, at the reader rule that
// raises it, and never reused for an unrelated failure.
// R0002 is retired: a zero-denominator rational tail is a soft,
// backtrackable failure (see internal/reader/numbers.go's tailRationalRule),
// not a hard failure, so it never reaches this table. The code is left
// unassigned rather than reused for an unrelated failure.
const (
	CodeUnterminatedString   = "R0001"
	CodeInvalidRadix         = "R0003"
	CodeInvalidRadixDigit    = "R0004"
	CodeOddMapLiteral        = "R0005"
	CodeDuplicateSetElement  = "R0006"
	CodeMalformedNumber      = "R0007"
	CodeUnknownCharacterName = "R0008"
	CodeUnterminatedForm     = "R0009"
	CodeDuplicateMapKey      = "R0010"
	CodeUnknown              = "R0099"
)

var descriptions = map[string]string{
	CodeUnterminatedString:   "a string literal is missing its closing quote",
	CodeInvalidRadix:         "a radix number's base must be between 2 and 36",
	CodeInvalidRadixDigit:    "a digit is not valid in the given radix",
	CodeOddMapLiteral:        "a map literal has an odd number of forms",
	CodeDuplicateSetElement:  "a set literal repeats an element",
	CodeMalformedNumber:      "a number literal could not be parsed",
	CodeUnknownCharacterName: "a \\-prefixed character name is not recognized",
	CodeUnterminatedForm:     "a list, vector, map, or set is missing its closing delimiter",
	CodeDuplicateMapKey:      "a map literal repeats a key",
	CodeUnknown:              "an unspecified reader error",
}

// Describe returns the stock description for code, or the CodeUnknown
// description if code isn't one the reader assigns.
func Describe(code string) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return descriptions[CodeUnknown]
}

// ReaderError is a hard reader failure carrying a stable code alongside its
// message, so a Reporter can render an "error[R0001]: ..." header without
// parsing the message text back apart.
type ReaderError struct {
	Code string
	Msg  string
}

func (e *ReaderError) Error() string { return e.Msg }

// NewReaderError builds a ReaderError, formatting Msg the same way
// fmt.Errorf would.
func NewReaderError(code, format string, args ...any) *ReaderError {
	return &ReaderError{Code: code, Msg: fmt.Sprintf(format, args...)}
}
