package errors

import (
	stderrors "errors"

	"parsekit/internal/rule"
)

// Diagnose converts the error match.Match returns on a hard failure (always
// a rule.HardFailure) into a Diagnostic. It recovers the originating
// PositionedError and, when the underlying cause is a *ReaderError, its
// stable code, using errors.As rather than parsing the formatted message
// back apart.
func Diagnose(source []rune, err error) Diagnostic {
	var positioned *rule.PositionedError
	if !stderrors.As(err, &positioned) {
		return Diagnostic{Message: err.Error(), Position: Position{Line: 1, Column: 1}, Length: 1}
	}

	d := Diagnostic{
		Message:  positioned.Err.Error(),
		Position: PositionFromOffset(source, positioned.Pos),
		Length:   1,
	}

	var readerErr *ReaderError
	if stderrors.As(positioned.Err, &readerErr) {
		d.Code = readerErr.Code
		d.Message = readerErr.Msg
	}

	return d
}

// Incomplete builds a Diagnostic for a match that succeeded but left input
// unconsumed at the rune offset pos.
func Incomplete(source []rune, pos int) Diagnostic {
	return Diagnostic{
		Message:  "unexpected trailing input",
		Position: PositionFromOffset(source, pos),
		Length:   1,
	}
}

// Unparsed builds a Diagnostic for an outright (soft) failure to match a
// form at the rune offset pos — the document rule never got far enough to
// raise a structured hard failure.
func Unparsed(source []rune, pos int) Diagnostic {
	return Diagnostic{
		Message:  "could not parse a form here",
		Position: PositionFromOffset(source, pos),
		Length:   1,
	}
}
