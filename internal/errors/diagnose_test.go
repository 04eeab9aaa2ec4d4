package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"parsekit/internal/rule"
)

func TestDiagnoseRecoversCodeAndPosition(t *testing.T) {
	source := []rune("(\"abc")
	hf := rule.HardFailure{Err: &rule.PositionedError{
		Pos: 6,
		Err: NewReaderError(CodeUnterminatedString, "unterminated string literal"),
	}}

	d := Diagnose(source, hf)
	assert.Equal(t, CodeUnterminatedString, d.Code)
	assert.Equal(t, "unterminated string literal", d.Message)
	assert.Equal(t, Position{Line: 1, Column: 6}, d.Position)
}

func TestDiagnoseFallsBackWithoutPositionedError(t *testing.T) {
	d := Diagnose([]rune("x"), assertError{"boom"})
	assert.Equal(t, "boom", d.Message)
	assert.Equal(t, Position{Line: 1, Column: 1}, d.Position)
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }

func TestIncompleteReportsTrailingPosition(t *testing.T) {
	d := Incomplete([]rune("a\nb c"), 4)
	assert.Equal(t, "unexpected trailing input", d.Message)
	assert.Equal(t, Position{Line: 2, Column: 3}, d.Position)
}
