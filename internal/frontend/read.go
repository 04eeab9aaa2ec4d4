// Package frontend implements the step shared by both front ends built on
// top of the reader (Component G's CLI and Component H's language server):
// running the document rule through the matcher driver and turning its
// outcome into forms, a diagnostic, and accumulated warnings.
package frontend

import (
	"parsekit/internal/errors"
	"parsekit/internal/match"
	"parsekit/internal/reader"
	"parsekit/internal/rule"
	"parsekit/internal/state"
)

// Result is the outcome of reading one source's worth of top-level forms.
// Exactly one of Forms and Diagnostic is meaningful: a nil Diagnostic means
// the read succeeded.
type Result struct {
	Forms      []any
	Diagnostic *errors.Diagnostic
	Warnings   []string
}

// ReadSource runs the reader's document rule against source via
// match.Match, wrapping it so the final state (and thus any accumulated
// warnings) is still observable on success even though match.Match itself
// only returns the bare product.
func ReadSource(source string) Result {
	runes := []rune(source)

	var final state.State[rune]
	wrapped := rule.New[rune](func(s state.State[rune]) rule.Result[rune] {
		res := reader.Document().Apply(s)
		if res.Ok {
			final = res.Next
		}
		return res
	})

	var failPos int
	onFailure := func(s state.State[rune]) any {
		failPos = s.Position()
		return nil
	}

	s := state.New[rune](runes)
	product, err := match.Match[rune](wrapped, s, onFailure, nil)
	if err != nil {
		d := errors.Diagnose(runes, err)
		return Result{Diagnostic: &d}
	}
	if product == nil {
		d := errors.Unparsed(runes, failPos)
		return Result{Diagnostic: &d}
	}

	return Result{Forms: product.([]any), Warnings: reader.Warnings(final)}
}
