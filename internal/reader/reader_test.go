package reader_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"parsekit/internal/match"
	"parsekit/internal/reader"
	"parsekit/internal/state"
)

func readForm(t *testing.T, src string) any {
	t.Helper()
	s := state.New[rune]([]rune(src))
	product, err := match.Match[rune](reader.Form(), s, nil, nil)
	require.NoError(t, err)
	return product
}

func readFormErr(t *testing.T, src string) error {
	t.Helper()
	s := state.New[rune]([]rune(src))
	_, err := match.Match[rune](reader.Form(), s, nil, nil)
	return err
}

// readFormSoftFails reports whether src fails to match as a form through
// ordinary (non-hard) failure, distinguishing that from a hard failure by
// supplying an onFailure callback that marks a sentinel.
func readFormSoftFails(t *testing.T, src string) bool {
	t.Helper()
	s := state.New[rune]([]rune(src))
	failed := false
	onFailure := func(state.State[rune]) any {
		failed = true
		return nil
	}
	_, err := match.Match[rune](reader.Form(), s, onFailure, nil)
	require.NoError(t, err)
	return failed
}

func TestEmptyList(t *testing.T) {
	v := readForm(t, "()")
	assert.Equal(t, reader.List{Items: []any{}}, v)
}

func TestDoubleWithExponent(t *testing.T) {
	v := readForm(t, "55.2e2")
	assert.Equal(t, 5520.0, v)
}

func TestRadixInteger(t *testing.T) {
	v := readForm(t, "16rFF")
	assert.Equal(t, int64(255), v)
}

func TestTrailingDotFloat(t *testing.T) {
	v := readForm(t, "16.")
	assert.Equal(t, 16.0, v)
}

func TestNamespacedKeyword(t *testing.T) {
	v := readForm(t, ":a/b")
	assert.Equal(t, reader.Keyword{Namespace: "a", Name: "b"}, v)
}

func TestDeprecatedMetaWrapsEmptyList(t *testing.T) {
	v := readForm(t, "^()")
	list, ok := v.(reader.List)
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	assert.Equal(t, reader.Symbol{Name: "meta"}, list.Items[0])
	assert.Equal(t, reader.List{Items: []any{}}, list.Items[1])
}

func TestZeroDenominatorFails(t *testing.T) {
	// A zero denominator soft-fails the rational tail; no other number tail
	// can consume a bare "/0" without a form terminator following it, so
	// the whole form backtracks out rather than raising a hard failure.
	assert.True(t, readFormSoftFails(t, "3/0"))
}

func TestDocumentOrdersUnquoteSplicingThenEmptyList(t *testing.T) {
	s := state.New[rune]([]rune("~@a ()"))
	product, err := match.Match[rune](reader.Document(), s, nil, nil)
	require.NoError(t, err)
	items := product.([]any)
	require.Len(t, items, 2)
	assert.Equal(t, reader.List{Items: []any{reader.Symbol{Name: "unquote-splicing"}, reader.Symbol{Name: "a"}}}, items[0])
	assert.Equal(t, reader.List{Items: []any{}}, items[1])
}

func TestPeculiarSymbols(t *testing.T) {
	assert.Equal(t, reader.Nil{}, readForm(t, "nil"))
	assert.Equal(t, true, readForm(t, "true"))
	assert.Equal(t, false, readForm(t, "false"))
}

func TestPeculiarSymbolPrefixDoesNotShadowLongerSymbol(t *testing.T) {
	assert.Equal(t, reader.Symbol{Name: "trueish"}, readForm(t, "trueish"))
}

func TestDivisionSymbol(t *testing.T) {
	assert.Equal(t, reader.Symbol{Name: "/"}, readForm(t, "/"))
}

func TestNumberTerminatorRejectsTrailingLetters(t *testing.T) {
	// "123abc" cannot complete as a number (no form terminator follows the
	// digits) and a normal symbol always starts with a letter, so neither
	// alternative in form can consume it.
	assert.True(t, readFormSoftFails(t, "123abc"))
}

func TestIntegerFitsInt64(t *testing.T) {
	assert.Equal(t, int64(42), readForm(t, "42"))
}

func TestBigIntSuffix(t *testing.T) {
	v := readForm(t, "42N")
	big, ok := v.(*big.Int)
	require.True(t, ok)
	assert.Equal(t, "42", big.String())
}

func TestRationalReducesToLowestTerms(t *testing.T) {
	v := readForm(t, "4/8")
	r, ok := v.(reader.Rational)
	require.True(t, ok)
	assert.Equal(t, "1", r.Numerator.String())
	assert.Equal(t, "2", r.Denominator.String())
}

func TestNegativeRationalNormalizesSignOntoNumerator(t *testing.T) {
	v := readForm(t, "-4/8")
	r, ok := v.(reader.Rational)
	require.True(t, ok)
	assert.Equal(t, "-1", r.Numerator.String())
	assert.Equal(t, "2", r.Denominator.String())
}

func TestAutoResolvedKeyword(t *testing.T) {
	v := readForm(t, "::foo")
	assert.Equal(t, reader.Keyword{Namespace: "__current__", Name: "foo"}, v)
}

func TestCharacterNameAndUnicodeEscape(t *testing.T) {
	assert.Equal(t, '\n', readForm(t, `\newline`))
	assert.Equal(t, 'x', readForm(t, `\x`))
	assert.Equal(t, rune(0x00e9), readForm(t, `\u00e9`))
}

func TestUnknownCharacterNameIsHardFailure(t *testing.T) {
	err := readFormErr(t, `\bogus`)
	require.Error(t, err)
}

func TestStringEscapes(t *testing.T) {
	assert.Equal(t, "a\tb\nc", readForm(t, `"a\tb\nc"`))
}

func TestUnterminatedStringIsHardFailure(t *testing.T) {
	err := readFormErr(t, `"abc`)
	require.Error(t, err)
}

func TestVectorAndNestedForms(t *testing.T) {
	v := readForm(t, "[1 :a \"s\"]")
	vec, ok := v.(reader.Vector)
	require.True(t, ok)
	require.Len(t, vec.Items, 3)
	assert.Equal(t, int64(1), vec.Items[0])
	assert.Equal(t, reader.Keyword{Name: "a"}, vec.Items[1])
	assert.Equal(t, "s", vec.Items[2])
}

func TestMapLiteral(t *testing.T) {
	v := readForm(t, "{:a 1 :b 2}")
	m, ok := v.(reader.MapVal)
	require.True(t, ok)
	require.Len(t, m.Keys, 2)
	assert.Equal(t, reader.Keyword{Name: "a"}, m.Keys[0])
	assert.Equal(t, int64(1), m.Vals[0])
}

func TestOddAritymapIsHardFailure(t *testing.T) {
	err := readFormErr(t, "{:a}")
	require.Error(t, err)
}

func TestDuplicateMapKeyIsHardFailure(t *testing.T) {
	err := readFormErr(t, "{:a 1 :a 2}")
	require.Error(t, err)
}

func TestUnterminatedListIsHardFailure(t *testing.T) {
	err := readFormErr(t, "(1 2")
	require.Error(t, err)
}

func TestUnterminatedVectorIsHardFailure(t *testing.T) {
	err := readFormErr(t, "[1 2")
	require.Error(t, err)
}

func TestSetLiteral(t *testing.T) {
	v := readForm(t, "#{1 2 3}")
	set, ok := v.(reader.SetVal)
	require.True(t, ok)
	assert.Len(t, set.Items, 3)
}

func TestDuplicateSetElementIsHardFailure(t *testing.T) {
	err := readFormErr(t, "#{1 1}")
	require.Error(t, err)
}

func TestQuoteAndSyntaxQuote(t *testing.T) {
	q := readForm(t, "'a").(reader.List)
	assert.Equal(t, reader.Symbol{Name: "quote"}, q.Items[0])
	sq := readForm(t, "`a").(reader.List)
	assert.Equal(t, reader.Symbol{Name: "syntax-quote"}, sq.Items[0])
}

func TestDerefAndVar(t *testing.T) {
	d := readForm(t, "@a").(reader.List)
	assert.Equal(t, reader.Symbol{Name: "deref"}, d.Items[0])
	v := readForm(t, "#'a").(reader.List)
	assert.Equal(t, reader.Symbol{Name: "var"}, v.Items[0])
}

func TestMiniFn(t *testing.T) {
	v := readForm(t, "#(f 1 2)").(reader.List)
	assert.Equal(t, reader.Symbol{Name: "mini-fn"}, v.Items[0])
	assert.Len(t, v.Items, 4)
}

func TestDispatchMetaWithKeywordShorthand(t *testing.T) {
	v := readForm(t, "#^:tag a").(reader.List)
	assert.Equal(t, reader.Symbol{Name: "with-meta"}, v.Items[0])
	assert.Equal(t, reader.Symbol{Name: "a"}, v.Items[1])
	meta := v.Items[2].(reader.MapVal)
	assert.Equal(t, reader.Keyword{Name: "tag"}, meta.Keys[0])
	assert.Equal(t, reader.Keyword{Name: "tag"}, meta.Vals[0])
}

func TestCommentAndDiscardAreWhitespace(t *testing.T) {
	v := readForm(t, "; a comment\n#_(ignored) 1")
	assert.Equal(t, int64(1), v)
}

func TestLineCommentAlone(t *testing.T) {
	s := state.New[rune]([]rune("; just a comment\n"))
	product, err := match.Match[rune](reader.Document(), s, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{}, product)
}
