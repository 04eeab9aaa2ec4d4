package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"parsekit/internal/rule"
	"parsekit/internal/state"
)

func digits(s string) state.State[rune] {
	return state.New[rune]([]rune(s))
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func TestAnythingConsumesOneToken(t *testing.T) {
	res := rule.Anything[rune]().Apply(digits("ab"))
	require.True(t, res.Ok)
	assert.Equal(t, 'a', res.Product)
	assert.Equal(t, 1, res.Next.Position())
}

func TestAnythingFailsAtEnd(t *testing.T) {
	res := rule.Anything[rune]().Apply(digits(""))
	assert.False(t, res.Ok)
}

func TestEndOfInput(t *testing.T) {
	assert.True(t, rule.EndOfInput[rune]().Apply(digits("")).Ok)
	assert.False(t, rule.EndOfInput[rune]().Apply(digits("x")).Ok)
}

func TestOptNeverFails(t *testing.T) {
	r := rule.Opt[rune](rule.Term[rune](isDigit))
	res := rule.Opt[rune](r).Apply(digits("x"))
	assert.True(t, res.Ok)
	assert.Nil(t, res.Product)
}

func TestRepStarNeverFailsAndNilWhenEmpty(t *testing.T) {
	res := rule.RepStar[rune](rule.Term[rune](isDigit)).Apply(digits("abc"))
	require.True(t, res.Ok)
	assert.Nil(t, res.Product)
	assert.Equal(t, 0, res.Next.Position())
}

func TestRepStarCollectsInOrder(t *testing.T) {
	res := rule.RepStar[rune](rule.Term[rune](isDigit)).Apply(digits("123a"))
	require.True(t, res.Ok)
	items := res.Product.([]any)
	assert.Equal(t, []any{'1', '2', '3'}, items)
	assert.Equal(t, 3, res.Next.Position())
}

func TestRepPlusFailsIffFirstFails(t *testing.T) {
	d := rule.Term[rune](isDigit)
	assert.False(t, rule.RepPlus[rune](d).Apply(digits("a")).Ok)
	assert.True(t, rule.RepPlus[rune](d).Apply(digits("1")).Ok)
}

func TestConcIsSemanticsSingleton(t *testing.T) {
	d := rule.Term[rune](isDigit)
	s := digits("1a")
	concResult := rule.Conc[rune](d).Apply(s)
	singleton := rule.Semantics[rune](d, func(p any) any { return []any{p} }).Apply(s)
	assert.Equal(t, singleton, concResult)
}

func TestConcRestoresStateOnFailure(t *testing.T) {
	d := rule.Term[rune](isDigit)
	c := rule.Conc[rune](d, d, d)
	res := c.Apply(digits("12a"))
	assert.False(t, res.Ok)
}

func TestAltIsIdentityForOneRule(t *testing.T) {
	d := rule.Term[rune](isDigit)
	assert.Equal(t, d.Apply(digits("1")), rule.Alt[rune](d).Apply(digits("1")))
}

func TestAltOrderMatters(t *testing.T) {
	yes := rule.ConstantSemantics[rune](rule.Emptiness[rune](), "yes")
	no := rule.ConstantSemantics[rune](rule.Emptiness[rune](), "no")
	first := rule.Alt[rune](yes, no).Apply(digits(""))
	second := rule.Alt[rune](no, yes).Apply(digits(""))
	assert.Equal(t, "yes", first.Product)
	assert.Equal(t, "no", second.Product)
}

func TestExceptEqualsRWhenSubtractingNothing(t *testing.T) {
	d := rule.Term[rune](isDigit)
	plain := d.Apply(digits("1"))
	subtracted := rule.Except[rune](d, rule.Nothing[rune]()).Apply(digits("1"))
	assert.Equal(t, plain, subtracted)
}

func TestFollowedByConsumesNothing(t *testing.T) {
	d := rule.Term[rune](isDigit)
	res := rule.FollowedBy[rune](d).Apply(digits("1"))
	require.True(t, res.Ok)
	assert.Equal(t, '1', res.Product)
	assert.Equal(t, 0, res.Next.Position())
}

func TestDoubleNegativeLookaheadIgnoringProducts(t *testing.T) {
	d := rule.Term[rune](isDigit)
	for _, in := range []string{"1", "a"} {
		direct := d.Apply(digits(in)).Ok
		double := rule.NotFollowedBy[rune](rule.NotFollowedBy[rune](d)).Apply(digits(in))
		assert.Equal(t, direct, double.Ok, "input %q", in)
	}
}

func TestDirectLeftRecursionGrowsTheSeed(t *testing.T) {
	// L := L "-" N | N, left-folding into a single string.
	n := rule.Term[rune](isDigit)
	ref := rule.NewRef[rune]()
	body := rule.Alt[rune](
		rule.Semantics[rune](rule.Conc[rune](ref.Rule(), rule.Lit('-'), n), func(p any) any {
			items := p.([]any)
			return items[0].(string) + "-" + string(items[2].(rune))
		}),
		rule.Semantics[rune](n, func(p any) any { return string(p.(rune)) }),
	)
	l := rule.Remember[rune](body)
	ref.Set(l)

	res := l.Apply(digits("1-2-3"))
	require.True(t, res.Ok)
	assert.Equal(t, "1-2-3", res.Product)
	assert.Equal(t, 5, res.Next.Position())

	single := l.Apply(digits("7"))
	require.True(t, single.Ok)
	assert.Equal(t, "7", single.Product)
}

func TestMemoizedRuleIsBitIdenticalOnRepeat(t *testing.T) {
	s := digits("123")
	d := rule.Term[rune](isDigit)
	memoized := rule.Remember[rune](d)
	first := memoized.Apply(s)
	second := memoized.Apply(s)
	assert.Equal(t, first, second)
}

func TestFailureLeavesNoObservableEffect(t *testing.T) {
	s := digits("ab")
	before := s
	c := rule.Conc[rune](rule.Term[rune](isDigit), rule.Anything[rune]())
	res := c.Apply(s)
	assert.False(t, res.Ok)
	assert.Equal(t, before.Position(), s.Position())
}

func TestWithLabelIsSemanticNoOpOnSuccess(t *testing.T) {
	d := rule.Term[rune](isDigit)
	plain := d.Apply(digits("1"))
	labeled := rule.WithLabel[rune]("digit", d).Apply(digits("1"))
	assert.Equal(t, plain.Ok, labeled.Ok)
	assert.Equal(t, plain.Product, labeled.Product)
	assert.Equal(t, plain.Next.Position(), labeled.Next.Position())
}

func TestComplexBindsAndGuards(t *testing.T) {
	d := rule.Term[rune](isDigit)
	r := rule.NewComplex[rune]().
		Bind("first", d).
		Bind("second", d).
		When(func(env map[string]any) bool { return env["second"].(rune) != env["first"].(rune) }).
		Build(func(env map[string]any) any {
			return string([]rune{env["first"].(rune), env["second"].(rune)})
		})

	ok := r.Apply(digits("12"))
	require.True(t, ok.Ok)
	assert.Equal(t, "12", ok.Product)

	rejected := r.Apply(digits("11"))
	assert.False(t, rejected.Ok)
}

func TestRefSupportsForwardReference(t *testing.T) {
	ref := rule.NewRef[rune]()
	useRef := rule.Semantics[rune](ref.Rule(), func(p any) any { return p })
	ref.Set(rule.Term[rune](isDigit))
	res := useRef.Apply(digits("5"))
	require.True(t, res.Ok)
	assert.Equal(t, '5', res.Product)
}

func TestRefPanicsBeforeSet(t *testing.T) {
	ref := rule.NewRef[rune]()
	assert.Panics(t, func() {
		ref.Rule().Apply(digits("5"))
	})
}

func TestFailpointRaisesHardFailure(t *testing.T) {
	d := rule.Term[rune](isDigit)
	guarded := rule.Failpoint[rune](d, rule.RaiseMessage[rune]("expected a digit"))
	assert.Panics(t, func() {
		guarded.Apply(digits("a"))
	})
}

func TestGetStateSucceedsWithCurrentStateWithoutConsuming(t *testing.T) {
	s := digits("12")
	res := rule.GetState[rune]().Apply(s)
	require.True(t, res.Ok)
	got, ok := res.Product.(state.State[rune])
	require.True(t, ok)
	assert.Equal(t, s.Position(), got.Position())
	assert.Equal(t, s.Position(), res.Next.Position())
}

func TestSetStateReplacesStateWholesale(t *testing.T) {
	s := digits("12")
	advanced := s.Advance()
	res := rule.SetState[rune](advanced).Apply(s)
	require.True(t, res.Ok)
	assert.Equal(t, advanced, res.Product)
	assert.Equal(t, advanced.Position(), res.Next.Position())
}

func TestGetInfoReadsAbsentKeyAsNil(t *testing.T) {
	s := digits("1")
	res := rule.GetInfo[rune]("missing").Apply(s)
	require.True(t, res.Ok)
	assert.Nil(t, res.Product)
}

func TestSetInfoReturnsPriorValueAndPersists(t *testing.T) {
	s := digits("1")
	first := rule.SetInfo[rune]("k", "a").Apply(s)
	require.True(t, first.Ok)
	assert.Nil(t, first.Product)
	second := rule.SetInfo[rune]("k", "b").Apply(first.Next)
	require.True(t, second.Ok)
	assert.Equal(t, "a", second.Product)
	assert.Equal(t, "b", rule.GetInfo[rune]("k").Apply(second.Next).Product)
}

func TestEffectsRunsFnAndSucceedsWithNilProduct(t *testing.T) {
	s := digits("1")
	seenPos := -1
	r := rule.Effects[rune](func(es state.State[rune]) { seenPos = es.Position() })
	res := r.Apply(s)
	require.True(t, res.Ok)
	assert.Nil(t, res.Product)
	assert.Equal(t, s.Position(), res.Next.Position())
	assert.Equal(t, s.Position(), seenPos)
}

func TestInterceptBridgesHardFailureBackToSoft(t *testing.T) {
	d := rule.Term[rune](isDigit)
	guarded := rule.Failpoint[rune](d, rule.RaiseMessage[rune]("expected a digit"))
	bridged := rule.Intercept[rune](guarded, func(thunk func() rule.Result[rune]) rule.Result[rune] {
		res, hard := rule.Recover[rune](thunk)
		if hard != nil {
			return rule.Fail[rune]()
		}
		return res
	})
	res := bridged.Apply(digits("a"))
	assert.False(t, res.Ok)
}
