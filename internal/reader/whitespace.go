package reader

import (
	"parsekit/internal/rule"
	"parsekit/internal/state"
)

// lineCommentRule is ";" followed by zero-or-more non-newline characters.
func lineCommentRule() rule.Rule[rune] {
	return rule.ConstantSemantics[rune](rule.Conc[rune](
		rule.Lit(';'),
		rule.RepStar[rune](rule.Term[rune](func(c rune) bool { return c != '\n' })),
	), nil)
}

// discardRule is "#_" followed by one form, which is parsed and thrown
// away; form is a forward reference since the discarded payload is itself
// a full form. The discarded form's own side effects on the info
// side-channel (most notably a deprecated-"^meta" warning) are thrown away
// with it: GetState snapshots the info map before the form runs, and once
// it succeeds SetState grafts that snapshot back onto the post-form
// position, so a discarded "^meta" doesn't surface a warning for content
// the caller never sees.
func discardRule(form rule.Rule[rune]) rule.Rule[rune] {
	before := rule.GetState[rune]()
	parsed := rule.Conc[rune](rule.Lit('#'), rule.Lit('_'), before, form)
	return rule.New[rune](func(s state.State[rune]) rule.Result[rune] {
		res := parsed.Apply(s)
		if !res.Ok {
			return res
		}
		items := res.Product.([]any)
		preState := items[2].(state.State[rune])
		restored := res.Next.WithPositionAndInfo(res.Next.Position(), preState.InfoSnapshot())
		next := rule.SetState[rune](restored).Apply(restored)
		return rule.Success[rune](nil, next.Next)
	})
}

// wsRule is one-or-more repetitions of a whitespace character, a line
// comment, or a discard form. wsOptRule is the zero-or-more variant used
// as a prefix/suffix everywhere whitespace is merely permitted.
func wsRule(form rule.Rule[rune]) rule.Rule[rune] {
	atom := rule.Alt[rune](
		rule.Term[rune](isWhitespace),
		lineCommentRule(),
		discardRule(form),
	)
	return rule.ConstantSemantics[rune](rule.RepPlus[rune](atom), nil)
}

func wsOptRule(form rule.Rule[rune]) rule.Rule[rune] {
	return rule.Opt[rune](wsRule(form))
}
