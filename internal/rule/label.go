package rule

import "parsekit/internal/state"

// labelInfoKey stores the innermost active WithLabel text in a state's
// side-info map, purely for diagnostics; it never affects matching.
const labelInfoKey = "parsekit.label"

// WithLabel is a semantic no-op on success: it tags the state passed to r
// with a diagnostic label, so that a failpoint hook evaluated inside r (or
// at the point r fails) can report what was being matched. Labels are
// advisory only.
func WithLabel[T any](text string, r Rule[T]) Rule[T] {
	return build(func(s state.State[T]) Result[T] {
		old, tagged := s.SetInfo(labelInfoKey, text)
		res := r.Apply(tagged)
		if res.Ok {
			_, res.Next = res.Next.SetInfo(labelInfoKey, old)
		}
		return res
	})
}

// CurrentLabel reads the innermost active label from a state, or "" if
// none is active.
func CurrentLabel[T any](s state.State[T]) string {
	if v := s.GetInfo(labelInfoKey); v != nil {
		return v.(string)
	}
	return ""
}
