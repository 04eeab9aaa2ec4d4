package state

import "github.com/sasha-s/go-deadlock"

// Entry is one cached outcome of applying a rule at a position. Growing is
// true while the seed-parsing loop for a (possibly left-recursive) rule is
// still in progress; a recursive re-entry at the same key sees the current
// seed instead of looping forever.
type Entry struct {
	Growing  bool
	Ok       bool
	Product  any
	NextPos  int
	NextInfo Info
}

// Memo caches (rule, position) -> Entry for the duration of a single parse
// run. It is not safe to share across parse runs or across goroutines
// running distinct parses over the same run's state, by contract (see the
// package doc of parsekit's top-level README-equivalent, SPEC_FULL.md §5);
// the mutex here only protects concurrent construction of independent
// sub-parses (e.g. a language-server handler re-reading several open
// documents at once, each with its own Memo but the same grammar rules).
type Memo struct {
	mu    deadlock.Mutex
	cache map[MemoKey]Entry
}

// NewMemo returns an empty memo table for one parse run.
func NewMemo() *Memo {
	return &Memo{cache: make(map[MemoKey]Entry)}
}

// Get looks up a cached entry.
func (m *Memo) Get(key MemoKey) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.cache[key]
	return e, ok
}

// Put stores or replaces a cached entry.
func (m *Memo) Put(key MemoKey, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[key] = e
}

// ForgetFrom evicts every cached entry at or after pos, except keep and any
// entry that is still Growing (the seed of an enclosing rule whose
// seed-growing loop is in progress). A seed-growing left-recursive rule
// uses this to invalidate memoized sub-results computed against a smaller
// seed before re-running its body against a larger one — otherwise an
// inner Conc that already cached a failure against the old (shorter) seed
// would keep returning that stale failure forever, and the seed could
// never grow.
func (m *Memo) ForgetFrom(pos int, keep MemoKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.cache {
		if k == keep || e.Growing {
			continue
		}
		if k.Pos >= pos {
			delete(m.cache, k)
		}
	}
}
