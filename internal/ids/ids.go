// Package ids allocates construction-time, process-unique identities for
// rule values. Go func values are not comparable, so the rule algebra
// cannot use a rule's own closure as a memo key; every rule is instead
// stamped with one of these ids the moment it is built.
package ids

import (
	"github.com/sasha-s/go-deadlock"
	"github.com/segmentio/ksuid"
)

// ID is a k-sortable identifier distinguishing one constructed rule from
// every other, including rules that are structurally identical but close
// over different side effects.
type ID struct {
	k ksuid.KSUID
}

func (id ID) String() string {
	return id.k.String()
}

var mu deadlock.Mutex

// New allocates a fresh ID. Rule construction sometimes happens from
// package-level init() functions of independently loaded grammar packages,
// so allocation is serialized rather than left to chance.
func New() ID {
	mu.Lock()
	defer mu.Unlock()
	return ID{k: ksuid.New()}
}
