package sqlalias

import (
	"maps"

	"github.com/KarpelesLab/pjson"
)

// AliasTracker counts how many times each table name or alias has been used while building
// one query. A name seen for the first time is initialized once, then only ever increases.
//
// A tracker must not be shared between two queries being built concurrently.
type AliasTracker struct {
	counts map[string]int
	init   func(name string) (int, error) // nil means 0
}

// NewTracker returns an empty tracker where every name starts at 0
func NewTracker() *AliasTracker {
	return &AliasTracker{counts: make(map[string]int)}
}

// BuildTracker prepares a tracker for a query on initialTable that already contains joins.
//
// If seed is not nil, it is updated and returned: its existing counts are kept and its
// initializer is combined with the count of occurrences in joins. The initial table always
// ends up with a count of at least 1.
func BuildTracker(c Connection, initialTable string, joins []JoinFragment, seed *AliasTracker) (*AliasTracker, error) {
	t := seed
	if t == nil {
		t = NewTracker()
	} else if t.counts == nil {
		t.counts = make(map[string]int)
	}

	if len(joins) > 0 {
		prev := t.init
		t.init = func(name string) (int, error) {
			n, err := InitialCount(c, name, joins)
			if err != nil {
				return 0, err
			}
			if prev != nil {
				p, err := prev(name)
				if err != nil {
					return 0, err
				}
				n += p
			}
			return n, nil
		}
	}

	cnt, err := t.Count(initialTable)
	if err != nil {
		return nil, err
	}
	if cnt == 0 {
		t.counts[initialTable] = 1
	}
	return t, nil
}

// Count returns the current count for name, initializing it on first access
func (t *AliasTracker) Count(name string) (int, error) {
	if v, ok := t.counts[name]; ok {
		return v, nil
	}
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	v := 0
	if t.init != nil {
		var err error
		v, err = t.init(name)
		if err != nil {
			return 0, err
		}
	}
	t.counts[name] = v
	return v, nil
}

// Increment adds one to the count of name and returns the new value
func (t *AliasTracker) Increment(name string) (int, error) {
	v, err := t.Count(name)
	if err != nil {
		return 0, err
	}
	v += 1
	t.counts[name] = v
	return v, nil
}

// Reserve makes sure name has a count of at least count, so it will not be handed out as is.
// Counts are never lowered.
func (t *AliasTracker) Reserve(name string, count int) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if cur, ok := t.counts[name]; ok && cur >= count {
		return
	}
	t.counts[name] = count
}

// Len returns the number of names known to the tracker
func (t *AliasTracker) Len() int {
	return len(t.counts)
}

// Snapshot returns a copy of the current counts
func (t *AliasTracker) Snapshot() map[string]int {
	return maps.Clone(t.counts)
}

func (t *AliasTracker) MarshalJSON() ([]byte, error) {
	return pjson.Marshal(t.counts)
}
