// Package selection tracks which filter values a shopper has picked in each
// category and which category sections are expanded in the panel.
package selection

import (
	"sort"

	"github.com/samber/lo"
)

// State maps a category key to the option values selected under it.
// Values keep the order in which they were picked and never repeat.
type State map[string][]string

// Empty returns a state with an empty, non-nil sequence for every key.
func Empty(keys []string) State {
	s := make(State, len(keys))
	for _, k := range keys {
		s[k] = []string{}
	}
	return s
}

// Clone returns a deep copy. A nil state clones to an empty one.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Total is the number of selected values across all categories.
func (s State) Total() int {
	return lo.SumBy(lo.Values(s), func(values []string) int { return len(values) })
}

func (s State) Contains(key, value string) bool {
	return lo.Contains(s[key], value)
}

// Keys returns the category keys present in the state, sorted.
func (s State) Keys() []string {
	keys := lo.Keys(s)
	sort.Strings(keys)
	return keys
}

// with returns a copy of s where value is added to (or removed from) key.
// Adding an already-present value leaves the sequence unchanged.
func (s State) with(key, value string, selected bool) State {
	next := s.Clone()
	current := next[key]
	if current == nil {
		current = []string{}
	}
	if selected {
		if !lo.Contains(current, value) {
			current = append(current, value)
		}
	} else {
		current = lo.Without(current, value)
	}
	next[key] = current
	return next
}
