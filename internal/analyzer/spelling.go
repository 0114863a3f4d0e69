package analyzer

import (
	"sort"
)

// SpellingSet is the set of distinct identifier and literal spellings
// removed from a tree during normalization.
type SpellingSet map[string]struct{}

// NewSpellingSet creates a set holding the given spellings
func NewSpellingSet(spellings ...string) SpellingSet {
	set := make(SpellingSet, len(spellings))
	for _, s := range spellings {
		set.Add(s)
	}
	return set
}

// Add inserts a spelling into the set
func (s SpellingSet) Add(spelling string) {
	s[spelling] = struct{}{}
}

// Contains reports whether the spelling is in the set
func (s SpellingSet) Contains(spelling string) bool {
	_, ok := s[spelling]
	return ok
}

// Len returns the number of distinct spellings
func (s SpellingSet) Len() int {
	return len(s)
}

// Union returns a new set holding the spellings of both sets
func (s SpellingSet) Union(other SpellingSet) SpellingSet {
	result := make(SpellingSet, len(s)+len(other))
	for spelling := range s {
		result[spelling] = struct{}{}
	}
	for spelling := range other {
		result[spelling] = struct{}{}
	}
	return result
}

// Difference returns a new set with the spellings of s that are not in other
func (s SpellingSet) Difference(other SpellingSet) SpellingSet {
	result := make(SpellingSet)
	for spelling := range s {
		if !other.Contains(spelling) {
			result[spelling] = struct{}{}
		}
	}
	return result
}

// Sorted returns the spellings in lexical order
func (s SpellingSet) Sorted() []string {
	spellings := make([]string, 0, len(s))
	for spelling := range s {
		spellings = append(spellings, spelling)
	}
	sort.Strings(spellings)
	return spellings
}
