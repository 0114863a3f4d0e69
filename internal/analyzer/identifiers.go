package analyzer

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// spellingDistanceOptions charges 1 per inserted, deleted or substituted rune
var spellingDistanceOptions = levenshtein.Options{
	InsCost: 1,
	DelCost: 1,
	SubCost: 1,
	Matches: levenshtein.IdenticalRunes,
}

// NewIdentifier describes a spelling that appears after a change but not before it
type NewIdentifier struct {
	Spelling string
	// Nearest is the closest spelling of the earlier version; empty when it had none
	Nearest  string
	Distance int
}

// NewIdentifierCount returns the number of spellings in after that are not in before
func NewIdentifierCount(before, after SpellingSet) int {
	count := 0
	for spelling := range after {
		if !before.Contains(spelling) {
			count++
		}
	}
	return count
}

// NewIdentifiers lists the spellings introduced by after in lexical order,
// each paired with the nearest spelling of before by rune edit distance.
// Ties go to the lexically smaller spelling.
func NewIdentifiers(before, after SpellingSet) []NewIdentifier {
	added := after.Difference(before).Sorted()
	if len(added) == 0 {
		return nil
	}

	candidates := before.Sorted()
	result := make([]NewIdentifier, 0, len(added))
	for _, spelling := range added {
		entry := NewIdentifier{Spelling: spelling, Distance: -1}
		source := []rune(spelling)
		for _, candidate := range candidates {
			d := levenshtein.DistanceForStrings(source, []rune(candidate), spellingDistanceOptions)
			if entry.Distance < 0 || d < entry.Distance {
				entry.Nearest = candidate
				entry.Distance = d
			}
		}
		if entry.Distance < 0 {
			entry.Distance = len(source)
		}
		result = append(result, entry)
	}
	return result
}
