package constants

// Change kinds classify a before/after pair by its two measurements. They
// follow the clone taxonomy: a pair that differs only in spellings is a
// Type-2 clone of itself, a small structural edit a Type-3 near miss.
//
// References:
// - Roy, C. K., & Cordy, J. R. (2007). A survey on software clone detection research
const (
	// ChangeIdentical pairs have equal stripped trees and no new spellings
	ChangeIdentical = "identical"

	// ChangeRenamed pairs have equal stripped trees but introduce spellings
	ChangeRenamed = "renamed"

	// ChangeNearMiss pairs differ structurally with similarity at or above
	// DefaultNearMissThreshold
	ChangeNearMiss = "near-miss"

	// ChangeRewrite pairs are anything further apart
	ChangeRewrite = "rewrite"
)

// DefaultNearMissThreshold is the lowest similarity still reported as a
// near miss. It matches the Type-3 clone threshold.
const DefaultNearMissThreshold = 0.80

// ChangeKindDescriptions provides human-readable descriptions for change kinds
var ChangeKindDescriptions = map[string]string{
	ChangeIdentical: "Same structure and spellings",
	ChangeRenamed:   "Same structure, identifiers or literals changed",
	ChangeNearMiss:  "Small structural edit (changed, added or removed nodes)",
	ChangeRewrite:   "Substantially restructured",
}

// ClassifyChange returns the change kind of a compared pair
func ClassifyChange(distance, newIdentifiers int, similarity float64) string {
	switch {
	case distance == 0 && newIdentifiers == 0:
		return ChangeIdentical
	case distance == 0:
		return ChangeRenamed
	case similarity >= DefaultNearMissThreshold:
		return ChangeNearMiss
	default:
		return ChangeRewrite
	}
}
