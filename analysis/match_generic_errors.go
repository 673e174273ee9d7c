package analysis

import "github.com/crablint/crablint"

// isOverlyGenericErrorType reports whether ty is one of the catalogued
// overly generic error shapes:
//
//  1. the built-in owned String,
//  2. a boxed trait object whose predicate set includes the standard
//     error trait (Box<dyn Error + ...>),
//  3. the named type anyhow::Error,
//  4. the named type eyre::Report.
//
// Everything else, including user-defined nominal error types, is fine.
// The function is pure and total: same shape in, same answer out.
//
// The four shapes are structurally disjoint.  Instead of taking the first
// match we evaluate all of them and panic if more than one ever matches,
// so a future catalogue change that introduces an overlap is flagged
// instead of silently tie-broken.
func isOverlyGenericErrorType(q ErrorTraitQuery, ty crablint.TypeShape) bool {
	matches := 0
	if ty.Kind == crablint.StringPrim {
		matches++
	}
	if isBoxedErrorTraitObject(q, ty) {
		matches++
	}
	if ty.PathIs("anyhow", "Error") {
		matches++
	}
	if ty.PathIs("eyre", "Report") {
		matches++
	}
	if matches > 1 {
		panic("generic-error shape catalogue contains overlapping shapes; an explicit tie-break rule is needed")
	}
	return matches == 1
}

// isBoxedErrorTraitObject reports whether ty is an owned box over a trait
// object carrying the standard error trait among its predicates.  Other
// predicates (Send, Sync, lifetimes) are irrelevant either way.
func isBoxedErrorTraitObject(q ErrorTraitQuery, ty crablint.TypeShape) bool {
	if ty.Kind != crablint.Box || ty.Elem == nil || ty.Elem.Kind != crablint.TraitObject {
		return false
	}
	for _, ref := range ty.Elem.Traits {
		if q.IsErrorTrait(ref) {
			return true
		}
	}
	return false
}
