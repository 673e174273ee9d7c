// Package analysis implements the lint rules.  The only rule so far is
// library-crates-structured-errors: library crates should declare structured
// error types, so that callers can match on the individual failure cases.
package analysis

import "github.com/crablint/crablint"

// RuleStructuredErrors is the metadata of the library-crates-structured-errors
// rule, as carried in the rule catalogue.
var RuleStructuredErrors = crablint.Rule{
	Name:  "library-crates-structured-errors",
	Group: crablint.GroupRestriction,
	Doc: "Finds functions in library crates whose declared failure type is unstructured " +
		"(String, Box<dyn Error>, anyhow::Error or eyre::Report). " +
		"Libraries should use structured error types to allow users to match on different error cases.",
	Since: "1.77.0",
}

func init() {
	crablint.Register(RuleStructuredErrors)
}

// classification is the per-crate state machine: unclassified until
// CheckCrate has run, then fixed for the rest of the crate's analysis.
type classification uint8

const (
	unclassified classification = iota
	libraryCrate
	notLibraryCrate
)

// CrateLint is the rule engine for one crate.  The host drives it:
// CheckCrate exactly once, then CheckFn for every item-level function
// declaration it visits, in whatever order it traverses them (diagnostics
// for different functions are independent, so the order only affects the
// order of arrival at the sink).
//
// A CrateLint is single-use and crate-scoped.  It is not safe for
// concurrent use; hosts that parallelize across crates must give each
// crate its own instance.
type CrateLint struct {
	sigs   SignatureExtractor
	traits ErrorTraitQuery
	sink   crablint.Sink
	state  classification
}

// NewCrateLint creates a rule engine reporting into the given sink.
func NewCrateLint(sigs SignatureExtractor, traits ErrorTraitQuery, sink crablint.Sink) *CrateLint {
	return &CrateLint{sigs: sigs, traits: traits, sink: sink}
}

// CheckCrate classifies the crate as library or not and caches the answer.
// It must be called exactly once, before any call to CheckFn; calling it
// twice is a contract violation and panics.
func (l *CrateLint) CheckCrate(unit UnitMeta) {
	if l.state != unclassified {
		panic("CheckCrate called twice for the same crate")
	}
	if isLibraryCrate(unit.CrateTypes()) {
		l.state = libraryCrate
	} else {
		l.state = notLibraryCrate
	}
}

// IsLibrary reports the cached classification.  Like CheckFn, it must not
// be called before CheckCrate.
func (l *CrateLint) IsLibrary() bool {
	if l.state == unclassified {
		panic("IsLibrary called before CheckCrate classified the crate")
	}
	return l.state == libraryCrate
}

// CheckFn checks one function declaration and reports at most one
// diagnostic: a function has exactly one declared failure type, so it can
// match at most once.  Functions whose return type is not a two-variant
// result shape are skipped silently.
func (l *CrateLint) CheckFn(fn FnDecl) {
	switch l.state {
	case unclassified:
		// The host traversal must classify the crate before visiting
		// functions; reaching this point means it did not.
		panic("CheckFn called before CheckCrate classified the crate")
	case notLibraryCrate:
		return
	}

	span, errTy, ok := l.sigs.ResultErrType(fn)
	if !ok {
		return
	}
	if !isOverlyGenericErrorType(l.traits, errTy) {
		return
	}

	l.sink.Report(crablint.Diagnostic{
		Span:    span,
		Rule:    RuleStructuredErrors.Name,
		Message: "this is an unstructured error type",
		Note:    "try using an error enum",
	})
}
