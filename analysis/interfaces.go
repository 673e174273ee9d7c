package analysis

import "github.com/crablint/crablint"

// The rule engine never parses or type-checks anything itself.  It talks to
// the host front end through the three small contracts in this file, plus
// the crablint.Sink it reports into.

// UnitMeta exposes the crate-level metadata the engine needs: the set of
// declared output kinds.  Read-only; queried once per crate.
type UnitMeta interface {
	CrateTypes() []CrateKind
}

// FnDecl is the engine's view of one item-level function declaration.
// The engine never looks inside it beyond the name; the concrete value is
// handed back to the host's SignatureExtractor untouched.
type FnDecl interface {
	// Name returns the declared function name.  Used for logging only,
	// never for matching.
	Name() string
}

// SignatureExtractor produces the declared failure type of a function
// declaration, when the declared return type is a two-variant result shape
// (success/failure).  The extractor is expected to have normalized the type
// the way the host's type system would: known import aliases resolved, and
// result aliases such as anyhow::Result<T> expanded to their failure type.
type SignatureExtractor interface {
	// ResultErrType returns the source span of the failure-type annotation
	// and the failure type's shape.  ok is false when the function's return
	// type is not a two-variant result shape; that is a normal negative
	// outcome, not an error.
	ResultErrType(fn FnDecl) (span crablint.Span, ty crablint.TypeShape, ok bool)
}

// ErrorTraitQuery answers whether a trait reference denotes the standard
// library's error trait.  This is an identity check against the one
// canonical definition, never a structural test.
type ErrorTraitQuery interface {
	IsErrorTrait(ref crablint.TraitRef) bool
}
