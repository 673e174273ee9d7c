package analysis

// CrateKind is one declared output artifact kind of a crate, using cargo's
// crate-type spellings.
type CrateKind string

const (
	KindBin       CrateKind = "bin"
	KindLib       CrateKind = "lib" // the default, rlib-style linkable artifact
	KindRlib      CrateKind = "rlib"
	KindDylib     CrateKind = "dylib"
	KindCdylib    CrateKind = "cdylib"
	KindStaticlib CrateKind = "staticlib"
	KindProcMacro CrateKind = "proc-macro"
)

// libraryKinds are the kinds that make a crate a library for the purposes
// of this linter.
var libraryKinds = kindSet(
	KindLib,
	KindRlib,
	KindDylib,
	KindCdylib,
	KindStaticlib,
	KindProcMacro,
)

// isLibraryCrate reports whether at least one of the declared output kinds
// is a library artifact.  An empty kind set classifies as not-a-library.
// This inspects crate-level metadata only; it is called exactly once per
// crate, before any per-function check.
func isLibraryCrate(kinds []CrateKind) bool {
	for _, kind := range kinds {
		if libraryKinds.has(kind) {
			return true
		}
	}
	return false
}
