// Package crablint holds the shared vocabulary of the linter: the type
// shape model produced by front ends, the diagnostics emitted by rules,
// and the rule metadata catalogue.
package crablint

import "strings"

// ShapeKind discriminates the closed set of type shapes the lint rules can
// reason about.  Front ends classify every type they see into one of these;
// anything they cannot model structurally becomes Opaque, which no rule
// matches on.
type ShapeKind int

const (
	// Opaque is any type outside the modelled set: tuples, references,
	// slices, function pointers, impl-trait, and so on.
	Opaque ShapeKind = iota

	// StringPrim is the built-in owned, growable string type.
	StringPrim

	// Box is the owned heap box.  Elem holds the pointee shape.
	Box

	// TraitObject is a `dyn` existential.  Traits holds its predicate set.
	TraitObject

	// Named is any other nominal type.  Path holds its fully-qualified
	// path and Args its generic arguments, in declaration order.
	Named
)

// TypeShape is a structural view over one resolved type.  It is a plain
// value: front ends build it, rules only read it.  The front end is expected
// to have normalized the type before building the shape (known import
// aliases expanded, well-known spellings like std::string::String folded
// into StringPrim); rules perform no resolution of their own.
type TypeShape struct {
	Kind   ShapeKind
	Path   []string    // Named only
	Args   []TypeShape // Named only
	Elem   *TypeShape  // Box only
	Traits []TraitRef  // TraitObject only
}

// TraitRef is a resolved reference to a trait, as it appears in a trait
// object's predicate set.
type TraitRef struct {
	Path []string
}

// PathIs reports whether the shape is a named type whose fully-qualified
// path is exactly the given segments.
func (t TypeShape) PathIs(segments ...string) bool {
	if t.Kind != Named || len(t.Path) != len(segments) {
		return false
	}
	for i, segment := range segments {
		if t.Path[i] != segment {
			return false
		}
	}
	return true
}

// String renders the shape in a loosely Rust-like syntax.  It is meant for
// logs and test failure output, not for exact reconstruction of the source.
func (t TypeShape) String() string {
	switch t.Kind {
	case StringPrim:
		return "String"
	case Box:
		if t.Elem == nil {
			return "Box<?>"
		}
		return "Box<" + t.Elem.String() + ">"
	case TraitObject:
		parts := make([]string, len(t.Traits))
		for i, tr := range t.Traits {
			parts[i] = strings.Join(tr.Path, "::")
		}
		return "dyn " + strings.Join(parts, " + ")
	case Named:
		path := strings.Join(t.Path, "::")
		if len(t.Args) == 0 {
			return path
		}
		args := make([]string, len(t.Args))
		for i, arg := range t.Args {
			args[i] = arg.String()
		}
		return path + "<" + strings.Join(args, ", ") + ">"
	}
	return "_"
}
