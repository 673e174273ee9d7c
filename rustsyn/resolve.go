package rustsyn

import "github.com/crablint/crablint"

// UseMap maps an identifier to the fully-qualified path a `use` declaration
// binds it to.  This is the one piece of name resolution the front end
// performs: path heads are expanded through it, so the rules only ever see
// fully-qualified paths.  Anything beyond that (type aliases, glob imports,
// prelude contents) is out of scope for this tool.
type UseMap map[string][]string

// collectUses scans a token stream for `use` declarations and records every
// leaf binding: `use a::b::C;` binds C, `use a::b::C as D;` binds D, and
// group imports `use a::{B, c::D};` bind each leaf.  Glob imports and `_`
// bindings are skipped.  The map is file-scoped; scoped imports inside
// functions land in the same map, which is as much precision as a scanner
// without scopes can offer.
func collectUses(toks []token) UseMap {
	uses := UseMap{}
	for i := 0; i < len(toks); i++ {
		if isIdentTok(toks[i], "use") {
			i = parseUseTree(toks, i+1, nil, uses) - 1
		}
	}
	return uses
}

// parseUseTree consumes one use-tree starting at i and records its leaf
// bindings.  It returns the index just past the tree.
func parseUseTree(toks []token, i int, prefix []string, uses UseMap) int {
	path := append([]string(nil), prefix...)
	for i < len(toks) {
		t := toks[i]

		if isIdentTok(t, "as") {
			i++
			alias := ""
			if i < len(toks) && toks[i].kind == tokIdent {
				alias = toks[i].text
				i++
			}
			recordUse(uses, path, alias)
			return i
		}

		if t.kind == tokIdent {
			path = append(path, t.text)
			i++
			if i < len(toks) && isPunctTok(toks[i], "::") {
				i++
				switch {
				case i < len(toks) && isPunctTok(toks[i], "{"):
					i++
					for i < len(toks) && !isPunctTok(toks[i], "}") {
						next := parseUseTree(toks, i, path, uses)
						if next <= i {
							next = i + 1 // malformed group; keep moving
						}
						i = next
						if i < len(toks) && isPunctTok(toks[i], ",") {
							i++
						}
					}
					if i < len(toks) {
						i++ // past '}'
					}
					return i
				case i < len(toks) && isPunctTok(toks[i], "*"):
					return i + 1
				}
				continue
			}
			if i < len(toks) && isIdentTok(toks[i], "as") {
				continue // alias handled at the top of the loop
			}
			recordUse(uses, path, "")
			return i
		}

		// ';', '}' or ',' end the tree without another segment.
		recordUse(uses, path, "")
		return i
	}
	recordUse(uses, path, "")
	return i
}

// recordUse stores one leaf binding.  A trailing `self` segment binds the
// path before it, as in `use std::fmt::{self, Debug};`.
func recordUse(uses UseMap, path []string, alias string) {
	if len(path) == 0 {
		return
	}
	if path[len(path)-1] == "self" {
		path = path[:len(path)-1]
		if len(path) == 0 {
			return
		}
	}
	name := alias
	if name == "" {
		name = path[len(path)-1]
	}
	if name == "_" {
		return
	}
	uses[name] = append([]string(nil), path...)
}

// resolve expands the head of a path through the use-map.  Multi-segment
// paths keep their tail: with `use anyhow as ah` in scope, ah::Result
// resolves to anyhow::Result.  Unmapped heads pass through unchanged.
func (m UseMap) resolve(path []string) []string {
	if len(path) == 0 || m == nil {
		return path
	}
	full, ok := m[path[0]]
	if !ok {
		return path
	}
	out := append([]string(nil), full...)
	return append(out, path[1:]...)
}

// TraitQuery implements analysis.ErrorTraitQuery: a trait reference denotes
// the standard error trait exactly when its resolved path is one of the two
// canonical definitions.  Identity, not structure.
type TraitQuery struct{}

func (TraitQuery) IsErrorTrait(ref crablint.TraitRef) bool {
	return samePath(ref.Path, "std", "error", "Error") ||
		samePath(ref.Path, "core", "error", "Error")
}

func samePath(path []string, segments ...string) bool {
	if len(path) != len(segments) {
		return false
	}
	for i, segment := range segments {
		if path[i] != segment {
			return false
		}
	}
	return true
}
