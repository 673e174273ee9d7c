package rustsyn

import "github.com/crablint/crablint"

// parseTypeShape parses one type from toks and returns its structural
// shape, resolving path heads through uses.  Constructs the shape model
// does not cover (references, tuples, slices, impl-trait and so on) come
// back Opaque, which no rule matches on; that makes "couldn't parse" and
// "not a catalogued shape" the same, always-safe answer.
func parseTypeShape(toks []token, uses UseMap) crablint.TypeShape {
	p := &typeParser{toks: toks, uses: uses}
	return p.parseType()
}

type typeParser struct {
	toks []token
	pos  int
	uses UseMap
}

var opaque = crablint.TypeShape{Kind: crablint.Opaque}

func (p *typeParser) parseType() crablint.TypeShape {
	switch {
	case p.eof():
		return opaque

	case p.peekPunct("&"):
		// Reference types never match a catalogued shape, but the pointee
		// still has to be consumed.
		p.pos++
		for p.peekLifetime() || p.peekIdent("mut") {
			p.pos++
		}
		p.parseType()
		return opaque

	case p.peekPunct("*"):
		// Raw pointer.
		p.pos++
		if p.peekIdent("const") || p.peekIdent("mut") {
			p.pos++
		}
		p.parseType()
		return opaque

	case p.peekPunct("("):
		// Either grouping, as in Box<(dyn Error + Send)>, or a tuple.
		end := matchDelims(p.toks, p.pos, "(", ")")
		inner := p.innerTokens(p.pos, end)
		p.pos = end
		if len(inner) == 0 || len(splitTopLevel(inner)) > 1 {
			return opaque
		}
		return parseTypeShape(inner, p.uses)

	case p.peekPunct("["):
		p.pos = matchDelims(p.toks, p.pos, "[", "]")
		return opaque

	case p.peekIdent("dyn"):
		p.pos++
		return p.parseTraitObject()

	case p.peekIdent("impl"):
		p.pos++
		p.parseTraitObject()
		return opaque

	case p.peekPunct("::"):
		// Leading path separator, as in ::std::string::String.
		p.pos++
		return p.parseType()

	case !p.eof() && p.toks[p.pos].kind == tokIdent:
		return p.parsePathType()

	default:
		p.pos++
		return opaque
	}
}

// parsePathType parses a possibly-generic path type and folds the
// well-known spellings into their dedicated shapes.
func (p *typeParser) parsePathType() crablint.TypeShape {
	segs := p.uses.resolve(p.parsePathSegments())

	var args []crablint.TypeShape
	if p.peekPunct("<") {
		end := matchDelims(p.toks, p.pos, "<", ">")
		inner := p.innerTokens(p.pos, end)
		p.pos = end
		for _, part := range splitTopLevel(inner) {
			if len(part) == 0 {
				continue
			}
			if len(part) == 1 && part[0].kind == tokLifetime {
				continue
			}
			args = append(args, parseTypeShape(part, p.uses))
		}
	}

	return normalizePath(segs, args)
}

// parseTraitObject parses the bound list of a trait object (the `dyn`
// keyword is already consumed).  Lifetime bounds are skipped; every path
// bound becomes a predicate, including markers like Send or Sync.  Whether
// a predicate is the error trait is the ErrorTraitQuery's call, not ours.
func (p *typeParser) parseTraitObject() crablint.TypeShape {
	var traits []crablint.TraitRef
	for {
		switch {
		case p.peekLifetime():
			p.pos++
		case p.peekPunct("?"):
			// relaxed bound marker, as in ?Sized; the path follows
			p.pos++
			continue
		case !p.eof() && p.toks[p.pos].kind == tokIdent:
			segs := p.uses.resolve(p.parsePathSegments())
			// Drop decorations: generic arguments and Fn-style signatures.
			if p.peekPunct("<") {
				p.pos = matchDelims(p.toks, p.pos, "<", ">")
			}
			if p.peekPunct("(") {
				p.pos = matchDelims(p.toks, p.pos, "(", ")")
				if p.peekPunct("->") {
					p.pos++
					p.parseType()
				}
			}
			traits = append(traits, crablint.TraitRef{Path: segs})
		default:
			return opaque
		}
		if p.peekPunct("+") {
			p.pos++
			continue
		}
		break
	}
	if len(traits) == 0 {
		return opaque
	}
	return crablint.TypeShape{Kind: crablint.TraitObject, Traits: traits}
}

func (p *typeParser) parsePathSegments() []string {
	var segs []string
	for !p.eof() && p.toks[p.pos].kind == tokIdent {
		segs = append(segs, p.toks[p.pos].text)
		p.pos++
		if p.peekPunct("::") {
			p.pos++
			continue
		}
		break
	}
	return segs
}

// innerTokens returns the tokens strictly inside a delimiter group spanning
// [start, end), guarding against unclosed groups.
func (p *typeParser) innerTokens(start, end int) []token {
	if end-1 <= start+1 {
		return nil
	}
	return p.toks[start+1 : end-1]
}

func (p *typeParser) eof() bool { return p.pos >= len(p.toks) }

func (p *typeParser) peekPunct(text string) bool {
	return !p.eof() && isPunctTok(p.toks[p.pos], text)
}

func (p *typeParser) peekIdent(text string) bool {
	return !p.eof() && isIdentTok(p.toks[p.pos], text)
}

func (p *typeParser) peekLifetime() bool {
	return !p.eof() && p.toks[p.pos].kind == tokLifetime
}

// normalizePath folds the well-known owned-string and box spellings into
// their dedicated shape kinds; everything else stays a named type.
func normalizePath(path []string, args []crablint.TypeShape) crablint.TypeShape {
	stringPath := samePath(path, "String") ||
		samePath(path, "std", "string", "String") ||
		samePath(path, "alloc", "string", "String")
	if stringPath && len(args) == 0 {
		return crablint.TypeShape{Kind: crablint.StringPrim}
	}

	boxPath := samePath(path, "Box") ||
		samePath(path, "std", "boxed", "Box") ||
		samePath(path, "alloc", "boxed", "Box")
	if boxPath && len(args) >= 1 {
		// A second argument is a custom allocator; the pointee decides
		// everything we care about.
		elem := args[0]
		return crablint.TypeShape{Kind: crablint.Box, Elem: &elem}
	}

	return crablint.TypeShape{Kind: crablint.Named, Path: path, Args: args}
}

// splitTopLevel splits a token run at commas that sit outside any nested
// delimiter group.
func splitTopLevel(toks []token) [][]token {
	var parts [][]token
	depth := 0
	start := 0
	for i, t := range toks {
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "(", "[", "{", "<":
			depth++
		case ")", "]", "}", ">":
			depth--
		case ",":
			if depth == 0 {
				parts = append(parts, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, toks[start:])
}
