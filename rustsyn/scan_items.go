package rustsyn

import "github.com/crablint/crablint"

// FnSig is one item-level `fn` declaration found in a source file: its
// name, whether a body follows, and the tokens of its declared return type
// (nil for functions returning unit).  FnSig implements analysis.FnDecl.
type FnSig struct {
	file    string
	name    string
	ret     []token
	hasBody bool
	uses    UseMap
}

// Name returns the declared function name.
func (f *FnSig) Name() string { return f.name }

// HasBody reports whether the declaration carries a body.  Required trait
// methods end in a semicolon and have none; hosts typically only check
// declarations with bodies, matching what a compiler traversal would visit.
func (f *FnSig) HasBody() bool { return f.hasBody }

// File is the scanned view of one Rust source file.
type File struct {
	Name string
	Fns  []*FnSig
}

// ParseFile lexes src and collects the file's use-map and every item-level
// fn declaration: free functions, impl methods, trait methods, and fn items
// nested inside bodies.  Closures use |...| syntax and are invisible to
// this scan; `fn(...)` function-pointer types carry no name and are skipped.
func ParseFile(name string, src []byte) (*File, error) {
	toks, err := lex(name, src)
	if err != nil {
		return nil, err
	}
	uses := collectUses(toks)
	file := &File{Name: name}
	for i := 0; i < len(toks); i++ {
		if !isIdentTok(toks[i], "fn") {
			continue
		}
		sig, next := scanFn(name, toks, i, uses)
		if sig != nil {
			file.Fns = append(file.Fns, sig)
		}
		if next > i {
			i = next - 1
		}
	}
	return file, nil
}

// scanFn scans one fn declaration starting at the `fn` keyword and returns
// the signature plus the index to resume scanning at.  Bodies are not
// skipped over; nested fn items inside them are picked up by the caller's
// continued scan.
func scanFn(file string, toks []token, fnIdx int, uses UseMap) (*FnSig, int) {
	i := fnIdx + 1
	if i >= len(toks) || toks[i].kind != tokIdent {
		// `fn(` is a function-pointer type, not an item declaration.
		return nil, i
	}
	name := toks[i].text
	i++

	if i < len(toks) && isPunctTok(toks[i], "<") {
		i = matchDelims(toks, i, "<", ">")
	}
	if i >= len(toks) || !isPunctTok(toks[i], "(") {
		return nil, i
	}
	i = matchDelims(toks, i, "(", ")")

	var ret []token
	if i < len(toks) && isPunctTok(toks[i], "->") {
		i++
		start := i
		i = skipReturnType(toks, i)
		ret = toks[start:i]
	}

	// Skip a where clause, if any, up to the body or the terminating
	// semicolon of a bodiless declaration.
	for i < len(toks) && !isPunctTok(toks[i], "{") && !isPunctTok(toks[i], ";") {
		if isPunctTok(toks[i], "<") {
			i = matchDelims(toks, i, "<", ">")
			continue
		}
		i++
	}
	hasBody := i < len(toks) && isPunctTok(toks[i], "{")
	if i < len(toks) {
		i++
	}

	return &FnSig{file: file, name: name, ret: ret, hasBody: hasBody, uses: uses}, i
}

// skipReturnType advances past the tokens of a return type: everything up
// to the body brace, a semicolon, or a where clause at nesting depth zero.
func skipReturnType(toks []token, i int) int {
	depth := 0
	for ; i < len(toks); i++ {
		t := toks[i]
		if t.kind == tokIdent {
			if depth == 0 && t.text == "where" {
				return i
			}
			continue
		}
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "<", "(", "[":
			depth++
		case ">", ")", "]":
			depth--
		case "{", ";":
			if depth <= 0 {
				return i
			}
		}
	}
	return i
}

// matchDelims returns the index just past the delimiter group opening at i;
// toks[i] must be the open delimiter.  An unclosed group yields len(toks).
func matchDelims(toks []token, i int, open, close string) int {
	depth := 0
	for ; i < len(toks); i++ {
		switch {
		case isPunctTok(toks[i], open):
			depth++
		case isPunctTok(toks[i], close):
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(toks)
}

// tokensSpan covers the source range of a non-empty token run.
func tokensSpan(file string, toks []token) crablint.Span {
	first, last := toks[0], toks[len(toks)-1]
	return crablint.Span{
		File:      file,
		Line:      first.line,
		Column:    first.col,
		EndLine:   last.line,
		EndColumn: last.col + len(last.text),
	}
}
