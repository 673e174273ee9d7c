package rustsyn

import (
	"github.com/crablint/crablint"
	"github.com/crablint/crablint/analysis"
)

// Extractor implements analysis.SignatureExtractor over scanned files: it
// decides whether a declared return type is a two-variant result shape and,
// if so, hands back the failure type's shape and the source span of its
// annotation.
//
// Recognized result spellings:
//
//	Result<T, E>              also std::result::Result and core::result::Result
//	anyhow::Result<T>         failure type anyhow::Error
//	anyhow::Result<T, E>      failure type E
//	eyre::Result<T>           failure type eyre::Report
//	eyre::Result<T, E>        failure type E
//
// Import aliases are resolved through the file's use-map before matching,
// so `use anyhow::Result;` followed by `-> Result<()>` is recognized.
// Other result-like aliases (std::io::Result and friends) are not expanded;
// their failure types are structured nominal types, so skipping them never
// changes an answer.
type Extractor struct{}

var _ analysis.SignatureExtractor = Extractor{}

func (Extractor) ResultErrType(fn analysis.FnDecl) (crablint.Span, crablint.TypeShape, bool) {
	sig, ok := fn.(*FnSig)
	if !ok || len(sig.ret) == 0 {
		return crablint.Span{}, crablint.TypeShape{}, false
	}

	head, args, ok := splitPathAndArgs(sig.ret)
	if !ok {
		return crablint.Span{}, crablint.TypeShape{}, false
	}
	head = sig.uses.resolve(head)

	plainResult := samePath(head, "Result") ||
		samePath(head, "std", "result", "Result") ||
		samePath(head, "core", "result", "Result")

	switch {
	case plainResult:
		if len(args) != 2 {
			return crablint.Span{}, crablint.TypeShape{}, false
		}
		return tokensSpan(sig.file, args[1]), parseTypeShape(args[1], sig.uses), true

	case samePath(head, "anyhow", "Result"):
		return aliasErrType(sig, args, "anyhow", "Error")

	case samePath(head, "eyre", "Result"):
		return aliasErrType(sig, args, "eyre", "Report")
	}

	return crablint.Span{}, crablint.TypeShape{}, false
}

// aliasErrType expands the anyhow/eyre result aliases.  With a single
// generic argument the failure type is the alias's default and has no
// spelling of its own in the source, so the span covers the whole return
// type annotation.
func aliasErrType(sig *FnSig, args [][]token, defaultSeg ...string) (crablint.Span, crablint.TypeShape, bool) {
	switch len(args) {
	case 1:
		shape := crablint.TypeShape{Kind: crablint.Named, Path: defaultSeg}
		return tokensSpan(sig.file, sig.ret), shape, true
	case 2:
		return tokensSpan(sig.file, args[1]), parseTypeShape(args[1], sig.uses), true
	}
	return crablint.Span{}, crablint.TypeShape{}, false
}

// splitPathAndArgs decomposes a plain path type `a::b::C<args>` at the
// token level, keeping the exact source tokens of each generic argument so
// spans can point at them.  ok is false when the tokens are anything other
// than a plain, possibly-generic path type.
func splitPathAndArgs(toks []token) (path []string, args [][]token, ok bool) {
	i := 0
	for {
		if i >= len(toks) || toks[i].kind != tokIdent {
			return nil, nil, false
		}
		path = append(path, toks[i].text)
		i++
		if i < len(toks) && isPunctTok(toks[i], "::") {
			i++
			continue
		}
		break
	}
	if i == len(toks) {
		return path, nil, true
	}
	if !isPunctTok(toks[i], "<") {
		return nil, nil, false
	}
	end := matchDelims(toks, i, "<", ">")
	if end != len(toks) {
		// trailing tokens after the generic argument list
		return nil, nil, false
	}
	for _, part := range splitTopLevel(toks[i+1 : end-1]) {
		if len(part) == 0 {
			continue
		}
		args = append(args, part)
	}
	return path, args, true
}
