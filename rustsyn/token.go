// Package rustsyn is the hosted front end: a lightweight scanner over Rust
// source that stands in for a compiler's type system.  It finds item-level
// fn declarations, resolves import aliases per file, and turns declared
// return types into crablint.TypeShape values for the rules to match on.
// It is deliberately not a full parser; it knows exactly enough syntax to
// walk signatures safely.
package rustsyn

import "fmt"

// tokKind enumerates the token classes the scanner distinguishes.
type tokKind uint8

const (
	tokIdent    tokKind = iota
	tokPunct            // "::", "->", "=>", or a single punctuation char
	tokLifetime         // 'a, text without the leading quote
	tokLiteral          // string, char, byte or numeric literal
)

type token struct {
	kind tokKind
	text string
	line int // 1-based
	col  int // 1-based, counted in bytes
}

type lexer struct {
	file string
	src  []byte
	off  int
	line int
	col  int
}

// lex splits src into tokens, dropping whitespace and comments.  This is
// not a complete Rust lexer; it covers what signature scanning needs:
// nested block comments, the literal forms that could otherwise hide or
// fake delimiters, lifetimes, raw identifiers, and the multi-character
// punctuation that matters for path and type scanning.
func lex(file string, src []byte) ([]token, error) {
	l := &lexer{file: file, src: src, line: 1, col: 1}
	var toks []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		if t == nil {
			return toks, nil
		}
		toks = append(toks, *t)
	}
}

func (l *lexer) next() (*token, error) {
	if err := l.skipSpace(); err != nil {
		return nil, err
	}
	if l.off >= len(l.src) {
		return nil, nil
	}

	line, col, start := l.line, l.col, l.off
	c := l.src[l.off]

	switch {
	case isIdentStart(c):
		text := l.scanIdent()
		switch {
		case text == "r" && l.peekByte() == '#' && isIdentStart(l.peekAt(1)):
			// raw identifier, r#type and friends
			l.advance(1)
			return &token{tokIdent, l.scanIdent(), line, col}, nil
		case (text == "r" || text == "br") && (l.peekByte() == '"' || l.peekByte() == '#'):
			if err := l.scanRawString(); err != nil {
				return nil, err
			}
			return &token{tokLiteral, string(l.src[start:l.off]), line, col}, nil
		case text == "b" && l.peekByte() == '"':
			if err := l.scanString(); err != nil {
				return nil, err
			}
			return &token{tokLiteral, string(l.src[start:l.off]), line, col}, nil
		case text == "b" && l.peekByte() == '\'':
			l.advance(1)
			if err := l.scanCharTail(); err != nil {
				return nil, err
			}
			return &token{tokLiteral, string(l.src[start:l.off]), line, col}, nil
		}
		return &token{tokIdent, text, line, col}, nil

	case c >= '0' && c <= '9':
		l.scanNumber()
		return &token{tokLiteral, string(l.src[start:l.off]), line, col}, nil

	case c == '"':
		if err := l.scanString(); err != nil {
			return nil, err
		}
		return &token{tokLiteral, string(l.src[start:l.off]), line, col}, nil

	case c == '\'':
		// A quote opens either a lifetime ('a) or a character literal
		// ('a', '\n').  It's a lifetime when an identifier follows and no
		// closing quote comes right after it.
		if isIdentStart(l.peekAt(1)) {
			j := l.off + 2
			for j < len(l.src) && isIdentChar(l.src[j]) {
				j++
			}
			if j >= len(l.src) || l.src[j] != '\'' {
				l.advance(1)
				return &token{tokLifetime, l.scanIdent(), line, col}, nil
			}
		}
		l.advance(1)
		if err := l.scanCharTail(); err != nil {
			return nil, err
		}
		return &token{tokLiteral, string(l.src[start:l.off]), line, col}, nil

	default:
		if c == ':' && l.peekAt(1) == ':' {
			l.advance(2)
			return &token{tokPunct, "::", line, col}, nil
		}
		if c == '-' && l.peekAt(1) == '>' {
			l.advance(2)
			return &token{tokPunct, "->", line, col}, nil
		}
		if c == '=' && l.peekAt(1) == '>' {
			l.advance(2)
			return &token{tokPunct, "=>", line, col}, nil
		}
		l.advance(1)
		return &token{tokPunct, string(c), line, col}, nil
	}
}

func (l *lexer) skipSpace() error {
	for l.off < len(l.src) {
		c := l.src[l.off]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance(1)
		case c == '/' && l.peekAt(1) == '/':
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.advance(1)
			}
		case c == '/' && l.peekAt(1) == '*':
			// block comments nest in Rust
			depth := 0
			for l.off < len(l.src) {
				if l.src[l.off] == '/' && l.peekAt(1) == '*' {
					depth++
					l.advance(2)
					continue
				}
				if l.src[l.off] == '*' && l.peekAt(1) == '/' {
					depth--
					l.advance(2)
					if depth == 0 {
						break
					}
					continue
				}
				l.advance(1)
			}
			if depth != 0 {
				return l.errf("unterminated block comment")
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) scanIdent() string {
	start := l.off
	for l.off < len(l.src) && isIdentChar(l.src[l.off]) {
		l.advance(1)
	}
	return string(l.src[start:l.off])
}

func (l *lexer) scanNumber() {
	for l.off < len(l.src) {
		c := l.src[l.off]
		if isIdentChar(c) || (c == '.' && l.peekAt(1) >= '0' && l.peekAt(1) <= '9') {
			l.advance(1)
			continue
		}
		break
	}
}

func (l *lexer) scanString() error {
	l.advance(1) // opening quote
	for l.off < len(l.src) {
		switch l.src[l.off] {
		case '\\':
			l.advance(2)
		case '"':
			l.advance(1)
			return nil
		default:
			l.advance(1)
		}
	}
	return l.errf("unterminated string literal")
}

// scanRawString is positioned after the r/br prefix, at the first '#' or
// the opening quote.
func (l *lexer) scanRawString() error {
	hashes := 0
	for l.peekByte() == '#' {
		hashes++
		l.advance(1)
	}
	if l.peekByte() != '"' {
		return l.errf("malformed raw string literal")
	}
	l.advance(1)
	for l.off < len(l.src) {
		if l.src[l.off] == '"' {
			l.advance(1)
			n := 0
			for n < hashes && l.peekByte() == '#' {
				n++
				l.advance(1)
			}
			if n == hashes {
				return nil
			}
			continue
		}
		l.advance(1)
	}
	return l.errf("unterminated raw string literal")
}

// scanCharTail is positioned after the opening quote of a character or
// byte literal.
func (l *lexer) scanCharTail() error {
	for l.off < len(l.src) {
		switch l.src[l.off] {
		case '\\':
			l.advance(2)
		case '\'':
			l.advance(1)
			return nil
		case '\n':
			return l.errf("unterminated character literal")
		default:
			l.advance(1)
		}
	}
	return l.errf("unterminated character literal")
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.off < len(l.src); i++ {
		if l.src[l.off] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.off++
	}
}

func (l *lexer) peekByte() byte {
	return l.peekAt(0)
}

func (l *lexer) peekAt(n int) byte {
	if l.off+n >= len(l.src) {
		return 0
	}
	return l.src[l.off+n]
}

func (l *lexer) errf(format string, args ...any) error {
	return fmt.Errorf("%s:%d:%d: %s", l.file, l.line, l.col, fmt.Sprintf(format, args...))
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isPunctTok(t token, text string) bool {
	return t.kind == tokPunct && t.text == text
}

func isIdentTok(t token, text string) bool {
	return t.kind == tokIdent && t.text == text
}
