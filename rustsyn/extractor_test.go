package rustsyn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extractorSrc = `use std::error::Error;
use anyhow::Result as AnyResult;

pub fn direct() -> Result<(), anyhow::Error> {
    todo!()
}

pub fn aliased() -> anyhow::Result<()> {
    direct()
}

pub fn imported_alias() -> AnyResult<u32> {
    todo!()
}

pub fn eyre_style() -> eyre::Result<()> {
    todo!()
}

pub fn boxed() -> Result<(), Box<dyn Error + Send>> {
    todo!()
}

pub fn stringly() -> Result<u32, String> {
    todo!()
}

pub fn structured() -> Result<(), crate::MyError> {
    todo!()
}

pub fn custom_err_on_alias() -> anyhow::Result<(), crate::MyError> {
    todo!()
}

pub fn unit() {}

pub fn not_result() -> String {
    String::new()
}

pub fn one_arg_result() -> Result<u32> {
    todo!()
}
`

func parseFixture(t *testing.T) map[string]*FnSig {
	t.Helper()
	file, err := ParseFile("src/lib.rs", []byte(extractorSrc))
	require.NoError(t, err)
	fns := map[string]*FnSig{}
	for _, fn := range file.Fns {
		fns[fn.Name()] = fn
	}
	return fns
}

func TestResultErrTypeRecognition(t *testing.T) {
	fns := parseFixture(t)

	tests := []struct {
		fn    string
		ok    bool
		shape string // TypeShape rendering, checked only when ok
	}{
		{"direct", true, "anyhow::Error"},
		{"aliased", true, "anyhow::Error"},
		{"imported_alias", true, "anyhow::Error"},
		{"eyre_style", true, "eyre::Report"},
		{"boxed", true, "Box<dyn std::error::Error + Send>"},
		{"stringly", true, "String"},
		{"structured", true, "crate::MyError"},
		{"custom_err_on_alias", true, "crate::MyError"},
		{"unit", false, ""},
		{"not_result", false, ""},
		{"one_arg_result", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			fn, found := fns[tt.fn]
			require.True(t, found, "fixture function %s not scanned", tt.fn)

			_, ty, ok := Extractor{}.ResultErrType(fn)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.shape, ty.String())
			}
		})
	}
}

func TestResultErrTypeSpans(t *testing.T) {
	fns := parseFixture(t)
	lines := strings.Split(extractorSrc, "\n")

	lineCol := func(needle string) (int, int) {
		for i, line := range lines {
			if idx := strings.Index(line, needle); idx >= 0 {
				return i + 1, idx + 1
			}
		}
		t.Fatalf("%q not found in fixture source", needle)
		return 0, 0
	}

	// The span anchors at the failure-type annotation, not the whole
	// return type.
	span, _, ok := Extractor{}.ResultErrType(fns["direct"])
	require.True(t, ok)
	line, col := lineCol("anyhow::Error")
	assert.Equal(t, "src/lib.rs", span.File)
	assert.Equal(t, line, span.Line)
	assert.Equal(t, col, span.Column)
	assert.Equal(t, col+len("anyhow::Error"), span.EndColumn)

	// An alias has no failure-type spelling of its own; the span falls
	// back to the whole return type annotation.
	span, _, ok = Extractor{}.ResultErrType(fns["aliased"])
	require.True(t, ok)
	line, col = lineCol("anyhow::Result<()>")
	assert.Equal(t, line, span.Line)
	assert.Equal(t, col, span.Column)
}

func TestExtractorIgnoresForeignDecls(t *testing.T) {
	_, _, ok := Extractor{}.ResultErrType(otherDecl{})
	assert.False(t, ok)
}

type otherDecl struct{}

func (otherDecl) Name() string { return "other" }
