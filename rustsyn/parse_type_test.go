package rustsyn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/crablint/crablint"
)

func mustLex(t *testing.T, src string) []token {
	t.Helper()
	toks, err := lex("test.rs", []byte(src))
	require.NoError(t, err)
	return toks
}

func strPrim() crablint.TypeShape {
	return crablint.TypeShape{Kind: crablint.StringPrim}
}

func boxOf(elem crablint.TypeShape) crablint.TypeShape {
	return crablint.TypeShape{Kind: crablint.Box, Elem: &elem}
}

func dynOf(paths ...[]string) crablint.TypeShape {
	refs := make([]crablint.TraitRef, len(paths))
	for i, p := range paths {
		refs[i] = crablint.TraitRef{Path: p}
	}
	return crablint.TypeShape{Kind: crablint.TraitObject, Traits: refs}
}

func named(path ...string) crablint.TypeShape {
	return crablint.TypeShape{Kind: crablint.Named, Path: path}
}

func TestParseTypeShape(t *testing.T) {
	stdError := []string{"std", "error", "Error"}
	coreError := []string{"core", "error", "Error"}
	errorUses := UseMap{"Error": stdError}

	tests := []struct {
		src  string
		uses UseMap
		want crablint.TypeShape
	}{
		{src: "String", want: strPrim()},
		{src: "std::string::String", want: strPrim()},
		{src: "alloc::string::String", want: strPrim()},

		{src: "Box<dyn std::error::Error>", want: boxOf(dynOf(stdError))},
		{src: "std::boxed::Box<dyn core::error::Error>", want: boxOf(dynOf(coreError))},
		{
			src:  "Box<dyn Error + Send + Sync + 'static>",
			uses: errorUses,
			want: boxOf(dynOf(stdError, []string{"Send"}, []string{"Sync"})),
		},
		{
			src:  "Box<(dyn Error + 'a)>",
			uses: errorUses,
			want: boxOf(dynOf(stdError)),
		},
		{src: "Box<dyn Fn() -> u8 + Send>", want: boxOf(dynOf([]string{"Fn"}, []string{"Send"}))},
		{src: "Box<MyError>", want: boxOf(named("MyError"))},
		{src: "Box<String>", want: boxOf(strPrim())},

		{src: "anyhow::Error", want: named("anyhow", "Error")},
		{src: "eyre::Report", want: named("eyre", "Report")},
		{src: "Error", uses: errorUses, want: named("std", "error", "Error")},
		{
			src: "Vec<String>",
			want: crablint.TypeShape{
				Kind: crablint.Named,
				Path: []string{"Vec"},
				Args: []crablint.TypeShape{strPrim()},
			},
		},
		{src: "dyn Iterator<Item = u8>", want: dynOf([]string{"Iterator"})},

		// Not modelled structurally: always Opaque, never a match.
		{src: "&str", want: crablint.TypeShape{}},
		{src: "&'a mut String", want: crablint.TypeShape{}},
		{src: "()", want: crablint.TypeShape{}},
		{src: "(u8, String)", want: crablint.TypeShape{}},
		{src: "[u8; 4]", want: crablint.TypeShape{}},
		{src: "*const u8", want: crablint.TypeShape{}},
		{src: "impl std::error::Error", want: crablint.TypeShape{}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := parseTypeShape(mustLex(t, tt.src), tt.uses)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("shape mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestShapeStringRendering(t *testing.T) {
	ty := boxOf(dynOf([]string{"std", "error", "Error"}, []string{"Send"}))
	require.Equal(t, "Box<dyn std::error::Error + Send>", ty.String())
}
