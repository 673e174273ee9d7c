package rustsyn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/crablint/crablint"
)

func TestCollectUses(t *testing.T) {
	src := `
use std::error::Error;
use anyhow::Result as AnyResult;
use std::fmt::{self, Debug, Display as Disp};
use std::collections::*;
pub use eyre::Report;
use serde::{de::DeserializeOwned, Serialize};
`
	uses := collectUses(mustLex(t, src))

	want := UseMap{
		"Error":            {"std", "error", "Error"},
		"AnyResult":        {"anyhow", "Result"},
		"fmt":              {"std", "fmt"},
		"Debug":            {"std", "fmt", "Debug"},
		"Disp":             {"std", "fmt", "Display"},
		"Report":           {"eyre", "Report"},
		"DeserializeOwned": {"serde", "de", "DeserializeOwned"},
		"Serialize":        {"serde", "Serialize"},
	}
	if diff := cmp.Diff(want, uses); diff != "" {
		t.Errorf("use-map mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveKeepsPathTails(t *testing.T) {
	uses := UseMap{"ah": {"anyhow"}}
	assert.Equal(t, []string{"anyhow", "Result"}, uses.resolve([]string{"ah", "Result"}))
	assert.Equal(t, []string{"unknown", "Path"}, uses.resolve([]string{"unknown", "Path"}))

	var none UseMap
	assert.Equal(t, []string{"String"}, none.resolve([]string{"String"}))
}

func TestTraitQueryIdentity(t *testing.T) {
	q := TraitQuery{}
	assert.True(t, q.IsErrorTrait(crablint.TraitRef{Path: []string{"std", "error", "Error"}}))
	assert.True(t, q.IsErrorTrait(crablint.TraitRef{Path: []string{"core", "error", "Error"}}))

	// Not identity matches: local traits named Error, marker traits, or
	// anything merely structurally error-like.
	assert.False(t, q.IsErrorTrait(crablint.TraitRef{Path: []string{"Error"}}))
	assert.False(t, q.IsErrorTrait(crablint.TraitRef{Path: []string{"crate", "error", "Error"}}))
	assert.False(t, q.IsErrorTrait(crablint.TraitRef{Path: []string{"Send"}}))
}
