package cargo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crablint/crablint/analysis"
)

// writeCrate materializes a crate directory from a path->content map.
func writeCrate(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

const packageStanza = "[package]\nname = \"fixture\"\nversion = \"0.1.0\"\n"

func TestLoadDefaultLibrary(t *testing.T) {
	dir := writeCrate(t, map[string]string{
		"Cargo.toml": packageStanza,
		"src/lib.rs": "pub fn f() {}\n",
	})

	crate, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "fixture", crate.Name)
	assert.Equal(t, []analysis.CrateKind{analysis.KindLib}, crate.Kinds)
	assert.Equal(t, []string{filepath.Join(dir, "src", "lib.rs")}, crate.Sources)
}

func TestLoadBinaryOnly(t *testing.T) {
	dir := writeCrate(t, map[string]string{
		"Cargo.toml":  packageStanza,
		"src/main.rs": "fn main() {}\n",
	})

	crate, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []analysis.CrateKind{analysis.KindBin}, crate.Kinds)
}

func TestLoadLibraryAndBinary(t *testing.T) {
	dir := writeCrate(t, map[string]string{
		"Cargo.toml":      packageStanza,
		"src/lib.rs":      "pub fn f() {}\n",
		"src/main.rs":     "fn main() {}\n",
		"src/bin/tool.rs": "fn main() {}\n",
	})

	crate, err := Load(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []analysis.CrateKind{analysis.KindLib, analysis.KindBin}, crate.Kinds)
	assert.Len(t, crate.Sources, 3)
}

func TestLoadExplicitCrateTypes(t *testing.T) {
	dir := writeCrate(t, map[string]string{
		"Cargo.toml": packageStanza + "\n[lib]\ncrate-type = [\"cdylib\", \"staticlib\"]\n",
		"src/lib.rs": "pub fn f() {}\n",
	})

	crate, err := Load(dir)
	require.NoError(t, err)
	// An explicit crate-type list replaces the default lib kind.
	assert.Equal(t, []analysis.CrateKind{analysis.KindCdylib, analysis.KindStaticlib}, crate.Kinds)
}

func TestLoadProcMacro(t *testing.T) {
	dir := writeCrate(t, map[string]string{
		"Cargo.toml": packageStanza + "\n[lib]\nproc-macro = true\n",
		"src/lib.rs": "pub fn f() {}\n",
	})

	crate, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []analysis.CrateKind{analysis.KindProcMacro}, crate.Kinds)
}

func TestLoadBinTableWithoutMain(t *testing.T) {
	dir := writeCrate(t, map[string]string{
		"Cargo.toml":      packageStanza + "\n[[bin]]\nname = \"tool\"\npath = \"src/tool.rs\"\n",
		"src/tool.rs":     "fn main() {}\n",
		"src/util/mod.rs": "pub fn helper() {}\n",
	})

	crate, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []analysis.CrateKind{analysis.KindBin}, crate.Kinds)
	// Source discovery walks nested module directories too, sorted.
	assert.Equal(t, []string{
		filepath.Join(dir, "src", "tool.rs"),
		filepath.Join(dir, "src", "util", "mod.rs"),
	}, crate.Sources)
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestLoadMalformedManifest(t *testing.T) {
	dir := writeCrate(t, map[string]string{"Cargo.toml": "[package\nname ="})
	_, err := Load(dir)
	require.Error(t, err)
}
