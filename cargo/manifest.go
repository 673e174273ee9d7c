// Package cargo loads the crate-level metadata this tool needs from a
// crate directory: the package name, the declared output kinds, and the
// source files to scan.  It reads Cargo.toml and applies cargo's target
// auto-discovery conventions; it does not resolve dependencies or talk to
// a workspace.
package cargo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/crablint/crablint/analysis"
)

// Manifest is the subset of Cargo.toml this tool reads.
type Manifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lib *LibTarget  `toml:"lib"`
	Bin []BinTarget `toml:"bin"`
}

// LibTarget is the [lib] table.
type LibTarget struct {
	Path      string   `toml:"path"`
	CrateType []string `toml:"crate-type"`
	ProcMacro bool     `toml:"proc-macro"`
}

// BinTarget is one [[bin]] table.
type BinTarget struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Crate is one loaded crate: its name, derived output kinds, and the .rs
// sources discovered under src/.
type Crate struct {
	Dir     string
	Name    string
	Kinds   []analysis.CrateKind
	Sources []string
}

// CrateTypes implements analysis.UnitMeta.
func (c *Crate) CrateTypes() []analysis.CrateKind { return c.Kinds }

// Load reads the manifest of the crate rooted at dir and discovers its
// sources.
func Load(dir string) (*Crate, error) {
	data, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Join(dir, "Cargo.toml"), err)
	}

	sources, err := findSources(dir)
	if err != nil {
		return nil, err
	}

	return &Crate{
		Dir:     dir,
		Name:    m.Package.Name,
		Kinds:   deriveKinds(&m, dir),
		Sources: sources,
	}, nil
}

// deriveKinds derives the declared output kinds following cargo's rules:
// an explicit lib.crate-type wins; lib.proc-macro makes a proc-macro; a
// [lib] table or an auto-discovered src/lib.rs makes the default rlib-style
// library; [[bin]] tables, src/main.rs or src/bin/ sources add a binary.
// A crate can be several of these at once; the result is a deduplicated set.
func deriveKinds(m *Manifest, dir string) []analysis.CrateKind {
	var kinds []analysis.CrateKind
	seen := map[analysis.CrateKind]struct{}{}
	add := func(kind analysis.CrateKind) {
		if _, dup := seen[kind]; dup {
			return
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}

	hasLibKind := false
	if m.Lib != nil {
		if m.Lib.ProcMacro {
			add(analysis.KindProcMacro)
			hasLibKind = true
		}
		for _, ct := range m.Lib.CrateType {
			if kind, ok := parseCrateType(ct); ok {
				add(kind)
				hasLibKind = true
			}
		}
	}
	if !hasLibKind && (m.Lib != nil || fileExists(filepath.Join(dir, "src", "lib.rs"))) {
		add(analysis.KindLib)
	}

	if len(m.Bin) > 0 || fileExists(filepath.Join(dir, "src", "main.rs")) || dirHasSources(filepath.Join(dir, "src", "bin")) {
		add(analysis.KindBin)
	}

	return kinds
}

func parseCrateType(s string) (analysis.CrateKind, bool) {
	switch s {
	case "bin":
		return analysis.KindBin, true
	case "lib":
		return analysis.KindLib, true
	case "rlib":
		return analysis.KindRlib, true
	case "dylib":
		return analysis.KindDylib, true
	case "cdylib":
		return analysis.KindCdylib, true
	case "staticlib":
		return analysis.KindStaticlib, true
	case "proc-macro":
		return analysis.KindProcMacro, true
	}
	return "", false
}

// findSources collects every .rs file under src/, sorted.  A crate without
// a src directory simply has no sources to scan.
func findSources(dir string) ([]string, error) {
	src := filepath.Join(dir, "src")
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil, nil
	}

	var sources []string
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".rs") {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover sources: %w", err)
	}
	sort.Strings(sources)
	return sources, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirHasSources(path string) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".rs") {
			return true
		}
	}
	return false
}
