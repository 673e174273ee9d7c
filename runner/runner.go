// Package runner is the host side of the linter: it loads a crate, drives
// the rule engine over its sources in a single pass, and collects the
// diagnostics.  All enablement policy lives here; the rules themselves
// don't know whether they are turned on.
package runner

import (
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/crablint/crablint"
	"github.com/crablint/crablint/analysis"
	"github.com/crablint/crablint/cargo"
	"github.com/crablint/crablint/rustsyn"
)

// Options configures one LintCrate run.
type Options struct {
	// Config decides which rules run.  A nil config runs nothing.
	Config *Config

	// Log receives debug output.  Nil means silent.
	Log *zap.SugaredLogger
}

// LintCrate runs every enabled rule over the crate rooted at dir and
// returns the diagnostics sorted by source position.  Each call builds a
// fresh, crate-scoped engine; runs over different crates share nothing.
func LintCrate(dir string, opts Options) ([]crablint.Diagnostic, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if !opts.Config.Enabled(analysis.RuleStructuredErrors.Name) {
		log.Debugf("rule %s not enabled, skipping %s", analysis.RuleStructuredErrors.Name, dir)
		return nil, nil
	}

	crate, err := cargo.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load crate %s: %w", dir, err)
	}

	sink := &crablint.CollectSink{}
	lint := analysis.NewCrateLint(rustsyn.Extractor{}, rustsyn.TraitQuery{}, sink)

	// Classification happens exactly once, before any function is visited.
	lint.CheckCrate(crate)
	log.Debugf("crate %s: kinds=%v library=%v", crate.Name, crate.Kinds, lint.IsLibrary())

	for _, path := range crate.Sources {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}
		file, err := rustsyn.ParseFile(path, data)
		if err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		for _, fn := range file.Fns {
			if !fn.HasBody() {
				// Bodiless declarations (required trait methods) are not
				// visited, matching a compiler's function traversal.
				continue
			}
			lint.CheckFn(fn)
		}
		log.Debugf("scanned %s: %d fn declarations", path, len(file.Fns))
	}

	diags := sink.Diagnostics
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Span, diags[j].Span
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return diags, nil
}

// Render writes diagnostics in the conventional file:line:col form, with
// the suggestion note indented below its finding.
func Render(w io.Writer, diags []crablint.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s (%s)\n", d.Span, d.Message, d.Rule)
		if d.Note != "" {
			fmt.Fprintf(w, "\tnote: %s\n", d.Note)
		}
	}
}
