package crablint

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// Group classifies how eagerly a rule should be enabled by default.
type Group string

const (
	// GroupRestriction rules forbid things that are legal and often fine.
	// They are strictly opt-in and never enabled by default.
	GroupRestriction Group = "restriction"

	// GroupStyle rules nudge towards conventional spellings.
	GroupStyle Group = "style"
)

// Rule is the metadata of one lint rule.  The rule logic itself lives in
// the analysis package; this record only carries what hosts need for
// registration, enablement and help output.
type Rule struct {
	// Name is the rule's stable identifier, in kebab-case.
	Name string

	// Group decides default enablement; see the Group constants.
	Group Group

	// Doc is a short prose description: what the rule finds and why.
	Doc string

	// Since is the first release of the rule catalogue carrying this rule.
	// Must parse as strict semver; Register panics otherwise.
	Since string
}

var rules = map[string]Rule{}

// Register adds a rule to the catalogue.  Duplicate names and malformed
// Since versions are programmer errors and panic; registration happens in
// package init functions, so both surface at startup.
func Register(r Rule) {
	if r.Name == "" {
		panic("crablint: cannot register a rule without a name")
	}
	if _, dup := rules[r.Name]; dup {
		panic(fmt.Sprintf("crablint: rule %q registered twice", r.Name))
	}
	if _, err := semver.StrictNewVersion(r.Since); err != nil {
		panic(fmt.Sprintf("crablint: rule %q has invalid since-version %q: %v", r.Name, r.Since, err))
	}
	rules[r.Name] = r
}

// Lookup returns the rule registered under the given name.
func Lookup(name string) (Rule, bool) {
	r, ok := rules[name]
	return r, ok
}

// All returns every registered rule, sorted by name.
func All() []Rule {
	result := make([]Rule, 0, len(rules))
	for _, r := range rules {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
