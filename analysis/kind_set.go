package analysis

import (
	"fmt"
	"sort"
	"strings"
)

type crateKindSet map[CrateKind]struct{}

func (set crateKindSet) String() string {
	return fmt.Sprintf("set[%s]", strings.Join(set.strings(), " "))
}

// kindSet creates a set using the provided kinds, removing duplicates.
func kindSet(kinds ...CrateKind) crateKindSet {
	set := make(crateKindSet, len(kinds))
	for _, kind := range kinds {
		set[kind] = struct{}{}
	}
	return set
}

// has reports whether the set contains the given kind.
func (set crateKindSet) has(kind CrateKind) bool {
	_, ok := set[kind]
	return ok
}

// slice creates a sorted slice containing all kinds of the given set.
// The set is not modified.
func (set crateKindSet) slice() []CrateKind {
	slice := make([]CrateKind, 0, len(set))
	for kind := range set {
		slice = append(slice, kind)
	}
	sort.Slice(slice, func(i, j int) bool { return slice[i] < slice[j] })
	return slice
}

func (set crateKindSet) strings() []string {
	kinds := set.slice()
	strs := make([]string, len(kinds))
	for i, kind := range kinds {
		strs[i] = string(kind)
	}
	return strs
}
