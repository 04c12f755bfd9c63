// Package codegen implements spec.md §4.7: the shared import tracker, the
// symbol table of emitted paths, and the per-kind emitters (in the
// emitters subpackage) that turn analyzer Info values into Go source text
// using the chunk-tree IR in chunk.go and the File/Section types in file.go.
package codegen

import (
	"sort"
	"strings"
)

// Import is one tracked import: a path plus the optional version/feature
// conditions gating it, per spec.md §4.7 ("merges version conditions (min
// of multiple), and merges feature-flag constraints (union of sets, cleared
// when any unconditional import exists)").
type Import struct {
	Path string
	// MinVersion is the lowest version string seen across every Add call
	// for this path, or "" if never constrained.
	MinVersion string
	// Features is the union of feature-flag sets seen, or nil once any
	// unconditional (no feature gate) Add has occurred for this path.
	Features map[string]bool
	// unconditional is set the first time Add is called for this path with
	// no feature gate, and latches: once true, later feature-gated Adds no
	// longer reinstate a constraint.
	unconditional bool
}

// Imports is the shared tracker grounded on
// codegen/shared/import_utils.go:GatherAttributeImports, generalized from
// Goa's user-type-locator imports (one entry per external user type
// referenced by an attribute tree) to GIR cross-namespace imports (one
// entry per foreign namespace a symbol's signature references).
type Imports struct {
	selfPrefix string // stripped from any path equal to or under it
	byPath     map[string]*Import
}

// NewImports returns a tracker that strips selfPrefix from any path added
// under it (the "strips self-crate prefixes" behavior of spec.md §4.7).
func NewImports(selfPrefix string) *Imports {
	return &Imports{selfPrefix: selfPrefix, byPath: make(map[string]*Import)}
}

// Add records one use of path, optionally gated by minVersion and/or a
// feature-flag set. Adding the same path twice yields a single entry.
func (im *Imports) Add(path string, minVersion string, features []string) {
	path = im.strip(path)
	if path == "" {
		return
	}
	entry, ok := im.byPath[path]
	if !ok {
		entry = &Import{Path: path}
		im.byPath[path] = entry
	}

	if minVersion != "" {
		if entry.MinVersion == "" || lessVersion(minVersion, entry.MinVersion) {
			entry.MinVersion = minVersion
		}
	}

	if len(features) == 0 {
		// An unconditional import clears any previously accumulated
		// feature constraint — spec.md §4.7's "cleared when any
		// unconditional import exists" — and latches clear.
		entry.Features = nil
		entry.unconditional = true
		return
	}
	if entry.unconditional {
		return
	}
	if entry.Features == nil {
		entry.Features = make(map[string]bool)
	}
	for _, f := range features {
		entry.Features[f] = true
	}
}

func (im *Imports) strip(path string) string {
	if im.selfPrefix == "" {
		return path
	}
	if path == im.selfPrefix {
		return ""
	}
	return strings.TrimPrefix(path, im.selfPrefix+"/")
}

// List returns every tracked import sorted by path, for deterministic
// output across runs.
func (im *Imports) List() []*Import {
	paths := make([]string, 0, len(im.byPath))
	for p := range im.byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([]*Import, 0, len(paths))
	for _, p := range paths {
		out = append(out, im.byPath[p])
	}
	return out
}

// lessVersion compares two dotted version strings ("1.2" < "1.10")
// numerically per component rather than lexicographically.
func lessVersion(a, b string) bool {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var av, bv int
		if i < len(as) {
			av = atoiLoose(as[i])
		}
		if i < len(bs) {
			bv = atoiLoose(bs[i])
		}
		if av != bv {
			return av < bv
		}
	}
	return false
}

func atoiLoose(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}
