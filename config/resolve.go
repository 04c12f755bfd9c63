package config

import (
	"log/slog"
	"path"
	"strings"
	"sync"
)

// Resolved is the per-object generation decision spec.md §4/§9's "Config
// lookup" produces: generation status, concurrency tag, derive/rename
// lists, and the cfg condition string, already reconciled for the
// trait/final_type and generate/ignore_builder overlaps.
type Resolved struct {
	Status       Status
	Concurrency  Concurrency
	ForceFinal   bool
	HasForceFinal bool
	IgnoreBuilder bool
	Rename       map[string]string
	Derive       []string
	CfgCondition string
	Members      map[string]Status
}

// Matcher projects the flat []ObjectOverride list from a Config onto
// fully-qualified symbol names (e.g. "Gtk.Widget", "Gtk.Widget::method").
// Lookup supports an exact match or a glob-like "*" suffix pattern, and is
// linear in the number of configured overrides per spec.md §9 ("Matching is
// linear in the number of configured overrides for a symbol — acceptable
// given the inputs").
type Matcher struct {
	cfg *Config

	warned map[string]bool
	mu     sync.Mutex
}

// NewMatcher wraps cfg for per-symbol lookups.
func NewMatcher(cfg *Config) *Matcher {
	return &Matcher{cfg: cfg, warned: make(map[string]bool)}
}

// Resolve looks up the override for a fully qualified symbol name, applying
// the trait/final_type and generate/ignore_builder precedence resolved by
// this reimplementation (see DESIGN.md's Open Question entries):
//
//   - final_type is the single source of truth for pass 7's forced decision.
//     trait is accepted for backward compatibility but logged once per
//     symbol and ignored when final_type is also present; when final_type is
//     absent, trait's negation is projected onto ForceFinal (`trait = false`
//     meant "treat as final" in the original surface).
//   - generate is authoritative over ignore_builder: ignore_builder is only
//     honored when generate is present; a bare ignore_builder with no
//     generate list is rejected (logged, not applied).
func (m *Matcher) Resolve(symbol string) Resolved {
	ov, ok := m.find(symbol)
	r := Resolved{Status: StatusGenerate, Members: map[string]Status{}}
	if !ok {
		return r
	}
	if ov.Status != "" {
		r.Status = ov.Status
	}
	if ov.Concurrency != "" {
		r.Concurrency = ov.Concurrency
	}
	r.Rename = ov.Rename
	r.Derive = ov.Derive
	r.CfgCondition = ov.CfgCondition

	switch {
	case ov.FinalType != nil:
		r.ForceFinal = *ov.FinalType
		r.HasForceFinal = true
		if ov.Trait != nil {
			m.warnOnce(symbol, "trait", "trait is deprecated and ignored because final_type is also set")
		}
	case ov.Trait != nil:
		m.warnOnce(symbol, "trait", "trait is deprecated; use final_type instead")
		r.ForceFinal = !*ov.Trait
		r.HasForceFinal = true
	}

	if ov.HasGenerate {
		if ov.IgnoreBuilder != nil {
			r.IgnoreBuilder = *ov.IgnoreBuilder
		}
	} else if ov.IgnoreBuilder != nil {
		m.warnOnce(symbol, "ignore_builder", "ignore_builder has no effect without generate")
	}

	for _, mo := range ov.Members {
		r.Members[mo.Name] = mo.Status
	}
	return r
}

func (m *Matcher) warnOnce(symbol, key, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	full := symbol + "#" + key
	if m.warned[full] {
		return
	}
	m.warned[full] = true
	slog.Warn("config: deprecated option", "symbol", symbol, "option", key, "detail", msg)
}

// find returns the first matching ObjectOverride for symbol, preferring an
// exact match over a glob match, scanning the configured list in order.
func (m *Matcher) find(symbol string) (ObjectOverride, bool) {
	var globMatch *ObjectOverride
	for i := range m.cfg.Objects {
		ov := &m.cfg.Objects[i]
		if ov.Name == symbol {
			return *ov, true
		}
		if strings.Contains(ov.Name, "*") && globMatch == nil && matchGlob(ov.Name, symbol) {
			globMatch = ov
		}
	}
	if globMatch != nil {
		return *globMatch, true
	}
	return ObjectOverride{}, false
}

// matchGlob implements the "glob-like patterns" of spec.md §9 using
// path.Match: '*' matches any run of characters other than '/', so it also
// spans the '.' separators of a symbol name. find only tries names that
// contain '*' as patterns, so a '?' takes effect only alongside a '*'.
func matchGlob(pattern, symbol string) bool {
	ok, err := path.Match(pattern, symbol)
	return err == nil && ok
}
