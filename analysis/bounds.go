package analysis

import "fmt"

// BoundKind classifies how a function parameter's generic alias is
// constrained, per spec.md §4.4.
type BoundKind int

const (
	BoundIsA BoundKind = iota
	BoundAsRef
	BoundIntoOption
	BoundIntoOptionRef
	BoundIntoOptionIsA
	BoundNoWrapper
)

func (b BoundKind) String() string {
	switch b {
	case BoundIsA:
		return "IsA"
	case BoundAsRef:
		return "AsRef"
	case BoundIntoOption:
		return "IntoOption"
	case BoundIntoOptionRef:
		return "IntoOptionRef"
	case BoundIntoOptionIsA:
		return "IntoOptionIsA"
	case BoundNoWrapper:
		return "NoWrapper"
	default:
		return "?"
	}
}

// Bound is one parameter's generic constraint record.
type Bound struct {
	ParamName string
	Alias     string
	TypeStr   string
	Kind      BoundKind
}

// aliasAlphabet is the deterministic alias pool P, Q, R, ..., Z of spec.md
// §4.4/§9 ("Bounds pool as a deterministic generator"). Go has no lifetime
// annotations, so unlike the original's paired alias+lifetime pools, only
// the alias pool is drawn from; ctxLifetime below is recorded but never
// rendered, per SPEC_FULL.md §4.4's Go generalization.
var aliasAlphabet = []string{"P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z"}

// ctxLifetime is the single marker standing in for the original's one
// lifetime pool ('a). Go's garbage collector makes it unobservable at
// emission time; it exists only so the analyzer's bookkeeping mirrors the
// original shape for anyone cross-referencing the two designs.
const ctxLifetime = "ctx"

// ErrAliasPoolExhausted is returned by AddFor once all eleven aliases are
// reserved; per spec.md §4.4 this downgrades the function's generation to
// "commented" rather than aborting the whole run.
type ErrAliasPoolExhausted struct {
	Function string
}

func (e *ErrAliasPoolExhausted) Error() string {
	return fmt.Sprintf("analysis: alias pool exhausted analyzing function %q", e.Function)
}

// Bounds accumulates the Bound set for one function, per spec.md §4.4.
type Bounds struct {
	function string
	used     []string
	byParam  map[string]*Bound
	order    []string // param names in AddFor call order, for deterministic output
}

// NewBounds returns an empty Bounds accumulator for the named function,
// used only in diagnostics and the exhaustion error.
func NewBounds(function string) *Bounds {
	return &Bounds{function: function, byParam: make(map[string]*Bound)}
}

// Lifetime returns the single lifetime marker, always ctxLifetime since Go
// has no borrow-checked lifetimes to distinguish.
func (b *Bounds) Lifetime() string { return ctxLifetime }

// AddFor reserves (or returns the already-reserved) alias for paramName,
// idempotent per parameter name as required by spec.md §4.4. Reserving a
// fresh alias with none left returns *ErrAliasPoolExhausted.
func (b *Bounds) AddFor(paramName, typeStr string, kind BoundKind) (*Bound, error) {
	if existing, ok := b.byParam[paramName]; ok {
		return existing, nil
	}
	if len(b.used) >= len(aliasAlphabet) {
		return nil, &ErrAliasPoolExhausted{Function: b.function}
	}
	alias := aliasAlphabet[len(b.used)]
	b.used = append(b.used, alias)
	bound := &Bound{ParamName: paramName, Alias: alias, TypeStr: typeStr, Kind: kind}
	b.byParam[paramName] = bound
	b.order = append(b.order, paramName)
	return bound, nil
}

// List returns every reserved Bound in AddFor call order — the order the
// testable property in spec.md §8 asserts on ("drawn in order P, Q, R, …").
func (b *Bounds) List() []*Bound {
	out := make([]*Bound, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.byParam[name])
	}
	return out
}

// Remaining reports how many aliases are still free.
func (b *Bounds) Remaining() int { return len(aliasAlphabet) - len(b.used) }
