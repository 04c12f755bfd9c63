package analysis

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// TestAliasPoolDrawOrder exercises spec.md §8's bounds-alias property
// directly: after AddFor succeeds k times with distinct parameter names and
// bound type NoWrapper, exactly k aliases are allocated, drawn in order
// P, Q, R, ....
func TestAliasPoolDrawOrder(t *testing.T) {
	b := NewBounds("a_func")
	want := []string{"P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z"}
	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		bound, err := b.AddFor(name, "gpointer", BoundNoWrapper)
		require.NoError(t, err)
		require.Equal(t, want[i], bound.Alias)
	}
	require.Equal(t, 0, b.Remaining())

	_, err := b.AddFor("l", "gpointer", BoundNoWrapper)
	require.Error(t, err)
	var exhausted *ErrAliasPoolExhausted
	require.ErrorAs(t, err, &exhausted)
}

// TestAliasPoolIdempotent checks the "idempotent AddFor semantics" property:
// re-adding the same parameter name never consumes a second alias.
func TestAliasPoolIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("AddFor is idempotent per parameter name", prop.ForAll(
		func(name string, repeats int) bool {
			b := NewBounds("f")
			var first *Bound
			for i := 0; i < repeats+1; i++ {
				bound, err := b.AddFor(name, "gint", BoundIsA)
				if err != nil {
					return false
				}
				if first == nil {
					first = bound
				} else if bound.Alias != first.Alias {
					return false
				}
			}
			return len(b.List()) == 1
		},
		gen.Identifier(),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}
