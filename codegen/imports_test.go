package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestImportsDedup exercises spec.md §8: adding "X::Y::Z" twice yields a
// single entry.
func TestImportsDedup(t *testing.T) {
	im := NewImports("")
	im.Add("example.com/x/y/z", "", nil)
	im.Add("example.com/x/y/z", "", nil)

	list := im.List()
	require.Len(t, list, 1)
	require.Equal(t, "example.com/x/y/z", list[0].Path)
}

// TestImportsMinVersion exercises: adding with version v1 then v2 stores
// min(v1, v2).
func TestImportsMinVersion(t *testing.T) {
	im := NewImports("")
	im.Add("gtk", "1.10", nil)
	im.Add("gtk", "1.2", nil)

	require.Equal(t, "1.2", im.List()[0].MinVersion)

	im2 := NewImports("")
	im2.Add("gtk", "1.2", nil)
	im2.Add("gtk", "1.10", nil)
	require.Equal(t, "1.2", im2.List()[0].MinVersion)
}

// TestImportsFeatureClear exercises: adding with a feature constraint C and
// then without constraint leaves no constraint attached.
func TestImportsFeatureClear(t *testing.T) {
	im := NewImports("")
	im.Add("gtk", "", []string{"v3_24"})
	im.Add("gtk", "", nil)

	require.Nil(t, im.List()[0].Features)
}

func TestImportsStripsSelfPrefix(t *testing.T) {
	im := NewImports("github.com/gtk-rs/gir-go/gen/gtk")
	im.Add("github.com/gtk-rs/gir-go/gen/gtk", "", nil)
	im.Add("github.com/gtk-rs/gir-go/gen/gtk/widget", "", nil)
	im.Add("github.com/gtk-rs/gir-go/gen/gio", "", nil)

	var paths []string
	for _, i := range im.List() {
		paths = append(paths, i.Path)
	}
	require.Equal(t, []string{"github.com/gtk-rs/gir-go/gen/gio", "widget"}, paths)
}
