package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileRenderIncludesBannerAndPackage(t *testing.T) {
	f := NewFile("gtk/widget.go", "gtk", "github.com/gtk-rs/gir-go-out", "gir-go")
	f.AddSection(Section{Name: "body", Body: CustomChunk("type Widget struct{}\n")})
	out := f.Render()
	require.Contains(t, out, "Code generated by gir-go")
	require.Contains(t, out, "package gtk")
	require.Contains(t, out, "type Widget struct{}")
}

func TestFileRenderSortsImports(t *testing.T) {
	f := NewFile("gtk/widget.go", "gtk", "github.com/gtk-rs/gir-go-out", "gir-go")
	f.Imports.Add("unsafe", "", nil)
	f.Imports.Add("context", "", nil)
	out := f.Render()
	ctxIdx := indexOf(out, "\"context\"")
	unsafeIdx := indexOf(out, "\"unsafe\"")
	require.True(t, ctxIdx >= 0 && unsafeIdx >= 0 && ctxIdx < unsafeIdx)
}

func TestSymbolTableRegisterAndLookup(t *testing.T) {
	st := NewSymbolTable()
	st.Register("Gtk.Widget", "github.com/gtk-rs/gir-go-out/gtk.Widget")
	got, ok := st.Lookup("Gtk.Widget")
	require.True(t, ok)
	require.Equal(t, "github.com/gtk-rs/gir-go-out/gtk.Widget", got)

	_, ok = st.Lookup("Gtk.Missing")
	require.False(t, ok)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
