package cache

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashFilesStableRegardlessOfMapOrder(t *testing.T) {
	files1 := map[string]io.Reader{
		"Gtk-4.0.gir": strings.NewReader("gtk content"),
		"Gio-2.0.gir": strings.NewReader("gio content"),
	}
	files2 := map[string]io.Reader{
		"Gio-2.0.gir": strings.NewReader("gio content"),
		"Gtk-4.0.gir": strings.NewReader("gtk content"),
	}

	h1, err := HashFiles(files1)
	require.NoError(t, err)
	h2, err := HashFiles(files2)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestHashFilesDiffersOnContentChange(t *testing.T) {
	files1 := map[string]io.Reader{"a.gir": strings.NewReader("one")}
	files2 := map[string]io.Reader{"a.gir": strings.NewReader("two")}

	h1, err := HashFiles(files1)
	require.NoError(t, err)
	h2, err := HashFiles(files2)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
