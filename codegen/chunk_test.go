package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkFfiCallFlatten(t *testing.T) {
	c := FfiCallChunk("gtk_widget_show", "self.ptr")
	require.Equal(t, "gtk_widget_show(self.ptr)", c.Flatten())
}

func TestChunkLetFlatten(t *testing.T) {
	c := LetChunk("ret", FfiCallChunk("gtk_widget_get_name", "self.ptr"))
	require.Equal(t, "var ret = gtk_widget_get_name(self.ptr)\n", c.Flatten())
}

func TestChunkUnsafeWrapsFfiCall(t *testing.T) {
	c := UnsafeChunk(FfiCallChunk("gtk_widget_show", "self.ptr"))
	require.Contains(t, c.Flatten(), "gtk_widget_show(self.ptr)")
}

func TestChunkTupleFlatten(t *testing.T) {
	c := TupleChunk(CustomChunk("a"), CustomChunk("b"))
	require.Equal(t, "(a, b)", c.Flatten())
}

func TestChunkExternCFuncFlatten(t *testing.T) {
	c := ExternCFuncChunk("goCallback", "func goCallback(data unsafe.Pointer)", CustomChunk("doStuff()"))
	out := c.Flatten()
	require.Contains(t, out, "//export goCallback")
	require.Contains(t, out, "func goCallback(data unsafe.Pointer) {")
	require.Contains(t, out, "doStuff()")
}

func TestChunkChunksFlattenOnePerLine(t *testing.T) {
	c := ChunksChunk(CustomChunk("a"), CustomChunk("b"))
	require.Equal(t, "a\nb\n", c.Flatten())
}

func TestChunkNilFlattenIsEmpty(t *testing.T) {
	var c *Chunk
	require.Equal(t, "", c.Flatten())
}
