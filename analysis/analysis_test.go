package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtk-rs/gir-go/model"
)

func newTestLib(t *testing.T) *model.Library {
	t.Helper()
	return model.NewLibrary()
}

// TestArrayLengthDetection exercises spec.md §8 scenario 2: a function
// a_foo(const char* name, gsize name_len) with name_len detected as the
// length of name.
func TestArrayLengthDetection(t *testing.T) {
	lib := newTestLib(t)
	utf8, _ := lib.Internal().FindByName("Utf8")
	size, _ := lib.Internal().FindByName("Size")

	params := []model.Parameter{
		model.NewParameter("name", utf8),
		model.NewParameter("name_len", size),
	}
	DetectArrayLengths(lib, params, nil)

	require.True(t, params[0].HasArrayLength())
	require.Equal(t, 1, params[0].ArrayLength)
}

// TestArrayLengthOverride exercises the config override path: length_of
// forces a specific association regardless of naming/position.
func TestArrayLengthOverride(t *testing.T) {
	lib := newTestLib(t)
	utf8, _ := lib.Internal().FindByName("Utf8")
	int32, _ := lib.Internal().FindByName("Int32")

	params := []model.Parameter{
		model.NewParameter("array", utf8),
		model.NewParameter("n", int32),
	}
	DetectArrayLengths(lib, params, map[string]LengthOverride{
		"n": {LengthOf: "array"},
	})

	require.True(t, params[0].HasArrayLength())
	require.Equal(t, 1, params[0].ArrayLength)
}

// TestDetectAsync exercises spec.md §8 scenario 6: an async function with a
// matching *_finish companion.
func TestDetectAsync(t *testing.T) {
	lib := newTestLib(t)
	ns := lib.EnsureNamespace("Sample")
	int32, _ := lib.Internal().FindByName("Int32")
	errType, _ := lib.Internal().FindByName("Unsupported")

	cbType := ns.Append(model.Type{Kind: model.KindFunction, Name: "AsyncReadyCallback"})

	finishFn := &model.Function{
		Name: "a_do_finish",
		Parameters: []model.Parameter{
			model.NewParameter("res", int32),
			func() model.Parameter { p := model.NewParameter("out", int32); p.Direction = model.DirOut; return p }(),
			func() model.Parameter { p := model.NewParameter("error", errType); p.IsError = true; p.Direction = model.DirOut; return p }(),
		},
	}
	finishID := ns.Append(model.Type{Kind: model.KindFunction, Name: "a_do_finish", FunctionInfo: &model.FunctionType{Function: *finishFn}})

	idx := IndexFinishFunctions(lib, ns)
	require.Equal(t, finishID, idx["a_do"])

	syncFn := &model.Function{
		Name: "a_do",
		Parameters: []model.Parameter{
			model.NewParameter("callback", cbType),
			model.NewParameter("user_data", int32),
		},
	}
	syncFn.Parameters[0].Closure = 1

	info, ok := DetectAsync(lib, syncFn, idx)
	require.True(t, ok)
	require.Equal(t, finishID, info.FinishFunc)
	require.Equal(t, 1, info.UserDataIndex)
	require.Len(t, info.SuccessTypes, 1)
}

func TestToStrRewrite(t *testing.T) {
	lib := newTestLib(t)
	utf8, _ := lib.Internal().FindByName("Utf8")
	int32, _ := lib.Internal().FindByName("Int32")

	fn := &model.Function{
		Name:       "to_string",
		Parameters: []model.Parameter{model.NewParameter("self", int32)},
		Return:     model.NewParameter("", utf8),
	}
	fn.MarkInstanceParameter()

	name, isDisplay, matched := ToStrRewrite(lib, fn)
	require.True(t, matched)
	require.Equal(t, "to_str", name)
	require.True(t, isDisplay)
}
