package analyzers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtk-rs/gir-go/analysis"
	"github.com/gtk-rs/gir-go/config"
	"github.com/gtk-rs/gir-go/model"
)

func newCtx(t *testing.T, lib *model.Library) *Context {
	t.Helper()
	return &Context{Lib: lib, Matcher: config.NewMatcher(&config.Config{})}
}

// TestAnalyzeClassMethod exercises spec.md §8 scenario 1: class A with
// method a_method(self, int x) yields one Method with two transformations,
// one for the instance parameter and one for x.
func TestAnalyzeClassMethod(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	int32, _ := lib.Internal().FindByName("Int32")

	fn := model.Function{Name: "method", CIdentifier: "sample_a_a_method"}
	fn.Parameters = []model.Parameter{
		model.NewParameter("self", model.TypeID{}), // placeholder instance
		model.NewParameter("x", int32),
	}
	fn.MarkInstanceParameter()
	fnID := ns.Append(model.Type{Kind: model.KindFunction, Name: "method", FunctionInfo: &model.FunctionType{Function: fn}})

	classID := ns.Stub("A")
	ns.Define(classID.LocalID, model.Type{Kind: model.KindClass, Name: "A", Functions: []model.TypeID{fnID}, HasClassRecord: true})

	ctx := newCtx(t, lib)
	info, err := AnalyzeClass(ctx, classID)
	require.NoError(t, err)
	require.Len(t, info.Methods, 1)
	require.Equal(t, "method", info.Methods[0].Name)
	require.Len(t, info.Methods[0].Transforms, 2)
}

func TestAnalyzeClassRespectsIgnoreStatus(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	classID := ns.Stub("Hidden")
	ns.Define(classID.LocalID, model.Type{Kind: model.KindClass, Name: "Hidden"})

	cfg := &config.Config{Objects: []config.ObjectOverride{{Name: "Sample.Hidden", Status: config.StatusIgnore}}}
	ctx := &Context{Lib: lib, Matcher: config.NewMatcher(cfg)}

	info, err := AnalyzeClass(ctx, classID)
	require.NoError(t, err)
	require.Nil(t, info)
}

func TestAnalyzeEnumWithErrorDomain(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	enumID := ns.Stub("Error")
	ns.Define(enumID.LocalID, model.Type{
		Kind:        model.KindEnumeration,
		Name:        "Error",
		ErrorDomain: &model.ErrorDomain{Quark: "sample-error", Function: "sample_error_quark"},
		Members:     []model.Member{{Name: "failed", CIdentifier: "SAMPLE_ERROR_FAILED"}},
	})

	ctx := newCtx(t, lib)
	info, err := AnalyzeEnum(ctx, enumID)
	require.NoError(t, err)
	require.Equal(t, "sample_error_quark", info.ErrorDomain.Function)
	require.Len(t, info.Members, 1)
}

func TestBoundsReservedForPointerParam(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	other := ns.Stub("Other")
	ns.Define(other.LocalID, model.Type{Kind: model.KindClass, Name: "Other"})

	fn := model.Function{Name: "method"}
	fn.Parameters = []model.Parameter{
		model.NewParameter("self", model.TypeID{}),
		model.NewParameter("o", other),
	}
	fn.MarkInstanceParameter()
	fnID := ns.Append(model.Type{Kind: model.KindFunction, Name: "method", FunctionInfo: &model.FunctionType{Function: fn}})

	classID := ns.Stub("A")
	ns.Define(classID.LocalID, model.Type{Kind: model.KindClass, Name: "A", Functions: []model.TypeID{fnID}})

	ctx := newCtx(t, lib)
	info, err := AnalyzeClass(ctx, classID)
	require.NoError(t, err)
	require.Len(t, info.Methods[0].Bounds.List(), 1)
	require.Equal(t, analysis.BoundIsA, info.Methods[0].Bounds.List()[0].Kind)
}

// TestBoundsCollapseNullableClass exercises spec.md §4.3's nullable
// expansion to Into<Option<&impl IsA<T>>>: a nullable in-parameter of class
// type must reserve an IntoOptionIsA bound, not a plain IsA one.
func TestBoundsCollapseNullableClass(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	other := ns.Stub("Other")
	ns.Define(other.LocalID, model.Type{Kind: model.KindClass, Name: "Other"})

	nullableParam := model.NewParameter("o", other)
	nullableParam.Nullable = true
	nullableParam.Direction = model.DirIn

	fn := model.Function{Name: "method"}
	fn.Parameters = []model.Parameter{
		model.NewParameter("self", model.TypeID{}),
		nullableParam,
	}
	fn.MarkInstanceParameter()
	fnID := ns.Append(model.Type{Kind: model.KindFunction, Name: "method", FunctionInfo: &model.FunctionType{Function: fn}})

	classID := ns.Stub("A")
	ns.Define(classID.LocalID, model.Type{Kind: model.KindClass, Name: "A", Functions: []model.TypeID{fnID}})

	ctx := newCtx(t, lib)
	info, err := AnalyzeClass(ctx, classID)
	require.NoError(t, err)
	require.Len(t, info.Methods[0].Bounds.List(), 1)
	require.Equal(t, analysis.BoundIntoOptionIsA, info.Methods[0].Bounds.List()[0].Kind)
}
