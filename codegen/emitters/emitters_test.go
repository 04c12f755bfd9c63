package emitters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtk-rs/gir-go/analysis"
	"github.com/gtk-rs/gir-go/analysis/analyzers"
	"github.com/gtk-rs/gir-go/codegen"
	"github.com/gtk-rs/gir-go/config"
	"github.com/gtk-rs/gir-go/model"
)

func newTestCtx(lib *model.Library) *Context {
	return &Context{Lib: lib, Symbols: codegen.NewSymbolTable(), ModulePath: "github.com/gtk-rs/gir-go-out"}
}

func analyzerCtx(lib *model.Library) *analyzers.Context {
	return &analyzers.Context{Lib: lib, Matcher: config.NewMatcher(&config.Config{})}
}

// TestEmitClassBasic exercises spec.md §8 scenario 1's Info feeding through
// to emitted text: a class with one method renders a Go method signature.
func TestEmitClassBasic(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	int32, _ := lib.Internal().FindByName("Int32")

	fn := model.Function{Name: "method", CIdentifier: "sample_a_method"}
	fn.Parameters = []model.Parameter{
		model.NewParameter("self", model.TypeID{}),
		model.NewParameter("x", int32),
	}
	fn.MarkInstanceParameter()
	fnID := ns.Append(model.Type{Kind: model.KindFunction, Name: "method", FunctionInfo: &model.FunctionType{Function: fn}})

	classID := ns.Stub("A")
	ns.Define(classID.LocalID, model.Type{Kind: model.KindClass, Name: "A", CType: "SampleA", Functions: []model.TypeID{fnID}, HasClassRecord: true})

	actx := analyzerCtx(lib)
	info, err := analyzers.AnalyzeClass(actx, classID)
	require.NoError(t, err)
	require.NotNil(t, info)

	ctx := newTestCtx(lib)
	file := EmitClass(ctx, "Sample.A", info)
	out := file.Render()
	require.Contains(t, out, "type A struct")
	require.Contains(t, out, "func (self *A) Method(")
	require.Contains(t, out, "sample_a_method(")
}

// TestEmitEnumErrorDomain exercises spec.md §8 scenario 4: the rewritten
// error-domain function is wired into the enum's Domain() accessor.
func TestEmitEnumErrorDomain(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	enumID := ns.Stub("Error")
	ns.Define(enumID.LocalID, model.Type{
		Kind:        model.KindEnumeration,
		Name:        "Error",
		ErrorDomain: &model.ErrorDomain{Quark: "sample-error", Function: "sample_error_quark"},
		Members:     []model.Member{{Name: "failed", CIdentifier: "SAMPLE_ERROR_FAILED", Value: 1}},
	})

	actx := analyzerCtx(lib)
	info, err := analyzers.AnalyzeEnum(actx, enumID)
	require.NoError(t, err)

	ctx := newTestCtx(lib)
	file := EmitEnum(ctx, "Sample.Error", info)
	out := file.Render()
	require.Contains(t, out, "type Error int")
	require.Contains(t, out, "ErrorFailed Error = 1")
	require.Contains(t, out, "sample_error_quark()")
}

// TestEmitRecordOpaque exercises the opaquification outcome of spec.md
// §4.2 pass 6: an opaque record emits no public fields.
func TestEmitRecordOpaque(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	recID := ns.Stub("Hidden")
	ns.Define(recID.LocalID, model.Type{Kind: model.KindRecord, Name: "Hidden", CType: "SampleHidden", Opaque: true})

	actx := analyzerCtx(lib)
	info, err := analyzers.AnalyzeRecord(actx, recID)
	require.NoError(t, err)

	ctx := newTestCtx(lib)
	file := EmitRecord(ctx, "Sample.Hidden", info)
	out := file.Render()
	require.Contains(t, out, "type Hidden struct")
	require.Contains(t, out, "opaque: layout unknown")
}

// TestEmitClassPropertyAccessors exercises spec.md §8 scenario 3: a
// nullable readable+writable property gets a real getter, setter, and
// notify::<prop> connector, not an unconditional panic.
func TestEmitClassPropertyAccessors(t *testing.T) {
	lib := model.NewLibrary()
	utf8, _ := lib.Internal().FindByName("Utf8")
	info := &analyzers.ClassInfo{
		Name:  "Widget",
		CType: "SampleWidget",
		Properties: []analyzers.PropertyInfo{
			{Name: "label", TypeID: utf8, Readable: true, Writable: true, Nullable: true, NotifySignal: "notify::label"},
		},
	}
	ctx := newTestCtx(lib)
	out := EmitClass(ctx, "Sample.Widget", info).Render()

	require.NotContains(t, out, "panic(")
	require.Contains(t, out, "func (self *Widget) Label() *string")
	require.Contains(t, out, `gobjectGetProperty(self.ptr, "label", &value)`)
	require.Contains(t, out, "func (self *Widget) SetLabel(value *string)")
	require.Contains(t, out, `gobjectSetProperty(self.ptr, "label", value)`)
	require.Contains(t, out, "func (self *Widget) ConnectLabelNotify(f func()) int")
	require.Contains(t, out, `gobjectConnect(self.ptr, "notify::label", f)`)
}

// TestEmitClassArrayLength exercises spec.md §8 scenario 2 end-to-end: a
// method with an array parameter paired with a length parameter elides the
// length from the public signature but declares it in the body before the
// FFI call, rather than referencing an undeclared identifier.
func TestEmitClassArrayLength(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	utf8, _ := lib.Internal().FindByName("Utf8")
	int32, _ := lib.Internal().FindByName("Int32")

	fn := model.Function{Name: "write", CIdentifier: "sample_a_write"}
	fn.Parameters = []model.Parameter{
		model.NewParameter("self", model.TypeID{}),
		model.NewParameter("data", utf8),
		model.NewParameter("data_len", int32),
	}
	fn.MarkInstanceParameter()
	fnID := ns.Append(model.Type{Kind: model.KindFunction, Name: "write", FunctionInfo: &model.FunctionType{Function: fn}})

	classID := ns.Stub("A")
	ns.Define(classID.LocalID, model.Type{Kind: model.KindClass, Name: "A", CType: "SampleA", Functions: []model.TypeID{fnID}, HasClassRecord: true})

	actx := analyzerCtx(lib)
	info, err := analyzers.AnalyzeClass(actx, classID)
	require.NoError(t, err)

	ctx := newTestCtx(lib)
	out := EmitClass(ctx, "Sample.A", info).Render()

	require.Contains(t, out, "func (self *A) Write(data ")
	require.NotContains(t, out, "data_len ")
	require.Contains(t, out, "var dataLen = len(data)")
	require.Contains(t, out, "sample_a_write(self.ptr, data, dataLen)")
}

// TestAsyncVariant exercises spec.md §4.5's async handling: the future-
// returning entry point actually invokes the underlying call and projects
// the *_finish companion's result instead of panicking.
func TestAsyncVariant(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	boolean, _ := lib.Internal().FindByName("Boolean")

	finishFn := model.Function{Name: "load_finish", CIdentifier: "sample_load_finish"}
	finishFn.Parameters = []model.Parameter{model.NewParameter("result", model.TypeID{})}
	finishFn.Return = model.Parameter{Direction: model.DirReturn, TypeID: boolean}
	finishID := ns.Append(model.Type{Kind: model.KindFunction, Name: "load_finish", FunctionInfo: &model.FunctionType{Function: finishFn}})

	m := analyzers.MethodInfo{
		Name:        "load",
		CIdentifier: "sample_load",
		Transforms: []analysis.Transformation{
			{ParamName: "callback", Kind: analysis.TransformDirect},
		},
		Async: &analysis.AsyncInfo{
			CallbackIndex: 0,
			UserDataIndex: analysis.NoIndex,
			FinishFunc:    finishID,
			SuccessTypes:  []model.TypeID{boolean},
		},
	}

	out := asyncVariant(lib, "", m)
	require.NotContains(t, out, "panic(")
	require.Contains(t, out, "func LoadFuture(ctx context.Context) (bool, error)")
	require.Contains(t, out, "sample_load(gasyncReadyTrampoline)")
	require.Contains(t, out, "sample_load_finish(ready)")
}

// TestEmitInterfaceSurface exercises spec.md §4.6: an interface's property
// and signal lists are surfaced as real method signatures, not dropped.
func TestEmitInterfaceSurface(t *testing.T) {
	lib := model.NewLibrary()
	utf8, _ := lib.Internal().FindByName("Utf8")
	info := &analyzers.InterfaceInfo{
		Name: "Named",
		Properties: []analyzers.PropertyInfo{
			{Name: "name", TypeID: utf8, Readable: true, Writable: true, NotifySignal: "notify::name"},
		},
		Signals: []model.Signal{{Name: "renamed"}},
	}
	ctx := newTestCtx(lib)
	out := EmitInterface(ctx, "Sample.Named", info).Render()

	require.Contains(t, out, "Name() string")
	require.Contains(t, out, "SetName(value string)")
	require.Contains(t, out, "ConnectNameNotify(f func()) int")
	require.Contains(t, out, "ConnectRenamed(f func()) int")
}

// TestEmitClassCommentedDegradation exercises spec.md §7 tier 2: a method
// whose bounds analysis exhausted the alias pool is emitted as a
// commented, non-compiling stub rather than aborting the file.
func TestEmitClassCommentedDegradation(t *testing.T) {
	lib := model.NewLibrary()
	info := &analyzers.ClassInfo{
		Name:  "Busy",
		CType: "SampleBusy",
		Methods: []analyzers.MethodInfo{
			{Name: "broken", Commented: true, CommentReason: "alias pool exhausted"},
		},
	}
	ctx := newTestCtx(lib)
	file := EmitClass(ctx, "Sample.Busy", info)
	out := file.Render()
	require.Contains(t, out, "/*Unimplemented*/")
	require.Contains(t, out, "alias pool exhausted")
}
