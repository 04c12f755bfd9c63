package postprocess

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtk-rs/gir-go/config"
	"github.com/gtk-rs/gir-go/model"
)

func emptyMatcher(t *testing.T) *config.Matcher {
	t.Helper()
	return config.NewMatcher(&config.Config{})
}

// TestFinalTypeDetection exercises spec.md §8 scenario 5: Parent (abstract,
// non-final) and Child (extends Parent, no known subclasses, empty instance
// struct).
func TestFinalTypeDetection(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")

	parentID := ns.Stub("Parent")
	childID := ns.Stub("Child")
	parentClassID := ns.Stub("ParentClass")
	childClassID := ns.Stub("ChildClass")
	ns.Define(parentID.LocalID, model.Type{Kind: model.KindClass, Name: "Parent", Abstract: true, HasClassRecord: true, ClassRecordID: parentClassID})
	ns.Define(childID.LocalID, model.Type{Kind: model.KindClass, Name: "Child", Parent: parentID, HasParent: true, HasClassRecord: true, ClassRecordID: childClassID})
	ns.Define(parentClassID.LocalID, model.Type{Kind: model.KindRecord, Name: "ParentClass", GTypeStructFor: parentID, HasGTypeStructFor: true})
	ns.Define(childClassID.LocalID, model.Type{Kind: model.KindRecord, Name: "ChildClass", GTypeStructFor: childID, HasGTypeStructFor: true})

	res, err := Run(lib, emptyMatcher(t))
	require.NoError(t, err)
	require.Empty(t, res.Diagnostics)

	parent, _ := lib.Type(parentID)
	child, _ := lib.Type(childID)
	require.False(t, parent.FinalType, "Parent has a subclass so must not be final")
	require.True(t, child.FinalType, "Child has no subclasses and no known fields so must be final")
	require.Equal(t, []model.TypeID{childID}, parent.Subclasses)
}

// TestErrorDomainRewrite exercises spec.md §8 scenario 4.
func TestErrorDomainRewrite(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")

	enumID := ns.Stub("Error")
	ns.Define(enumID.LocalID, model.Type{
		Kind:        model.KindEnumeration,
		Name:        "Error",
		ErrorDomain: &model.ErrorDomain{Quark: "g-foo-error"},
	})

	fnID := ns.Append(model.Type{
		Kind:         model.KindFunction,
		Name:         "error_quark",
		FunctionInfo: &model.FunctionType{Function: model.Function{Name: "error_quark", CIdentifier: "g_foo_error_quark"}},
	})

	res, err := Run(lib, emptyMatcher(t))
	require.NoError(t, err)
	_ = res

	enumType, _ := lib.Type(enumID)
	require.Equal(t, "g_foo_error_quark", enumType.ErrorDomain.Function)

	fn, _ := lib.Type(fnID)
	require.True(t, fn.Removed, "quark accessor function must be removed from ordinary emission")
}

func TestCheckResolutionFailsOnOutstandingStub(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("Sample")
	ns.Stub("NeverDefined")

	_, err := Run(lib, emptyMatcher(t))
	require.Error(t, err)
	require.Contains(t, err.Error(), "NeverDefined")
}

func TestGTypeAliasRewrittenToUnsupported(t *testing.T) {
	lib := model.NewLibrary()
	ns := lib.EnsureNamespace("GObject")
	gtypeID := ns.Stub("Type")
	ns.Define(gtypeID.LocalID, model.Type{Kind: model.KindAlias, Name: "Type"})

	_, err := Run(lib, emptyMatcher(t))
	require.NoError(t, err)

	unsupported, _ := lib.Internal().FindByName("Unsupported")
	gtype, _ := lib.Type(gtypeID)
	require.Equal(t, unsupported, gtype.AliasTarget)
}
