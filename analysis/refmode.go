package analysis

import "github.com/gtk-rs/gir-go/model"

// RefMode classifies how a parameter is passed at the Go call site, per
// spec.md §4.3.
type RefMode int

const (
	RefNone RefMode = iota
	RefByRef
	RefByRefMut
	RefByRefImmut
	RefByRefFake
)

func (r RefMode) String() string {
	switch r {
	case RefByRef:
		return "ByRef"
	case RefByRefMut:
		return "ByRefMut"
	case RefByRefImmut:
		return "ByRefImmut"
	case RefByRefFake:
		return "ByRefFake"
	default:
		return "None"
	}
}

// RefModeOf picks among {None, ByRef, ByRefMut, ByRefImmut, ByRefFake} based
// on direction, mutability, and whether p is the instance parameter, per
// spec.md §4.3. isInstance is true only for Parameters[0] of a
// Method/VirtualMethod.
func RefModeOf(lib *model.Library, p model.Parameter, isInstance bool) RefMode {
	conv := ConversionOf(lib, p.TypeID)
	if conv == ConvDirect || conv == ConvScalar {
		return RefNone
	}
	switch p.Direction {
	case model.DirIn:
		if isInstance {
			return RefByRefImmut
		}
		if p.CallerAllocates {
			return RefByRefFake
		}
		return RefByRef
	case model.DirInOut:
		return RefByRefMut
	case model.DirOut:
		if p.CallerAllocates {
			return RefByRefMut
		}
		return RefNone
	default:
		return RefNone
	}
}

// CollapseNullable implements spec.md §4.3's nullable-reference collapse
// rule: "Nullable in + reference for scalars collapses to Option<T>;
// nullable in + reference for polymorphic objects expands to
// Into<Option<&impl IsA<T>>>." Returns (isOption, isIsAOption).
func CollapseNullable(lib *model.Library, p model.Parameter, mode RefMode) (isOption, isIsAOption bool) {
	if !p.Nullable || mode == RefNone {
		return false, false
	}
	t, ok := lib.Type(p.TypeID)
	if !ok {
		return true, false
	}
	if t.Kind == model.KindClass || t.Kind == model.KindInterface {
		return false, true
	}
	return true, false
}
