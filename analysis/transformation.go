package analysis

import "github.com/gtk-rs/gir-go/model"

// TransformKind is the Transformation variant of spec.md §4.5: the code
// shape to produce at a call site for one parameter.
type TransformKind int

const (
	TransformDirect TransformKind = iota
	TransformScalar
	TransformPointer
	TransformBorrow
	TransformUnknown
	TransformLength
	TransformInto
	TransformIntoRaw
	TransformToSome
)

func (k TransformKind) String() string {
	switch k {
	case TransformDirect:
		return "ToGoDirect"
	case TransformScalar:
		return "ToGoScalar"
	case TransformPointer:
		return "ToGoPointer"
	case TransformBorrow:
		return "ToGoBorrow"
	case TransformLength:
		return "Length"
	case TransformInto:
		return "Into"
	case TransformIntoRaw:
		return "IntoRaw"
	case TransformToSome:
		return "ToSome"
	default:
		return "ToGoUnknown"
	}
}

// Transformation is the per-parameter result of spec.md §4.5.
type Transformation struct {
	ParamName string
	Kind      TransformKind
	// LengthOf names the array parameter this Length transformation is
	// derived from; only set when Kind == TransformLength.
	LengthOf string
}

// TransformOf picks the base (non-Length/Into/...) transformation for a
// parameter by mapping its ConversionType and RefMode, per spec.md §4.5's
// "ToGlibDirect/Scalar/Pointer/Borrow/Unknown — direct conversion forms."
func TransformOf(lib *model.Library, p model.Parameter, isInstance bool) Transformation {
	conv := ConversionOf(lib, p.TypeID)
	t := Transformation{ParamName: p.Name}
	switch conv {
	case ConvDirect:
		t.Kind = TransformDirect
	case ConvScalar, ConvOption, ConvResult:
		t.Kind = TransformScalar
	case ConvPointer:
		t.Kind = TransformPointer
	case ConvBorrow:
		t.Kind = TransformBorrow
	default:
		t.Kind = TransformUnknown
	}
	return t
}
