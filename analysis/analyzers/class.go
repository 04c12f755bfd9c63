package analyzers

import (
	"github.com/gtk-rs/gir-go/analysis"
	"github.com/gtk-rs/gir-go/model"
)

// AnalyzeClass produces the ClassInfo for id, per spec.md §4.6. It reads
// only the model, not any parent's ClassInfo: GenerateTrait is decided from
// the class's own final flag and its own methods, properties and signals.
func AnalyzeClass(ctx *Context, id model.TypeID) (*ClassInfo, error) {
	t, ok := ctx.Lib.Type(id)
	if !ok || t.Kind != model.KindClass {
		return nil, errNotKind(id, model.KindClass)
	}
	symbol := ctx.Lib.QualifiedName(id)
	resolved := ctx.Matcher.Resolve(symbol)
	if resolved.Status == "ignore" {
		return nil, nil
	}

	info := &ClassInfo{
		Name:           t.Name,
		CType:          t.CType,
		ClassRecordID:  t.ClassRecordID,
		HasClassRecord: t.HasClassRecord,
		FinalType:      t.FinalType,
	}
	info.Parents = collectParents(ctx.Lib, t)

	for _, p := range t.Properties {
		info.Properties = append(info.Properties, analyzeProperty(p))
		if p.Construct || p.ConstructOnly {
			info.BuilderProperties = append(info.BuilderProperties, analyzeProperty(p))
		}
	}
	info.Signals = t.Signals

	// generate_trait is true iff the class is non-final and the trait
	// would be non-empty — i.e. it has at least one method, property, or
	// signal to expose polymorphically.
	nonEmpty := len(t.Functions) > 0 || len(t.Properties) > 0 || len(t.Signals) > 0
	info.GenerateTrait = !t.FinalType && nonEmpty

	methods, freeFuncs := partitionFunctions(ctx, t, id)
	info.Methods = methods
	info.Functions = freeFuncs

	return info, nil
}

// collectParents returns the Parent chain root-first (the first element is
// the most distant ancestor, e.g. GObject.Object; the last is the direct
// parent) for supertype-first trait composition.
func collectParents(lib *model.Library, t *model.Type) []model.TypeID {
	var chain []model.TypeID
	cur := t
	for cur.HasParent {
		chain = append(chain, cur.Parent)
		next, ok := lib.Type(cur.Parent)
		if !ok {
			break
		}
		cur = next
	}
	// reverse to root-first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func analyzeProperty(p model.Property) PropertyInfo {
	return PropertyInfo{
		Name:          p.Name,
		TypeID:        p.TypeID,
		Readable:      p.Readable,
		Writable:      p.Writable,
		ConstructOnly: p.ConstructOnly,
		Nullable:      p.Nullable,
		NotifySignal:  "notify::" + p.Name,
	}
}

// partitionFunctions classifies each function owned by t as a Method
// (HasInstanceParameter) or a free/class Function, running the conversion/
// bounds/transformation/special/async analyzers over each.
func partitionFunctions(ctx *Context, t *model.Type, ownerID model.TypeID) (methods, functions []MethodInfo) {
	for _, fnID := range t.Functions {
		fn, ok := ctx.Lib.Type(fnID)
		if !ok || fn.Removed || fn.FunctionInfo == nil {
			continue
		}
		mi := analyzeFunction(ctx, &fn.FunctionInfo.Function, ownerID)
		if fn.FunctionInfo.HasInstanceParameter() {
			methods = append(methods, mi)
		} else {
			functions = append(functions, mi)
		}
	}
	return methods, functions
}

func analyzeFunction(ctx *Context, fn *model.Function, ownerID model.TypeID) MethodInfo {
	mi := MethodInfo{
		Name:        fn.Name,
		CIdentifier: fn.CIdentifier,
		Kind:        fn.Kind,
		Version:     fn.Version,
		Deprecated:  fn.Deprecated,
	}

	mi.Special = analysis.DetectSpecial(ctx.Lib, fn, ownerID)

	analysis.DetectArrayLengths(ctx.Lib, fn.Parameters, nil)
	lengthParamArray := make(map[int]string, len(fn.Parameters))
	for _, ap := range fn.Parameters {
		if ap.HasArrayLength() {
			lengthParamArray[ap.ArrayLength] = ap.Name
		}
	}

	bounds := analysis.NewBounds(fn.Name)
	for i, p := range fn.Parameters {
		isInstance := i == 0 && fn.HasInstanceParameter()

		if arrayName, ok := lengthParamArray[i]; ok {
			mi.Transforms = append(mi.Transforms, analysis.Transformation{
				ParamName: p.Name,
				Kind:      analysis.TransformLength,
				LengthOf:  arrayName,
			})
			continue
		}

		conv := analysis.ConversionOf(ctx.Lib, p.TypeID)
		if conv == analysis.ConvPointer && !isInstance {
			mode := analysis.RefModeOf(ctx.Lib, p, isInstance)
			kind := boundKindFor(ctx.Lib, p, mode)
			if _, err := bounds.AddFor(p.Name, ctx.Lib.QualifiedName(p.TypeID), kind); err != nil {
				mi.Commented = true
				mi.CommentReason = err.Error()
			}
		}
		mi.Transforms = append(mi.Transforms, analysis.TransformOf(ctx.Lib, p, isInstance))
	}
	mi.Bounds = bounds

	if ctx.FinishIndex != nil {
		if async, ok := analysis.DetectAsync(ctx.Lib, fn, ctx.FinishIndex); ok {
			mi.Async = async
		}
	}

	if newName, _, matched := analysis.ToStrRewrite(ctx.Lib, fn); matched {
		mi.Name = newName
	}

	return mi
}

// boundKindFor classifies the generic bound a pointer-typed parameter needs
// on the Go method signature. Class/Interface targets are polymorphic over
// a subtype relation (IsA); everything else pointer-shaped (Utf8, Filename,
// fundamental records) is polymorphic over an AsRef relation instead.
// analysis.CollapseNullable then upgrades either base kind to its
// IntoOption* form when p is a nullable in-parameter, per spec.md §4.3's
// nullable-reference collapse rule.
func boundKindFor(lib *model.Library, p model.Parameter, mode analysis.RefMode) analysis.BoundKind {
	base := analysis.BoundAsRef
	if t, ok := lib.Type(p.TypeID); ok {
		switch t.Kind {
		case model.KindClass, model.KindInterface:
			base = analysis.BoundIsA
		}
	}

	isOption, isIsAOption := analysis.CollapseNullable(lib, p, mode)
	switch {
	case isIsAOption:
		return analysis.BoundIntoOptionIsA
	case isOption && base == analysis.BoundIsA:
		return analysis.BoundIntoOption
	case isOption:
		return analysis.BoundIntoOptionRef
	default:
		return base
	}
}

func errNotKind(id model.TypeID, want model.TypeKind) error {
	return &wrongKindError{id: id, want: want}
}

type wrongKindError struct {
	id   model.TypeID
	want model.TypeKind
}

func (e *wrongKindError) Error() string {
	return "analyzers: " + e.id.String() + " is not a " + e.want.String()
}
