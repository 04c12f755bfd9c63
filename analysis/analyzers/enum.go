package analyzers

import "github.com/gtk-rs/gir-go/model"

// AnalyzeEnum produces the EnumInfo for id (an Enumeration or Bitfield),
// per spec.md §4.6. Members with a configured Ignore status are still
// present in EnumInfo.Members so the emitter can decide whether to render
// them as a commented skip vs. omit, but carry their resolved Status.
func AnalyzeEnum(ctx *Context, id model.TypeID) (*EnumInfo, error) {
	t, ok := ctx.Lib.Type(id)
	if !ok || (t.Kind != model.KindEnumeration && t.Kind != model.KindBitfield) {
		return nil, errNotKind(id, model.KindEnumeration)
	}
	symbol := ctx.Lib.QualifiedName(id)
	if ctx.Matcher.Resolve(symbol).Status == "ignore" {
		return nil, nil
	}

	info := &EnumInfo{
		Name:        t.Name,
		Bitfield:    t.Kind == model.KindBitfield,
		ErrorDomain: t.ErrorDomain,
	}
	for _, m := range t.Members {
		info.Members = append(info.Members, MemberInfo{
			Name:        m.Name,
			CIdentifier: m.CIdentifier,
			Value:       m.Value,
			Status:      m.Status,
			Version:     m.Version,
		})
	}
	methods, functions := partitionFunctions(ctx, t, id)
	info.Functions = append(methods, functions...)
	return info, nil
}
