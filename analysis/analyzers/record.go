package analyzers

import "github.com/gtk-rs/gir-go/model"

// AnalyzeRecord produces the RecordInfo for id, per spec.md §4.6.
func AnalyzeRecord(ctx *Context, id model.TypeID) (*RecordInfo, error) {
	t, ok := ctx.Lib.Type(id)
	if !ok || t.Kind != model.KindRecord {
		return nil, errNotKind(id, model.KindRecord)
	}
	symbol := ctx.Lib.QualifiedName(id)
	if ctx.Matcher.Resolve(symbol).Status == "ignore" {
		return nil, nil
	}

	info := &RecordInfo{
		Name:   t.Name,
		CType:  t.CType,
		Fields: t.Fields,
		Opaque: t.Opaque,
	}
	methods, functions := partitionFunctions(ctx, t, id)
	info.Functions = append(methods, functions...)
	return info, nil
}
