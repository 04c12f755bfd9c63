package analyzers

import "github.com/gtk-rs/gir-go/model"

// AnalyzeInterface produces the InterfaceInfo for id, per spec.md §4.6.
func AnalyzeInterface(ctx *Context, id model.TypeID) (*InterfaceInfo, error) {
	t, ok := ctx.Lib.Type(id)
	if !ok || t.Kind != model.KindInterface {
		return nil, errNotKind(id, model.KindInterface)
	}
	symbol := ctx.Lib.QualifiedName(id)
	if ctx.Matcher.Resolve(symbol).Status == "ignore" {
		return nil, nil
	}

	info := &InterfaceInfo{
		Name:          t.Name,
		Prerequisites: t.Prerequisites,
		Signals:       t.Signals,
	}
	for _, p := range t.Properties {
		info.Properties = append(info.Properties, analyzeProperty(p))
	}
	methods, _ := partitionFunctions(ctx, t, id)
	info.Methods = methods
	return info, nil
}
