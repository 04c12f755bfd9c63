package analyzers

import "github.com/gtk-rs/gir-go/model"

// ConstantInfo is the Info produced for a namespace-level Custom/constant
// entry (spec.md §3's Custom variant covers both configured manual entries
// and parsed <constant> elements).
type ConstantInfo struct {
	Name    string
	TypeID  model.TypeID
	Literal string
}

// AnalyzeConstant produces the ConstantInfo for id.
func AnalyzeConstant(ctx *Context, id model.TypeID) (*ConstantInfo, error) {
	t, ok := ctx.Lib.Type(id)
	if !ok || t.Kind != model.KindCustom {
		return nil, errNotKind(id, model.KindCustom)
	}
	symbol := ctx.Lib.QualifiedName(id)
	if ctx.Matcher.Resolve(symbol).Status == "ignore" {
		return nil, nil
	}
	return &ConstantInfo{Name: t.Name, TypeID: t.AliasTarget, Literal: t.CustomSource}, nil
}
