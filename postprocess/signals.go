package postprocess

import (
	"github.com/gtk-rs/gir-go/model"
)

// inferSignalCTypes implements spec.md §4.2 pass 3: for each signal
// parameter/return whose c:type is the empty sentinel (permitted by the
// parser per spec.md §4.1), synthesize it from the target type's glib name,
// adding "*" when the type is a referenced (heap-owned) object. Tolerant:
// a type that cannot be dereferenced is logged and left empty rather than
// aborting the run.
func inferSignalCTypes(lib *model.Library, res *Result) {
	for _, ns := range lib.Namespaces() {
		ns.All(func(_ model.LocalID, t *model.Type) {
			if t.Kind != model.KindClass && t.Kind != model.KindInterface {
				return
			}
			for i := range t.Signals {
				sig := &t.Signals[i]
				for j := range sig.Params {
					inferParamCType(lib, res, "signal:"+t.Name+"::"+sig.Name, &sig.Params[j])
				}
				inferParamCType(lib, res, "signal:"+t.Name+"::"+sig.Name, &sig.Return)
			}
		})
	}
}

func inferParamCType(lib *model.Library, res *Result, subject string, p *model.Parameter) {
	if p.CType != "" {
		return
	}
	target, ok := lib.Type(p.TypeID)
	if !ok {
		res.warn("signal-ctype", subject, "target type not resolved, leaving c:type empty")
		return
	}
	cname := target.CType
	if cname == "" {
		cname = target.Name
	}
	if isHeapOwned(target) {
		cname += "*"
	}
	p.CType = cname
	res.warn("signal-ctype", subject, "inferred c:type "+p.CType+" from target type")
}

// isHeapOwned reports whether a GIR kind is passed by reference (pointer)
// in C — classes, interfaces, and boxed records carrying a glib:get-type
// accessor. Unions are not treated as heap-owned.
func isHeapOwned(t *model.Type) bool {
	switch t.Kind {
	case model.KindClass, model.KindInterface:
		return true
	case model.KindRecord:
		return t.GLibGetType != ""
	default:
		return false
	}
}
