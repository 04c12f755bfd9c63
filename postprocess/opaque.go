package postprocess

import "github.com/gtk-rs/gir-go/model"

// opaquifyUnions implements spec.md §4.2 pass 6: a union whose fields are
// structurally incomplete becomes empty (opaque), preventing generation of
// a full layout. "Structurally incomplete" means at least one field
// resolves to the Unsupported sentinel or to a zero TypeID (the parser's
// placeholder for a <type> with no name attribute, e.g. a bare `<type
// name=""/>` union-of-union member GIR sometimes emits).
func opaquifyUnions(lib *model.Library) {
	unsupported, _ := lib.Internal().FindByName("Unsupported")
	for _, ns := range lib.Namespaces() {
		ns.All(func(_ model.LocalID, t *model.Type) {
			if t.Kind != model.KindUnion || len(t.Fields) == 0 {
				return
			}
			for _, f := range t.Fields {
				if f.TypeID.IsZero() || f.TypeID == unsupported {
					t.Fields = nil
					t.Opaque = true
					return
				}
			}
		})
	}
}
