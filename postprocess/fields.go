package postprocess

import "github.com/gtk-rs/gir-go/model"

// fixupFields implements spec.md §4.2 pass 5: synthesize missing c_type on
// fields from the field's target type, mangle field names colliding with Go
// keywords, and apply the policy table for hand-known-wrong GIR fields.
// Tolerant: missing c_type is filled by inference and logged, per spec.md
// §7 tier 3.
func fixupFields(lib *model.Library, res *Result) {
	for _, ns := range lib.Namespaces() {
		ns.All(func(_ model.LocalID, t *model.Type) {
			if len(t.Fields) == 0 {
				return
			}
			for i := range t.Fields {
				f := &t.Fields[i]
				subject := ns.Name + "." + t.Name + "." + f.Name

				if fixup, ok := lookupFieldFixup(ns.Name, t.Name, f.Name); ok {
					f.CType = fixup.CType
				} else if f.CType == "" {
					if target, ok := lib.Type(f.TypeID); ok {
						cname := target.CType
						if cname == "" {
							cname = target.Name
						}
						f.CType = cname
						res.warn("field-ctype", subject, "inferred c:type "+f.CType+" by target-type lookup")
					}
				}

				if mangled := mangleFieldName(f.Name); mangled != f.Name {
					res.warn("field-ctype", subject, "mangled field name to "+mangled+" (Go keyword collision)")
					f.Name = mangled
				}
			}
		})
	}
}
