package postprocess

import (
	"github.com/gtk-rs/gir-go/config"
	"github.com/gtk-rs/gir-go/model"
)

// propagateMemberStatus implements spec.md §4.2 pass 9: apply configured
// member statuses onto enum/bitfield members.
func propagateMemberStatus(lib *model.Library, matcher *config.Matcher) {
	for _, ns := range lib.Namespaces() {
		ns.All(func(localID model.LocalID, t *model.Type) {
			if t.Kind != model.KindEnumeration && t.Kind != model.KindBitfield {
				return
			}
			if len(t.Members) == 0 {
				return
			}
			symbol := lib.QualifiedName(model.TypeID{NSID: ns.ID, LocalID: localID})
			resolved := matcher.Resolve(symbol)
			if len(resolved.Members) == 0 {
				return
			}
			for i := range t.Members {
				m := &t.Members[i]
				status, ok := resolved.Members[m.Name]
				if !ok {
					continue
				}
				switch status {
				case config.StatusGenerate:
					m.Status = model.StatusGenerate
				case config.StatusManual:
					m.Status = model.StatusManual
				case config.StatusIgnore:
					m.Status = model.StatusIgnore
				}
			}
		})
	}
}
