package postprocess

import (
	"github.com/gtk-rs/gir-go/config"
	"github.com/gtk-rs/gir-go/model"
)

// detectFinalTypes implements spec.md §4.2 pass 7: for every class, assign
// final_type = true iff (a) the config forces it, or (b) the class has no
// subtypes in the library and either its instance struct has no known
// fields or its class struct is disguised/absent. This also populates
// Type.Subclasses, the testable property of spec.md §8 ("for a class with
// at least one subclass present, final_type = false regardless of config
// silence") depends on.
func detectFinalTypes(lib *model.Library, matcher *config.Matcher) {
	// Pass 1: populate Subclasses by walking every class's Parent link.
	for _, ns := range lib.Namespaces() {
		ns.All(func(localID model.LocalID, t *model.Type) {
			if t.Kind != model.KindClass || !t.HasParent {
				return
			}
			childID := model.TypeID{NSID: ns.ID, LocalID: localID}
			if parent, ok := lib.Type(t.Parent); ok {
				parent.Subclasses = append(parent.Subclasses, childID)
			}
		})
	}

	// Pass 2: resolve final_type per class.
	for _, ns := range lib.Namespaces() {
		ns.All(func(localID model.LocalID, t *model.Type) {
			if t.Kind != model.KindClass {
				return
			}
			classID := model.TypeID{NSID: ns.ID, LocalID: localID}
			symbol := lib.QualifiedName(classID)
			resolved := matcher.Resolve(symbol)

			if resolved.HasForceFinal {
				t.FinalType = resolved.ForceFinal
				return
			}
			if len(t.Subclasses) > 0 {
				t.FinalType = false
				return
			}
			noKnownFields := len(t.Fields) == 0
			classStructDisguised := !t.HasClassRecord
			t.FinalType = noKnownFields || classStructDisguised
		})
	}
}
