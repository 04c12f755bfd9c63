package postprocess

import (
	"fmt"

	"github.com/gtk-rs/gir-go/model"
)

// correlateClassStructs implements spec.md §4.2 pass 4: each record
// declaring is-gtype-struct-for = X links itself as X's class-record; each
// class naming its own class-record must be the target of exactly one such
// record. Mismatches — a class-record link pointing somewhere other than
// back at the declaring class, or a class whose named class-record never
// declared gtype_struct_for at all — abort the run, per the invariant in
// spec.md §3 ("class's gtype_struct_for names another class, that class's
// class-record link must point back to this record").
func correlateClassStructs(lib *model.Library) error {
	// recordFor[classID] = recordID, built from every record's
	// gtype_struct_for back-link.
	recordFor := make(map[model.TypeID]model.TypeID)
	for _, ns := range lib.Namespaces() {
		var walkErr error
		ns.All(func(localID model.LocalID, t *model.Type) {
			if walkErr != nil || t.Kind != model.KindRecord || !t.HasGTypeStructFor {
				return
			}
			recordID := model.TypeID{NSID: ns.ID, LocalID: localID}
			classID := t.GTypeStructFor
			class, ok := lib.Type(classID)
			if !ok || class.Kind != model.KindClass {
				walkErr = fmt.Errorf("postprocess: record %s declares glib:is-gtype-struct-for a non-class type", lib.QualifiedName(recordID))
				return
			}
			if existing, dup := recordFor[classID]; dup && existing != recordID {
				walkErr = fmt.Errorf("postprocess: class %s has two class-structs: %s and %s",
					lib.QualifiedName(classID), lib.QualifiedName(existing), lib.QualifiedName(recordID))
				return
			}
			if class.HasClassRecord && class.ClassRecordID != recordID {
				walkErr = fmt.Errorf("postprocess: class %s's declared class-record %s does not match the record that links back to it (%s)",
					lib.QualifiedName(classID), lib.QualifiedName(class.ClassRecordID), lib.QualifiedName(recordID))
				return
			}
			recordFor[classID] = recordID
			class.ClassRecordID = recordID
			class.HasClassRecord = true
		})
		if walkErr != nil {
			return walkErr
		}
	}

	// Verify every class that already named its own class-record (via
	// glib:type-struct) is in fact the target of exactly one such record.
	var checkErr error
	for _, ns := range lib.Namespaces() {
		ns.All(func(localID model.LocalID, t *model.Type) {
			if checkErr != nil || t.Kind != model.KindClass || !t.HasClassRecord {
				return
			}
			classID := model.TypeID{NSID: ns.ID, LocalID: localID}
			back, ok := recordFor[classID]
			if !ok {
				checkErr = fmt.Errorf("postprocess: class %s names a class-record that never declares glib:is-gtype-struct-for back", lib.QualifiedName(classID))
				return
			}
			if back != t.ClassRecordID {
				checkErr = fmt.Errorf("postprocess: class %s's declared class-record %s does not match the record that links back to it (%s)",
					lib.QualifiedName(classID), lib.QualifiedName(t.ClassRecordID), lib.QualifiedName(back))
			}
		})
		if checkErr != nil {
			return checkErr
		}
	}
	return nil
}
