package postprocess

import "github.com/gtk-rs/gir-go/model"

// fixGTypeAlias implements spec.md §4.2 pass 1: the GObject.Type alias is
// replaced by the sentinel Unsupported scalar to prevent it leaking into
// generated surfaces (GType has no safe owned representation in bindings).
func fixGTypeAlias(lib *model.Library) {
	gobject, ok := lib.NamespaceByName("GObject")
	if !ok {
		return
	}
	id, ok := gobject.FindByName("Type")
	if !ok {
		return
	}
	t, ok := gobject.TypeAt(id.LocalID)
	if !ok || t.Kind != model.KindAlias {
		return
	}
	unsupported, _ := lib.Internal().FindByName("Unsupported")
	t.AliasTarget = unsupported
}
