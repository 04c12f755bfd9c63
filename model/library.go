package model

import "fmt"

// builtinScalars are interned into the Internal namespace by NewLibrary so
// every parser sees them already present; names match the GIR/glib
// convention (Int32, Utf8, Filename, Pointer, ...).
var builtinScalars = []string{
	"None", "Boolean", "Int8", "UInt8", "Int16", "UInt16", "Int32", "UInt32",
	"Int64", "UInt64", "Float", "Double", "Utf8", "Filename", "Pointer",
	"Unsupported", "TypeId", "Char", "UniChar", "Size", "SSize", "GType",
}

// Library is the complete set of namespaces produced by a parser run: the
// synthetic Internal namespace, the Main namespace of the root .gir, and
// every transitively-included foreign namespace.
type Library struct {
	namespaces   []*Namespace
	namespaceIdx map[string]NamespaceID
}

// NewLibrary returns a Library with the reserved Internal (id 0) namespace
// populated with builtin scalars, ready for a parser to append namespaces
// to via EnsureNamespace.
func NewLibrary() *Library {
	l := &Library{namespaceIdx: make(map[string]NamespaceID)}
	internal := NewNamespace(InternalNamespaceID, "*")
	for _, name := range builtinScalars {
		internal.Append(Type{Kind: KindBasic, Name: name})
	}
	l.namespaces = append(l.namespaces, internal)
	l.namespaceIdx["*"] = InternalNamespaceID
	return l
}

// Internal returns the reserved namespace holding built-in scalars and
// anonymous container instantiations.
func (l *Library) Internal() *Namespace { return l.namespaces[InternalNamespaceID] }

// Main returns the namespace of the root .gir file, if one has been
// registered yet.
func (l *Library) Main() (*Namespace, bool) {
	if len(l.namespaces) <= int(MainNamespaceID) {
		return nil, false
	}
	return l.namespaces[MainNamespaceID], true
}

// Namespace returns the namespace with the given id.
func (l *Library) Namespace(id NamespaceID) (*Namespace, bool) {
	if int(id) >= len(l.namespaces) {
		return nil, false
	}
	return l.namespaces[id], true
}

// NamespaceByName looks up a namespace by its GIR name (e.g. "Gtk"); the
// reserved internal namespace is found under the name "*".
func (l *Library) NamespaceByName(name string) (*Namespace, bool) {
	id, ok := l.namespaceIdx[name]
	if !ok {
		return nil, false
	}
	return l.namespaces[id], true
}

// Namespaces returns every registered namespace in load order, including
// Internal at index 0.
func (l *Library) Namespaces() []*Namespace { return l.namespaces }

// EnsureNamespace returns the namespace named name, creating it (assigning
// the next sequential id) if it doesn't exist yet. The first namespace
// created this way is assigned MainNamespaceID.
func (l *Library) EnsureNamespace(name string) *Namespace {
	if id, ok := l.namespaceIdx[name]; ok {
		return l.namespaces[id]
	}
	id := NamespaceID(len(l.namespaces))
	ns := NewNamespace(id, name)
	l.namespaces = append(l.namespaces, ns)
	l.namespaceIdx[name] = id
	return ns
}

// Type dereferences a TypeID, returning the live Type pointer.
func (l *Library) Type(id TypeID) (*Type, bool) {
	ns, ok := l.Namespace(id.NSID)
	if !ok {
		return nil, false
	}
	return ns.TypeAt(id.LocalID)
}

// FindType looks up a type by namespace and local name — the invariant
// tested in spec.md §8: for all (tid, type) obtained from the library,
// FindType(ns, Name(type)) == Some(tid).
func (l *Library) FindType(ns *Namespace, name string) (TypeID, bool) {
	return ns.FindByName(name)
}

// QualifiedName renders "Namespace.Name" for diagnostics.
func (l *Library) QualifiedName(id TypeID) string {
	ns, ok := l.Namespace(id.NSID)
	if !ok {
		return id.String()
	}
	t, ok := ns.TypeAt(id.LocalID)
	if !ok {
		return id.String()
	}
	if ns.ID == InternalNamespaceID {
		return t.Name
	}
	return fmt.Sprintf("%s.%s", ns.Name, t.Name)
}

// Unresolved returns every TypeID across the library still pointing at a
// stubbed slot, for the post-processing resolution-check pass. An empty
// result is required before analysis may begin.
func (l *Library) Unresolved() []TypeID {
	var out []TypeID
	for _, ns := range l.namespaces {
		for id := range ns.stubbed {
			out = append(out, TypeID{NSID: ns.ID, LocalID: id})
		}
	}
	return out
}
