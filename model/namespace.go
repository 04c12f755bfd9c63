package model

// Namespace holds one GIR `<namespace>` (or the reserved Internal namespace)
// as a dense slot vector indexed by LocalID, plus name-based indexes for
// lookup. Types are never removed once allocated; forward references are
// stubbed in place and overwritten when the real definition arrives.
type Namespace struct {
	ID NamespaceID

	Name            string
	Packages        []string
	SharedLibraries []string
	Includes        []string
	Versions        []string

	types     []Type
	nameIndex map[string]LocalID
	cNameIndex map[string]LocalID
	stubbed   map[LocalID]bool
}

// NewNamespace returns an empty Namespace ready to accept types.
func NewNamespace(id NamespaceID, name string) *Namespace {
	return &Namespace{
		ID:         id,
		Name:       name,
		nameIndex:  make(map[string]LocalID),
		cNameIndex: make(map[string]LocalID),
		stubbed:    make(map[LocalID]bool),
	}
}

// Len returns the number of allocated slots, stubbed or not.
func (ns *Namespace) Len() int { return len(ns.types) }

// TypeAt returns a pointer into the slot vector. The pointer stays valid
// across later replacement of the slot's contents since callers always read
// through it rather than caching the Type value itself.
func (ns *Namespace) TypeAt(id LocalID) (*Type, bool) {
	if int(id) >= len(ns.types) {
		return nil, false
	}
	return &ns.types[id], true
}

// IsStubbed reports whether the slot at id is still a forward-reference
// placeholder.
func (ns *Namespace) IsStubbed(id LocalID) bool {
	return ns.stubbed[id]
}

// FindByName looks up a type by its GIR-local name (e.g. "Widget", not
// "Gtk.Widget").
func (ns *Namespace) FindByName(name string) (TypeID, bool) {
	id, ok := ns.nameIndex[name]
	if !ok {
		return TypeID{}, false
	}
	return TypeID{NSID: ns.ID, LocalID: id}, true
}

// FindByCType looks up a type by its C type string (c:type / glib:get-type
// symbol), used when resolving c:identifier cross-references.
func (ns *Namespace) FindByCType(ctype string) (TypeID, bool) {
	id, ok := ns.cNameIndex[ctype]
	if !ok {
		return TypeID{}, false
	}
	return TypeID{NSID: ns.ID, LocalID: id}, true
}

// Stub inserts a blank placeholder slot for name, or returns the existing
// slot (stubbed or complete) if one is already registered. This is
// find_or_stub_type from spec.md §4.1/§9: the returned TypeID remains valid
// across the later in-place replacement performed by Define.
func (ns *Namespace) Stub(name string) TypeID {
	if id, ok := ns.nameIndex[name]; ok {
		return TypeID{NSID: ns.ID, LocalID: id}
	}
	id := LocalID(len(ns.types))
	ns.types = append(ns.types, Type{Kind: KindBasic, Name: name})
	ns.nameIndex[name] = id
	ns.stubbed[id] = true
	return TypeID{NSID: ns.ID, LocalID: id}
}

// Define replaces the slot at id's contents in place with t, clearing the
// stubbed flag. Every TypeID referencing this slot observes the update.
func (ns *Namespace) Define(id LocalID, t Type) {
	ns.types[int(id)] = t
	delete(ns.stubbed, id)
	if t.Name != "" {
		ns.nameIndex[t.Name] = id
	}
	if t.CType != "" {
		ns.cNameIndex[t.CType] = id
	}
}

// Append allocates a fresh slot for t (used for anonymous containers and
// synthetic internal types that never go through Stub) and returns its id.
func (ns *Namespace) Append(t Type) TypeID {
	id := LocalID(len(ns.types))
	ns.types = append(ns.types, t)
	if t.Name != "" {
		ns.nameIndex[t.Name] = id
	}
	if t.CType != "" {
		ns.cNameIndex[t.CType] = id
	}
	return TypeID{NSID: ns.ID, LocalID: id}
}

// StubbedNames returns the names of all slots still stubbed, for the
// resolution-check post-processing pass.
func (ns *Namespace) StubbedNames() []string {
	names := make([]string, 0, len(ns.stubbed))
	for id := range ns.stubbed {
		names = append(names, ns.types[id].Name)
	}
	return names
}

// All iterates every allocated slot in LocalID order.
func (ns *Namespace) All(fn func(LocalID, *Type)) {
	for i := range ns.types {
		fn(LocalID(i), &ns.types[i])
	}
}
