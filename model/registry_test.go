package model

import "testing"

// TestFindTypeRoundTrip exercises the invariant from spec.md §8: for all
// (tid, type) obtained from the library, FindType(ns, Name(type)) == tid.
func TestFindTypeRoundTrip(t *testing.T) {
	lib := NewLibrary()
	ns := lib.EnsureNamespace("Gtk")
	id := ns.Append(Type{Kind: KindClass, Name: "Widget"})

	got, ok := lib.FindType(ns, "Widget")
	if !ok {
		t.Fatalf("FindType(Widget) not found")
	}
	if got != id {
		t.Fatalf("FindType(Widget) = %v, want %v", got, id)
	}
}

func TestStubThenDefinePreservesTypeID(t *testing.T) {
	lib := NewLibrary()
	ns := lib.EnsureNamespace("Gtk")

	stub := ns.Stub("Widget")
	if !ns.IsStubbed(stub.LocalID) {
		t.Fatalf("expected Widget to be stubbed")
	}

	ns.Define(stub.LocalID, Type{Kind: KindClass, Name: "Widget", CType: "GtkWidget"})
	if ns.IsStubbed(stub.LocalID) {
		t.Fatalf("expected Widget to no longer be stubbed")
	}

	again := ns.Stub("Widget")
	if again != stub {
		t.Fatalf("Stub on a defined type must return the same TypeID: got %v want %v", again, stub)
	}

	byCType, ok := ns.FindByCType("GtkWidget")
	if !ok || byCType != stub {
		t.Fatalf("FindByCType(GtkWidget) = %v,%v want %v,true", byCType, ok, stub)
	}
}

func TestUnresolvedReportsOutstandingStubs(t *testing.T) {
	lib := NewLibrary()
	ns := lib.EnsureNamespace("Gtk")
	stub := ns.Stub("Missing")

	unresolved := lib.Unresolved()
	if len(unresolved) != 1 || unresolved[0] != stub {
		t.Fatalf("Unresolved() = %v, want [%v]", unresolved, stub)
	}

	ns.Define(stub.LocalID, Type{Kind: KindRecord, Name: "Missing"})
	if len(lib.Unresolved()) != 0 {
		t.Fatalf("Unresolved() after Define should be empty")
	}
}

func TestInternContainerSharesTypeID(t *testing.T) {
	lib := NewLibrary()
	ns := lib.EnsureNamespace("GObject")
	obj := ns.Append(Type{Kind: KindClass, Name: "Object"})

	a := lib.InternContainer(ContainerType{Kind: ContainerList, Elem: obj})
	b := lib.InternContainer(ContainerType{Kind: ContainerList, Elem: obj})
	if a != b {
		t.Fatalf("two interned List<GObject.Object> containers got different ids: %v != %v", a, b)
	}
}
