// Package model holds the frozen, cross-namespace data model produced by the
// GIR parser and mutated only by the post-processor: namespaces, types,
// parameters and functions, all addressed through TypeId rather than owning
// references.
package model

import "fmt"

// NamespaceID identifies one namespace within a Library. The reserved
// Internal namespace always has id 0, the Main namespace id 1; imported
// namespaces are assigned ids in load order starting at 2.
type NamespaceID uint16

// Reserved namespace ids.
const (
	InternalNamespaceID NamespaceID = 0
	MainNamespaceID      NamespaceID = 1
)

// LocalID identifies a Type within its owning Namespace's slot vector.
type LocalID uint32

// TypeID is a cheap, copyable, identity-comparable reference to a Type. It is
// the canonical way every Parameter, Field and Function return refers to a
// Type; nothing in the model holds an owning reference to a Type directly.
type TypeID struct {
	NSID    NamespaceID
	LocalID LocalID
}

// String renders a TypeID for diagnostics; it is not a lookup key.
func (t TypeID) String() string {
	return fmt.Sprintf("%d:%d", t.NSID, t.LocalID)
}

// IsZero reports whether t is the zero TypeID (never a valid reference once
// post-processing has completed, since local id 0 in the Internal namespace
// is reserved for the Basic/"none" sentinel and is always present).
func (t TypeID) IsZero() bool {
	return t.NSID == 0 && t.LocalID == 0
}
