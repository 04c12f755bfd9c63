package analysis

import (
	"strings"

	"github.com/gtk-rs/gir-go/model"
)

// SpecialKind classifies a method by name/signature pattern per spec.md
// §4.6: "pattern-matches by member name and signature to classify a
// function as Copy / Free / Ref / Unref / Compare / Equal / Hash /
// Display."
type SpecialKind int

const (
	SpecialNone SpecialKind = iota
	SpecialCopy
	SpecialFree
	SpecialRef
	SpecialUnref
	SpecialCompare
	SpecialEqual
	SpecialHash
	SpecialDisplay
)

func (k SpecialKind) String() string {
	switch k {
	case SpecialCopy:
		return "Copy"
	case SpecialFree:
		return "Free"
	case SpecialRef:
		return "Ref"
	case SpecialUnref:
		return "Unref"
	case SpecialCompare:
		return "Compare"
	case SpecialEqual:
		return "Equal"
	case SpecialHash:
		return "Hash"
	case SpecialDisplay:
		return "Display"
	default:
		return "None"
	}
}

// DetectSpecial classifies fn (a method with a non-prefixed, already
// identifier-stripped name — e.g. "free" from "a_foo_free") as one of the
// SpecialKinds, or SpecialNone if it matches no pattern. lib resolves
// parameter/return types so the signature half of "name and signature" can
// be checked (an instance-only, no-return `free` is Free; a same-type
// return is Copy; etc).
func DetectSpecial(lib *model.Library, fn *model.Function, ownerID model.TypeID) SpecialKind {
	if !fn.HasInstanceParameter() {
		return SpecialNone
	}
	instanceOnly := len(fn.Parameters) == 1

	switch fn.Name {
	case "free", "destroy":
		if instanceOnly {
			return SpecialFree
		}
	case "ref":
		if instanceOnly && returnsInstanceType(lib, fn, ownerID) {
			return SpecialRef
		}
	case "unref":
		if instanceOnly {
			return SpecialUnref
		}
	case "copy", "dup", "duplicate":
		if instanceOnly && returnsInstanceType(lib, fn, ownerID) {
			return SpecialCopy
		}
	case "compare":
		if len(fn.Parameters) == 2 {
			return SpecialCompare
		}
	case "equal":
		if len(fn.Parameters) == 2 && isBooleanReturn(lib, fn) {
			return SpecialEqual
		}
	case "hash":
		if instanceOnly {
			return SpecialHash
		}
	}
	return SpecialNone
}

// ToStrRewrite implements spec.md §4.6's to_string rule: "A function named
// to_string with a single instance argument and a UTF-8 return is renamed
// to to_str and, subject to nullability, surfaces as the Display
// implementation." Returns the new name and whether it qualifies for
// Display (non-nullable return).
func ToStrRewrite(lib *model.Library, fn *model.Function) (newName string, isDisplay, matched bool) {
	if fn.Name != "to_string" || !fn.HasInstanceParameter() || len(fn.Parameters) != 1 {
		return "", false, false
	}
	ret, ok := lib.Type(fn.Return.TypeID)
	if !ok || ret.Kind != model.KindBasic || ret.Name != "Utf8" {
		return "", false, false
	}
	return "to_str", !fn.Return.Nullable, true
}

func returnsInstanceType(lib *model.Library, fn *model.Function, ownerID model.TypeID) bool {
	return fn.Return.TypeID == ownerID
}

func isBooleanReturn(lib *model.Library, fn *model.Function) bool {
	t, ok := lib.Type(fn.Return.TypeID)
	return ok && t.Kind == model.KindBasic && t.Name == "Boolean"
}

// StripIdentifierPrefix removes a C identifier's namespace/type prefix to
// recover the bare method name spec.md §8 scenario 1 expects ("a_method"
// from a class A's c:identifier "a_a_method" minus the "a_" type prefix,
// conventionally lowercased-type-name + "_"). prefix is the lowercase,
// underscore-joined form of the owning type's name.
func StripIdentifierPrefix(cIdentifier, prefix string) string {
	want := prefix + "_"
	if strings.HasPrefix(cIdentifier, want) {
		return strings.TrimPrefix(cIdentifier, want)
	}
	return cIdentifier
}
