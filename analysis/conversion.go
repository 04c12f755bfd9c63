// Package analysis implements spec.md §4.3-§4.6: conversion/ref-mode
// classification, the bounds/generic-alias analyzer, the parameter
// transformation analyzer, and the per-kind symbol analyzers in the
// analyzers subpackage.
package analysis

import "github.com/gtk-rs/gir-go/model"

// ConversionType classifies how a TypeId crosses the FFI boundary, per
// spec.md §4.3.
type ConversionType int

const (
	ConvDirect ConversionType = iota
	ConvScalar
	ConvPointer
	ConvOption
	ConvResult
	ConvBorrow
	ConvUnknown
)

func (c ConversionType) String() string {
	switch c {
	case ConvDirect:
		return "Direct"
	case ConvScalar:
		return "Scalar"
	case ConvPointer:
		return "Pointer"
	case ConvOption:
		return "Option"
	case ConvResult:
		return "Result"
	case ConvBorrow:
		return "Borrow"
	default:
		return "Unknown"
	}
}

// directScalars are builtin names that are bit-identical between the GIR C
// representation and Go (fixed-width integers, floats) — ConvDirect.
var directScalars = map[string]bool{
	"Int8": true, "UInt8": true, "Int16": true, "UInt16": true,
	"Int32": true, "UInt32": true, "Int64": true, "UInt64": true,
	"Float": true, "Double": true,
}

// convertByValueScalars differ in representation but convert by value:
// booleans, platform ints, and (handled separately below) enumerations and
// bitfields — ConvScalar.
var convertByValueScalars = map[string]bool{
	"Boolean": true, "Size": true, "SSize": true, "Char": true, "UniChar": true,
}

// fallibleScalars are glib scalar kinds whose conversion can fail and so are
// modeled as Option/Result sums rather than infallible scalars.
var fallibleScalars = map[string]bool{
	"Pid": true, "Quark": true,
}

// ConversionOf returns the ConversionType for tid per spec.md §4.3.
func ConversionOf(lib *model.Library, tid model.TypeID) ConversionType {
	t, ok := lib.Type(tid)
	if !ok {
		return ConvUnknown
	}
	switch t.Kind {
	case model.KindBasic:
		switch {
		case directScalars[t.Name]:
			return ConvDirect
		case convertByValueScalars[t.Name]:
			return ConvScalar
		case fallibleScalars[t.Name]:
			if t.Name == "Quark" {
				return ConvOption
			}
			return ConvResult
		case t.Name == "Utf8", t.Name == "Filename":
			return ConvBorrow
		case t.Name == "Pointer", t.Name == "Unsupported", t.Name == "TypeId", t.Name == "GType", t.Name == "None":
			return ConvUnknown
		default:
			return ConvUnknown
		}
	case model.KindEnumeration, model.KindBitfield:
		return ConvScalar
	case model.KindAlias:
		return ConversionOf(lib, t.AliasTarget)
	case model.KindClass, model.KindInterface, model.KindRecord, model.KindUnion:
		return ConvPointer
	case model.KindContainer:
		return ConvPointer
	default:
		return ConvUnknown
	}
}
