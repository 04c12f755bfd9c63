// Package analyzers implements spec.md §4.6: one analyzer per symbol kind
// (class, interface, record, enumeration, bitfield, constant, free
// function), each producing an Info value describing the bindings to
// emit. Traversal is supertype-first, grounded on the ToolData/ToolsetData
// per-kind Info structs and the supertype-first ir.Design build order in
// _examples/goadesign-goa-ai/codegen/agent/data.go and codegen/ir/build.go.
package analyzers

import (
	"github.com/gtk-rs/gir-go/analysis"
	"github.com/gtk-rs/gir-go/config"
	"github.com/gtk-rs/gir-go/model"
)

// Context bundles the dependencies every analyzer needs: the library to
// resolve TypeIds against and the config matcher for per-symbol overrides.
type Context struct {
	Lib     *model.Library
	Matcher *config.Matcher
	// FinishIndex is the namespace-wide *_finish index built once per
	// namespace before any analyzer runs, per analysis.IndexFinishFunctions.
	FinishIndex analysis.FinishIndex
}

// MethodInfo is one analyzed function/method/constructor bound to an owner.
type MethodInfo struct {
	Name        string
	CIdentifier string
	Kind        model.FunctionKind
	Commented   bool // spec.md §7 tier 2: conversion/bounds failure
	CommentReason string
	Special     analysis.SpecialKind
	Bounds      *analysis.Bounds
	Transforms  []analysis.Transformation
	Async       *analysis.AsyncInfo
	Version     string
	Deprecated  string
}

// PropertyInfo is a class/interface property plus its synthesized
// notify::<prop> signal connector name, per spec.md §4.6.
type PropertyInfo struct {
	Name       string
	TypeID     model.TypeID
	Readable   bool
	Writable   bool
	ConstructOnly bool
	Nullable   bool
	NotifySignal string
}

// ClassInfo is the Info produced for a Class, per spec.md §4.6.
type ClassInfo struct {
	Name           string
	CType          string
	ClassRecordID  model.TypeID
	HasClassRecord bool
	Parents        []model.TypeID // supertype chain, root-first
	Properties     []PropertyInfo
	Signals        []model.Signal
	BuilderProperties []PropertyInfo // construct-time-only
	GenerateTrait  bool
	Methods        []MethodInfo
	Functions      []MethodInfo
	Imports        []string
	FinalType      bool
}

// InterfaceInfo is the Info produced for an Interface.
type InterfaceInfo struct {
	Name          string
	Prerequisites []model.TypeID
	Properties    []PropertyInfo
	Signals       []model.Signal
	Methods       []MethodInfo
	Imports       []string
}

// RecordInfo is the Info produced for a Record.
type RecordInfo struct {
	Name      string
	CType     string
	Fields    []model.Field
	Functions []MethodInfo
	Opaque    bool
}

// EnumInfo is the Info produced for an Enumeration or Bitfield.
type EnumInfo struct {
	Name    string
	Bitfield bool
	Members []MemberInfo
	Functions []MethodInfo
	ErrorDomain *model.ErrorDomain
}

// MemberInfo gates a Member's emission on its configured status plus its
// own since-version.
type MemberInfo struct {
	Name        string
	CIdentifier string
	Value       int64
	Status      model.MemberStatus
	Version     string
}
