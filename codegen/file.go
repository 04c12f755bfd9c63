// Package codegen implements spec.md §4.7: the shared import tracker, the
// symbol table of emitted paths, and the per-kind emitters (in the
// emitters subpackage) that turn analyzer Info values into Go source text
// using the chunk-tree IR in chunk.go.
package codegen

import (
	"fmt"
	"sort"
	"strings"
)

// Section is one named, ordered piece of a File's body — the "chunk tree"
// made concrete as a sequence of rendered sections, grounded on the
// teacher's codegen.SectionTemplate shape (a Name, a renderable body, and
// optional per-section data) but self-contained rather than depending on
// goa/v3's text/template-based renderer, since this generator emits Go, not
// Goa designs.
type Section struct {
	Name  string
	Body  *Chunk
	Cfg   string // build-tag / version-gate condition, empty if unconditional
}

// File is one emitted target-language source file: a stable banner, an
// optional version-gated package decl, an import block, and an ordered list
// of Sections — the "chunk tree" of spec.md §4.7 assembled at file
// granularity.
type File struct {
	Path        string
	Package     string
	MinVersion  string // empty if ungated
	Imports     *Imports
	Sections    []Section
	bannerTool  string
}

// NewFile returns a File for path in package pkg, tracking imports under
// selfModulePrefix (stripped per spec.md §4.7's "strips self-crate
// prefixes").
func NewFile(path, pkg, selfModulePrefix, bannerTool string) *File {
	return &File{
		Path:       path,
		Package:    pkg,
		Imports:    NewImports(selfModulePrefix),
		bannerTool: bannerTool,
	}
}

// AddSection appends a rendered section in emission order.
func (f *File) AddSection(s Section) {
	f.Sections = append(f.Sections, s)
}

// Render flattens the banner, package decl, import block, and every
// Section's Chunk tree into the final Go source text, per spec.md §4.7's
// "single post-order pass".
func (f *File) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by %s. DO NOT EDIT.\n", f.bannerTool)
	if f.MinVersion != "" {
		fmt.Fprintf(&b, "//go:build %s\n", strings.ReplaceAll(f.MinVersion, ".", "_"))
	}
	b.WriteString("\npackage ")
	b.WriteString(f.Package)
	b.WriteString("\n\n")

	if imports := f.Imports.List(); len(imports) > 0 {
		b.WriteString("import (\n")
		for _, im := range imports {
			line := "\t\"" + im.Path + "\""
			if im.MinVersion != "" {
				line += " // min " + im.MinVersion
			}
			if len(im.Features) > 0 {
				feats := make([]string, 0, len(im.Features))
				for ft := range im.Features {
					feats = append(feats, ft)
				}
				sort.Strings(feats)
				line += " // cfg:" + strings.Join(feats, ",")
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteString(")\n\n")
	}

	for _, s := range f.Sections {
		if s.Cfg != "" {
			fmt.Fprintf(&b, "// +build %s\n", s.Cfg)
		}
		if s.Body != nil {
			b.WriteString(s.Body.Flatten())
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SymbolTable records the target-language path for every emitted item,
// per spec.md §4.7: "Emitters ... defer all cross-symbol naming to a symbol
// table that records the target-language path for every emitted item."
type SymbolTable struct {
	byQualifiedName map[string]string
}

// NewSymbolTable returns an empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byQualifiedName: make(map[string]string)}
}

// Register records that qualifiedName (e.g. "Gtk.Widget") emits to
// goPath (e.g. "github.com/gtk-rs/gir-go-out/gtk.Widget").
func (st *SymbolTable) Register(qualifiedName, goPath string) {
	st.byQualifiedName[qualifiedName] = goPath
}

// Lookup returns the registered Go path for qualifiedName.
func (st *SymbolTable) Lookup(qualifiedName string) (string, bool) {
	p, ok := st.byQualifiedName[qualifiedName]
	return p, ok
}
