package emitters

import (
	"strings"

	"github.com/gtk-rs/gir-go/analysis/analyzers"
	"github.com/gtk-rs/gir-go/codegen"
)

// EmitFreeFunctions translates a namespace's free (non-member) functions
// into one Go source file, grouped under the namespace's own package rather
// than a specific symbol's, per spec.md §4.6 ("free function" analyzer
// kind) and §6 (one file per symbol, plus a mod/lib file with reexports —
// free functions live alongside that reexport file).
func EmitFreeFunctions(ctx *Context, pkg string, fns []analyzers.MethodInfo) *codegen.File {
	f := codegen.NewFile(pkg+"/functions.go", pkg, ctx.ModulePath, bannerTool)
	var b strings.Builder
	for _, fn := range fns {
		b.WriteString(methodSignature(ctx.Lib, "", fn))
		b.WriteString("\n")
		if fn.Async != nil {
			f.Imports.Add("context", "", nil)
			f.Imports.Add("unsafe", "", nil)
		}
	}
	f.AddSection(codegen.Section{Name: "body", Body: codegen.CustomChunk(b.String())})
	return f
}
