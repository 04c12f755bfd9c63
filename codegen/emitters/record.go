package emitters

import (
	"fmt"
	"strings"

	"github.com/gtk-rs/gir-go/analysis/analyzers"
	"github.com/gtk-rs/gir-go/codegen"
)

// EmitRecord translates a RecordInfo into a Go struct, per spec.md §4.6. An
// opaque record (set by post-processing pass 6 when its fields are
// structurally incomplete) emits a struct whose only field is an unexported
// unsafe.Pointer, with no public fields, preventing generation of a full
// layout.
func EmitRecord(ctx *Context, qualifiedName string, info *analyzers.RecordInfo) *codegen.File {
	pkg := strings.ToLower(info.Name)
	f := ctx.newFile(qualifiedName, pkg, pkg+"/"+strings.ToLower(info.Name)+".go")

	var b strings.Builder
	fmt.Fprintf(&b, "// %s wraps the C type %s.\n", info.Name, info.CType)
	if info.Opaque {
		fmt.Fprintf(&b, "type %s struct {\n\tptr unsafe.Pointer // opaque: layout unknown\n}\n\n", info.Name)
		f.Imports.Add("unsafe", "", nil)
	} else {
		fmt.Fprintf(&b, "type %s struct {\n", info.Name)
		for _, field := range info.Fields {
			if field.Private {
				fmt.Fprintf(&b, "\t%s unsafe.Pointer // private\n", strings.ToLower(field.Name[:1])+field.Name[1:])
				f.Imports.Add("unsafe", "", nil)
				continue
			}
			fmt.Fprintf(&b, "\t%s %s\n", goCase(field.Name), goTypeName(ctx.Lib, field.TypeID))
		}
		b.WriteString("}\n\n")
	}

	for _, fn := range info.Functions {
		b.WriteString(methodSignature(ctx.Lib, info.Name, fn))
		b.WriteString("\n")
	}

	f.AddSection(codegen.Section{Name: "body", Body: codegen.CustomChunk(b.String())})
	return f
}
