package emitters

import (
	"fmt"
	"strings"

	goacodegen "goa.design/goa/v3/codegen"

	"github.com/gtk-rs/gir-go/analysis/analyzers"
	"github.com/gtk-rs/gir-go/codegen"
)

// EmitInterface translates an InterfaceInfo into a Go interface type plus
// its prerequisite embeds, per spec.md §4.6: the method partition, the
// property accessor/notify-connector signatures (analyzers.InterfaceInfo.
// Properties), and the signal connector signatures (.Signals) all belong to
// the interface surface, not just the prerequisite chain.
func EmitInterface(ctx *Context, qualifiedName string, info *analyzers.InterfaceInfo) *codegen.File {
	pkg := strings.ToLower(info.Name)
	f := ctx.newFile(qualifiedName, pkg, pkg+"/"+strings.ToLower(info.Name)+".go")

	var b strings.Builder
	fmt.Fprintf(&b, "// Is%s is satisfied by every type implementing the %s interface.\n", info.Name, info.Name)
	fmt.Fprintf(&b, "type Is%s interface {\n", info.Name)
	for _, prereq := range info.Prerequisites {
		name, ok := ctx.Symbols.Lookup(ctx.Lib.QualifiedName(prereq))
		if !ok {
			name = goTypeName(ctx.Lib, prereq)
		}
		fmt.Fprintf(&b, "\tIs%s\n", lastSegment(name))
	}
	for _, m := range info.Methods {
		if m.Commented {
			continue
		}
		fmt.Fprintf(&b, "\t%s(...interface{}) error\n", goCase(m.Name))
	}
	for _, p := range info.Properties {
		goType := goTypeName(ctx.Lib, p.TypeID)
		if p.Nullable {
			goType = "*" + goType
		}
		name := goacodegen.Goify(p.Name, true)
		if p.Readable {
			fmt.Fprintf(&b, "\t%s() %s\n", name, goType)
		}
		if p.Writable {
			fmt.Fprintf(&b, "\tSet%s(value %s)\n", name, goType)
		}
		fmt.Fprintf(&b, "\tConnect%sNotify(f func()) int\n", name)
	}
	for _, sig := range info.Signals {
		fmt.Fprintf(&b, "\tConnect%s(f func()) int\n", goacodegen.Goify(sig.Name, true))
	}
	b.WriteString("}\n")

	f.AddSection(codegen.Section{Name: "body", Body: codegen.CustomChunk(b.String())})
	return f
}
