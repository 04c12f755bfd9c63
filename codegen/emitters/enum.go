package emitters

import (
	"fmt"
	"strings"

	"github.com/gtk-rs/gir-go/analysis/analyzers"
	"github.com/gtk-rs/gir-go/codegen"
	"github.com/gtk-rs/gir-go/model"
)

// EmitEnum translates an EnumInfo into a Go defined int type with one
// constant per generate-status member, version-gating comment per member,
// and — when info.ErrorDomain is set — a glib.Error-compatible domain
// accessor wired to the rewritten quark function (spec.md §4.2 pass 8,
// §8 scenario 4).
func EmitEnum(ctx *Context, qualifiedName string, info *analyzers.EnumInfo) *codegen.File {
	pkg := strings.ToLower(info.Name)
	f := ctx.newFile(qualifiedName, pkg, pkg+"/"+strings.ToLower(info.Name)+".go")

	kind := "enum"
	if info.Bitfield {
		kind = "bitfield"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// %s is the Go binding for the C %s %s.\n", info.Name, kind, info.Name)
	fmt.Fprintf(&b, "type %s int\n\n", info.Name)
	fmt.Fprintf(&b, "const (\n")
	for _, m := range info.Members {
		switch m.Status {
		case model.StatusIgnore:
			continue
		case model.StatusManual:
			fmt.Fprintf(&b, "\t// %s is hand-maintained; see manual overrides.\n", goCase(m.Name))
			continue
		}
		if m.Version != "" {
			fmt.Fprintf(&b, "\t// available since %s\n", m.Version)
		}
		fmt.Fprintf(&b, "\t%s%s %s = %d\n", info.Name, goCase(m.Name), info.Name, m.Value)
	}
	b.WriteString(")\n\n")

	if info.ErrorDomain != nil {
		fmt.Fprintf(&b, "// Domain returns the GQuark error domain for %s via %s.\n",
			info.Name, info.ErrorDomain.Function)
		fmt.Fprintf(&b, "func (%s) Domain() string { return %s() }\n\n", info.Name, info.ErrorDomain.Function)
	}

	for _, fn := range info.Functions {
		b.WriteString(methodSignature(ctx.Lib, "", fn))
		b.WriteString("\n")
	}

	f.AddSection(codegen.Section{Name: "body", Body: codegen.CustomChunk(b.String())})
	return f
}
