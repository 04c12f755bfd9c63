// Package emitters implements spec.md §4.7's per-symbol-kind translation
// from analysis/analyzers.Info values to target-language (Go) source text,
// routed by symbol kind, sharing the codegen package's Imports tracker and
// chunk-tree Flatten machinery.
package emitters

import (
	"fmt"
	"strings"

	goacodegen "goa.design/goa/v3/codegen"

	"github.com/gtk-rs/gir-go/analysis"
	"github.com/gtk-rs/gir-go/analysis/analyzers"
	"github.com/gtk-rs/gir-go/codegen"
	"github.com/gtk-rs/gir-go/model"
)

// bannerTool names this generator in the "generated by" banner every File
// carries, per spec.md §4.7.
const bannerTool = "gir-go"

// Context bundles the dependencies every per-kind emitter needs: the
// library to resolve TypeIds for naming, the shared symbol table recording
// each emitted item's Go path, and the module path new Files are rooted
// under (used to strip self-module import prefixes, spec.md §4.7).
type Context struct {
	Lib        *model.Library
	Symbols    *codegen.SymbolTable
	ModulePath string
}

// newFile returns a File for one emitted symbol, pre-registering it in the
// shared symbol table.
func (c *Context) newFile(qualifiedName, pkg, relPath string) *codegen.File {
	f := codegen.NewFile(relPath, pkg, c.ModulePath, bannerTool)
	c.Symbols.Register(qualifiedName, c.ModulePath+"/"+pkg+"."+lastSegment(qualifiedName))
	return f
}

func lastSegment(qualifiedName string) string {
	if i := strings.LastIndexByte(qualifiedName, '.'); i >= 0 {
		return qualifiedName[i+1:]
	}
	return qualifiedName
}

// goTypeName resolves tid to the Go type name an emitted signature should
// use: a builtin mapping for Basic scalars, the bare type name otherwise
// (cross-namespace references are qualified by the caller via Imports).
func goTypeName(lib *model.Library, tid model.TypeID) string {
	t, ok := lib.Type(tid)
	if !ok {
		return "interface{}"
	}
	switch t.Kind {
	case model.KindBasic:
		return basicGoType(t.Name)
	case model.KindAlias:
		return goTypeName(lib, t.AliasTarget)
	default:
		return t.Name
	}
}

// goCase renders a GIR member/field name as an exported Go identifier,
// e.g. "read_only" -> "ReadOnly".
func goCase(name string) string {
	return goacodegen.Goify(name, true)
}

func basicGoType(name string) string {
	switch name {
	case "Boolean":
		return "bool"
	case "Int8":
		return "int8"
	case "UInt8":
		return "uint8"
	case "Int16":
		return "int16"
	case "UInt16":
		return "uint16"
	case "Int32":
		return "int32"
	case "UInt32":
		return "uint32"
	case "Int64":
		return "int64"
	case "UInt64":
		return "uint64"
	case "Float":
		return "float32"
	case "Double":
		return "float64"
	case "Utf8", "Filename":
		return "string"
	case "Size":
		return "uint"
	case "SSize":
		return "int"
	default:
		return "interface{}"
	}
}

// paramGoType renders the public Go parameter type for a method parameter,
// honoring the Bound classification on pointer-shaped parameters (IsA/
// AsRef/IntoOption*) per spec.md §4.4, and the bare Go scalar type
// otherwise.
func paramGoType(lib *model.Library, m analyzers.MethodInfo, name string) string {
	if m.Bounds != nil {
		for _, b := range m.Bounds.List() {
			if b.ParamName == name {
				return boundGoType(b)
			}
		}
	}
	return "interface{}"
}

func boundGoType(b *analysis.Bound) string {
	switch b.Kind {
	case analysis.BoundIsA:
		return "Is" + b.TypeStr
	case analysis.BoundAsRef:
		return b.TypeStr
	case analysis.BoundIntoOption, analysis.BoundIntoOptionRef:
		return "*" + b.TypeStr
	case analysis.BoundIntoOptionIsA:
		return "Is" + b.TypeStr // caller passes nil for None
	default:
		return b.TypeStr
	}
}

// methodSignature renders a MethodInfo's Go function/method source,
// honoring the commented-degradation tier of spec.md §7: a function whose
// analysis set Commented is emitted as a non-compiling, clearly marked stub
// rather than aborting the surrounding file.
func methodSignature(lib *model.Library, recv string, m analyzers.MethodInfo) string {
	name := goacodegen.Goify(m.Name, true)
	if m.Commented {
		return fmt.Sprintf("/*Unimplemented*/ // %s: %s\n", name, m.CommentReason)
	}

	var sig strings.Builder
	if recv != "" {
		fmt.Fprintf(&sig, "func (self *%s) %s(", recv, name)
	} else {
		fmt.Fprintf(&sig, "func %s(", name)
	}

	args := make([]string, 0, len(m.Transforms))
	for i, t := range m.Transforms {
		if i == 0 && recv != "" {
			continue // instance parameter: already the receiver
		}
		if t.ParamName == "" || t.Kind == analysis.TransformLength {
			continue
		}
		args = append(args, t.ParamName+" "+paramGoType(lib, m, t.ParamName))
	}
	sig.WriteString(strings.Join(args, ", "))
	sig.WriteString(") error {\n")

	body := buildBody(recv, m)
	sig.WriteString(indent(body.Flatten()))
	sig.WriteString("}\n")

	if m.Async != nil {
		sig.WriteString(asyncVariant(lib, recv, m))
	}

	return sig.String()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "\t" + l
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// buildBody assembles the chunk-tree call-site body for m: a Let chunk per
// TransformLength parameter deriving the length from its paired slice/
// string parameter (spec.md §8 scenario 2), followed by the Unsafe scope
// wrapping the FfiCall to the underlying C symbol.
func buildBody(recv string, m analyzers.MethodInfo) *codegen.Chunk {
	var lets []*codegen.Chunk
	args := make([]string, 0, len(m.Transforms))
	for i, t := range m.Transforms {
		if i == 0 && recv != "" {
			args = append(args, "self.ptr")
			continue
		}
		if t.Kind == analysis.TransformLength {
			lets = append(lets, codegen.LetChunk(t.LengthOf+"Len", codegen.CustomChunk("len("+t.LengthOf+")")))
		}
		args = append(args, callArg(t))
	}
	call := codegen.FfiCallChunk(m.CIdentifier, args...)
	return codegen.UnsafeChunk(append(lets, call)...)
}

func callArg(t analysis.Transformation) string {
	switch t.Kind {
	case analysis.TransformLength:
		return t.LengthOf + "Len"
	case analysis.TransformInto:
		return t.ParamName
	case analysis.TransformIntoRaw:
		return "intoRawPtr(" + t.ParamName + ")"
	case analysis.TransformToSome:
		return "&" + t.ParamName
	default:
		return t.ParamName
	}
}

// asyncVariant renders the future-returning entry point synthesized for an
// async function: the callback/user-data parameters are hidden from the
// caller, wired instead to a synthesized GAsyncReadyCallback trampoline
// carrying a completion handle, and the matching *_finish function's outs
// form the success payload, per spec.md §4.5 "Async handling". Grounded on
// gio's GAsyncReadyCallback/g_async_result pattern (call the _async entry
// point with a trampoline + userdata, block for the ready signal, then call
// the _finish companion to project the result) the same way gotk3 bridges
// GLib closures back into Go via a reflection-based trampoline.
func asyncVariant(lib *model.Library, recv string, m analyzers.MethodInfo) string {
	name := goacodegen.Goify(m.Name, true) + "Future"
	successTypes := make([]string, 0, len(m.Async.SuccessTypes))
	for _, tid := range m.Async.SuccessTypes {
		successTypes = append(successTypes, goTypeName(lib, tid))
	}
	success := "struct{}"
	if len(successTypes) == 1 {
		success = successTypes[0]
	} else if len(successTypes) > 1 {
		success = "(" + strings.Join(successTypes, ", ") + ")"
	}

	finishCIdent := ""
	if ft, ok := lib.Type(m.Async.FinishFunc); ok && ft.FunctionInfo != nil {
		finishCIdent = ft.FunctionInfo.CIdentifier
	}

	args := make([]string, 0, len(m.Transforms))
	for i, t := range m.Transforms {
		switch {
		case i == 0 && recv != "":
			args = append(args, "self.ptr")
		case i == m.Async.CallbackIndex:
			args = append(args, "gasyncReadyTrampoline")
		case m.Async.UserDataIndex != analysis.NoIndex && i == m.Async.UserDataIndex:
			args = append(args, "unsafe.Pointer(result)")
		default:
			args = append(args, callArg(t))
		}
	}

	var b strings.Builder
	if recv != "" {
		fmt.Fprintf(&b, "func (self *%s) %s(ctx context.Context) (%s, error) {\n", recv, name, success)
	} else {
		fmt.Fprintf(&b, "func %s(ctx context.Context) (%s, error) {\n", name, success)
	}
	b.WriteString("\tresult := newAsyncResult()\n")
	fmt.Fprintf(&b, "\t%s(%s)\n", m.CIdentifier, strings.Join(args, ", "))
	b.WriteString("\tready, err := result.wait(ctx)\n")
	fmt.Fprintf(&b, "\tif err != nil {\n\t\tvar zero %s\n\t\treturn zero, err\n\t}\n", success)
	if finishCIdent != "" {
		if recv != "" {
			fmt.Fprintf(&b, "\treturn %s(self.ptr, ready)\n", finishCIdent)
		} else {
			fmt.Fprintf(&b, "\treturn %s(ready)\n", finishCIdent)
		}
	} else {
		b.WriteString("\treturn ready, nil\n")
	}
	b.WriteString("}\n")
	return b.String()
}
