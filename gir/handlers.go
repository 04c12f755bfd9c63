package gir

import (
	"encoding/xml"
	"io"

	"github.com/gtk-rs/gir-go/model"
)

// nsCtx carries the per-namespace state a handler needs: the library (for
// cross-namespace resolution), the namespace being populated, and the
// document position/path for diagnostics.
type nsCtx struct {
	lib  *model.Library
	ns   *model.Namespace
	path string
	dec  *xml.Decoder
}

func (c *nsCtx) pos() Position { return Position{File: c.path, Line: lineOf(c.dec)} }

func (p *Parser) parseNamespaceElement(path string, dec *xml.Decoder, start xml.StartElement) error {
	pos := Position{File: path, Line: lineOf(dec)}
	a := newAttrs("namespace", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return err
	}
	ns := p.lib.EnsureNamespace(name)
	ns.SharedLibraries = append(ns.SharedLibraries, splitCSV(a.str("shared-library"))...)
	ns.Packages = append(ns.Packages, splitCSV(a.str("c:identifier-prefixes"))...)
	if v := a.str("version"); v != "" {
		ns.Versions = append(ns.Versions, v)
	}

	c := &nsCtx{lib: p.lib, ns: ns, path: path, dec: dec}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errf(c.pos(), "xml: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := c.dispatchTopLevel(t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "namespace" {
				return nil
			}
		}
	}
}

func (c *nsCtx) dispatchTopLevel(start xml.StartElement) error {
	switch start.Name.Local {
	case "class":
		return c.parseClass(start)
	case "interface":
		return c.parseInterface(start)
	case "record":
		return c.parseRecord(start)
	case "union":
		return c.parseUnion(start)
	case "enumeration":
		return c.parseEnumeration(start, false)
	case "bitfield":
		return c.parseEnumeration(start, true)
	case "alias":
		return c.parseAlias(start)
	case "callback":
		_, err := c.parseFunctionLike(start, "callback", model.FuncFunction)
		return err
	case "constant":
		return c.parseConstant(start)
	case "function":
		_, err := c.parseFunctionLike(start, "function", model.FuncFunction)
		if err != nil {
			return err
		}
		return nil
	default:
		logUnknown("namespace", start.Name.Local)
		return c.dec.Skip()
	}
}

// resolveTypeRef resolves a GIR "name" attribute on a <type>/<array> element
// to a TypeID, handling cross-namespace "Ns.Local" references, builtin
// scalar aliases, and find_or_stub_type forward-reference stubbing for
// same-namespace references to types not yet defined.
func (c *nsCtx) resolveTypeRef(name string) model.TypeID {
	if internalName, ok := glibBasicNames[name]; ok {
		id, _ := c.lib.Internal().FindByName(internalName)
		return id
	}
	if ns, local, ok := splitQualified(name); ok {
		target := c.lib.EnsureNamespace(ns)
		return target.Stub(local)
	}
	return c.ns.Stub(name)
}

func splitQualified(name string) (ns, local string, ok bool) {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i], name[i+1:], true
		}
	}
	return "", "", false
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
