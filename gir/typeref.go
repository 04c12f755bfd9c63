package gir

import (
	"encoding/xml"
	"io"

	"github.com/gtk-rs/gir-go/model"
)

// typeRef is the resolved result of parsing a <type> or <array> child:
// the TypeID plus the (possibly still-empty) c:type string.
type typeRef struct {
	id    model.TypeID
	ctype string
	// arrayLengthAttr is the "length" attribute on an <array>, an index
	// into the sibling parameter list resolved by the caller.
	arrayLengthAttr (*int)
	fixedSize       int
}

// parseTypeElement consumes exactly one <type>, <array>, or <varargs> child
// of the element currently open (parameter/return-value/field/constant/
// alias), per spec.md §3 "each type element may carry c:type" and §4.1
// "nested children in any order". It consumes only that child, through its
// own end tag, so the caller's loop still looks for the parent's
// EndElement. For any other element name it consumes nothing and reports
// false.
func (c *nsCtx) parseTypeElement(start xml.StartElement) (typeRef, bool, error) {
	switch start.Name.Local {
	case "type":
		ref, err := c.parseTypeAttr(start)
		return ref, true, err
	case "array":
		ref, err := c.parseArrayAttr(start)
		return ref, true, err
	case "varargs":
		if err := c.dec.Skip(); err != nil {
			return typeRef{}, false, err
		}
		noneID, _ := c.lib.Internal().FindByName("None")
		return typeRef{id: noneID}, true, nil
	default:
		return typeRef{}, false, nil
	}
}

func (c *nsCtx) parseTypeAttr(start xml.StartElement) (typeRef, error) {
	pos := c.pos()
	a := newAttrs("type", pos, start.Attr)
	name := a.str("name")
	ctype := a.str("c:type")
	if err := c.dec.Skip(); err != nil {
		return typeRef{}, err
	}
	var id model.TypeID
	if name == "" {
		id, _ = c.lib.Internal().FindByName("Unsupported")
	} else {
		id = c.resolveTypeRef(name)
	}
	return typeRef{id: id, ctype: ctype}, nil
}

func (c *nsCtx) parseArrayAttr(start xml.StartElement) (typeRef, error) {
	pos := c.pos()
	a := newAttrs("array", pos, start.Attr)
	ctype := a.str("c:type")
	fixedSize, err := a.intAttr("fixed-size", -1)
	if err != nil {
		return typeRef{}, err
	}
	var lengthIdx *int
	if v, ok := a.get("length"); ok {
		n, err := parseInt(v)
		if err != nil {
			return typeRef{}, errf(pos, "array length attribute %q not an integer: %v", v, err)
		}
		lengthIdx = &n
	}

	var elem model.TypeID
	found := false
	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			return typeRef{}, errf(pos, "unexpected EOF inside <array>")
		}
		if err != nil {
			return typeRef{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "type" {
				ref, err := c.parseTypeAttr(t)
				if err != nil {
					return typeRef{}, err
				}
				elem = ref.id
				found = true
			} else {
				if err := c.dec.Skip(); err != nil {
					return typeRef{}, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "array" {
				goto done
			}
		}
	}
done:
	if !found {
		elem, _ = c.lib.Internal().FindByName("Unsupported")
	}
	kind := model.ContainerCArray
	if fixedSize >= 0 {
		kind = model.ContainerFixedArray
	}
	id := c.lib.InternContainer(model.ContainerType{Kind: kind, Elem: elem, FixedLen: max(fixedSize, 0)})
	return typeRef{id: id, ctype: ctype, arrayLengthAttr: lengthIdx, fixedSize: fixedSize}, nil
}
