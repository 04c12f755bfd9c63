package gir

import (
	"encoding/xml"
	"io"

	"github.com/gtk-rs/gir-go/model"
)

// classBody accumulates what parseClass/parseInterface/parseRecord/
// parseUnion all need, since the four share most of their child-element
// vocabulary (fields, functions, methods, constructors).
type classBody struct {
	fields     []model.Field
	functions  []model.TypeID
	virtuals   []model.TypeID
	signals    []model.Signal
	properties []model.Property
	implements []model.TypeID
	prereqs    []model.TypeID
}

func (c *nsCtx) parseField(start xml.StartElement) (model.Field, error) {
	pos := c.pos()
	a := newAttrs("field", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return model.Field{}, err
	}
	f := model.Field{Name: name, Private: a.boolAttr("private", false)}
	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			return f, nil
		}
		if err != nil {
			return model.Field{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ref, handled, err := c.parseTypeElement(t)
			if err != nil {
				return model.Field{}, err
			}
			if handled {
				f.TypeID = ref.id
				f.CType = ref.ctype
				continue
			}
			if err := c.dec.Skip(); err != nil {
				return model.Field{}, err
			}
		case xml.EndElement:
			if t.Name.Local == "field" {
				return f, nil
			}
		}
	}
}

func (c *nsCtx) parseProperty(start xml.StartElement) (model.Property, error) {
	pos := c.pos()
	a := newAttrs("glib:property", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return model.Property{}, err
	}
	p := model.Property{
		Name:      name,
		Readable:  a.boolAttr("readable", true),
		Writable:  a.boolAttr("writable", false),
		Construct: a.boolAttr("construct", false),
		ConstructOnly: a.boolAttr("construct-only", false),
	}
	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return model.Property{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ref, handled, err := c.parseTypeElement(t)
			if err != nil {
				return model.Property{}, err
			}
			if handled {
				p.TypeID = ref.id
				continue
			}
			if err := c.dec.Skip(); err != nil {
				return model.Property{}, err
			}
		case xml.EndElement:
			if qualifiedName(t.Name) == "glib:property" {
				return p, nil
			}
		}
	}
}

// parseSignal parses a <glib:signal>. A signal parameter's c:type may be
// the empty-string sentinel per spec.md §4.1, resolved later by
// post-processing pass 3.
func (c *nsCtx) parseSignal(start xml.StartElement) (model.Signal, error) {
	pos := c.pos()
	a := newAttrs("glib:signal", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return model.Signal{}, err
	}
	sig := model.Signal{Name: name}
	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			return sig, nil
		}
		if err != nil {
			return model.Signal{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "parameters":
				params, err := c.parseParameters(t)
				if err != nil {
					return model.Signal{}, err
				}
				sig.Params = params
			case "return-value":
				ret, err := c.parseReturnValue(t)
				if err != nil {
					return model.Signal{}, err
				}
				sig.Return = ret
			default:
				if err := c.dec.Skip(); err != nil {
					return model.Signal{}, err
				}
			}
		case xml.EndElement:
			if qualifiedName(t.Name) == "glib:signal" {
				return sig, nil
			}
		}
	}
}

// parseBodyChild dispatches one child element common to class/interface/
// record/union bodies, mutating body in place. It reports whether the
// element name was recognized (and thus consumed).
func (c *nsCtx) parseBodyChild(t xml.StartElement, body *classBody) (bool, error) {
	switch qualifiedName(t.Name) {
	case "field":
		f, err := c.parseField(t)
		if err != nil {
			return true, err
		}
		body.fields = append(body.fields, f)
	case "glib:property":
		p, err := c.parseProperty(t)
		if err != nil {
			return true, err
		}
		body.properties = append(body.properties, p)
	case "glib:signal":
		s, err := c.parseSignal(t)
		if err != nil {
			return true, err
		}
		body.signals = append(body.signals, s)
	case "constructor":
		id, err := c.parseFunctionLike(t, "constructor", model.FuncConstructor)
		if err != nil {
			return true, err
		}
		body.functions = append(body.functions, id)
	case "method":
		id, err := c.parseFunctionLike(t, "method", model.FuncMethod)
		if err != nil {
			return true, err
		}
		body.functions = append(body.functions, id)
	case "function":
		id, err := c.parseFunctionLike(t, "function", model.FuncClassMethod)
		if err != nil {
			return true, err
		}
		body.functions = append(body.functions, id)
	case "virtual-method":
		id, err := c.parseFunctionLike(t, "virtual-method", model.FuncVirtualMethod)
		if err != nil {
			return true, err
		}
		body.virtuals = append(body.virtuals, id)
	case "implements":
		a := newAttrs("implements", c.pos(), t.Attr)
		name, err := a.require("name")
		if err != nil {
			return true, err
		}
		if err := c.dec.Skip(); err != nil {
			return true, err
		}
		body.implements = append(body.implements, c.resolveTypeRef(name))
	case "prerequisite":
		a := newAttrs("prerequisite", c.pos(), t.Attr)
		name, err := a.require("name")
		if err != nil {
			return true, err
		}
		if err := c.dec.Skip(); err != nil {
			return true, err
		}
		body.prereqs = append(body.prereqs, c.resolveTypeRef(name))
	default:
		return false, nil
	}
	return true, nil
}

func (c *nsCtx) parseClass(start xml.StartElement) error {
	pos := c.pos()
	a := newAttrs("class", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return err
	}
	id := c.ns.Stub(name)
	var body classBody
	var parent model.TypeID
	hasParent := false
	if p := a.str("parent"); p != "" {
		parent = c.resolveTypeRef(p)
		hasParent = true
	}

	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			handled, err := c.parseBodyChild(t, &body)
			if err != nil {
				return err
			}
			if !handled {
				logUnknown("class", t.Name.Local)
				if err := c.dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "class" {
				goto done
			}
		}
	}
done:
	var classRecord model.TypeID
	hasClassRecord := false
	if s := a.str("glib:type-struct"); s != "" {
		classRecord = c.resolveTypeRef(s)
		hasClassRecord = true
	}
	c.ns.Define(id.LocalID, model.Type{
		Kind:           model.KindClass,
		Name:           name,
		CType:          a.str("c:type"),
		Version:        a.str("version"),
		Deprecated:     a.str("deprecated-version"),
		GLibGetType:    a.str("glib:get-type"),
		Parent:         parent,
		HasParent:      hasParent,
		Implements:     body.implements,
		Fields:         body.fields,
		Functions:      body.functions,
		VirtualMethods: body.virtuals,
		Signals:        body.signals,
		Properties:     body.properties,
		Abstract:       a.boolAttr("abstract", false),
		Fundamental:    a.boolAttr("glib:fundamental", false),
		ClassRecordID:  classRecord,
		HasClassRecord: hasClassRecord,
		RefFunction:    a.str("glib:ref-func"),
		UnrefFunction:  a.str("glib:unref-func"),
	})
	return nil
}

func (c *nsCtx) parseInterface(start xml.StartElement) error {
	pos := c.pos()
	a := newAttrs("interface", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return err
	}
	id := c.ns.Stub(name)
	var body classBody

	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			handled, err := c.parseBodyChild(t, &body)
			if err != nil {
				return err
			}
			if !handled {
				logUnknown("interface", t.Name.Local)
				if err := c.dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "interface" {
				goto done
			}
		}
	}
done:
	c.ns.Define(id.LocalID, model.Type{
		Kind:           model.KindInterface,
		Name:           name,
		CType:          a.str("c:type"),
		Version:        a.str("version"),
		Deprecated:     a.str("deprecated-version"),
		GLibGetType:    a.str("glib:get-type"),
		Functions:      body.functions,
		VirtualMethods: body.virtuals,
		Signals:        body.signals,
		Properties:     body.properties,
		Prerequisites:  body.prereqs,
	})
	return nil
}

func (c *nsCtx) parseRecord(start xml.StartElement) error {
	pos := c.pos()
	a := newAttrs("record", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return err
	}
	id := c.ns.Stub(name)
	var body classBody

	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			handled, err := c.parseBodyChild(t, &body)
			if err != nil {
				return err
			}
			if !handled {
				logUnknown("record", t.Name.Local)
				if err := c.dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "record" {
				goto done
			}
		}
	}
done:
	var gtypeStructFor model.TypeID
	hasGTypeStructFor := false
	if s := a.str("glib:is-gtype-struct-for"); s != "" {
		gtypeStructFor = c.resolveTypeRef(s)
		hasGTypeStructFor = true
	}
	c.ns.Define(id.LocalID, model.Type{
		Kind:              model.KindRecord,
		Name:              name,
		CType:             a.str("c:type"),
		Version:           a.str("version"),
		Deprecated:        a.str("deprecated-version"),
		GLibGetType:       a.str("glib:get-type"),
		Fields:            body.fields,
		Functions:         body.functions,
		GTypeStructFor:    gtypeStructFor,
		HasGTypeStructFor: hasGTypeStructFor,
	})
	return nil
}

func (c *nsCtx) parseUnion(start xml.StartElement) error {
	pos := c.pos()
	a := newAttrs("union", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return err
	}
	id := c.ns.Stub(name)
	var body classBody

	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			handled, err := c.parseBodyChild(t, &body)
			if err != nil {
				return err
			}
			if !handled {
				logUnknown("union", t.Name.Local)
				if err := c.dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "union" {
				goto done
			}
		}
	}
done:
	c.ns.Define(id.LocalID, model.Type{
		Kind:      model.KindUnion,
		Name:      name,
		CType:     a.str("c:type"),
		Version:   a.str("version"),
		Fields:    body.fields,
		Functions: body.functions,
	})
	return nil
}

func (c *nsCtx) parseAlias(start xml.StartElement) error {
	pos := c.pos()
	a := newAttrs("alias", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return err
	}
	id := c.ns.Stub(name)
	var target model.TypeID
	var targetCType string
	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ref, handled, err := c.parseTypeElement(t)
			if err != nil {
				return err
			}
			if handled {
				target = ref.id
				targetCType = ref.ctype
				continue
			}
			if err := c.dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "alias" {
				goto done
			}
		}
	}
done:
	c.ns.Define(id.LocalID, model.Type{
		Kind:        model.KindAlias,
		Name:        name,
		CType:       a.str("c:type"),
		AliasTarget: target,
		AliasCType:  targetCType,
	})
	return nil
}

func (c *nsCtx) parseConstant(start xml.StartElement) error {
	pos := c.pos()
	a := newAttrs("constant", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return err
	}
	var valType model.TypeID
	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ref, handled, err := c.parseTypeElement(t)
			if err != nil {
				return err
			}
			if handled {
				valType = ref.id
				continue
			}
			if err := c.dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == "constant" {
				goto done
			}
		}
	}
done:
	c.ns.Append(model.Type{
		Kind:        model.KindCustom,
		Name:        name,
		CType:       a.str("c:type"),
		AliasTarget: valType,
		CustomSource: a.str("value"),
	})
	return nil
}

func (c *nsCtx) parseEnumeration(start xml.StartElement, bitfield bool) error {
	elemName := "enumeration"
	kind := model.KindEnumeration
	if bitfield {
		elemName = "bitfield"
		kind = model.KindBitfield
	}
	pos := c.pos()
	a := newAttrs(elemName, pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return err
	}
	id := c.ns.Stub(name)
	var members []model.Member
	var funcs []model.TypeID
	var errorDomain *model.ErrorDomain
	if q := a.str("glib:error-domain"); q != "" {
		errorDomain = &model.ErrorDomain{Quark: q}
	}

	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "member":
				m, err := c.parseMember(t)
				if err != nil {
					return err
				}
				members = append(members, m)
			case "function":
				fid, err := c.parseFunctionLike(t, "function", model.FuncFunction)
				if err != nil {
					return err
				}
				funcs = append(funcs, fid)
			default:
				if err := c.dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == elemName {
				goto done
			}
		}
	}
done:
	c.ns.Define(id.LocalID, model.Type{
		Kind:        kind,
		Name:        name,
		CType:       a.str("c:type"),
		Version:     a.str("version"),
		Deprecated:  a.str("deprecated-version"),
		Members:     members,
		Functions:   funcs,
		ErrorDomain: errorDomain,
	})
	return nil
}

func (c *nsCtx) parseMember(start xml.StartElement) (model.Member, error) {
	pos := c.pos()
	a := newAttrs("member", pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return model.Member{}, err
	}
	value, _ := a.intAttr("value", 0)
	if err := c.dec.Skip(); err != nil {
		return model.Member{}, err
	}
	return model.Member{
		Name:        name,
		CIdentifier: a.str("c:identifier"),
		Value:       int64(value),
		Version:     a.str("version"),
		Deprecated:  a.str("deprecated-version"),
	}, nil
}
