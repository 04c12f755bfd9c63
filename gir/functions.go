package gir

import (
	"encoding/xml"
	"io"

	"github.com/gtk-rs/gir-go/model"
)

// parseFunctionLike parses a <function>/<method>/<constructor>/
// <virtual-method>/<callback> element (they share the same body shape:
// optional <parameters>, one <return-value>) and appends the resulting
// Function as a KindFunction Type in the current namespace, returning its
// TypeID so the caller can link it into the owner's Functions/
// VirtualMethods list.
func (c *nsCtx) parseFunctionLike(start xml.StartElement, elemName string, kind model.FunctionKind) (model.TypeID, error) {
	pos := c.pos()
	a := newAttrs(elemName, pos, start.Attr)
	name, err := a.require("name")
	if err != nil {
		return model.TypeID{}, err
	}
	fn := model.Function{
		Name:        name,
		CIdentifier: a.str("c:identifier"),
		Kind:        kind,
		Version:     a.str("version"),
		Deprecated:  a.str("deprecated-version"),
		Throws:      a.boolAttr("throws", false),
	}

	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.TypeID{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "parameters":
				params, err := c.parseParameters(t)
				if err != nil {
					return model.TypeID{}, err
				}
				fn.Parameters = params
			case "return-value":
				ret, err := c.parseReturnValue(t)
				if err != nil {
					return model.TypeID{}, err
				}
				fn.Return = ret
			default:
				if err := c.dec.Skip(); err != nil {
					return model.TypeID{}, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == elemName {
				goto done
			}
		}
	}
done:
	if kind == model.FuncMethod || kind == model.FuncVirtualMethod {
		if len(fn.Parameters) > 0 {
			fn.MarkInstanceParameter()
		}
	}
	if fn.Throws && len(fn.Parameters) > 0 {
		last := &fn.Parameters[len(fn.Parameters)-1]
		if !last.IsError {
			errType, _ := c.lib.Internal().FindByName("Unsupported")
			fn.Parameters = append(fn.Parameters, model.Parameter{
				Name:      "error",
				TypeID:    errType,
				CType:     "GError**",
				Direction: model.DirOut,
				IsError:   true,
				ArrayLength: model.NoIndex,
				Closure:     model.NoIndex,
				Destroy:     model.NoIndex,
			})
		}
	}

	id := c.ns.Append(model.Type{
		Kind:         model.KindFunction,
		Name:         name,
		CType:        fn.CIdentifier,
		Version:      fn.Version,
		Deprecated:   fn.Deprecated,
		FunctionInfo: &model.FunctionType{Function: fn},
	})
	return id, nil
}

func (c *nsCtx) parseParameters(start xml.StartElement) ([]model.Parameter, error) {
	var params []model.Parameter
	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			return params, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "instance-parameter", "parameter":
				p, err := c.parseParameter(t)
				if err != nil {
					return nil, err
				}
				params = append(params, p)
			default:
				if err := c.dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "parameters" {
				return params, nil
			}
		}
	}
}

func (c *nsCtx) parseParameter(start xml.StartElement) (model.Parameter, error) {
	pos := c.pos()
	a := newAttrs(start.Name.Local, pos, start.Attr)
	name := a.str("name")
	if name == "" {
		name = "self"
	}
	direction, err := parseDirection(a)
	if err != nil {
		return model.Parameter{}, err
	}
	transfer, err := parseTransfer(a)
	if err != nil {
		return model.Parameter{}, err
	}
	scope, err := parseScope(a)
	if err != nil {
		return model.Parameter{}, err
	}
	closure, _ := a.intAttr("closure", model.NoIndex)
	destroy, _ := a.intAttr("destroy", model.NoIndex)
	nullable := a.boolAttr("nullable", false)
	callerAllocates := a.boolAttr("caller-allocates", false)

	p := model.NewParameter(name, model.TypeID{})
	p.Direction = direction
	p.Transfer = transfer
	p.Scope = scope
	p.Closure = closure
	p.Destroy = destroy
	p.Nullable = nullable
	p.CallerAllocates = callerAllocates

	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return model.Parameter{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ref, handled, err := c.parseTypeElement(t)
			if err != nil {
				return model.Parameter{}, err
			}
			if handled {
				p.TypeID = ref.id
				p.CType = ref.ctype
				if ref.arrayLengthAttr != nil {
					p.ArrayLength = *ref.arrayLengthAttr
				}
				continue
			}
			if err := c.dec.Skip(); err != nil {
				return model.Parameter{}, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return p, nil
			}
		}
	}
}

func (c *nsCtx) parseReturnValue(start xml.StartElement) (model.Parameter, error) {
	pos := c.pos()
	a := newAttrs("return-value", pos, start.Attr)
	transfer, err := parseTransfer(a)
	if err != nil {
		return model.Parameter{}, err
	}
	nullable := a.boolAttr("nullable", false)

	p := model.NewParameter("", model.TypeID{})
	p.Direction = model.DirReturn
	p.Transfer = transfer
	p.Nullable = nullable

	for {
		tok, err := c.dec.Token()
		if err == io.EOF {
			return p, nil
		}
		if err != nil {
			return model.Parameter{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			ref, handled, err := c.parseTypeElement(t)
			if err != nil {
				return model.Parameter{}, err
			}
			if handled {
				p.TypeID = ref.id
				p.CType = ref.ctype
				continue
			}
			if err := c.dec.Skip(); err != nil {
				return model.Parameter{}, err
			}
		case xml.EndElement:
			if t.Name.Local == "return-value" {
				return p, nil
			}
		}
	}
}
