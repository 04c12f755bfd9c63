package gir

import "encoding/xml"

// attrs is the attribute-lookup wrapper spec.md §4.1 describes as "each
// recognized element calls a dedicated handler that validates required
// attributes [and] reads nested children in any order" — grounded on the
// Element wrapper in original_source/src/xmlparser.rs.
type attrs struct {
	elem string
	pos  Position
	raw  []xml.Attr
}

func newAttrs(elem string, pos Position, raw []xml.Attr) attrs {
	return attrs{elem: elem, pos: pos, raw: raw}
}

// qualifiedName reconstructs the "prefix:local" element name (glib:signal,
// glib:property) for the same reason attrs.get does for attributes.
func qualifiedName(n xml.Name) string {
	if n.Space != "" {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

// get looks up an attribute by its GIR name, reconstructing the
// "prefix:local" form (c:type, glib:get-type, ...) regardless of whether the
// document declared the prefix via xmlns — encoding/xml still splits on the
// colon and falls back to the literal prefix as the namespace when no
// mapping is registered, so comparing only Name.Local would silently miss
// every prefixed attribute.
func (a attrs) get(name string) (string, bool) {
	for _, at := range a.raw {
		key := at.Name.Local
		if at.Name.Space != "" {
			key = at.Name.Space + ":" + key
		}
		if key == name {
			return at.Value, true
		}
	}
	return "", false
}

// str returns the attribute value or "".
func (a attrs) str(name string) string {
	v, _ := a.get(name)
	return v
}

// require returns the attribute value or a fatal positioned error — spec.md
// §4.1 "malformed required attributes abort with position info".
func (a attrs) require(name string) (string, error) {
	v, ok := a.get(name)
	if !ok {
		return "", errf(a.pos, "missing required attribute %q on <%s>", name, a.elem)
	}
	return v, nil
}

// boolAttr parses a GIR "1"/"0" boolean attribute with a default.
func (a attrs) boolAttr(name string, def bool) bool {
	v, ok := a.get(name)
	if !ok {
		return def
	}
	return v == "1"
}

// intAttr parses a base-10 integer attribute, falling back to def on
// absence and failing fatally on malformed text.
func (a attrs) intAttr(name string, def int) (int, error) {
	v, ok := a.get(name)
	if !ok {
		return def, nil
	}
	n, err := parseInt(v)
	if err != nil {
		return 0, errf(a.pos, "attribute %q on <%s> is not an integer: %v", name, a.elem, err)
	}
	return n, nil
}

func parseInt(s string) (int, error) {
	neg := false
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	if i == len(s) {
		return 0, errf(Position{}, "empty integer")
	}
	n := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errf(Position{}, "invalid digit %q", c)
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}
