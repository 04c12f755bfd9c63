package postprocess

// FieldFixup is one hard-known correction for a field whose GIR-declared
// c:type is known to be wrong or missing for a specific (namespace, type,
// field) triple. This is the named policy table the Open Question in
// spec.md §9 calls for ("Field c-type fixups for GDate, GValue, and
// GHookList are hard-coded workarounds... a reimplementation should encode
// these as a named policy table, not as ad-hoc branches"); resolution
// recorded in DESIGN.md.
type FieldFixup struct {
	Namespace string
	Type      string
	Field     string
	CType     string
}

// fieldFixupPolicy is the closed list of known-wrong GIR field c:types this
// generator corrects unconditionally, lifted from the original generator's
// hard-known GDate/GValue/GHookList special cases.
var fieldFixupPolicy = []FieldFixup{
	{Namespace: "GLib", Type: "Date", Field: "julian_days", CType: "guint"},
	{Namespace: "GObject", Type: "Value", Field: "g_type", CType: "GType"},
	{Namespace: "GLib", Type: "HookList", Field: "seq_id", CType: "gulong"},
}

func lookupFieldFixup(namespace, typeName, field string) (FieldFixup, bool) {
	for _, f := range fieldFixupPolicy {
		if f.Namespace == namespace && f.Type == typeName && f.Field == field {
			return f, true
		}
	}
	return FieldFixup{}, false
}

// goKeywords mangles field names that collide with target-language
// (Go) keywords, per spec.md §4.2 pass 5 ("Mangle field names that collide
// with target-language keywords").
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true,
	"select": true, "case": true, "defer": true, "go": true, "map": true,
	"struct": true, "chan": true, "else": true, "goto": true, "package": true,
	"switch": true, "const": true, "fallthrough": true, "if": true,
	"range": true, "type": true, "continue": true, "for": true, "import": true,
	"return": true, "var": true,
}

func mangleFieldName(name string) string {
	if goKeywords[name] {
		return name + "_"
	}
	return name
}
