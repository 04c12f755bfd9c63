package analysis

import (
	"strings"

	"github.com/gtk-rs/gir-go/model"
)

// LengthOverride is the configuration surface spec.md §4.5 describes:
// "The configuration may override detection (length_of = "array"), override
// disabling, or force a specific length-of target." Empty fields mean no
// override for that parameter.
type LengthOverride struct {
	// LengthOf, when non-empty, forces this parameter to be treated as the
	// length of the named array parameter.
	LengthOf string
	// Disable, when true, suppresses length detection entirely for this
	// parameter even if the naming/positional heuristic would fire.
	Disable bool
}

// DetectArrayLengths implements spec.md §4.5's array-length detection: for
// each parameter whose name is or ends with "len"/"length" and whose
// preceding parameter is a string/array type, elide the length from the
// public surface and record the association by mutating
// params[i].ArrayLength on the array parameter. overrides is keyed by
// parameter name and may be nil.
func DetectArrayLengths(lib *model.Library, params []model.Parameter, overrides map[string]LengthOverride) {
	for i := range params {
		name := params[i].Name
		ov, hasOv := overrides[name]
		if hasOv && ov.Disable {
			continue
		}

		var arrayIdx int
		switch {
		case hasOv && ov.LengthOf != "":
			idx, ok := indexOfParam(params, ov.LengthOf)
			if !ok {
				continue
			}
			arrayIdx = idx
		case i > 0 && isLengthName(name) && isArrayLike(lib, params[i-1]):
			arrayIdx = i - 1
		default:
			continue
		}

		if params[arrayIdx].ArrayLength == i {
			continue // already associated
		}
		params[arrayIdx].ArrayLength = i
	}
}

func indexOfParam(params []model.Parameter, name string) (int, bool) {
	for i, p := range params {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}

func isLengthName(name string) bool {
	lower := strings.ToLower(name)
	return lower == "len" || lower == "length" ||
		strings.HasSuffix(lower, "_len") || strings.HasSuffix(lower, "_length") ||
		strings.HasSuffix(lower, "len") || strings.HasSuffix(lower, "length")
}

// isArrayLike reports whether p is a string (Utf8/Filename) or Container
// type — the two cases spec.md §4.5 treats as carrying an explicit length.
func isArrayLike(lib *model.Library, p model.Parameter) bool {
	t, ok := lib.Type(p.TypeID)
	if !ok {
		return false
	}
	if t.Kind == model.KindContainer {
		return true
	}
	return t.Kind == model.KindBasic && (t.Name == "Utf8" || t.Name == "Filename")
}
