package postprocess

import (
	"fmt"
	"strings"

	"github.com/gtk-rs/gir-go/model"
)

// rewriteErrorDomains implements spec.md §4.2 pass 8: for each enumeration
// carrying a GQuark error domain, locate a function whose identifier
// matches any of {domain, domain_quark, domain_error_quark,
// prefix_error_quark} wherever it lives (namespace, enum, class, record,
// interface), rewrite the enumeration's domain to reference that function,
// and remove the function from its original owner to avoid duplicate
// emission.
//
// "domain" is the error-domain quark string (e.g. "g-foo-error") with '-'
// normalized to '_'; "prefix" is that string with a trailing "_error"
// stripped. Matches spec.md §8 concrete scenario 4: quark "g-foo-error" +
// namespace function "g_foo_error_quark" resolves via the domain_quark /
// prefix_error_quark candidate (both forms coincide here).
func rewriteErrorDomains(lib *model.Library) error {
	index := indexFunctionsByIdentifier(lib)

	for _, ns := range lib.Namespaces() {
		var walkErr error
		ns.All(func(localID model.LocalID, t *model.Type) {
			if walkErr != nil {
				return
			}
			if t.Kind != model.KindEnumeration && t.Kind != model.KindBitfield {
				return
			}
			if t.ErrorDomain == nil || t.ErrorDomain.Function != "" {
				return
			}
			candidates := quarkCandidates(t.ErrorDomain.Quark)
			for _, candidate := range candidates {
				fn, ok := index[candidate]
				if !ok {
					continue
				}
				t.ErrorDomain.Function = candidate
				removeFunctionFromOwner(lib, fn)
				return
			}
			walkErr = fmt.Errorf("postprocess: error domain %q on %s matches no accessor function (tried %s)",
				t.ErrorDomain.Quark, lib.QualifiedName(model.TypeID{NSID: ns.ID, LocalID: localID}), strings.Join(candidates, ", "))
		})
		if walkErr != nil {
			return walkErr
		}
	}
	return nil
}

// functionRef locates one function Type by its owner so it can be removed.
type functionRef struct {
	id       model.TypeID
	ownerID  model.TypeID
	hasOwner bool
}

// indexFunctionsByIdentifier walks every namespace-level, class, record,
// interface, and enum/bitfield function list, indexing by C identifier.
func indexFunctionsByIdentifier(lib *model.Library) map[string]functionRef {
	index := make(map[string]functionRef)
	for _, ns := range lib.Namespaces() {
		ns.All(func(localID model.LocalID, t *model.Type) {
			id := model.TypeID{NSID: ns.ID, LocalID: localID}
			if t.Kind == model.KindFunction && t.FunctionInfo != nil {
				if ident := t.FunctionInfo.CIdentifier; ident != "" {
					// an owned function keeps its owner entry
					if _, seen := index[ident]; !seen {
						index[ident] = functionRef{id: id}
					}
				}
			}
			for _, fnID := range t.Functions {
				fn, ok := lib.Type(fnID)
				if !ok || fn.FunctionInfo == nil || fn.FunctionInfo.CIdentifier == "" {
					continue
				}
				index[fn.FunctionInfo.CIdentifier] = functionRef{id: fnID, ownerID: id, hasOwner: true}
			}
		})
	}
	return index
}

func removeFunctionFromOwner(lib *model.Library, ref functionRef) {
	if fn, ok := lib.Type(ref.id); ok {
		fn.Removed = true
	}
	if !ref.hasOwner {
		return
	}
	owner, ok := lib.Type(ref.ownerID)
	if !ok {
		return
	}
	filtered := owner.Functions[:0]
	for _, id := range owner.Functions {
		if id != ref.id {
			filtered = append(filtered, id)
		}
	}
	owner.Functions = filtered
}

func quarkCandidates(quark string) []string {
	domain := strings.ReplaceAll(quark, "-", "_")
	prefix := strings.TrimSuffix(domain, "_error")
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	add(domain)
	add(domain + "_quark")
	add(domain + "_error_quark")
	add(prefix + "_error_quark")
	return out
}
