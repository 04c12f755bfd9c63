package postprocess

import (
	"fmt"
	"strings"

	"github.com/gtk-rs/gir-go/model"
)

// checkResolution implements spec.md §4.2 pass 2: every namespace must have
// its name-index fully backed; any remaining stub is a fatal error naming
// the missing type. This is the same invariant model.Library.Unresolved
// exposes; only pass 1 (the GType alias fix) runs before this check.
func checkResolution(lib *model.Library) error {
	unresolved := lib.Unresolved()
	if len(unresolved) == 0 {
		return nil
	}
	names := make([]string, 0, len(unresolved))
	for _, tid := range unresolved {
		names = append(names, lib.QualifiedName(tid))
	}
	return fmt.Errorf("postprocess: unresolved forward references: %s", strings.Join(names, ", "))
}
