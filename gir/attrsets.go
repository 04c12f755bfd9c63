package gir

import (
	"github.com/gtk-rs/gir-go/model"
)

// parseTransfer parses a "transfer-ownership" attribute value from the
// known string set {none, container, full}, defaulting to none when absent
// — spec.md §4.1 "Attribute parsing".
func parseTransfer(a attrs) (model.Transfer, error) {
	v, ok := a.get("transfer-ownership")
	if !ok {
		return model.TransferNone, nil
	}
	switch v {
	case "none":
		return model.TransferNone, nil
	case "container":
		return model.TransferContainer, nil
	case "full":
		return model.TransferFull, nil
	default:
		return 0, errf(a.pos, "invalid transfer-ownership %q on <%s>", v, a.elem)
	}
}

// parseDirection parses a parameter "direction" attribute from {in, out,
// inout}, defaulting to in.
func parseDirection(a attrs) (model.Direction, error) {
	v, ok := a.get("direction")
	if !ok {
		return model.DirIn, nil
	}
	switch v {
	case "in":
		return model.DirIn, nil
	case "out":
		return model.DirOut, nil
	case "inout":
		return model.DirInOut, nil
	default:
		return 0, errf(a.pos, "invalid direction %q on <%s>", v, a.elem)
	}
}

// parseScope parses a callback "scope" attribute from {call, async,
// notified}, defaulting to none.
func parseScope(a attrs) (model.CallbackScope, error) {
	v, ok := a.get("scope")
	if !ok {
		return model.ScopeNone, nil
	}
	switch v {
	case "call":
		return model.ScopeCall, nil
	case "async":
		return model.ScopeAsync, nil
	case "notified":
		return model.ScopeNotified, nil
	default:
		return 0, errf(a.pos, "invalid scope %q on <%s>", v, a.elem)
	}
}

// concurrencyKinds is the known string set for the Gir.toml `concurrency`
// option. Nothing in the repository reads it; the config package does not
// validate that option against it.
var concurrencyKinds = map[string]bool{
	"none": true, "send": true, "send+sync": true, "send+unique": true,
}
