package analysis

import (
	"strings"

	"github.com/gtk-rs/gir-go/model"
)

// FinishIndex maps a function's base name (the async function name with any
// trailing "_async" stripped) to its `*_finish` companion, per the Open
// Question resolution in spec.md §9 / SPEC_FULL.md §4.4: run a first pass
// indexing every *_finish function across the namespace before any async
// companion is analyzed, replacing the "happens afterwards" FIXME pattern
// the original generator carried.
type FinishIndex map[string]model.TypeID

// IndexFinishFunctions walks every function-bearing Type in ns (namespace
// free functions and every class/record/interface/enum's owned Functions
// list) and indexes each whose name ends in "_finish", keyed by the base
// name with that suffix stripped. Call this once per namespace before
// DetectAsync.
func IndexFinishFunctions(lib *model.Library, ns *model.Namespace) FinishIndex {
	idx := make(FinishIndex)
	ns.All(func(localID model.LocalID, t *model.Type) {
		visitFunctionTypeID := func(fnID model.TypeID) {
			fn, ok := lib.Type(fnID)
			if !ok || fn.FunctionInfo == nil {
				return
			}
			name := fn.FunctionInfo.Name
			if base, ok := strings.CutSuffix(name, "_finish"); ok {
				idx[base] = fnID
			}
		}
		if t.Kind == model.KindFunction {
			visitFunctionTypeID(model.TypeID{NSID: ns.ID, LocalID: localID})
		}
		for _, fnID := range t.Functions {
			visitFunctionTypeID(fnID)
		}
	})
	return idx
}

// AsyncInfo is the synthesized async-variant description of spec.md §4.4/
// §4.5: the callback/user-data parameters to hide, and the success/error
// types projected from the matching *_finish function.
type AsyncInfo struct {
	CallbackIndex int // index into the sync function's Parameters
	UserDataIndex int
	FinishFunc    model.TypeID
	// SuccessTypes are the *_finish function's non-error out-parameters,
	// forming the async variant's success payload.
	SuccessTypes []model.TypeID
	// ErrorType is the resolved type of the *_finish function's GError**
	// parameter (by invariant, always Internal's Unsupported placeholder
	// until the emitter substitutes the library's own Error alias).
	ErrorType model.TypeID
}

// DetectAsync implements spec.md §4.5's async handling: fn is async when its
// last non-error parameter is a function-typed parameter named "callback" or
// "*_callback" (a trailing user-data parameter that the callback's closure
// index names may follow it) and idx holds a *_finish companion for fn's
// name minus any "_async" suffix. The finish function's outs and return
// value form the success payload. idx is the namespace's pre-built
// FinishIndex (see IndexFinishFunctions).
func DetectAsync(lib *model.Library, fn *model.Function, idx FinishIndex) (*AsyncInfo, bool) {
	params := fn.Parameters
	last := len(params) - 1
	if fn.Throws {
		last-- // skip the synthesized GError** parameter
	}
	if last > 0 && params[last-1].Closure == last {
		last-- // skip the callback's trailing user-data parameter
	}
	if last < 0 {
		return nil, false
	}
	cbParam := params[last]
	if !isCallbackNamed(cbParam.Name) {
		return nil, false
	}
	t, ok := lib.Type(cbParam.TypeID)
	if !ok || t.Kind != model.KindFunction {
		return nil, false
	}

	finishFn, ok := idx[strings.TrimSuffix(fn.Name, "_async")]
	if !ok {
		return nil, false
	}

	info := &AsyncInfo{CallbackIndex: last}
	if cbParam.HasClosure() {
		info.UserDataIndex = cbParam.Closure
	} else {
		info.UserDataIndex = NoIndex
	}
	info.FinishFunc = finishFn

	finishType, ok := lib.Type(finishFn)
	if ok && finishType.FunctionInfo != nil {
		ff := finishType.FunctionInfo.Function
		for _, p := range ff.Parameters {
			if p.IsError {
				info.ErrorType = p.TypeID
				continue
			}
			if p.Direction == model.DirOut {
				info.SuccessTypes = append(info.SuccessTypes, p.TypeID)
			}
		}
		if ff.Return.Direction == model.DirReturn && ff.Return.TypeID != (model.TypeID{}) {
			info.SuccessTypes = append([]model.TypeID{ff.Return.TypeID}, info.SuccessTypes...)
		}
	}
	return info, true
}

// NoIndex re-exports model.NoIndex for callers that only import analysis.
const NoIndex = model.NoIndex

func isCallbackNamed(name string) bool {
	return name == "callback" || strings.HasSuffix(name, "_callback")
}
