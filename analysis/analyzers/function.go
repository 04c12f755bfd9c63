package analyzers

import "github.com/gtk-rs/gir-go/model"

// AnalyzeFreeFunction produces the MethodInfo for a namespace-level
// KindFunction type id (not owned by any class/record/interface/enum).
func AnalyzeFreeFunction(ctx *Context, id model.TypeID) (*MethodInfo, error) {
	t, ok := ctx.Lib.Type(id)
	if !ok || t.Kind != model.KindFunction {
		return nil, errNotKind(id, model.KindFunction)
	}
	if t.Removed || t.FunctionInfo == nil {
		return nil, nil
	}
	symbol := ctx.Lib.QualifiedName(id)
	if ctx.Matcher.Resolve(symbol).Status == "ignore" {
		return nil, nil
	}
	mi := analyzeFunction(ctx, &t.FunctionInfo.Function, model.TypeID{})
	return &mi, nil
}

// NamespaceResult collects every kind's Info keyed by TypeID for one
// namespace, skipping entries an analyzer declines (nil, nil) due to a
// config-ignore status.
type NamespaceResult struct {
	Classes    map[model.TypeID]*ClassInfo
	Interfaces map[model.TypeID]*InterfaceInfo
	Records    map[model.TypeID]*RecordInfo
	Enums      map[model.TypeID]*EnumInfo
	Constants  map[model.TypeID]*ConstantInfo
	Functions  map[model.TypeID]*MethodInfo
}

// AnalyzeNamespace runs the full set of symbol analyzers over ns. ctx's
// FinishIndex must already be populated via analysis.IndexFinishFunctions
// for ns before calling this, per the Open Question resolution in
// SPEC_FULL.md §4.4.
func AnalyzeNamespace(ctx *Context, ns *model.Namespace) (*NamespaceResult, error) {
	res := &NamespaceResult{
		Classes:    map[model.TypeID]*ClassInfo{},
		Interfaces: map[model.TypeID]*InterfaceInfo{},
		Records:    map[model.TypeID]*RecordInfo{},
		Enums:      map[model.TypeID]*EnumInfo{},
		Constants:  map[model.TypeID]*ConstantInfo{},
		Functions:  map[model.TypeID]*MethodInfo{},
	}

	// Classes are visited supertype-first, by depth in the Parent chain
	// (AnalyzeClass itself reads no parent ClassInfo; collectParents
	// re-derives the chain from the model directly, so topological order
	// here only needs to guarantee no class is visited before Define has
	// run on its ancestors, which parsing already guarantees transitively).
	var depth func(model.TypeID) int
	depth = func(id model.TypeID) int {
		t, ok := ctx.Lib.Type(id)
		if !ok || !t.HasParent {
			return 0
		}
		return 1 + depth(t.Parent)
	}

	type classEntry struct {
		id    model.TypeID
		depth int
	}
	var classes []classEntry
	var otherErr error

	// Functions owned by another type are analyzed with their owner, not
	// again as free functions.
	owned := map[model.TypeID]bool{}
	ns.All(func(_ model.LocalID, t *model.Type) {
		for _, fnID := range t.Functions {
			owned[fnID] = true
		}
		for _, fnID := range t.VirtualMethods {
			owned[fnID] = true
		}
	})

	ns.All(func(localID model.LocalID, t *model.Type) {
		if otherErr != nil {
			return
		}
		id := model.TypeID{NSID: ns.ID, LocalID: localID}
		switch t.Kind {
		case model.KindClass:
			classes = append(classes, classEntry{id: id, depth: depth(id)})
		case model.KindInterface:
			info, err := AnalyzeInterface(ctx, id)
			if err != nil {
				otherErr = err
				return
			}
			if info != nil {
				res.Interfaces[id] = info
			}
		case model.KindRecord:
			info, err := AnalyzeRecord(ctx, id)
			if err != nil {
				otherErr = err
				return
			}
			if info != nil {
				res.Records[id] = info
			}
		case model.KindEnumeration, model.KindBitfield:
			info, err := AnalyzeEnum(ctx, id)
			if err != nil {
				otherErr = err
				return
			}
			if info != nil {
				res.Enums[id] = info
			}
		case model.KindCustom:
			info, err := AnalyzeConstant(ctx, id)
			if err != nil {
				otherErr = err
				return
			}
			if info != nil {
				res.Constants[id] = info
			}
		case model.KindFunction:
			if owned[id] {
				return
			}
			info, err := AnalyzeFreeFunction(ctx, id)
			if err != nil {
				otherErr = err
				return
			}
			if info != nil {
				res.Functions[id] = info
			}
		}
	})
	if otherErr != nil {
		return nil, otherErr
	}

	maxDepth := 0
	for _, c := range classes {
		if c.depth > maxDepth {
			maxDepth = c.depth
		}
	}
	for depthLevel := 0; depthLevel <= maxDepth; depthLevel++ {
		for _, c := range classes {
			if c.depth != depthLevel {
				continue
			}
			info, err := AnalyzeClass(ctx, c.id)
			if err != nil {
				return nil, err
			}
			if info != nil {
				res.Classes[c.id] = info
			}
		}
	}

	return res, nil
}
