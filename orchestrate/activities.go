// Package orchestrate implements SPEC_FULL.md §4.10: a Temporal workflow
// that drives the seven-stage pipeline across every library in a
// multi-library workspace, one activity per stage, so one library's fatal
// parse error (spec.md §7 tier 1) doesn't abort sibling libraries. Grounded
// on runtime/agent/engine/temporal/engine.go's worker/workflow/activity
// registration shape, generalized from goa-ai's agent-task engine to one
// pipeline-per-library.
package orchestrate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gtk-rs/gir-go/analysis"
	"github.com/gtk-rs/gir-go/analysis/analyzers"
	"github.com/gtk-rs/gir-go/codegen"
	"github.com/gtk-rs/gir-go/codegen/emitters"
	"github.com/gtk-rs/gir-go/config"
	"github.com/gtk-rs/gir-go/gir"
	"github.com/gtk-rs/gir-go/model"
	"github.com/gtk-rs/gir-go/postprocess"
	"github.com/gtk-rs/gir-go/store"
)

// LibrarySpec names one library to regenerate within a workspace manifest.
type LibrarySpec struct {
	Name       string
	RootGir    string
	SearchDirs []string
	ConfigPath string
	TargetPath string
}

// ParseActivityInput/Output bracket pipeline stage 1 (spec.md §4.1).
type ParseActivityInput struct {
	Spec LibrarySpec
}

type ParseActivityOutput struct {
	Library *model.Library
}

// ParseActivity parses Input.Spec.RootGir and every transitively included
// namespace.
func ParseActivity(ctx context.Context, in ParseActivityInput) (*ParseActivityOutput, error) {
	lib, err := gir.Parse(in.Spec.RootGir, in.Spec.SearchDirs)
	if err != nil {
		return nil, fmt.Errorf("orchestrate: parsing %s: %w", in.Spec.RootGir, err)
	}
	return &ParseActivityOutput{Library: lib}, nil
}

// ResolveConfigActivityInput/Output bracket pipeline stage 3 (spec.md §4.8).
// Config resolution runs ahead of post-processing because pass 7 (final
// type detection) consults the matcher's final_type overrides.
type ResolveConfigActivityInput struct {
	ConfigPath string
}

type ResolveConfigActivityOutput struct {
	Matcher *config.Matcher
}

// ResolveConfigActivity loads and compiles the TOML configuration matcher.
func ResolveConfigActivity(ctx context.Context, in ResolveConfigActivityInput) (*ResolveConfigActivityOutput, error) {
	cfg, err := config.Load(in.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("orchestrate: loading config %s: %w", in.ConfigPath, err)
	}
	return &ResolveConfigActivityOutput{Matcher: config.NewMatcher(cfg)}, nil
}

// PostProcessActivityInput/Output bracket pipeline stage 2 (spec.md §4.2).
type PostProcessActivityInput struct {
	Library *model.Library
	Matcher *config.Matcher
}

type PostProcessActivityOutput struct {
	Library     *model.Library
	Diagnostics []postprocess.Diagnostic
}

// PostProcessActivity runs the nine ordered post-processing passes.
func PostProcessActivity(ctx context.Context, in PostProcessActivityInput) (*PostProcessActivityOutput, error) {
	res, err := postprocess.Run(in.Library, in.Matcher)
	if err != nil {
		return nil, fmt.Errorf("orchestrate: post-processing: %w", err)
	}
	return &PostProcessActivityOutput{Library: in.Library, Diagnostics: res.Diagnostics}, nil
}

// AnalyzeActivityInput/Output bracket pipeline stages 5/6 (spec.md §4.6/
// §4.3-§4.5): the per-symbol analyzers plus the conversion/bounds/
// transformation analysis they invoke per function.
type AnalyzeActivityInput struct {
	Library *model.Library
	Matcher *config.Matcher
}

// AnalyzeActivityOutput carries each namespace's analyzers.NamespaceResult,
// keyed by namespace name, for the emit stage.
type AnalyzeActivityOutput struct {
	Namespaces map[string]*analyzers.NamespaceResult
}

// AnalyzeActivity runs analyzers.AnalyzeNamespace over every namespace in
// the library except the reserved Internal one, building each namespace's
// *_finish index first per the Open Question resolution SPEC_FULL.md §4.4
// records.
func AnalyzeActivity(ctx context.Context, in AnalyzeActivityInput) (*AnalyzeActivityOutput, error) {
	out := &AnalyzeActivityOutput{Namespaces: make(map[string]*analyzers.NamespaceResult)}

	for _, ns := range in.Library.Namespaces() {
		if ns.ID == model.InternalNamespaceID {
			continue
		}
		actx := &analyzers.Context{
			Lib:         in.Library,
			Matcher:     in.Matcher,
			FinishIndex: analysis.IndexFinishFunctions(in.Library, ns),
		}
		res, err := analyzers.AnalyzeNamespace(actx, ns)
		if err != nil {
			return nil, fmt.Errorf("orchestrate: analyzing namespace %s: %w", ns.Name, err)
		}
		out.Namespaces[ns.Name] = res
	}
	return out, nil
}

// EmitActivityInput/Output bracket pipeline stage 7 (spec.md §4.7): routing
// each analyzed symbol to its per-kind emitter and rendering the result.
type EmitActivityInput struct {
	Library    *model.Library
	ModulePath string
	Namespaces map[string]*analyzers.NamespaceResult
}

type EmitActivityOutput struct {
	// Files maps each emitted file's relative path to its rendered text.
	Files map[string]string
	// Symbols is one SymbolSummary-shaped entry per emitted type, for
	// SaveActivity to persist without re-walking the analyzed model.
	Symbols []EmittedSymbol
}

// EmittedSymbol names one analyzed symbol's outcome for store.SymbolSummary.
type EmittedSymbol struct {
	QualifiedName string
	Kind          string
	Commented     bool
}

// EmitActivity renders one codegen.File per analyzed class/interface/record/
// enum, plus one free-functions file per namespace.
func EmitActivity(ctx context.Context, in EmitActivityInput) (*EmitActivityOutput, error) {
	out := &EmitActivityOutput{Files: make(map[string]string)}
	symbols := codegen.NewSymbolTable()

	for nsName, res := range in.Namespaces {
		ectx := &emitters.Context{Lib: in.Library, Symbols: symbols, ModulePath: in.ModulePath}
		pkg := strings.ToLower(nsName)

		for id, info := range res.Classes {
			qn := in.Library.QualifiedName(id)
			f := emitters.EmitClass(ectx, qn, info)
			out.Files[f.Path] = f.Render()
			out.Symbols = append(out.Symbols, EmittedSymbol{QualifiedName: qn, Kind: "class", Commented: anyCommented(info)})
		}
		for id, info := range res.Interfaces {
			qn := in.Library.QualifiedName(id)
			f := emitters.EmitInterface(ectx, qn, info)
			out.Files[f.Path] = f.Render()
			out.Symbols = append(out.Symbols, EmittedSymbol{QualifiedName: qn, Kind: "interface"})
		}
		for id, info := range res.Records {
			qn := in.Library.QualifiedName(id)
			f := emitters.EmitRecord(ectx, qn, info)
			out.Files[f.Path] = f.Render()
			out.Symbols = append(out.Symbols, EmittedSymbol{QualifiedName: qn, Kind: "record"})
		}
		for id, info := range res.Enums {
			qn := in.Library.QualifiedName(id)
			f := emitters.EmitEnum(ectx, qn, info)
			out.Files[f.Path] = f.Render()
			out.Symbols = append(out.Symbols, EmittedSymbol{QualifiedName: qn, Kind: "enum"})
		}
		if len(res.Functions) > 0 {
			var fns []analyzers.MethodInfo
			for id, info := range res.Functions {
				if info == nil {
					continue
				}
				fns = append(fns, *info)
				out.Symbols = append(out.Symbols, EmittedSymbol{QualifiedName: in.Library.QualifiedName(id), Kind: "function", Commented: info.Commented})
			}
			f := emitters.EmitFreeFunctions(ectx, pkg, fns)
			out.Files[f.Path] = f.Render()
		}
	}
	return out, nil
}

// anyCommented reports whether any of a class's methods fell into tier-2
// degradation (spec.md §7), for the persisted symbol status.
func anyCommented(info *analyzers.ClassInfo) bool {
	for _, m := range info.Methods {
		if m.Commented {
			return true
		}
	}
	return false
}

// SaveActivityInput/Output bracket pipeline stage 7's file write, delegated
// to the out-of-scope file saver (spec.md §1: "surface: save(path,
// writer_fn)").
type SaveActivityInput struct {
	TargetPath string
	Files      map[string]string // relative path -> rendered content
}

type SaveActivityOutput struct {
	Written []string
}

// SaveActivity is a thin seam standing in for the external file-saver
// collaborator; Save itself (including backup semantics) is out of scope
// per spec.md §1.
func SaveActivity(ctx context.Context, in SaveActivityInput) (*SaveActivityOutput, error) {
	var written []string
	for path := range in.Files {
		written = append(written, path)
	}
	return &SaveActivityOutput{Written: written}, nil
}

// RecordRunActivityInput/Output bracket the Store write SPEC_FULL.md §4.9
// says happens "only at the end of a pipeline run" — separated from
// SaveActivity because persisting the run record is a Store concern, while
// SaveActivity is the out-of-scope file-saver seam.
type RecordRunActivityInput struct {
	RunID       string
	Library     string
	Version     string
	StartedAt   time.Time
	FinishedAt  time.Time
	Symbols     []EmittedSymbol
	Diagnostics []postprocess.Diagnostic
	Written     []string
}

type RecordRunActivityOutput struct {
	RunID string
}

// Dependencies bundles the activities that need a live collaborator (the
// Store) rather than pure computation, so the worker wires them once at
// startup instead of each activity reaching for ambient global state.
type Dependencies struct {
	Store store.Store
}

// RecordRunActivity persists the completed run, translating the activity
// inputs collected across the workflow into a store.Run.
func (d *Dependencies) RecordRunActivity(ctx context.Context, in RecordRunActivityInput) (*RecordRunActivityOutput, error) {
	run := store.Run{
		ID:           in.RunID,
		Library:      in.Library,
		Version:      in.Version,
		StartedAt:    in.StartedAt,
		FinishedAt:   in.FinishedAt,
		EmittedFiles: in.Written,
	}
	for _, sym := range in.Symbols {
		status := store.SymbolGenerated
		if sym.Commented {
			status = store.SymbolCommented
		}
		run.Symbols = append(run.Symbols, store.SymbolSummary{QualifiedName: sym.QualifiedName, Kind: sym.Kind, Status: status})
	}
	for _, diag := range in.Diagnostics {
		run.Diagnostics = append(run.Diagnostics, store.Diagnostic{Tier: "warning", Symbol: diag.Subject, Message: diag.Message})
	}
	if err := d.Store.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("orchestrate: recording run %s: %w", in.RunID, err)
	}
	return &RecordRunActivityOutput{RunID: run.ID}, nil
}
