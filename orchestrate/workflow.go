package orchestrate

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// WorkspaceManifest lists every library a single RegenerateWorkspaceWorkflow
// run should regenerate, per SPEC_FULL.md §4.10.
type WorkspaceManifest struct {
	Libraries  []LibrarySpec
	ModulePath string
	RunID      string
}

// LibraryResult is one child workflow's outcome within a workspace run.
type LibraryResult struct {
	Library string
	Written []string
	Err     string // set when the child workflow failed; Temporal errors don't survive ContinueAsNew/history replay as typed values
}

// WorkspaceResult is RegenerateWorkspaceWorkflow's terminal value.
type WorkspaceResult struct {
	Results []LibraryResult
}

var defaultActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 10 * time.Minute,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    time.Minute,
		MaximumAttempts:    3,
	},
}

// RegenerateWorkspaceWorkflow fans out one RegenerateLibraryWorkflow child
// per manifest entry, per SPEC_FULL.md §4.10: "a manifest covering several
// GIR libraries is regenerated as one Temporal workflow execution, with one
// child workflow per library so a single library's fatal parse error does
// not abort its siblings."
func RegenerateWorkspaceWorkflow(ctx workflow.Context, manifest WorkspaceManifest) (*WorkspaceResult, error) {
	var futures []workflow.ChildWorkflowFuture
	for _, spec := range manifest.Libraries {
		cwo := workflow.ChildWorkflowOptions{
			WorkflowID: fmt.Sprintf("%s-%s", manifest.RunID, spec.Name),
		}
		cctx := workflow.WithChildOptions(ctx, cwo)
		futures = append(futures, workflow.ExecuteChildWorkflow(cctx, RegenerateLibraryWorkflow, LibraryWorkflowInput{
			Spec:       spec,
			ModulePath: manifest.ModulePath,
		}))
	}

	out := &WorkspaceResult{}
	for i, fut := range futures {
		var res LibraryResult
		if err := fut.Get(ctx, &res); err != nil {
			out.Results = append(out.Results, LibraryResult{Library: manifest.Libraries[i].Name, Err: err.Error()})
			continue
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}

// LibraryWorkflowInput is RegenerateLibraryWorkflow's sole argument.
type LibraryWorkflowInput struct {
	Spec       LibrarySpec
	ModulePath string
	Version    string
}

// RegenerateLibraryWorkflow drives the seven-stage pipeline (spec.md §4) for
// one library as a sequence of activities, persisting the result with
// SaveActivity and then RecordRunActivity once every prior stage has
// succeeded (SPEC_FULL.md §4.9: "writes happen only at the end of a pipeline
// run").
func RegenerateLibraryWorkflow(ctx workflow.Context, in LibraryWorkflowInput) (*LibraryResult, error) {
	actx := workflow.WithActivityOptions(ctx, defaultActivityOptions)
	startedAt := workflow.Now(ctx)
	runID := workflow.GetInfo(ctx).WorkflowExecution.RunID

	var parseOut ParseActivityOutput
	if err := workflow.ExecuteActivity(actx, ParseActivity, ParseActivityInput{Spec: in.Spec}).Get(actx, &parseOut); err != nil {
		return nil, fmt.Errorf("orchestrate: %s: parse: %w", in.Spec.Name, err)
	}

	var cfgOut ResolveConfigActivityOutput
	if err := workflow.ExecuteActivity(actx, ResolveConfigActivity, ResolveConfigActivityInput{ConfigPath: in.Spec.ConfigPath}).Get(actx, &cfgOut); err != nil {
		return nil, fmt.Errorf("orchestrate: %s: resolve config: %w", in.Spec.Name, err)
	}

	var ppOut PostProcessActivityOutput
	ppIn := PostProcessActivityInput{Library: parseOut.Library, Matcher: cfgOut.Matcher}
	if err := workflow.ExecuteActivity(actx, PostProcessActivity, ppIn).Get(actx, &ppOut); err != nil {
		return nil, fmt.Errorf("orchestrate: %s: post-process: %w", in.Spec.Name, err)
	}

	var analyzeOut AnalyzeActivityOutput
	analyzeIn := AnalyzeActivityInput{Library: ppOut.Library, Matcher: cfgOut.Matcher}
	if err := workflow.ExecuteActivity(actx, AnalyzeActivity, analyzeIn).Get(actx, &analyzeOut); err != nil {
		return nil, fmt.Errorf("orchestrate: %s: analyze: %w", in.Spec.Name, err)
	}

	var emitOut EmitActivityOutput
	emitIn := EmitActivityInput{Library: ppOut.Library, ModulePath: in.ModulePath, Namespaces: analyzeOut.Namespaces}
	if err := workflow.ExecuteActivity(actx, EmitActivity, emitIn).Get(actx, &emitOut); err != nil {
		return nil, fmt.Errorf("orchestrate: %s: emit: %w", in.Spec.Name, err)
	}

	var saveOut SaveActivityOutput
	saveIn := SaveActivityInput{TargetPath: in.Spec.TargetPath, Files: emitOut.Files}
	if err := workflow.ExecuteActivity(actx, SaveActivity, saveIn).Get(actx, &saveOut); err != nil {
		return nil, fmt.Errorf("orchestrate: %s: save: %w", in.Spec.Name, err)
	}

	recordIn := RecordRunActivityInput{
		RunID:       runID,
		Library:     in.Spec.Name,
		Version:     in.Version,
		StartedAt:   startedAt,
		FinishedAt:  workflow.Now(ctx),
		Symbols:     emitOut.Symbols,
		Diagnostics: ppOut.Diagnostics,
		Written:     saveOut.Written,
	}
	var recordOut RecordRunActivityOutput
	if err := workflow.ExecuteActivity(actx, "RecordRunActivity", recordIn).Get(actx, &recordOut); err != nil {
		return nil, fmt.Errorf("orchestrate: %s: record run: %w", in.Spec.Name, err)
	}

	return &LibraryResult{Library: in.Spec.Name, Written: saveOut.Written}, nil
}
