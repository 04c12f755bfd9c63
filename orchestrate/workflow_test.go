package orchestrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
)

// TestRegenerateLibraryWorkflowHappyPath exercises the activity sequence
// RegenerateLibraryWorkflow drives, with every activity mocked so the test
// runs without a real GIR file, Mongo, or Temporal server.
func TestRegenerateLibraryWorkflowHappyPath(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	in := LibraryWorkflowInput{
		Spec:       LibrarySpec{Name: "Sample", RootGir: "Sample-1.0.gir", ConfigPath: "Gir.toml", TargetPath: "out"},
		ModulePath: "example.com/sample",
		Version:    "1.0",
	}

	emitFiles := map[string]string{"sample/widget.go": "package sample\n"}
	emitSymbols := []EmittedSymbol{{QualifiedName: "Sample.Widget", Kind: "class"}}

	env.RegisterActivityWithOptions(
		func(ctx context.Context, in RecordRunActivityInput) (*RecordRunActivityOutput, error) {
			return nil, nil
		},
		activity.RegisterOptions{Name: "RecordRunActivity"},
	)

	env.OnActivity(ParseActivity, mock.Anything, mock.Anything).
		Return(&ParseActivityOutput{Library: nil}, nil)
	env.OnActivity(ResolveConfigActivity, mock.Anything, mock.Anything).
		Return(&ResolveConfigActivityOutput{Matcher: nil}, nil)
	env.OnActivity(PostProcessActivity, mock.Anything, mock.Anything).
		Return(&PostProcessActivityOutput{Library: nil}, nil)
	env.OnActivity(AnalyzeActivity, mock.Anything, mock.Anything).
		Return(&AnalyzeActivityOutput{Namespaces: nil}, nil)
	env.OnActivity(EmitActivity, mock.Anything, mock.Anything).
		Return(&EmitActivityOutput{Files: emitFiles, Symbols: emitSymbols}, nil)
	env.OnActivity(SaveActivity, mock.Anything, mock.Anything).
		Return(&SaveActivityOutput{Written: []string{"sample/widget.go"}}, nil)
	env.OnActivity("RecordRunActivity", mock.Anything, mock.Anything).
		Return(&RecordRunActivityOutput{RunID: "test-run-id"}, nil)

	env.ExecuteWorkflow(RegenerateLibraryWorkflow, in)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result LibraryResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, "Sample", result.Library)
	require.Equal(t, []string{"sample/widget.go"}, result.Written)
}

// TestRegenerateWorkspaceWorkflowIsolatesFailures confirms one library's
// child workflow failure is captured in its LibraryResult rather than
// aborting sibling libraries (SPEC_FULL.md §4.10).
func TestRegenerateWorkspaceWorkflowIsolatesFailures(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	manifest := WorkspaceManifest{
		RunID:      "ws-1",
		ModulePath: "example.com/sample",
		Libraries: []LibrarySpec{
			{Name: "Good", RootGir: "Good-1.0.gir", ConfigPath: "Gir.toml", TargetPath: "out"},
			{Name: "Bad", RootGir: "Bad-1.0.gir", ConfigPath: "Gir.toml", TargetPath: "out"},
		},
	}

	env.RegisterWorkflow(RegenerateLibraryWorkflow)
	env.OnWorkflow(RegenerateLibraryWorkflow, mock.Anything, mock.Anything).Return(
		func(ctx interface{}, in LibraryWorkflowInput) (*LibraryResult, error) {
			if in.Spec.Name == "Bad" {
				return nil, assertErr{"simulated parse failure"}
			}
			return &LibraryResult{Library: in.Spec.Name, Written: []string{"good/widget.go"}}, nil
		},
	)

	env.ExecuteWorkflow(RegenerateWorkspaceWorkflow, manifest)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result WorkspaceResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Len(t, result.Results, 2)

	byName := map[string]LibraryResult{}
	for _, r := range result.Results {
		byName[r.Library] = r
	}
	require.Empty(t, byName["Good"].Err)
	require.NotEmpty(t, byName["Bad"].Err)
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }
