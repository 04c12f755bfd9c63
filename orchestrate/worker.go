package orchestrate

import (
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
)

// TaskQueue is the Temporal task queue every orchestrate workflow and
// activity registers against.
const TaskQueue = "girgo-orchestrate"

// WorkerOptions configures NewWorker. Grounded on
// runtime/agent/engine/temporal/engine.go's Options/InstrumentationOptions
// split: OTEL tracing is wired in by default and can be disabled.
type WorkerOptions struct {
	Client          client.Client
	Deps            *Dependencies
	DisableTracing  bool
	TracerOptions   temporalotel.TracerOptions
}

// NewWorker builds a worker.Worker with every orchestrate workflow and
// activity registered, instrumented with the OTEL tracing interceptor
// unless disabled.
func NewWorker(opts WorkerOptions) (worker.Worker, error) {
	workerOpts := worker.Options{}
	if !opts.DisableTracing {
		tracer, err := temporalotel.NewTracingInterceptor(opts.TracerOptions)
		if err != nil {
			return nil, fmt.Errorf("orchestrate: configure tracing interceptor: %w", err)
		}
		workerOpts.Interceptors = append(workerOpts.Interceptors, tracer)
	}

	w := worker.New(opts.Client, TaskQueue, workerOpts)

	w.RegisterWorkflowWithOptions(RegenerateWorkspaceWorkflow, workflow.RegisterOptions{Name: "RegenerateWorkspaceWorkflow"})
	w.RegisterWorkflowWithOptions(RegenerateLibraryWorkflow, workflow.RegisterOptions{Name: "RegenerateLibraryWorkflow"})

	w.RegisterActivityWithOptions(ParseActivity, activity.RegisterOptions{Name: "ParseActivity"})
	w.RegisterActivityWithOptions(ResolveConfigActivity, activity.RegisterOptions{Name: "ResolveConfigActivity"})
	w.RegisterActivityWithOptions(PostProcessActivity, activity.RegisterOptions{Name: "PostProcessActivity"})
	w.RegisterActivityWithOptions(AnalyzeActivity, activity.RegisterOptions{Name: "AnalyzeActivity"})
	w.RegisterActivityWithOptions(EmitActivity, activity.RegisterOptions{Name: "EmitActivity"})
	w.RegisterActivityWithOptions(SaveActivity, activity.RegisterOptions{Name: "SaveActivity"})
	if opts.Deps != nil {
		w.RegisterActivityWithOptions(opts.Deps.RecordRunActivity, activity.RegisterOptions{Name: "RecordRunActivity"})
	}

	return w, nil
}
