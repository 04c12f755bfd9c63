package orchestrate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gtk-rs/gir-go/store"
)

const sampleGIR = `<?xml version="1.0"?>
<repository version="1.2">
  <namespace name="Sample" version="1.0">
    <class name="Widget" c:type="SampleWidget" glib:get-type="sample_widget_get_type">
      <method name="a_method" c:identifier="sample_widget_a_method">
        <return-value transfer-ownership="none"><type name="none" c:type="void"/></return-value>
        <parameters>
          <instance-parameter name="self"><type name="Widget" c:type="SampleWidget*"/></instance-parameter>
          <parameter name="x"><type name="gint" c:type="gint"/></parameter>
        </parameters>
      </method>
    </class>
  </namespace>
</repository>`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPipelineActivitiesEndToEnd(t *testing.T) {
	dir := t.TempDir()
	girPath := writeFixture(t, dir, "Sample-1.0.gir", sampleGIR)
	cfgPath := writeFixture(t, dir, "Gir.toml", "[options]\nwork_mode = \"normal\"\n")

	ctx := context.Background()

	parseOut, err := ParseActivity(ctx, ParseActivityInput{Spec: LibrarySpec{Name: "Sample", RootGir: girPath}})
	require.NoError(t, err)
	require.NotNil(t, parseOut.Library)

	cfgOut, err := ResolveConfigActivity(ctx, ResolveConfigActivityInput{ConfigPath: cfgPath})
	require.NoError(t, err)
	require.NotNil(t, cfgOut.Matcher)

	ppOut, err := PostProcessActivity(ctx, PostProcessActivityInput{Library: parseOut.Library, Matcher: cfgOut.Matcher})
	require.NoError(t, err)

	analyzeOut, err := AnalyzeActivity(ctx, AnalyzeActivityInput{Library: ppOut.Library, Matcher: cfgOut.Matcher})
	require.NoError(t, err)
	require.Contains(t, analyzeOut.Namespaces, "Sample")
	require.Len(t, analyzeOut.Namespaces["Sample"].Classes, 1)

	emitOut, err := EmitActivity(ctx, EmitActivityInput{
		Library:    ppOut.Library,
		ModulePath: "example.com/sample",
		Namespaces: analyzeOut.Namespaces,
	})
	require.NoError(t, err)
	require.NotEmpty(t, emitOut.Files)
	require.NotEmpty(t, emitOut.Symbols)

	var rendered string
	for _, text := range emitOut.Files {
		rendered += text
	}
	require.Contains(t, rendered, "type Widget struct")

	saveOut, err := SaveActivity(ctx, SaveActivityInput{TargetPath: dir, Files: emitOut.Files})
	require.NoError(t, err)
	require.Len(t, saveOut.Written, len(emitOut.Files))

	fs := newFakeStore()
	deps := &Dependencies{Store: fs}
	recordOut, err := deps.RecordRunActivity(ctx, RecordRunActivityInput{
		RunID:      "run-1",
		Library:    "Sample",
		Version:    "1.0",
		StartedAt:  time.Now().Add(-time.Second),
		FinishedAt: time.Now(),
		Symbols:    emitOut.Symbols,
		Written:    saveOut.Written,
	})
	require.NoError(t, err)
	require.Equal(t, "run-1", recordOut.RunID)

	loaded, err := fs.LoadRun(ctx, "run-1")
	require.NoError(t, err)
	require.Equal(t, "Sample", loaded.Library)
	require.NotEmpty(t, loaded.Symbols)
}

// fakeStore is a minimal in-memory store.Store for exercising
// RecordRunActivity without a live MongoDB instance.
type fakeStore struct {
	runs map[string]store.Run
}

func newFakeStore() *fakeStore { return &fakeStore{runs: make(map[string]store.Run)} }

func (f *fakeStore) Name() string { return "fake" }

func (f *fakeStore) Ping(ctx context.Context) error { return nil }

func (f *fakeStore) SaveRun(ctx context.Context, run store.Run) error {
	f.runs[run.ID] = run
	return nil
}

func (f *fakeStore) LoadRun(ctx context.Context, runID string) (store.Run, error) {
	run, ok := f.runs[runID]
	if !ok {
		return store.Run{}, errNotRecorded{runID}
	}
	return run, nil
}

func (f *fakeStore) ListRuns(ctx context.Context, library string, limit int) ([]store.Run, error) {
	var out []store.Run
	for _, r := range f.runs {
		if library == "" || r.Library == library {
			out = append(out, r)
		}
	}
	return out, nil
}

type errNotRecorded struct{ runID string }

func (e errNotRecorded) Error() string { return "run not recorded: " + e.runID }
