package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gtk-rs/gir-go/store"
)

type fakeStore struct {
	runs map[string]store.Run
}

func (f *fakeStore) Name() string                { return "fake" }
func (f *fakeStore) Ping(ctx context.Context) error { return nil }

func (f *fakeStore) SaveRun(ctx context.Context, run store.Run) error {
	f.runs[run.ID] = run
	return nil
}

func (f *fakeStore) LoadRun(ctx context.Context, runID string) (store.Run, error) {
	run, ok := f.runs[runID]
	if !ok {
		return store.Run{}, errNotFound
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

type notFoundErr struct{}

func (notFoundErr) Error() string { return "run not found" }

var errNotFound = notFoundErr{}

func TestServiceQueryFindsSymbol(t *testing.T) {
	fs := &fakeStore{runs: map[string]store.Run{
		"run-1": {ID: "run-1", Library: "Gtk", Symbols: []store.SymbolSummary{
			{QualifiedName: "Gtk.Widget", Kind: "class", Status: store.SymbolGenerated},
		}},
	}}
	svc := &Service{Store: fs}

	resp, err := svc.Query(context.Background(), &QueryRequest{RunID: "run-1", QualifiedName: "Gtk.Widget"})
	require.NoError(t, err)
	require.True(t, resp.Found)
	require.Equal(t, store.SymbolGenerated, resp.Summary.Status)
}

func TestServiceQueryNotFound(t *testing.T) {
	fs := &fakeStore{runs: map[string]store.Run{
		"run-1": {ID: "run-1", Library: "Gtk"},
	}}
	svc := &Service{Store: fs}

	resp, err := svc.Query(context.Background(), &QueryRequest{RunID: "run-1", QualifiedName: "Gtk.Missing"})
	require.NoError(t, err)
	require.False(t, resp.Found)
}

func TestServiceListRuns(t *testing.T) {
	fs := &fakeStore{runs: map[string]store.Run{
		"a": {ID: "a", Library: "Gtk"},
		"b": {ID: "b", Library: "Gio"},
	}}
	svc := &Service{Store: fs}

	resp, err := svc.ListRuns(context.Background(), &ListRunsRequest{Library: "Gtk"})
	require.NoError(t, err)
	require.Len(t, resp.Runs, 1)
	require.Equal(t, "a", resp.Runs[0].ID)
}
