// Package store implements SPEC_FULL.md §4.9: a read-mostly, MongoDB-backed
// persistence layer for completed pipeline runs, grounded on
// features/session/mongo/clients/mongo/client.go's Options/Client/New shape
// and its narrow collection/cursor/singleResult interfaces (one Mongo
// operation surface abstracted behind a tiny interface so unit tests run
// against a fake rather than a live database).
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"goa.design/clue/health"
)

const (
	defaultRunsCollection = "gir_runs"
	defaultOpTimeout      = 5 * time.Second
	storeClientName       = "gir-go-store"
)

// SymbolStatus records one symbol's generation outcome, per spec.md §7's
// three error tiers: generated, manual, ignored, or commented (tier-2
// degradation).
type SymbolStatus string

const (
	SymbolGenerated SymbolStatus = "generated"
	SymbolManual    SymbolStatus = "manual"
	SymbolIgnored   SymbolStatus = "ignored"
	SymbolCommented SymbolStatus = "commented"
)

// Diagnostic is one warning or error recorded during a run, per spec.md §7.
type Diagnostic struct {
	Tier    string `bson:"tier"` // "fatal", "degraded", "warning"
	Symbol  string `bson:"symbol,omitempty"`
	Message string `bson:"message"`
}

// SymbolSummary is the per-symbol outcome persisted for query consumers —
// the doc generator, manifest emitter, and ABI-test scaffolding spec.md §1
// names as external, read-only collaborators.
type SymbolSummary struct {
	QualifiedName string       `bson:"qualified_name"`
	Kind          string       `bson:"kind"`
	Status        SymbolStatus `bson:"status"`
}

// Run is one complete pipeline execution's persisted record.
type Run struct {
	ID           string          `bson:"_id"`
	Library      string          `bson:"library"`
	Version      string          `bson:"version"`
	StartedAt    time.Time       `bson:"started_at"`
	FinishedAt   time.Time       `bson:"finished_at"`
	Symbols      []SymbolSummary `bson:"symbols"`
	Diagnostics  []Diagnostic    `bson:"diagnostics"`
	EmittedFiles []string        `bson:"emitted_files"`
}

// Store is the read-mostly surface over persisted runs: SaveRun is called
// once at the end of a pipeline run ("writes happen only at the end of a
// pipeline run", SPEC_FULL.md §4.9); the rest are the read-only query
// operations external collaborators use.
type Store interface {
	health.Pinger

	SaveRun(ctx context.Context, run Run) error
	LoadRun(ctx context.Context, runID string) (Run, error)
	ListRuns(ctx context.Context, library string, limit int) ([]Run, error)
}

// Options configures the Mongo-backed Store.
type Options struct {
	Client         *mongodriver.Client
	Database       string
	RunsCollection string
	Timeout        time.Duration
}

// New returns a Store backed by MongoDB, per Options.
func New(opts Options) (Store, error) {
	if opts.Client == nil {
		return nil, errors.New("store: mongo client is required")
	}
	if opts.Database == "" {
		return nil, errors.New("store: database name is required")
	}
	runsCollection := opts.RunsCollection
	if runsCollection == "" {
		runsCollection = defaultRunsCollection
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}
	runs := mongoCollection{coll: opts.Client.Database(opts.Database).Collection(runsCollection)}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := ensureIndexes(ctx, runs); err != nil {
		return nil, err
	}

	return newStoreWithCollection(opts.Client, runs, timeout), nil
}

func ensureIndexes(ctx context.Context, runs collection) error {
	idx := mongodriver.IndexModel{Keys: bson.D{{Key: "library", Value: 1}, {Key: "started_at", Value: -1}}}
	_, err := runs.Indexes().CreateOne(ctx, idx)
	return err
}

// collection, indexView, singleResult, and cursor narrow the Mongo driver's
// surface to exactly what store needs, so tests exercise a fake rather than
// a live database — grounded on client.go's identical collection/cursor
// split.
type collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) singleResult
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (cursor, error)
	ReplaceOne(ctx context.Context, filter any, replacement any,
		opts ...options.Lister[options.ReplaceOptions]) (*mongodriver.UpdateResult, error)
	Indexes() indexView
}

type indexView interface {
	CreateOne(ctx context.Context, model mongodriver.IndexModel,
		opts ...options.Lister[options.CreateIndexesOptions]) (string, error)
}

type singleResult interface {
	Decode(val any) error
}

type cursor interface {
	Close(ctx context.Context) error
	Decode(val any) error
	Err() error
	Next(ctx context.Context) bool
}

type mongoCollection struct {
	coll *mongodriver.Collection
}

func (c mongoCollection) FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) singleResult {
	return c.coll.FindOne(ctx, filter, opts...)
}

func (c mongoCollection) Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (cursor, error) {
	cur, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return cur, nil
}

func (c mongoCollection) ReplaceOne(ctx context.Context, filter any, replacement any,
	opts ...options.Lister[options.ReplaceOptions]) (*mongodriver.UpdateResult, error) {
	return c.coll.ReplaceOne(ctx, filter, replacement, opts...)
}

func (c mongoCollection) Indexes() indexView {
	return c.coll.Indexes()
}

type store struct {
	mongo   *mongodriver.Client
	runs    collection
	timeout time.Duration
}

func newStoreWithCollection(mongo *mongodriver.Client, runs collection, timeout time.Duration) *store {
	return &store{mongo: mongo, runs: runs, timeout: timeout}
}

func (s *store) Name() string { return storeClientName }

func (s *store) Ping(ctx context.Context) error {
	if s.mongo == nil {
		return nil // fake-collection tests never set a live client
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.mongo.Ping(ctx, readpref.Primary())
}

func (s *store) SaveRun(ctx context.Context, run Run) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	opts := options.Replace().SetUpsert(true)
	_, err := s.runs.ReplaceOne(ctx, bson.D{{Key: "_id", Value: run.ID}}, run, opts)
	return err
}

func (s *store) LoadRun(ctx context.Context, runID string) (Run, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	var run Run
	if err := s.runs.FindOne(ctx, bson.D{{Key: "_id", Value: runID}}).Decode(&run); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *store) ListRuns(ctx context.Context, library string, limit int) ([]Run, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	filter := bson.D{}
	if library != "" {
		filter = bson.D{{Key: "library", Value: library}}
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}
	cur, err := s.runs.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []Run
	for cur.Next(ctx) {
		var r Run
		if err := cur.Decode(&r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, cur.Err()
}
