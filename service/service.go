// Package service implements SPEC_FULL.md §4.9's "read-only query
// interface" over google.golang.org/grpc: the literal realization of the
// external collaborator surface spec.md §1 names (doc generator,
// cargo-manifest/module-manifest emitter, ABI-test scaffolding) but never
// specifies. No protoc-generated stubs are used — see codec.go and
// DESIGN.md; the service is registered by hand via a grpc.ServiceDesc and
// speaks the JSON wire codec registered there.
package service

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/gtk-rs/gir-go/store"
)

// QueryRequest asks for one symbol's analyzed-run status within a run.
type QueryRequest struct {
	RunID         string `json:"run_id"`
	QualifiedName string `json:"qualified_name"`
}

// QueryResponse carries the matched symbol summary, if any.
type QueryResponse struct {
	Found   bool                `json:"found"`
	Summary store.SymbolSummary `json:"summary"`
}

// ListRunsRequest asks for the most recent runs of one library.
type ListRunsRequest struct {
	Library string `json:"library"`
	Limit   int32  `json:"limit"`
}

// ListRunsResponse carries the matched runs.
type ListRunsResponse struct {
	Runs []store.Run `json:"runs"`
}

// Service is the read-only query surface over a Store, per
// SPEC_FULL.md §4.9.
type Service struct {
	Store store.Store

	// Limiter throttles Query/ListRuns when set, an AIMD-free cousin of
	// the teacher's AdaptiveRateLimiter (features/model/middleware/
	// ratelimit.go) sized to one call per token rather than a
	// transcript's estimated token cost. Nil disables limiting.
	Limiter *rate.Limiter
}

// Query implements the symbol-lookup half of the interface.
func (s *Service) Query(ctx context.Context, req *QueryRequest) (*QueryResponse, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("service: rate limit: %w", err)
		}
	}
	run, err := s.Store.LoadRun(ctx, req.RunID)
	if err != nil {
		return nil, fmt.Errorf("service: loading run %q: %w", req.RunID, err)
	}
	for _, sym := range run.Symbols {
		if sym.QualifiedName == req.QualifiedName {
			return &QueryResponse{Found: true, Summary: sym}, nil
		}
	}
	return &QueryResponse{Found: false}, nil
}

// ListRuns implements the run-listing half of the interface.
func (s *Service) ListRuns(ctx context.Context, req *ListRunsRequest) (*ListRunsResponse, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("service: rate limit: %w", err)
		}
	}
	runs, err := s.Store.ListRuns(ctx, req.Library, int(req.Limit))
	if err != nil {
		return nil, fmt.Errorf("service: listing runs for %q: %w", req.Library, err)
	}
	return &ListRunsResponse{Runs: runs}, nil
}

// queryHandler adapts Service.Query to grpc's methodHandler signature.
func queryHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(QueryRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	svc := srv.(*Service)
	if interceptor == nil {
		return svc.Query(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: svc, FullMethod: "/girgo.Query/Query"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return svc.Query(ctx, req.(*QueryRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// listRunsHandler adapts Service.ListRuns to grpc's methodHandler signature.
func listRunsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := new(ListRunsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	svc := srv.(*Service)
	if interceptor == nil {
		return svc.ListRuns(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: svc, FullMethod: "/girgo.Query/ListRuns"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return svc.ListRuns(ctx, req.(*ListRunsRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// ServiceDesc is the hand-registered gRPC service descriptor — the
// protoc-free analogue of a *_grpc.pb.go file.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "girgo.Query",
	HandlerType: (*Service)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Query", Handler: queryHandler},
		{MethodName: "ListRuns", Handler: listRunsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "service.proto",
}

// Register wires svc into server under ServiceDesc.
func Register(server *grpc.Server, svc *Service) {
	server.RegisterService(&ServiceDesc, svc)
}
