package service

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec implements google.golang.org/grpc/encoding.Codec over
// encoding/json, so the query service's gRPC server speaks wire-compatible
// gRPC framing without a protoc-generated codec — see DESIGN.md for why
// google.golang.org/protobuf itself is not wired into this repository (no
// codegen tool may be invoked in this exercise, and hand-written .pb.go
// stubs would be a fabricated dependency).
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string { return "json" }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
