// Package grpcapi exposes the engine over gRPC. Messages are
// google.protobuf.Struct values so clients need no generated stubs:
//
//	/truthtable.v1.TruthTable/Evaluate  {"expression": "..."} -> table
//	/truthtable.v1.TruthTable/Validate  {"expression": "..."} -> {"valid", "canonical"|"rule"}
package grpcapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lemonberrylabs/truthtable/pkg/engine"
	"github.com/lemonberrylabs/truthtable/pkg/store"
	"github.com/lemonberrylabs/truthtable/pkg/types"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "truthtable.v1.TruthTable"

// Full method names, for clients calling conn.Invoke.
const (
	EvaluateMethod = "/" + ServiceName + "/Evaluate"
	ValidateMethod = "/" + ServiceName + "/Validate"
)

// TruthTableServer is the service implemented by Server.
type TruthTableServer interface {
	Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Validate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TruthTableServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
		{MethodName: "Validate", Handler: validateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "truthtable/v1/truthtable.proto",
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TruthTableServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EvaluateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TruthTableServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func validateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TruthTableServer).Validate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ValidateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(TruthTableServer).Validate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// Server implements the TruthTable gRPC service.
type Server struct {
	store  *store.Store
	engine *engine.Engine
	grpc   *grpc.Server
}

// New creates a new gRPC server. Successful and failed evaluations are
// recorded in s, shared with the HTTP API.
func New(s *store.Store, e *engine.Engine) *Server {
	srv := &Server{store: s, engine: e}
	gs := grpc.NewServer()
	gs.RegisterService(&serviceDesc, srv)
	srv.grpc = gs
	return srv
}

// Serve starts listening on the given address and serves gRPC requests.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	return s.grpc.Serve(lis)
}

// GracefulStop gracefully stops the gRPC server.
func (s *Server) GracefulStop() {
	s.grpc.GracefulStop()
}

func (s *Server) Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	text, err := expression(req)
	if err != nil {
		return nil, err
	}

	res, evalErr := s.engine.Evaluate(text)
	ev := s.store.Record(text, res, evalErr)
	if evalErr != nil {
		return nil, toStatus(evalErr)
	}

	variables := make([]interface{}, len(res.Variables))
	for i, v := range res.Variables {
		variables[i] = v
	}
	rows := make([]interface{}, len(res.Rows))
	for i, row := range res.Rows {
		values := make(map[string]interface{}, len(row.Env))
		for k, b := range row.Env {
			values[k] = b
		}
		rows[i] = map[string]interface{}{"values": values, "result": row.Result}
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"id":         ev.ID,
		"expression": res.Expression,
		"canonical":  res.Canonical,
		"variables":  variables,
		"rows":       rows,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode result: %v", err)
	}
	return out, nil
}

func (s *Server) Validate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	text, err := expression(req)
	if err != nil {
		return nil, err
	}

	canonical, err := s.engine.Validate(text)
	if err != nil {
		var ee *types.EngineError
		if types.IsSyntaxError(err) && errors.As(err, &ee) {
			return structpb.NewStruct(map[string]interface{}{
				"valid":   false,
				"rule":    ee.Rule,
				"message": ee.Message,
			})
		}
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]interface{}{"valid": true, "canonical": canonical})
}

func expression(req *structpb.Struct) (string, error) {
	v, ok := req.GetFields()["expression"]
	if !ok {
		return "", status.Error(codes.InvalidArgument, "expression is required")
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", status.Error(codes.InvalidArgument, "expression must be a string")
	}
	return sv.StringValue, nil
}

// toStatus maps engine errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case types.IsSyntaxError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case types.IsVariableLimit(err):
		return status.Error(codes.OutOfRange, err.Error())
	default:
		log.Printf("internal error: %v", err)
		return status.Error(codes.Internal, err.Error())
	}
}
