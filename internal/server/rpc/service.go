package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "shogi.Engine"

type SelectMoveRequest struct {
	SFEN  string `json:"sfen"`
	Level string `json:"level"`

	// Seed 非 0 时本次请求用独立的随机源，结果可复现
	Seed   int64 `json:"seed,omitempty"`
	Strict bool  `json:"strict,omitempty"`
}

type SelectMoveResponse struct {
	OK         bool    `json:"ok"`
	Move       string  `json:"move,omitempty"`
	Score      float64 `json:"score"`
	Candidates int     `json:"candidates"`
	Nodes      int64   `json:"nodes"`
	TimeMs     int64   `json:"time_ms"`
}

type ValidateRequest struct {
	SFEN string `json:"sfen"`
	Move string `json:"move"`
}

type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type EngineServer interface {
	SelectMove(context.Context, *SelectMoveRequest) (*SelectMoveResponse, error)
	Validate(context.Context, *ValidateRequest) (*ValidateResponse, error)
}

func RegisterEngineServer(s grpc.ServiceRegistrar, srv EngineServer) {
	s.RegisterService(&engineServiceDesc, srv)
}

var engineServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*EngineServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SelectMove", Handler: selectMoveHandler},
		{MethodName: "Validate", Handler: validateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shogi/engine",
}

func selectMoveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SelectMoveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).SelectMove(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/SelectMove"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EngineServer).SelectMove(ctx, req.(*SelectMoveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func validateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ValidateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EngineServer).Validate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Validate"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EngineServer).Validate(ctx, req.(*ValidateRequest))
	}
	return interceptor(ctx, in, info, handler)
}
