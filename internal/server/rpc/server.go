package rpc

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"shogi/internal/engine"
	"shogi/internal/shogi"
)

// Server 无状态的引擎服务：每个请求自带 SFEN 局面。
type Server struct {
	eng *engine.Engine
	log *zap.SugaredLogger
}

func NewServer(eng *engine.Engine, log *zap.SugaredLogger) *Server {
	if eng == nil {
		eng = engine.NewEngine(0)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{eng: eng, log: log}
}

// NewGRPCServer 建好 grpc.Server 并注册引擎服务。
func NewGRPCServer(srv *Server) *grpc.Server {
	s := grpc.NewServer(grpc.UnaryInterceptor(srv.logUnary))
	RegisterEngineServer(s, srv)
	return s
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.log.Debugw("rpc", "method", info.FullMethod, "code", status.Code(err), "time", time.Since(start))
	return resp, err
}

func (s *Server) SelectMove(ctx context.Context, req *SelectMoveRequest) (*SelectMoveResponse, error) {
	pos, err := shogi.DecodeSFEN(req.SFEN)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	level, err := engine.ParseLevel(req.Level)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	eng := s.eng
	if req.Seed != 0 || req.Strict != s.eng.Strict {
		eng = engine.NewEngine(req.Seed)
		eng.Strict = req.Strict
	}
	res := eng.Search(pos, level)
	out := &SelectMoveResponse{
		OK:         res.OK,
		Score:      res.Score,
		Candidates: res.Candidates,
		Nodes:      res.Nodes,
		TimeMs:     res.TimeUsed.Milliseconds(),
	}
	if res.OK {
		out.Move = res.BestMove.String()
	}
	return out, nil
}

var (
	errNotOwnPiece = errors.New("no piece of the side to move on the origin square")
	errRules       = errors.New("move breaks the rules")
)

func (s *Server) Validate(_ context.Context, req *ValidateRequest) (*ValidateResponse, error) {
	pos, err := shogi.DecodeSFEN(req.SFEN)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	mv, err := shogi.ParseMove(pos.Board, req.Move, pos.SideToMove)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := checkMove(pos, mv); err != nil {
		return &ValidateResponse{Valid: false, Reason: err.Error()}, nil
	}
	return &ValidateResponse{Valid: true}, nil
}

func checkMove(pos *shogi.Position, mv shogi.Move) error {
	side := pos.SideToMove
	if !mv.Drop {
		pc := pos.Board.At(mv.From)
		if pc.IsEmpty() || pc.Owner != side {
			return errNotOwnPiece
		}
	}
	if err := pos.CheckPromotion(mv); err != nil {
		return err
	}
	if !pos.IsValid(mv) {
		return errRules
	}
	return nil
}
