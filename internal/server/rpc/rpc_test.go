package rpc

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"shogi/internal/engine"
	"shogi/internal/shogi"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := NewGRPCServer(NewServer(engine.NewEngine(3), nil))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSelectMove(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	resp, err := c.SelectMove(ctx, &SelectMoveRequest{SFEN: shogi.StartSFEN, Level: "medium"})
	if err != nil {
		t.Fatalf("SelectMove: %v", err)
	}
	if !resp.OK || resp.Candidates != 30 || resp.Move == "" {
		t.Fatalf("resp %+v", resp)
	}
	pos := shogi.NewInitialPosition()
	mv, err := shogi.ParseMove(pos.Board, resp.Move, pos.SideToMove)
	if err != nil || !pos.IsValid(mv) {
		t.Fatalf("engine returned unusable move %q: %v", resp.Move, err)
	}
}

func TestSelectMoveSeeded(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	req := &SelectMoveRequest{SFEN: shogi.StartSFEN, Level: "easy", Seed: 42}
	a, err := c.SelectMove(ctx, req)
	if err != nil {
		t.Fatalf("SelectMove: %v", err)
	}
	b, err := c.SelectMove(ctx, req)
	if err != nil {
		t.Fatalf("SelectMove: %v", err)
	}
	if a.Move != b.Move {
		t.Fatalf("same seed gave %s and %s", a.Move, b.Move)
	}
}

func TestSelectMoveBadInput(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	cases := []*SelectMoveRequest{
		{SFEN: "garbage", Level: "easy"},
		{SFEN: shogi.StartSFEN, Level: "impossible"},
	}
	for _, req := range cases {
		if _, err := c.SelectMove(ctx, req); status.Code(err) != codes.InvalidArgument {
			t.Fatalf("req %+v: code %v, want InvalidArgument", req, status.Code(err))
		}
	}
}

func TestValidate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	cases := []struct {
		sfen  string
		move  string
		valid bool
	}{
		{shogi.StartSFEN, "7g7f", true},
		{shogi.StartSFEN, "7g7e", false},
		{shogi.StartSFEN, "3c3d", false},
		{shogi.StartSFEN, "7g7f+", false},
		{"4k4/P8/9/9/9/9/9/9/4K4 b - 1", "9b9a", false},
		{"4k4/P8/9/9/9/9/9/9/4K4 b - 1", "9b9a+", true},
		{"4k4/9/9/9/9/9/9/9/4K4 b P 1", "P*5b", true},
		{"4k4/9/9/9/9/9/9/9/4K4 b P 1", "P*5a", false},
	}
	for _, tc := range cases {
		resp, err := c.Validate(ctx, &ValidateRequest{SFEN: tc.sfen, Move: tc.move})
		if err != nil {
			t.Fatalf("Validate(%s): %v", tc.move, err)
		}
		if resp.Valid != tc.valid {
			t.Fatalf("Validate(%s) = %v (%s), want %v", tc.move, resp.Valid, resp.Reason, tc.valid)
		}
		if !resp.Valid && resp.Reason == "" {
			t.Fatalf("Validate(%s) missing reason", tc.move)
		}
	}

	resp, err := c.Validate(ctx, &ValidateRequest{SFEN: "4k4/P8/9/9/9/9/9/9/4K4 b - 1", Move: "9b9a"})
	if err != nil || resp.Reason != shogi.ErrMustPromote.Error() {
		t.Fatalf("unpromoted pawn on the last rank: %+v, %v", resp, err)
	}

	if _, err := c.Validate(ctx, &ValidateRequest{SFEN: shogi.StartSFEN, Move: "xx"}); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("bad notation: code %v", status.Code(err))
	}
}
