package engine

import (
	"testing"

	"shogi/internal/shogi"
)

func TestEvaluateInitialPositionIsSymmetric(t *testing.T) {
	b := shogi.NewInitialBoard()
	// 对方 20 枚子在自己的敌阵里：-100，自己的玉安全：+50
	for _, o := range []shogi.Owner{shogi.Near, shogi.Far} {
		if got := Evaluate(b, shogi.Hand{}, shogi.Hand{}, o); got != -50 {
			t.Fatalf("Evaluate(initial, %v) = %v, want -50", o, got)
		}
	}
}

func TestEvaluateCountsHandPieces(t *testing.T) {
	var b shogi.Board
	b[8][4] = shogi.Piece{Kind: shogi.King, Owner: shogi.Near}
	b[3][4] = shogi.Piece{Kind: shogi.King, Owner: shogi.Far}
	hn := shogi.Hand{}.With(shogi.Rook, 1)

	if got := Evaluate(b, hn, shogi.Hand{}, shogi.Near); got != 130 {
		t.Fatalf("near = %v, want 130", got)
	}
	// 先手玉在后手敌阵：-5；先手持飞：-80；后手玉安全：+50
	if got := Evaluate(b, hn, shogi.Hand{}, shogi.Far); got != -35 {
		t.Fatalf("far = %v, want -35", got)
	}
}

func TestEvaluateKingSafetyTerms(t *testing.T) {
	var b shogi.Board
	b[8][4] = shogi.Piece{Kind: shogi.King, Owner: shogi.Near}
	b[3][4] = shogi.Piece{Kind: shogi.King, Owner: shogi.Far}
	b[5][4] = shogi.Piece{Kind: shogi.Rook, Owner: shogi.Near}

	if got := Evaluate(b, shogi.Hand{}, shogi.Hand{}, shogi.Near); got != 350 {
		t.Fatalf("near = %v, want 350", got)
	}
	// 后手：少一枚飞 -100，自己被将 -100，先手玉在后手敌阵 -5
	if got := Evaluate(b, shogi.Hand{}, shogi.Hand{}, shogi.Far); got != -205 {
		t.Fatalf("far = %v, want -205", got)
	}

	// 没有玉的一方不加也不减
	b[8][4] = shogi.Piece{}
	if got := Evaluate(b, shogi.Hand{}, shogi.Hand{}, shogi.Near); got != -9700 {
		t.Fatalf("kingless near = %v, want -9700", got)
	}
}

func TestPieceValues(t *testing.T) {
	tests := []struct {
		kind shogi.PieceKind
		want float64
	}{
		{shogi.King, 10000},
		{shogi.Rook, 100},
		{shogi.Dragon, 120},
		{shogi.ProSilver, 55},
		{shogi.ProPawn, 30},
		{shogi.KindNone, 0},
	}
	for _, tt := range tests {
		if got := PieceValue(tt.kind); got != tt.want {
			t.Errorf("PieceValue(%v) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
