package shogi

import "testing"

func TestHashInitializedFromInitialAndSFEN(t *testing.T) {
	pos := NewInitialPosition()
	if pos.Hash != pos.CalculateHash() {
		t.Fatalf("initial hash mismatch: got=%d want=%d", pos.Hash, pos.CalculateHash())
	}

	decoded, err := DecodeSFEN(StartSFEN)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Hash != pos.Hash {
		t.Fatalf("decoded hash mismatch: got=%d want=%d", decoded.Hash, pos.Hash)
	}
}

func TestApplyMoveHashIncrementalMatchesFullRecompute(t *testing.T) {
	pos := NewInitialPosition()
	for ply := 0; ply < 80; ply++ {
		moves := pos.LegalMoves()
		if len(moves) == 0 {
			return
		}
		// 优先吃子和打入，让持驹的哈希也被覆盖到
		mv := moves[len(moves)/2]
		for _, m := range moves {
			if m.Drop || !pos.Board[m.To.Row][m.To.Col].IsEmpty() {
				mv = m
				break
			}
		}
		next, ok := pos.ApplyMove(mv)
		if !ok {
			t.Fatalf("apply move failed at ply %d: %v", ply, mv)
		}
		got := next.Hash
		want := next.CalculateHash()
		if got != want {
			t.Fatalf("hash mismatch at ply %d: got=%d want=%d move=%v", ply, got, want, mv)
		}
		if !next.KingExists(Near) || !next.KingExists(Far) {
			return
		}
		pos = next
	}
}

func TestHashDistinguishesHandsAndSide(t *testing.T) {
	a := &Position{Board: NewInitialBoard(), SideToMove: Near}
	b := &Position{Board: NewInitialBoard(), SideToMove: Far}
	c := &Position{Board: NewInitialBoard(), SideToMove: Near, HandNear: Hand{}.With(Pawn, 1)}
	if a.CalculateHash() == b.CalculateHash() {
		t.Fatalf("side to move not hashed")
	}
	if a.CalculateHash() == c.CalculateHash() {
		t.Fatalf("hand not hashed")
	}
}

func TestApplyMoveRejectsWrongSide(t *testing.T) {
	pos := NewInitialPosition()
	if _, ok := pos.ApplyMove(Move{From: sq(2, 4), To: sq(3, 4)}); ok {
		t.Fatalf("moving the opponent's piece should fail")
	}
	if _, ok := pos.ApplyMove(Move{To: sq(4, 4), Drop: true, Piece: Piece{Kind: Pawn, Owner: Near}}); ok {
		t.Fatalf("drop without a hand piece should fail")
	}
	next, ok := pos.ApplyMove(Move{From: sq(6, 4), To: sq(5, 4)})
	if !ok || next.SideToMove != Far || next.Ply != 2 || next.Board[5][4].Kind != Pawn {
		t.Fatalf("apply failed: %+v", next)
	}
	if pos.Board[5][4] != (Piece{}) {
		t.Fatalf("original position mutated")
	}
}
