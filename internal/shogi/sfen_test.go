package shogi

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeInitialPosition(t *testing.T) {
	if got := EncodeSFEN(NewInitialPosition()); got != StartSFEN {
		t.Fatalf("initial sfen = %q, want %q", got, StartSFEN)
	}
	pos, err := DecodeSFEN("startpos")
	if err != nil {
		t.Fatalf("decode startpos: %v", err)
	}
	if pos.Board != NewInitialBoard() || pos.SideToMove != Near {
		t.Fatalf("startpos does not match the initial board")
	}
}

func TestSFENRoundTrip(t *testing.T) {
	const s = "8l/1l+R2P3/p2pBG1pp/kps1p4/Nn1P2G2/P1P1P3P/1PS6/1KSG3+r1/LN2+p3L w Sbgn3p 124"
	pos, err := DecodeSFEN(s)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if pos.Board[1][2] != (Piece{Kind: Dragon, Owner: Near}) {
		t.Fatalf("(1,2) = %+v", pos.Board[1][2])
	}
	if pos.Board[7][7] != (Piece{Kind: Dragon, Owner: Far}) {
		t.Fatalf("(7,7) = %+v", pos.Board[7][7])
	}
	if pos.Board[8][4] != (Piece{Kind: ProPawn, Owner: Far}) {
		t.Fatalf("(8,4) = %+v", pos.Board[8][4])
	}
	if pos.HandNear.Count(Silver) != 1 || pos.HandFar.Count(Pawn) != 3 || pos.HandFar.Count(Bishop) != 1 {
		t.Fatalf("hands = %v / %v", pos.HandNear, pos.HandFar)
	}
	if pos.SideToMove != Far || pos.Ply != 124 {
		t.Fatalf("side=%v ply=%d", pos.SideToMove, pos.Ply)
	}
	if pos.Hash != pos.CalculateHash() {
		t.Fatalf("decoded hash not initialized")
	}
	if got := EncodeSFEN(pos); got != s {
		t.Fatalf("round trip = %q", got)
	}
}

func TestDecodeSFENRejectsGarbage(t *testing.T) {
	start := strings.TrimSuffix(StartSFEN, " b - 1")
	tests := map[string]string{
		"empty":           "",
		"too few ranks":   "9/9/9 b - 1",
		"bad side":        start + " x - 1",
		"bad letter":      strings.Replace(start, "LNSGKGSNL", "LNSGKGSNX", 1) + " b - 1",
		"rank overflow":   strings.Replace(start, "9", "91", 1) + " b - 1",
		"promoted king":   strings.Replace(start, "lnsgkgsnl", "lnsg+kgsnl", 1) + " b - 1",
		"promoted digit":  strings.Replace(start, "9", "+9", 1) + " b - 1",
		"king in hand":    start + " b K 1",
		"dangling count":  start + " b 2 1",
		"bad move number": start + " b - zero",
	}
	for name, s := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeSFEN(s); !errors.Is(err, ErrInvalidSFEN) {
				t.Fatalf("DecodeSFEN(%q) err = %v", s, err)
			}
		})
	}
}

func TestMoveNotation(t *testing.T) {
	b := NewInitialBoard()
	m, err := ParseMove(b, "7g7f", Near)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.From != sq(6, 2) || m.To != sq(5, 2) || m.Piece.Kind != Pawn || m.Drop || m.Promote {
		t.Fatalf("7g7f = %+v", m)
	}
	if m.String() != "7g7f" {
		t.Fatalf("String = %q", m.String())
	}

	m, err = ParseMove(b, "8h2b+", Near)
	if err != nil || !m.Promote || m.From != sq(7, 1) || m.To != sq(1, 7) || m.Piece.Kind != Bishop {
		t.Fatalf("8h2b+ = %+v %v", m, err)
	}
	if m.String() != "8h2b+" {
		t.Fatalf("String = %q", m.String())
	}

	m, err = ParseMove(b, "P*5e", Far)
	if err != nil || !m.Drop || m.To != sq(4, 4) || m.Piece != (Piece{Kind: Pawn, Owner: Far}) {
		t.Fatalf("P*5e = %+v %v", m, err)
	}
	if m.String() != "P*5e" {
		t.Fatalf("String = %q", m.String())
	}

	for _, bad := range []string{"", "7g", "0g7f", "7j7f", "K*5e", "X*5e", "7g7f++"} {
		if _, err := ParseMove(b, bad, Near); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("ParseMove(%q) err = %v", bad, err)
		}
	}
}
