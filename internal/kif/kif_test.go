package kif

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"shogi/internal/shogi"
)

func fixedClock(t *testing.T) {
	t.Helper()
	old := NowFunc
	NowFunc = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { NowFunc = old })
}

func usiMoves(t *testing.T, usi ...string) []shogi.Move {
	t.Helper()
	pos := shogi.NewInitialPosition()
	var out []shogi.Move
	for _, s := range usi {
		mv, err := shogi.ParseMove(pos.Board, s, pos.SideToMove)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", s, err)
		}
		next, ok := pos.ApplyMove(mv)
		if !ok {
			t.Fatalf("ApplyMove(%s) failed", s)
		}
		out = append(out, mv)
		pos = next
	}
	return out
}

func TestWriteOpening(t *testing.T) {
	fixedClock(t)
	rec := Record{
		Sente:  "人间",
		Gote:   "CPU",
		Moves:  usiMoves(t, "7g7f", "3c3d", "8h2b+", "3a2b"),
		Times:  []time.Duration{3 * time.Second, 65 * time.Second},
		Result: Result{Winner: shogi.Near, Reason: ReasonResign},
	}
	out := Write(rec)

	wants := []string{
		"開始日時：2026/10/17 09:30:00",
		"手合割：平手",
		"先手：人间",
		"後手：CPU",
		"   1 ７六歩(77) ( 0:03/00:00:03)",
		"   2 ３四歩(33) ( 1:05/00:01:08)",
		"   3 ２二角成(88) ( 0:00/00:01:08)",
		"   4 同　銀(31) ( 0:00/00:01:08)",
		"   5 投了 ( 0:00/00:01:08)",
		"まで4手で先手の勝ち",
	}
	for _, w := range wants {
		if !strings.Contains(out, w+"\n") {
			t.Fatalf("missing line %q in:\n%s", w, out)
		}
	}
}

func TestWriteNoPromoteAndDrop(t *testing.T) {
	pos := &shogi.Position{SideToMove: shogi.Near, Ply: 1}
	pos.Board[3][4] = shogi.Piece{Kind: shogi.Silver, Owner: shogi.Near}
	pos.Board[8][4] = shogi.Piece{Kind: shogi.King, Owner: shogi.Near}
	pos.Board[0][0] = shogi.Piece{Kind: shogi.King, Owner: shogi.Far}

	got := moveBody(pos, shogi.Move{From: shogi.Square{Row: 3, Col: 4}, To: shogi.Square{Row: 2, Col: 4}}, nil)
	if got != "５三銀不成(54)" {
		t.Fatalf("no-promote body = %q", got)
	}
	drop := shogi.Move{To: shogi.Square{Row: 4, Col: 4}, Drop: true, Piece: shogi.Piece{Kind: shogi.Gold, Owner: shogi.Near}}
	if got := moveBody(pos, drop, nil); got != "５五金打" {
		t.Fatalf("drop body = %q", got)
	}
}

func TestResultLines(t *testing.T) {
	cases := []struct {
		r    Result
		want string
	}{
		{Result{Winner: shogi.Far, Reason: ReasonCheckmate}, "まで10手で後手の勝ち"},
		{Result{Reason: ReasonRepetition}, "まで10手で千日手"},
		{Result{}, "まで10手で中断"},
	}
	for _, c := range cases {
		if got := resultLine(10, c.r); got != c.want {
			t.Fatalf("resultLine(%+v) = %q, want %q", c.r, got, c.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	fixedClock(t)
	moves := usiMoves(t, "7g7f", "3c3d", "8h2b+", "3a2b", "B*4e", "8b8d")
	text := Write(Record{Sente: "甲", Gote: "乙", Moves: moves, Result: Result{Winner: shogi.Far, Reason: ReasonResign}})

	g, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, text)
	}
	if g.Sente != "甲" || g.Gote != "乙" {
		t.Fatalf("players = %q/%q", g.Sente, g.Gote)
	}
	if g.Terminal != "投了" {
		t.Fatalf("terminal = %q", g.Terminal)
	}
	if len(g.Moves) != len(moves) {
		t.Fatalf("parsed %d moves, want %d", len(g.Moves), len(moves))
	}
	for i := range moves {
		if g.Moves[i].String() != moves[i].String() {
			t.Fatalf("move %d = %s, want %s", i+1, g.Moves[i], moves[i])
		}
	}
	if g.Final.SideToMove != shogi.Near || g.Final.HandFar.Count(shogi.Bishop) != 1 {
		t.Fatalf("unexpected final position %s", shogi.EncodeSFEN(g.Final))
	}
}

func TestParseCustomStart(t *testing.T) {
	fixedClock(t)
	start, err := shogi.DecodeSFEN("4k4/9/4P4/9/9/9/9/9/4K4 b G2Pr 1")
	if err != nil {
		t.Fatalf("DecodeSFEN: %v", err)
	}
	mv := shogi.Move{To: shogi.Square{Row: 1, Col: 4}, Drop: true, Piece: shogi.Piece{Kind: shogi.Gold, Owner: shogi.Near}}
	text := Write(Record{Start: start, Moves: []shogi.Move{mv}, Result: Result{Winner: shogi.Near, Reason: ReasonCheckmate}})
	if strings.Contains(text, "手合割") {
		t.Fatalf("custom start should use a board diagram:\n%s", text)
	}

	g, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, text)
	}
	if g.Start.Board != start.Board || g.Start.HandNear != start.HandNear || g.Start.HandFar != start.HandFar {
		t.Fatalf("start mismatch: %s", shogi.EncodeSFEN(g.Start))
	}
	if len(g.Moves) != 1 || g.Moves[0].String() != "G*5b" {
		t.Fatalf("moves = %v", g.Moves)
	}
	if g.Terminal != "詰み" {
		t.Fatalf("terminal = %q", g.Terminal)
	}
}

func TestParseWithoutTimeColumn(t *testing.T) {
	text := "手合割：平手\n" +
		"手数----指手---------消費時間--\n" +
		"   1 ７六歩(77)\n" +
		"   2 ３四歩(33)\n" +
		"   3 ２二角成(88)\n" +
		"   4 同 銀(31)\n" +
		"   5 ２六歩(27)\n" +
		"   6 投了\n" +
		"変化：5手\n" +
		"   5 ４五角打\n"

	g, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"7g7f", "3c3d", "8h2b+", "3a2b", "2g2f"}
	if len(g.Moves) != len(want) {
		t.Fatalf("parsed %d moves, want %d", len(g.Moves), len(want))
	}
	for i, w := range want {
		if g.Moves[i].String() != w {
			t.Fatalf("move %d = %s, want %s", i+1, g.Moves[i], w)
		}
	}
	if g.Terminal != "投了" {
		t.Fatalf("terminal = %q", g.Terminal)
	}
	final := shogi.NewInitialPosition()
	for _, mv := range usiMoves(t, want...) {
		final, _ = final.ApplyMove(mv)
	}
	if shogi.EncodeSFEN(g.Final) != shogi.EncodeSFEN(final) {
		t.Fatalf("final = %s, want %s", shogi.EncodeSFEN(g.Final), shogi.EncodeSFEN(final))
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{"handicap", "手合割：香落ち\n", ErrUnsupportedStart},
		{"illegal", "手合割：平手\n   1 ５五歩(57) ( 0:00/00:00:00)\n", ErrBadMove},
		{"same without previous", "   1 同　歩(77) ( 0:00/00:00:00)\n", ErrBadMove},
		{"unknown piece", "   1 ７六象(77) ( 0:00/00:00:00)\n", ErrBadMove},
		{"bogus promotion", "   1 ７六歩成(77) ( 0:00/00:00:00)\n", ErrBadMove},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse(c.text); !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
		})
	}
}

func TestShiftJISRoundTrip(t *testing.T) {
	fixedClock(t)
	text := Write(Record{Moves: usiMoves(t, "2g2f", "8c8d"), Result: Result{Reason: ReasonAbort}})
	raw, err := EncodeShiftJIS(text)
	if err != nil {
		t.Fatalf("EncodeShiftJIS: %v", err)
	}
	if bytes.Equal(raw, []byte(text)) {
		t.Fatal("expected Shift-JIS bytes to differ from UTF-8")
	}
	back, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back != text {
		t.Fatalf("round trip mismatch")
	}

	withBOM, err := Decode(append([]byte{0xEF, 0xBB, 0xBF}, text...))
	if err != nil || withBOM != text {
		t.Fatalf("BOM decode failed: %v", err)
	}
}
