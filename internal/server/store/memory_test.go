package store

import (
	"context"
	"errors"
	"testing"

	"shogi/internal/server/game"
	"shogi/internal/shogi"
)

func TestMemoryCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	g := &game.GameState{ID: "g1", Pos: shogi.NewInitialPosition(), Repetition: map[uint64]int{1: 1}}
	if err := m.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	g.Pos.Board[0][0] = shogi.Piece{}
	g.Repetition[1] = 9

	got, err := m.Load(ctx, "g1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Pos.Board[0][0].Kind != shogi.Lance || got.Repetition[1] != 1 {
		t.Fatal("stored state shares memory with the caller")
	}

	got.Pos.Ply = 99
	again, _ := m.Load(ctx, "g1")
	if again.Pos.Ply != 1 {
		t.Fatal("loaded state shares memory with the store")
	}
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if _, err := m.Load(ctx, "nope"); !errors.Is(err, game.ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
	_ = m.Save(ctx, &game.GameState{ID: "x", Pos: shogi.NewInitialPosition()})
	if err := m.Delete(ctx, "x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("Len = %d after delete", m.Len())
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	g := &game.GameState{ID: "done", Pos: shogi.NewInitialPosition(), Status: game.StatusDraw}
	if err := r.Archive(context.Background(), g); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	g.Status = game.StatusOngoing
	games := r.Games()
	if len(games) != 1 || games[0].Status != game.StatusDraw {
		t.Fatalf("recorded %+v", games)
	}
}
