package game

import (
	"time"

	"shogi/internal/engine"
	"shogi/internal/kif"
	"shogi/internal/shogi"
)

type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusNearWin Status = "near_win"
	StatusFarWin  Status = "far_win"
	StatusDraw    Status = "draw"
)

// 终局原因
const (
	ReasonCheckmate    = kif.ReasonCheckmate
	ReasonNoMoves      = kif.ReasonNoMoves
	ReasonKingCaptured = kif.ReasonKingTaken
	ReasonResign       = kif.ReasonResign
	ReasonRepetition   = kif.ReasonRepetition
)

// repetitionLimit 同一局面出现的次数达到它即为千日手
const repetitionLimit = 4

type MoveRecord struct {
	Move     shogi.Move      `json:"move"`
	USI      string          `json:"usi"`
	Side     shogi.Owner     `json:"side"`
	Captured shogi.PieceKind `json:"captured,omitempty"`
	Check    bool            `json:"check,omitempty"`
	CPU      bool            `json:"cpu,omitempty"`
	Elapsed  time.Duration   `json:"elapsed"`
	At       time.Time       `json:"at"`
}

// GameState 一局棋的完整快照，存储层整体序列化。
// HumanSide 为 NoOwner 时双方都由人操作。
type GameState struct {
	ID         string          `json:"id"`
	Pos        *shogi.Position `json:"pos"`
	StartSFEN  string          `json:"start_sfen"`
	Level      engine.Level    `json:"level"`
	HumanSide  shogi.Owner     `json:"human_side"`
	Moves      []MoveRecord    `json:"moves"`
	Status     Status          `json:"status"`
	Winner     shogi.Owner     `json:"winner"`
	Reason     string          `json:"reason,omitempty"`
	Check      bool            `json:"check"`
	Repetition map[uint64]int  `json:"repetition"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (g *GameState) Over() bool {
	return g.Status != StatusOngoing
}

// CPUSide 由引擎走的一方，没有时返回 NoOwner。
func (g *GameState) CPUSide() shogi.Owner {
	return g.HumanSide.Opponent()
}

func (g *GameState) LastMove() *MoveRecord {
	if len(g.Moves) == 0 {
		return nil
	}
	return &g.Moves[len(g.Moves)-1]
}

// Clone 深拷贝，存储层和监听者拿到的都是副本。
func (g *GameState) Clone() *GameState {
	c := *g
	if g.Pos != nil {
		pos := *g.Pos
		c.Pos = &pos
	}
	c.Moves = append([]MoveRecord(nil), g.Moves...)
	c.Repetition = make(map[uint64]int, len(g.Repetition))
	for k, v := range g.Repetition {
		c.Repetition[k] = v
	}
	return &c
}

func (g *GameState) finish(winner shogi.Owner, reason string) {
	g.Winner = winner
	g.Reason = reason
	switch winner {
	case shogi.Near:
		g.Status = StatusNearWin
	case shogi.Far:
		g.Status = StatusFarWin
	default:
		g.Status = StatusDraw
	}
}

// Record 转成 KIF 棋谱。
func (g *GameState) Record() kif.Record {
	rec := kif.Record{
		Sente:     "先手",
		Gote:      "後手",
		StartedAt: g.CreatedAt,
	}
	if start, err := shogi.DecodeSFEN(g.StartSFEN); err == nil {
		rec.Start = start
	}
	switch g.HumanSide {
	case shogi.Near:
		rec.Gote = "CPU(" + g.Level.String() + ")"
	case shogi.Far:
		rec.Sente = "CPU(" + g.Level.String() + ")"
	}
	for _, mr := range g.Moves {
		rec.Moves = append(rec.Moves, mr.Move)
		rec.Times = append(rec.Times, mr.Elapsed)
	}
	if g.Over() {
		rec.Result = kif.Result{Winner: g.Winner, Reason: g.Reason}
	}
	return rec
}

func (g *GameState) KIF() string {
	return kif.Write(g.Record())
}
