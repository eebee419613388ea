package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"shogi/internal/engine"
	"shogi/internal/server/game"
	"shogi/internal/shogi"
)

type NewGameRequest struct {
	Level     string `json:"level"`
	HumanSide string `json:"human_side"`     // near / far / none，默认 near
	SFEN      string `json:"sfen,omitempty"`
}

type GameRequest struct {
	GameID string `json:"game_id"`
}

type PlayRequest struct {
	GameID string    `json:"game_id"`
	Move   MoveInput `json:"move"`
}

// MoveInput 前端可以传 USI 字符串 "7g7f"，也可以传对象。
type MoveInput struct {
	USI     string
	From    *shogi.Square `json:"from,omitempty"`
	To      shogi.Square  `json:"to"`
	Drop    bool          `json:"drop,omitempty"`
	Kind    string        `json:"kind,omitempty"`
	Promote bool          `json:"promote,omitempty"`
}

func (m *MoveInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &m.USI)
	}
	type plain MoveInput
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*m = MoveInput(p)
	return nil
}

func (m MoveInput) toMove(b shogi.Board, side shogi.Owner) (shogi.Move, error) {
	if m.USI != "" {
		return shogi.ParseMove(b, m.USI, side)
	}
	if m.Drop {
		k, ok := shogi.ParseKind(m.Kind)
		if !ok {
			return shogi.Move{}, fmt.Errorf("%w: unknown kind %q", shogi.ErrInvalidMove, m.Kind)
		}
		return shogi.Move{To: m.To, Drop: true, Piece: shogi.Piece{Kind: k, Owner: side}}, nil
	}
	if m.From == nil {
		return shogi.Move{}, fmt.Errorf("%w: missing from", shogi.ErrInvalidMove)
	}
	return shogi.Move{From: *m.From, To: m.To, Promote: m.Promote}, nil
}

type AiMoveRequest struct {
	GameID string `json:"game_id"`
}

type AnalyzeRequest struct {
	Position string `json:"position"` // SFEN 或 "startpos"
	Level    string `json:"level"`
}

type MoveDTO struct {
	USI      string        `json:"usi"`
	From     *shogi.Square `json:"from,omitempty"`
	To       shogi.Square  `json:"to"`
	Drop     bool          `json:"drop,omitempty"`
	Kind     string        `json:"kind"`
	Promote  bool          `json:"promote,omitempty"`
	Side     string        `json:"side,omitempty"`
	Captured string        `json:"captured,omitempty"`
	CPU      bool          `json:"cpu,omitempty"`
}

type PieceDTO struct {
	Kind  string `json:"kind"`
	Owner string `json:"owner"`
}

type StateResponse struct {
	GameID     string         `json:"game_id"`
	SFEN       string         `json:"sfen"`
	Board      [][]*PieceDTO  `json:"board"`
	HandNear   map[string]int `json:"hand_near"`
	HandFar    map[string]int `json:"hand_far"`
	ToMove     string         `json:"to_move"`
	HumanSide  string         `json:"human_side"`
	Level      string         `json:"level"`
	Ply        int            `json:"ply"`
	LegalMoves []string       `json:"legal_moves"`
	Status     game.Status    `json:"status"`
	Winner     string         `json:"winner,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Check      bool           `json:"check"`
	LastMove   *MoveDTO       `json:"last_move,omitempty"`
	Moves      []string       `json:"moves"`
}

type AiMoveResponse struct {
	State      StateResponse `json:"state"`
	BestMove   *MoveDTO      `json:"best_move,omitempty"`
	Score      float64       `json:"score"`
	Candidates int           `json:"candidates"`
	Nodes      int64         `json:"nodes"`
	TimeMs     int64         `json:"time_ms"`
}

type AnalyzeResponse struct {
	OK         bool     `json:"ok"`
	BestMove   *MoveDTO `json:"best_move,omitempty"`
	Score      float64  `json:"score"`
	Level      string   `json:"level"`
	Candidates int      `json:"candidates"`
	Nodes      int64    `json:"nodes"`
	TimeMs     int64    `json:"time_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func parseSide(s string) (shogi.Owner, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "near", "sente", "black", "b":
		return shogi.Near, nil
	case "far", "gote", "white", "w":
		return shogi.Far, nil
	case "none", "both", "hotseat":
		return shogi.NoOwner, nil
	}
	return shogi.NoOwner, fmt.Errorf("unknown side %q", s)
}

func moveToDTO(m shogi.Move) *MoveDTO {
	d := &MoveDTO{
		USI:     m.String(),
		To:      m.To,
		Drop:    m.Drop,
		Kind:    m.Piece.Kind.String(),
		Promote: m.Promote,
	}
	if !m.Drop {
		from := m.From
		d.From = &from
	}
	return d
}

func recordToDTO(r *game.MoveRecord) *MoveDTO {
	if r == nil {
		return nil
	}
	d := moveToDTO(r.Move)
	d.Side = r.Side.String()
	d.CPU = r.CPU
	if r.Captured != shogi.KindNone {
		d.Captured = r.Captured.String()
	}
	return d
}

func handToDTO(h shogi.Hand) map[string]int {
	out := make(map[string]int, shogi.NumHandKinds)
	for _, k := range shogi.HandKinds {
		if n := h.Count(k); n > 0 {
			out[k.String()] = n
		}
	}
	return out
}

func boardToDTO(b *shogi.Board) [][]*PieceDTO {
	rows := make([][]*PieceDTO, shogi.Rows)
	for r := range rows {
		rows[r] = make([]*PieceDTO, shogi.Cols)
		for c := 0; c < shogi.Cols; c++ {
			if pc := b[r][c]; !pc.IsEmpty() {
				rows[r][c] = &PieceDTO{Kind: pc.Kind.String(), Owner: pc.Owner.String()}
			}
		}
	}
	return rows
}

func stateToDTO(g *game.GameState, legal []shogi.Move) StateResponse {
	resp := StateResponse{
		GameID:     g.ID,
		SFEN:       shogi.EncodeSFEN(g.Pos),
		Board:      boardToDTO(&g.Pos.Board),
		HandNear:   handToDTO(g.Pos.HandNear),
		HandFar:    handToDTO(g.Pos.HandFar),
		ToMove:     g.Pos.SideToMove.String(),
		HumanSide:  g.HumanSide.String(),
		Level:      g.Level.String(),
		Ply:        g.Pos.Ply,
		LegalMoves: make([]string, 0, len(legal)),
		Status:     g.Status,
		Reason:     g.Reason,
		Check:      g.Check,
		LastMove:   recordToDTO(g.LastMove()),
		Moves:      make([]string, 0, len(g.Moves)),
	}
	if g.Winner != shogi.NoOwner {
		resp.Winner = g.Winner.String()
	}
	for _, m := range legal {
		resp.LegalMoves = append(resp.LegalMoves, m.String())
	}
	for _, mr := range g.Moves {
		resp.Moves = append(resp.Moves, mr.USI)
	}
	return resp
}

func searchToAnalyze(res engine.SearchResult) AnalyzeResponse {
	out := AnalyzeResponse{
		OK:         res.OK,
		Score:      res.Score,
		Level:      res.Level.String(),
		Candidates: res.Candidates,
		Nodes:      res.Nodes,
		TimeMs:     res.TimeUsed.Milliseconds(),
	}
	if res.OK {
		out.BestMove = moveToDTO(res.BestMove)
	}
	return out
}
