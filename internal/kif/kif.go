package kif

import (
	"fmt"
	"strings"
	"time"

	"shogi/internal/shogi"
)

// Record 一局棋谱。Start 为 nil 时表示平手初始局面。
type Record struct {
	Start     *shogi.Position
	Sente     string
	Gote      string
	StartedAt time.Time
	Moves     []shogi.Move

	// Times 每步用时，可以比 Moves 短
	Times  []time.Duration
	Result Result
}

// Result 终局信息。Winner 为 NoOwner 且 Reason 非空时为和棋或中断。
type Result struct {
	Winner shogi.Owner
	Reason string
}

// 终局原因，与 game 包的 Reason 取值一致
const (
	ReasonResign     = "resign"
	ReasonCheckmate  = "checkmate"
	ReasonNoMoves    = "no_moves"
	ReasonKingTaken  = "king_captured"
	ReasonRepetition = "repetition"
	ReasonAbort      = "abort"
)

var terminalWord = map[string]string{
	ReasonResign:     "投了",
	ReasonCheckmate:  "詰み",
	ReasonNoMoves:    "詰み",
	ReasonRepetition: "千日手",
	ReasonAbort:      "中断",
}

// Write 生成 KIF 文本（UTF-8）。着法会在起始局面上重放，用来判断 同、成/不成。
func Write(rec Record) string {
	pos := rec.Start
	if pos == nil {
		pos = shogi.NewInitialPosition()
	}
	started := rec.StartedAt
	if started.IsZero() {
		started = NowFunc()
	}

	out := make([]string, 0, len(rec.Moves)+16)
	out = append(out, "# KIF形式棋譜ファイル")
	out = append(out, "開始日時："+started.Format("2006/01/02 15:04:05"))
	if pos.Board == shogi.NewInitialBoard() && pos.HandNear.IsEmpty() && pos.HandFar.IsEmpty() && pos.SideToMove == shogi.Near {
		out = append(out, "手合割：平手")
	} else {
		out = append(out, "後手の持駒："+handToKIF(pos.HandFar))
		out = append(out, boardToBOD(&pos.Board)...)
		out = append(out, "先手の持駒："+handToKIF(pos.HandNear))
		if pos.SideToMove == shogi.Far {
			out = append(out, "後手番")
		}
	}
	out = append(out, "先手："+nameOr(rec.Sente, "先手"))
	out = append(out, "後手："+nameOr(rec.Gote, "後手"))
	out = append(out, "手数----指手---------消費時間--")

	var prevTo *shogi.Square
	var total time.Duration
	cur := pos
	for i, mv := range rec.Moves {
		var per time.Duration
		if i < len(rec.Times) {
			per = rec.Times[i]
		}
		total += per
		body := moveBody(cur, mv, prevTo)
		out = append(out, fmt.Sprintf("%4d %s %s", i+1, body, formatClock(per, total)))

		next, ok := cur.ApplyMove(mv)
		if !ok {
			// 记录与局面对不上时就此截断
			break
		}
		cur = next
		to := mv.To
		prevTo = &to
	}

	n := len(rec.Moves)
	if word, ok := terminalWord[rec.Result.Reason]; ok {
		out = append(out, fmt.Sprintf("%4d %s %s", n+1, word, formatClock(0, total)))
	}
	out = append(out, resultLine(n, rec.Result))
	return strings.Join(out, "\n") + "\n"
}

func moveBody(pos *shogi.Position, mv shogi.Move, prevTo *shogi.Square) string {
	dst := SquareToKIF(mv.To)
	if prevTo != nil && *prevTo == mv.To {
		dst = "同　"
	}
	if mv.Drop {
		return dst + pieceJP[shogi.BaseFormOf(mv.Piece.Kind)] + "打"
	}
	pc := pos.Board.At(mv.From)
	name := pieceJP[pc.Kind]
	switch {
	case mv.Promote:
		name += "成"
	case shogi.CanPromote(pc, mv.From, mv.To, pos.SideToMove):
		name += "不成"
	}
	return dst + name + squareToParen(mv.From)
}

func resultLine(n int, r Result) string {
	switch {
	case r.Winner == shogi.Near:
		return fmt.Sprintf("まで%d手で先手の勝ち", n)
	case r.Winner == shogi.Far:
		return fmt.Sprintf("まで%d手で後手の勝ち", n)
	case r.Reason == ReasonRepetition:
		return fmt.Sprintf("まで%d手で千日手", n)
	}
	return fmt.Sprintf("まで%d手で中断", n)
}

func boardToBOD(b *shogi.Board) []string {
	lines := []string{
		"  ９ ８ ７ ６ ５ ４ ３ ２ １",
		"+---------------------------+",
	}
	for r := 0; r < shogi.Rows; r++ {
		var sb strings.Builder
		sb.WriteByte('|')
		for c := 0; c < shogi.Cols; c++ {
			pc := b[r][c]
			switch {
			case pc.IsEmpty():
				sb.WriteString(" ・")
			case pc.Owner == shogi.Far:
				sb.WriteString("v" + pieceBOD[pc.Kind])
			default:
				sb.WriteString(" " + pieceBOD[pc.Kind])
			}
		}
		sb.WriteString("|" + rankKanji[r+1])
		lines = append(lines, sb.String())
	}
	lines = append(lines, "+---------------------------+")
	return lines
}

func nameOr(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
