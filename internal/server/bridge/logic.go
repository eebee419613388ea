package main

import (
	"strings"

	"shogi/internal/engine"
	"shogi/internal/shogi"
)

// checkWinner 的返回值
const (
	resultOngoing = 0
	resultNear    = 1
	resultFar     = 2
	resultInvalid = -1
)

func isLegal(sfen, usi string) bool {
	pos, err := shogi.DecodeSFEN(sfen)
	if err != nil {
		return false
	}
	mv, err := shogi.ParseMove(pos.Board, usi, pos.SideToMove)
	if err != nil {
		return false
	}
	if pos.CheckPromotion(mv) != nil {
		return false
	}
	return pos.IsValid(mv)
}

// legalMoves 空格分隔的 USI 列表。
func legalMoves(sfen string) string {
	pos, err := shogi.DecodeSFEN(sfen)
	if err != nil {
		return ""
	}
	ms := pos.LegalMoves()
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return strings.Join(out, " ")
}

// checkWinner 玉被吃或轮到的一方无合法着法时返回胜者。
func checkWinner(sfen string) int {
	pos, err := shogi.DecodeSFEN(sfen)
	if err != nil {
		return resultInvalid
	}
	switch {
	case !pos.KingExists(shogi.Near):
		return resultFar
	case !pos.KingExists(shogi.Far):
		return resultNear
	case len(pos.LegalMoves()) == 0:
		if pos.SideToMove == shogi.Near {
			return resultFar
		}
		return resultNear
	}
	return resultOngoing
}

// selectMove 没有着法或输入错误时返回空串。
func selectMove(sfen, level string, seed int64) string {
	pos, err := shogi.DecodeSFEN(sfen)
	if err != nil {
		return ""
	}
	lv, err := engine.ParseLevel(level)
	if err != nil {
		return ""
	}
	res := engine.NewEngine(seed).Search(pos, lv)
	if !res.OK {
		return ""
	}
	return res.BestMove.String()
}
