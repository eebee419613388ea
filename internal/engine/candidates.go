package engine

import "shogi/internal/shogi"

// 搜索时每层只看前几个候选（按生成顺序）
const (
	mediumReplyCap  = 5
	hardReplyCap    = 8
	hardFollowUpCap = 5
)

// candidates 列出 mover 的候选着法。strict 时按人类走子的标准过滤（不送将、打步诘等）。
func (e *Engine) candidates(b shogi.Board, hand, handNear, handFar shogi.Hand, mover shogi.Owner) []shogi.Move {
	moves := shogi.PseudoMoves(b, hand, mover)
	if !e.Strict {
		return moves
	}
	out := moves[:0]
	for _, m := range moves {
		if shogi.IsValid(b, m, handNear, handFar, mover) {
			out = append(out, m)
		}
	}
	return out
}

func handOf(owner shogi.Owner, handNear, handFar shogi.Hand) shogi.Hand {
	if owner == shogi.Far {
		return handFar
	}
	return handNear
}

func firstN(moves []shogi.Move, n int) []shogi.Move {
	if len(moves) > n {
		return moves[:n]
	}
	return moves
}
