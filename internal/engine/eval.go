package engine

import (
	"shogi/internal/shogi"
)

// 子力估值
var pieceValue = map[shogi.PieceKind]float64{
	shogi.King:      10000,
	shogi.Rook:      100,
	shogi.Bishop:    100,
	shogi.Gold:      60,
	shogi.Silver:    50,
	shogi.Knight:    40,
	shogi.Lance:     40,
	shogi.Pawn:      20,
	shogi.Dragon:    120,
	shogi.Horse:     120,
	shogi.ProSilver: 55,
	shogi.ProKnight: 45,
	shogi.ProLance:  45,
	shogi.ProPawn:   30,
}

const (
	zoneBonus      = 5
	handDiscount   = 0.8
	kingSafeBonus  = 50
	kingCheckMalus = 100
	enemyCheckGain = 200
)

// PieceValue 返回驹的子力分，空格为 0。
func PieceValue(k shogi.PieceKind) float64 {
	return pieceValue[k]
}

// Evaluate 以 perspective 一方视角的静态评估：正数对 perspective 有利。
//
// 敌阵加减分按 perspective 的敌阵判断，双方棋子都一样（对方的子在这三段里扣分）。
func Evaluate(b shogi.Board, handNear, handFar shogi.Hand, perspective shogi.Owner) float64 {
	score := 0.0
	for r := 0; r < shogi.Rows; r++ {
		inZone := shogi.InPromotionZone(perspective, r)
		for c := 0; c < shogi.Cols; c++ {
			pc := b[r][c]
			if pc.IsEmpty() {
				continue
			}
			v := pieceValue[pc.Kind]
			if inZone {
				v += zoneBonus
			}
			if pc.Owner == perspective {
				score += v
			} else {
				score -= v
			}
		}
	}

	// 持驹按 perspective 计：己方加分，对方减分
	own, opp := handNear, handFar
	if perspective == shogi.Far {
		own, opp = handFar, handNear
	}
	for _, k := range shogi.HandKinds {
		score += pieceValue[k] * float64(own.Count(k)) * handDiscount
		score -= pieceValue[k] * float64(opp.Count(k)) * handDiscount
	}

	// 王的安全
	if _, ok := shogi.FindKing(b, perspective); ok {
		if shogi.IsInCheck(b, perspective) {
			score -= kingCheckMalus
		} else {
			score += kingSafeBonus
		}
	}
	enemy := perspective.Opponent()
	if _, ok := shogi.FindKing(b, enemy); ok && shogi.IsInCheck(b, enemy) {
		score += enemyCheckGain
	}
	return score
}

func manhattan(a, b shogi.Square) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
