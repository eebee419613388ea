package shogi

// IsValid 判断一步棋是否完全合法。
//
// 打入：手里有这种驹、落点为空、死段限制、二步、打步诘。
// 盘上走子：起点是自己的子、终点在 Generate 结果内、走完后自己不被将。
// 成/不成的一致性（必须成、不能成）由上层处理。
func IsValid(b Board, m Move, handNear, handFar Hand, mover Owner) bool {
	if mover != Near && mover != Far {
		return false
	}
	if !m.To.InBounds() {
		return false
	}
	if m.Drop {
		return isValidDrop(&b, m, handNear, handFar, mover)
	}
	return isValidBoardMove(&b, m, handNear, handFar, mover)
}

func isValidDrop(b *Board, m Move, handNear, handFar Hand, mover Owner) bool {
	hand := handNear
	if mover == Far {
		hand = handFar
	}
	k := m.Piece.Kind
	if !k.Droppable() || m.Promote {
		return false
	}
	if hand.Count(k) <= 0 {
		return false
	}
	if !b[m.To.Row][m.To.Col].IsEmpty() {
		return false
	}
	if dropDeadRank(k, mover, m.To.Row) {
		return false
	}
	if k == Pawn {
		if hasPawnOnFile(b, m.To.Col, mover) {
			return false
		}
		if isDropPawnMate(b, m, handNear, handFar, mover) {
			return false
		}
	}
	return true
}

func isValidBoardMove(b *Board, m Move, handNear, handFar Hand, mover Owner) bool {
	if !m.From.InBounds() {
		return false
	}
	pc := b[m.From.Row][m.From.Col]
	if pc.IsEmpty() || pc.Owner != mover {
		return false
	}
	var dests []Square
	genPieceMoves(b, m.From, pc, &dests)
	found := false
	for _, d := range dests {
		if d == m.To {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	nb, _, _ := Apply(*b, m, handNear, handFar, mover)
	return !isInCheck(&nb, mover)
}

// 二步：同一筋已有己方未成的步（と不算）。
func hasPawnOnFile(b *Board, col int, owner Owner) bool {
	for r := 0; r < Rows; r++ {
		pc := b[r][col]
		if pc.Kind == Pawn && pc.Owner == owner {
			return true
		}
	}
	return false
}

// isDropPawnMate 打步诘的近似判定：只枚举对方盘上棋子的应将，不考虑对方打入解将。
func isDropPawnMate(b *Board, m Move, handNear, handFar Hand, mover Owner) bool {
	nb, hn, hf := Apply(*b, m, handNear, handFar, mover)
	enemy := mover.Opponent()
	if !isInCheck(&nb, enemy) {
		return false
	}
	var dests []Square
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := nb[r][c]
			if pc.IsEmpty() || pc.Owner != enemy {
				continue
			}
			from := Square{Row: r, Col: c}
			dests = dests[:0]
			genPieceMoves(&nb, from, pc, &dests)
			for _, to := range dests {
				tb, _, _ := Apply(nb, Move{From: from, To: to, Piece: pc}, hn, hf, enemy)
				if !isInCheck(&tb, enemy) {
					return false
				}
			}
		}
	}
	return true
}
