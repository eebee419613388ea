package shogi

// FindKing 返回 owner 的玉所在格；被吃掉时 ok 为 false。
func FindKing(b Board, owner Owner) (Square, bool) {
	return findKing(&b, owner)
}

func findKing(b *Board, owner Owner) (Square, bool) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.Kind == King && pc.Owner == owner {
				return Square{Row: r, Col: c}, true
			}
		}
	}
	return Square{}, false
}

// IsAttacked 判断 sq 是否被 by 方任意棋子攻击（伪合法落点意义上）。
func IsAttacked(b Board, sq Square, by Owner) bool {
	return isAttacked(&b, sq, by)
}

func isAttacked(b *Board, sq Square, by Owner) bool {
	var dests []Square
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.IsEmpty() || pc.Owner != by {
				continue
			}
			dests = dests[:0]
			genPieceMoves(b, Square{Row: r, Col: c}, pc, &dests)
			for _, d := range dests {
				if d == sq {
					return true
				}
			}
		}
	}
	return false
}

// IsInCheck 没有玉时返回 false，是否终局由上层判断。
func IsInCheck(b Board, owner Owner) bool {
	return isInCheck(&b, owner)
}

func isInCheck(b *Board, owner Owner) bool {
	k, ok := findKing(b, owner)
	if !ok {
		return false
	}
	return isAttacked(b, k, owner.Opponent())
}
