package shogi

// Apply 执行一步棋并返回新的棋盘和双方持驹，不做合法性检查（调用方先用 IsValid）。
// 入参都是值，调用方持有的快照不会被修改。
func Apply(b Board, m Move, handNear, handFar Hand, mover Owner) (Board, Hand, Hand) {
	if !m.To.InBounds() {
		return b, handNear, handFar
	}
	own := &handNear
	if mover == Far {
		own = &handFar
	}

	if m.Drop {
		k := BaseFormOf(m.Piece.Kind)
		own.add(k, -1)
		b[m.To.Row][m.To.Col] = Piece{Kind: k, Owner: mover}
		return b, handNear, handFar
	}

	if !m.From.InBounds() {
		return b, handNear, handFar
	}
	pc := m.Piece
	if pc.IsEmpty() {
		pc = b[m.From.Row][m.From.Col]
	}
	if captured := b[m.To.Row][m.To.Col]; !captured.IsEmpty() && captured.Owner != mover {
		own.add(BaseFormOf(captured.Kind), 1)
	}
	b[m.From.Row][m.From.Col] = Piece{}
	kind := pc.Kind
	if m.Promote {
		if pk, ok := PromotedFormOf(kind); ok {
			kind = pk
		}
	}
	b[m.To.Row][m.To.Col] = Piece{Kind: kind, Owner: mover}
	return b, handNear, handFar
}
