package shogi

// Position 一个完整局面：棋盘、双方持驹、轮到谁走、手数。Hash 为 0 时表示未计算。
type Position struct {
	Board      Board
	HandNear   Hand
	HandFar    Hand
	SideToMove Owner
	Ply        int
	Hash       uint64
}

// NewInitialPosition 平手开局，先手（Near）先走。
func NewInitialPosition() *Position {
	pos := &Position{
		Board:      NewInitialBoard(),
		SideToMove: Near,
		Ply:        1,
	}
	pos.Hash = pos.CalculateHash()
	return pos
}

func (p *Position) Hand(owner Owner) Hand {
	if owner == Far {
		return p.HandFar
	}
	return p.HandNear
}

func (p *Position) KingExists(owner Owner) bool {
	_, ok := findKing(&p.Board, owner)
	return ok
}

func (p *Position) InCheck() bool {
	return isInCheck(&p.Board, p.SideToMove)
}

// PseudoMoves 轮到走的一方的候选着法（见包级 PseudoMoves）。
func (p *Position) PseudoMoves() []Move {
	return PseudoMoves(p.Board, p.Hand(p.SideToMove), p.SideToMove)
}

func (p *Position) LegalMoves() []Move {
	return LegalMoves(p.Board, p.HandNear, p.HandFar, p.SideToMove)
}

func (p *Position) IsValid(m Move) bool {
	return IsValid(p.Board, m, p.HandNear, p.HandFar, p.SideToMove)
}

// ApplyMove 走一步并切换走子方。只检查起点/持驹是否属于走子方，完整合法性由 IsValid 负责。
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	side := p.SideToMove
	if !m.To.InBounds() {
		return nil, false
	}
	if m.Drop {
		if p.Hand(side).Count(m.Piece.Kind) <= 0 || !p.Board[m.To.Row][m.To.Col].IsEmpty() {
			return nil, false
		}
	} else {
		if !m.From.InBounds() {
			return nil, false
		}
		pc := p.Board[m.From.Row][m.From.Col]
		if pc.IsEmpty() || pc.Owner != side {
			return nil, false
		}
		if m.Piece.IsEmpty() {
			m.Piece = pc
		}
	}

	h := p.EnsureHash()
	np := *p
	np.Board, np.HandNear, np.HandFar = Apply(p.Board, m, p.HandNear, p.HandFar, side)
	np.SideToMove = side.Opponent()
	np.Ply = p.Ply + 1

	// 增量 Zobrist：变动过的两个格子、变动过的持驹数量、走子方。
	if !m.Drop {
		h ^= pieceHashKey(p.Board[m.From.Row][m.From.Col], m.From)
	}
	h ^= pieceHashKey(p.Board[m.To.Row][m.To.Col], m.To)
	h ^= pieceHashKey(np.Board[m.To.Row][m.To.Col], m.To)
	for _, k := range HandKinds {
		for _, o := range [...]Owner{Near, Far} {
			before, after := p.Hand(o).Count(k), np.Hand(o).Count(k)
			if before != after {
				h ^= handHashKey(o, k, before) ^ handHashKey(o, k, after)
			}
		}
	}
	h ^= zobristSide
	np.Hash = h
	return &np, true
}
