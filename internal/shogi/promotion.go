package shogi

import "errors"

var (
	ErrMustPromote   = errors.New("piece must promote")
	ErrCannotPromote = errors.New("piece cannot promote")
)

// InPromotionZone 对 owner 而言 row 是否在敌阵（最远的三段）。
func InPromotionZone(owner Owner, row int) bool {
	if row < 0 || row >= Rows {
		return false
	}
	return depthFromFarthest(owner, row) < zoneDepth
}

// CanPromote 未成、非玉非金，且起点或终点在敌阵。
func CanPromote(pc Piece, from, to Square, owner Owner) bool {
	if pc.Promoted() {
		return false
	}
	if _, ok := PromotedFormOf(pc.Kind); !ok {
		return false
	}
	return InPromotionZone(owner, from.Row) || InPromotionZone(owner, to.Row)
}

// MustPromote 不成就再也走不动的情况：桂进最远两段，香、步进最远一段。
func MustPromote(pc Piece, to Square, owner Owner) bool {
	if pc.Promoted() {
		return false
	}
	if to.Row < 0 || to.Row >= Rows {
		return false
	}
	return dropDeadRank(pc.Kind, owner, to.Row)
}

// CheckPromotion 盘上走子的成/不成是否合规：必须成的没成、不能成的成了都报错。
// 打入总是通过。
func (p *Position) CheckPromotion(m Move) error {
	if m.Drop {
		return nil
	}
	pc := p.Board.At(m.From)
	side := p.SideToMove
	switch {
	case m.Promote && !CanPromote(pc, m.From, m.To, side):
		return ErrCannotPromote
	case !m.Promote && MustPromote(pc, m.To, side):
		return ErrMustPromote
	}
	return nil
}

// NormalizePromotion 用盘面补全 Piece，必须成时自动成，再做 CheckPromotion。
// 打入的 Piece 归一为轮到一方的基础驹。
func (p *Position) NormalizePromotion(m Move) (Move, error) {
	side := p.SideToMove
	if m.Drop {
		m.Piece = Piece{Kind: BaseFormOf(m.Piece.Kind), Owner: side}
		return m, nil
	}
	m.Piece = p.Board.At(m.From)
	if MustPromote(m.Piece, m.To, side) {
		m.Promote = true
	}
	return m, p.CheckPromotion(m)
}
