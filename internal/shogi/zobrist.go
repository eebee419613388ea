package shogi

import "sync"

// 单种持驹最多 18 枚（步）
const maxHandCount = 18

var (
	zobristOnce sync.Once

	zobristPieces [2][NumKinds][Rows * Cols]uint64
	zobristHands  [2][NumHandKinds][maxHandCount + 1]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for o := 0; o < 2; o++ {
			for k := 1; k < NumKinds; k++ {
				for sq := 0; sq < Rows*Cols; sq++ {
					zobristPieces[o][k][sq] = next()
				}
			}
			// 数量为 0 的键保持为 0，空持驹不影响哈希
			for k := 0; k < NumHandKinds; k++ {
				for n := 1; n <= maxHandCount; n++ {
					zobristHands[o][k][n] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func ownerIndex(o Owner) int {
	switch o {
	case Near:
		return 0
	case Far:
		return 1
	}
	return -1
}

func pieceHashKey(pc Piece, sq Square) uint64 {
	if pc.IsEmpty() || !sq.InBounds() {
		return 0
	}
	oi := ownerIndex(pc.Owner)
	if oi < 0 || int(pc.Kind) >= NumKinds {
		return 0
	}
	initZobrist()
	return zobristPieces[oi][pc.Kind][sq.Row*Cols+sq.Col]
}

func handHashKey(o Owner, k PieceKind, n int) uint64 {
	oi, hi := ownerIndex(o), handIndex(k)
	if oi < 0 || hi < 0 || n <= 0 {
		return 0
	}
	if n > maxHandCount {
		n = maxHandCount
	}
	initZobrist()
	return zobristHands[oi][hi][n]
}

// CalculateHash 全量计算当前局面的 Zobrist 哈希（不含手数）。
func (p *Position) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := p.Board[r][c]
			if pc.IsEmpty() {
				continue
			}
			h ^= pieceHashKey(pc, Square{Row: r, Col: c})
		}
	}
	for _, k := range HandKinds {
		h ^= handHashKey(Near, k, p.HandNear.Count(k))
		h ^= handHashKey(Far, k, p.HandFar.Count(k))
	}
	if p.SideToMove == Far {
		h ^= zobristSide
	}
	return h
}

// EnsureHash 确保 Position.Hash 已初始化；返回当前哈希值。
func (p *Position) EnsureHash() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
