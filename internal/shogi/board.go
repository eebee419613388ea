package shogi

const (
	Rows = 9
	Cols = 9

	// 敌阵（升变区）的段数
	zoneDepth = 3
)

// Board 9x9 固定数组，按值传递即为快照。
type Board [Rows][Cols]Piece

// Hand 持驹数量，下标为 PieceKind-Pawn（见 HandKinds）。
type Hand [NumHandKinds]int

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// At 越界返回空格。
func (b *Board) At(sq Square) Piece {
	if !sq.InBounds() {
		return Piece{}
	}
	return b[sq.Row][sq.Col]
}

// Set 只修改接收者本身，调用方应先复制。越界忽略。
func (b *Board) Set(sq Square, p Piece) {
	if !sq.InBounds() {
		return
	}
	b[sq.Row][sq.Col] = p
}

func handIndex(k PieceKind) int {
	if !k.Droppable() {
		return -1
	}
	return int(k - Pawn)
}

func (h Hand) Count(k PieceKind) int {
	i := handIndex(k)
	if i < 0 {
		return 0
	}
	return h[i]
}

func (h *Hand) add(k PieceKind, delta int) {
	i := handIndex(k)
	if i < 0 {
		return
	}
	h[i] += delta
	if h[i] < 0 {
		h[i] = 0
	}
}

// With 返回一份把 k 的数量设为 n 的新持驹。
func (h Hand) With(k PieceKind, n int) Hand {
	i := handIndex(k)
	if i < 0 || n < 0 {
		return h
	}
	h[i] = n
	return h
}

func (h Hand) IsEmpty() bool {
	for _, n := range h {
		if n > 0 {
			return false
		}
	}
	return true
}

func NewHand() Hand { return Hand{} }

// depthFromFarthest 以 owner 视角，row 离对方底线的距离：0 表示最远的一段。
func depthFromFarthest(owner Owner, row int) int {
	if owner == Far {
		return Rows - 1 - row
	}
	return row
}

// forward 返回 owner 的前进方向（row 增量）。
func forward(owner Owner) int {
	if owner == Far {
		return +1
	}
	return -1
}

var backRank = [Cols]PieceKind{Lance, Knight, Silver, Gold, King, Gold, Silver, Knight, Lance}

// NewInitialBoard 平手初始局面。Far 在 row 0..2，Near 在 row 6..8。
func NewInitialBoard() Board {
	var b Board
	for c := 0; c < Cols; c++ {
		b[0][c] = Piece{Kind: backRank[c], Owner: Far}
		b[2][c] = Piece{Kind: Pawn, Owner: Far}
		b[6][c] = Piece{Kind: Pawn, Owner: Near}
		b[8][c] = Piece{Kind: backRank[c], Owner: Near}
	}
	b[1][1] = Piece{Kind: Rook, Owner: Far}
	b[1][7] = Piece{Kind: Bishop, Owner: Far}
	b[7][1] = Piece{Kind: Bishop, Owner: Near}
	b[7][7] = Piece{Kind: Rook, Owner: Near}
	return b
}
