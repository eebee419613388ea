package shogi

// Owner 对局双方。Near 为先手（棋盘下方，向 row 0 前进），Far 为后手。
type Owner int8

const (
	NoOwner Owner = 0
	Near    Owner = 1
	Far     Owner = 2
)

func (o Owner) Opponent() Owner {
	switch o {
	case Near:
		return Far
	case Far:
		return Near
	}
	return NoOwner
}

func (o Owner) String() string {
	switch o {
	case Near:
		return "near"
	case Far:
		return "far"
	}
	return "none"
}

type PieceKind int8

const (
	KindNone PieceKind = iota
	Pawn               // 歩
	Lance              // 香
	Knight             // 桂
	Silver             // 銀
	Gold               // 金
	Bishop             // 角
	Rook               // 飛
	King               // 玉
	ProPawn            // と
	ProLance           // 成香
	ProKnight          // 成桂
	ProSilver          // 成銀
	Horse              // 馬（角成）
	Dragon             // 龍（飛成）

	NumKinds = iota
)

// HandKinds 持驹的固定顺序。候选着法的枚举顺序依赖它，不要调整。
var HandKinds = [NumHandKinds]PieceKind{Pawn, Lance, Knight, Silver, Gold, Bishop, Rook}

const NumHandKinds = 7

// PromotedFormOf 返回基础驹的成驹；玉、金以及已成的驹没有成驹。
func PromotedFormOf(k PieceKind) (PieceKind, bool) {
	switch k {
	case Pawn:
		return ProPawn, true
	case Lance:
		return ProLance, true
	case Knight:
		return ProKnight, true
	case Silver:
		return ProSilver, true
	case Bishop:
		return Horse, true
	case Rook:
		return Dragon, true
	}
	return k, false
}

// BaseFormOf 成驹还原为基础驹（被吃进持驹时用）。
func BaseFormOf(k PieceKind) PieceKind {
	switch k {
	case ProPawn:
		return Pawn
	case ProLance:
		return Lance
	case ProKnight:
		return Knight
	case ProSilver:
		return Silver
	case Horse:
		return Bishop
	case Dragon:
		return Rook
	}
	return k
}

func (k PieceKind) Promoted() bool {
	return k >= ProPawn && k <= Dragon
}

// Droppable 能作为持驹打入的驹种（除玉外的基础驹）。
func (k PieceKind) Droppable() bool {
	return k >= Pawn && k <= Rook
}

var kindNames = [NumKinds]string{
	KindNone:  "none",
	Pawn:      "pawn",
	Lance:     "lance",
	Knight:    "knight",
	Silver:    "silver",
	Gold:      "gold",
	Bishop:    "bishop",
	Rook:      "rook",
	King:      "king",
	ProPawn:   "pro_pawn",
	ProLance:  "pro_lance",
	ProKnight: "pro_knight",
	ProSilver: "pro_silver",
	Horse:     "horse",
	Dragon:    "dragon",
}

func (k PieceKind) String() string {
	if k < 0 || int(k) >= NumKinds {
		return "invalid"
	}
	return kindNames[k]
}

// ParseKind 是 String 的逆操作。
func ParseKind(s string) (PieceKind, bool) {
	for k, name := range kindNames {
		if k != int(KindNone) && name == s {
			return PieceKind(k), true
		}
	}
	return KindNone, false
}

// Piece 零值表示空格。
type Piece struct {
	Kind  PieceKind
	Owner Owner
}

func (p Piece) IsEmpty() bool  { return p.Kind == KindNone }
func (p Piece) Promoted() bool { return p.Kind.Promoted() }

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < Rows && s.Col >= 0 && s.Col < Cols
}

// Move 一步棋。Drop 为 true 时 From 无意义，Piece 为要打入的基础驹。
type Move struct {
	From    Square
	To      Square
	Drop    bool
	Piece   Piece
	Promote bool
}
