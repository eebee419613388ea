package shogi

import (
	"errors"
	"strings"
	"unicode"
)

var ErrInvalidMove = errors.New("invalid move notation")

// USI 坐标：筋 = 9-col，段 = 'a'+row。
func (s Square) String() string {
	if !s.InBounds() {
		return "--"
	}
	return string([]byte{byte('0' + Cols - s.Col), byte('a' + s.Row)})
}

func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, ErrInvalidMove
	}
	file := int(s[0] - '0')
	rank := int(s[1] - 'a')
	sq := Square{Row: rank, Col: Cols - file}
	if file < 1 || file > 9 || !sq.InBounds() {
		return Square{}, ErrInvalidMove
	}
	return sq, nil
}

// String 输出 USI 记法：7g7f、2b3c+、P*5e。
func (m Move) String() string {
	if m.Drop {
		letter := kindToLetter[BaseFormOf(m.Piece.Kind)]
		return string(unicode.ToUpper(rune(letter))) + "*" + m.To.String()
	}
	s := m.From.String() + m.To.String()
	if m.Promote {
		s += "+"
	}
	return s
}

// ParseMove 解析 USI 记法，Piece 从棋盘（或打入的驹种）补全。不检查合法性。
func ParseMove(b Board, s string, mover Owner) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[1] == '*' {
		k, ok := letterToKind[unicode.ToLower(rune(s[0]))]
		if !ok || !k.Droppable() {
			return Move{}, ErrInvalidMove
		}
		to, err := ParseSquare(s[2:])
		if err != nil {
			return Move{}, err
		}
		return Move{To: to, Drop: true, Piece: Piece{Kind: k, Owner: mover}}, nil
	}
	promote := false
	if strings.HasSuffix(s, "+") {
		promote = true
		s = s[:len(s)-1]
	}
	if len(s) != 4 {
		return Move{}, ErrInvalidMove
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to, Piece: b[from.Row][from.Col], Promote: promote}, nil
}
