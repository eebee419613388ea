package shogi

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// StartSFEN 平手初始局面
const StartSFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

var ErrInvalidSFEN = errors.New("invalid SFEN")

var kindToLetter = map[PieceKind]byte{
	Pawn: 'p', Lance: 'l', Knight: 'n', Silver: 's', Gold: 'g', Bishop: 'b', Rook: 'r', King: 'k',
}

var letterToKind = map[rune]PieceKind{
	'p': Pawn, 'l': Lance, 'n': Knight, 's': Silver, 'g': Gold, 'b': Bishop, 'r': Rook, 'k': King,
}

// SFEN 持驹按 飞角金银桂香步 的习惯顺序输出
var sfenHandOrder = [...]PieceKind{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

func pieceToSFEN(pc Piece) string {
	base := BaseFormOf(pc.Kind)
	ch := kindToLetter[base]
	if pc.Owner == Near {
		ch = byte(unicode.ToUpper(rune(ch)))
	}
	if pc.Promoted() {
		return "+" + string(ch)
	}
	return string(ch)
}

// EncodeSFEN: 棋盘从 row 0 写到 row 8，每段从 col 0 写到 col 8；大写为先手。
func EncodeSFEN(p *Position) string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board[r][c]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(pieceToSFEN(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Far {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	hands := encodeHand(p.HandNear, Near) + encodeHand(p.HandFar, Far)
	if hands == "" {
		hands = "-"
	}
	sb.WriteString(hands)
	sb.WriteByte(' ')
	ply := p.Ply
	if ply < 1 {
		ply = 1
	}
	sb.WriteString(strconv.Itoa(ply))
	return sb.String()
}

func encodeHand(h Hand, owner Owner) string {
	var sb strings.Builder
	for _, k := range sfenHandOrder {
		n := h.Count(k)
		if n == 0 {
			continue
		}
		if n > 1 {
			sb.WriteString(strconv.Itoa(n))
		}
		sb.WriteString(pieceToSFEN(Piece{Kind: k, Owner: owner}))
	}
	return sb.String()
}

// DecodeSFEN 解析 SFEN；也接受 "startpos"。手数缺省为 1。
func DecodeSFEN(s string) (*Position, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "sfen ")
	if s == "startpos" {
		return NewInitialPosition(), nil
	}
	parts := strings.Fields(s)
	if len(parts) < 3 {
		return nil, ErrInvalidSFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, ErrInvalidSFEN
	}
	var b Board
	for r := 0; r < Rows; r++ {
		c := 0
		promoted := false
		for _, ch := range rows[r] {
			if c >= Cols {
				return nil, ErrInvalidSFEN
			}
			if ch == '+' {
				if promoted {
					return nil, ErrInvalidSFEN
				}
				promoted = true
				continue
			}
			if ch >= '1' && ch <= '9' {
				if promoted {
					return nil, ErrInvalidSFEN
				}
				c += int(ch - '0')
				continue
			}
			k, ok := letterToKind[unicode.ToLower(ch)]
			if !ok {
				return nil, ErrInvalidSFEN
			}
			if promoted {
				pk, ok := PromotedFormOf(k)
				if !ok {
					return nil, ErrInvalidSFEN
				}
				k = pk
				promoted = false
			}
			owner := Far
			if unicode.IsUpper(ch) {
				owner = Near
			}
			b[r][c] = Piece{Kind: k, Owner: owner}
			c++
		}
		if c != Cols || promoted {
			return nil, ErrInvalidSFEN
		}
	}

	var side Owner
	switch parts[1] {
	case "b":
		side = Near
	case "w":
		side = Far
	default:
		return nil, ErrInvalidSFEN
	}

	var hn, hf Hand
	if parts[2] != "-" {
		n := 0
		for _, ch := range parts[2] {
			if ch >= '0' && ch <= '9' {
				n = n*10 + int(ch-'0')
				continue
			}
			k, ok := letterToKind[unicode.ToLower(ch)]
			if !ok || !k.Droppable() {
				return nil, ErrInvalidSFEN
			}
			if n == 0 {
				n = 1
			}
			if unicode.IsUpper(ch) {
				hn.add(k, n)
			} else {
				hf.add(k, n)
			}
			n = 0
		}
		if n != 0 {
			return nil, ErrInvalidSFEN
		}
	}

	ply := 1
	if len(parts) >= 4 {
		v, err := strconv.Atoi(parts[3])
		if err != nil || v < 1 {
			return nil, ErrInvalidSFEN
		}
		ply = v
	}

	pos := &Position{
		Board:      b,
		HandNear:   hn,
		HandFar:    hf,
		SideToMove: side,
		Ply:        ply,
	}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}
