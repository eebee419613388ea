package kif

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"shogi/internal/shogi"
)

var (
	ErrUnsupportedStart = errors.New("kif: unsupported starting position")
	ErrBadMove          = errors.New("kif: bad move")
)

var (
	// 手数 + 指手，消费时间一栏可有可无
	moveLineRe   = regexp.MustCompile(`^\s*(\d+)\s+(同[ 　]*\S+|\S+)`)
	fromSquareRe = regexp.MustCompile(`\((\d)(\d)\)`)
)

// Game 解析结果。Final 为最后一步之后的局面。
type Game struct {
	Sente    string
	Gote     string
	Start    *shogi.Position
	Moves    []shogi.Move
	Terminal string
	Final    *shogi.Position
}

// 名称按长度优先匹配
var pieceNames = []struct {
	name string
	kind shogi.PieceKind
}{
	{"成銀", shogi.ProSilver},
	{"成桂", shogi.ProKnight},
	{"成香", shogi.ProLance},
	{"全", shogi.ProSilver},
	{"圭", shogi.ProKnight},
	{"杏", shogi.ProLance},
	{"と", shogi.ProPawn},
	{"馬", shogi.Horse},
	{"龍", shogi.Dragon},
	{"竜", shogi.Dragon},
	{"王", shogi.King},
	{"玉", shogi.King},
	{"飛", shogi.Rook},
	{"角", shogi.Bishop},
	{"金", shogi.Gold},
	{"銀", shogi.Silver},
	{"桂", shogi.Knight},
	{"香", shogi.Lance},
	{"歩", shogi.Pawn},
}

func matchPiece(s string) (shogi.PieceKind, string, bool) {
	for _, p := range pieceNames {
		if strings.HasPrefix(s, p.name) {
			return p.kind, strings.TrimPrefix(s, p.name), true
		}
	}
	return shogi.KindNone, s, false
}

// Parse 读入 KIF 文本并在起始局面上逐步重放，遇到不合法着法即报错。
func Parse(text string) (*Game, error) {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	start, err := parseStart(lines)
	if err != nil {
		return nil, err
	}
	g := &Game{
		Sente: headerValue(lines, "先手"),
		Gote:  headerValue(lines, "後手"),
		Start: start,
	}

	pos := start
	var prevTo *shogi.Square
	for i, line := range lines {
		// 只读本谱，变化手顺之后的内容忽略
		if strings.HasPrefix(line, "変化：") {
			break
		}
		match := moveLineRe.FindStringSubmatch(line)
		if len(match) == 0 {
			continue
		}
		token := strings.TrimSpace(match[2])
		if isTerminalMove(token) {
			g.Terminal = token
			break
		}
		mv, err := parseMoveToken(pos, token, prevTo)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		if !mv.Drop {
			mv.Piece = pos.Board.At(mv.From)
		}
		if err := pos.CheckPromotion(mv); err != nil {
			return nil, fmt.Errorf("line %d: %w: %s: %v", i+1, ErrBadMove, token, err)
		}
		if !pos.IsValid(mv) {
			return nil, fmt.Errorf("line %d: %w: %s", i+1, ErrBadMove, token)
		}
		next, ok := pos.ApplyMove(mv)
		if !ok {
			return nil, fmt.Errorf("line %d: %w: %s", i+1, ErrBadMove, token)
		}
		g.Moves = append(g.Moves, mv)
		pos = next
		to := mv.To
		prevTo = &to
	}
	g.Final = pos
	return g, nil
}

func parseMoveToken(pos *shogi.Position, token string, prevTo *shogi.Square) (shogi.Move, error) {
	work := strings.TrimSpace(token)
	var to shogi.Square
	if strings.HasPrefix(work, "同") {
		if prevTo == nil {
			return shogi.Move{}, fmt.Errorf("%w: %s without previous move", ErrBadMove, token)
		}
		to = *prevTo
		work = strings.TrimLeft(strings.TrimPrefix(work, "同"), " 　")
	} else {
		runes := []rune(work)
		if len(runes) < 3 {
			return shogi.Move{}, fmt.Errorf("%w: %s", ErrBadMove, token)
		}
		file, ok1 := parseFileRune(runes[0])
		rank, ok2 := parseRankRune(runes[1])
		if !ok1 || !ok2 {
			return shogi.Move{}, fmt.Errorf("%w: bad destination in %s", ErrBadMove, token)
		}
		to = shogi.Square{Row: rank - 1, Col: shogi.Cols - file}
		work = string(runes[2:])
	}

	var from shogi.Square
	hasFrom := false
	if m := fromSquareRe.FindStringSubmatch(work); len(m) == 3 {
		file, rank := int(m[1][0]-'0'), int(m[2][0]-'0')
		if file < 1 || rank < 1 {
			return shogi.Move{}, fmt.Errorf("%w: bad source in %s", ErrBadMove, token)
		}
		from = shogi.Square{Row: rank - 1, Col: shogi.Cols - file}
		hasFrom = true
		work = fromSquareRe.ReplaceAllString(work, "")
	}

	kind, rest, ok := matchPiece(strings.TrimSpace(work))
	if !ok {
		return shogi.Move{}, fmt.Errorf("%w: unknown piece in %s", ErrBadMove, token)
	}
	rest = strings.TrimSpace(rest)

	switch {
	case rest == "打":
		if !kind.Droppable() {
			return shogi.Move{}, fmt.Errorf("%w: cannot drop %s", ErrBadMove, token)
		}
		return shogi.Move{
			To:    to,
			Drop:  true,
			Piece: shogi.Piece{Kind: kind, Owner: pos.SideToMove},
		}, nil
	case !hasFrom:
		// 省略来源的写法（如 "５五角"）只在打入唯一时成立
		if pos.Hand(pos.SideToMove).Count(kind) > 0 && pos.Board.At(to).IsEmpty() && rest == "" {
			return shogi.Move{To: to, Drop: true, Piece: shogi.Piece{Kind: kind, Owner: pos.SideToMove}}, nil
		}
		return shogi.Move{}, fmt.Errorf("%w: missing source square in %s", ErrBadMove, token)
	}

	mv := shogi.Move{From: from, To: to}
	switch rest {
	case "成":
		mv.Promote = true
	case "", "不成":
	default:
		return shogi.Move{}, fmt.Errorf("%w: %s", ErrBadMove, token)
	}
	if pc := pos.Board.At(from); pc.Kind != kind {
		return shogi.Move{}, fmt.Errorf("%w: %s does not match board", ErrBadMove, token)
	}
	return mv, nil
}

func isTerminalMove(token string) bool {
	switch token {
	case "投了", "中断", "持将棋", "千日手", "詰み", "切れ負け", "反則勝ち", "反則負け", "入玉勝ち", "勝ち宣言":
		return true
	}
	return false
}

func parseFileRune(r rune) (int, bool) {
	if r >= '1' && r <= '9' {
		return int(r - '0'), true
	}
	if r >= '１' && r <= '９' {
		return int(r-'１') + 1, true
	}
	return 0, false
}

func parseRankRune(r rune) (int, bool) {
	for i, k := range rankKanji {
		if i > 0 && []rune(k)[0] == r {
			return i, true
		}
	}
	if r >= '1' && r <= '9' {
		return int(r - '0'), true
	}
	return 0, false
}

func headerValue(lines []string, key string) string {
	prefix := key + "："
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}

// parseStart 平手，或 後手の持駒/盤面図/先手の持駒 的局面。
func parseStart(lines []string) (*shogi.Position, error) {
	boardAt := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "|") {
			boardAt = i
			break
		}
	}
	if boardAt < 0 {
		if h := headerValue(lines, "手合割"); h != "" && h != "平手" {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedStart, h)
		}
		return shogi.NewInitialPosition(), nil
	}
	if boardAt+shogi.Rows > len(lines) {
		return nil, ErrUnsupportedStart
	}

	pos := &shogi.Position{SideToMove: shogi.Near, Ply: 1}
	for r := 0; r < shogi.Rows; r++ {
		runes := []rune(strings.TrimPrefix(lines[boardAt+r], "|"))
		if len(runes) < shogi.Cols*2 {
			return nil, fmt.Errorf("%w: short board row %d", ErrUnsupportedStart, r+1)
		}
		for c := 0; c < shogi.Cols; c++ {
			mark, name := runes[c*2], string(runes[c*2+1])
			if name == "・" {
				continue
			}
			kind, _, ok := matchPiece(name)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrUnsupportedStart, name)
			}
			owner := shogi.Near
			if mark == 'v' {
				owner = shogi.Far
			}
			pos.Board[r][c] = shogi.Piece{Kind: kind, Owner: owner}
		}
	}

	var err error
	if pos.HandNear, err = parseHand(headerValue(lines, "先手の持駒")); err != nil {
		return nil, err
	}
	if pos.HandFar, err = parseHand(headerValue(lines, "後手の持駒")); err != nil {
		return nil, err
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "後手番" {
			pos.SideToMove = shogi.Far
		}
	}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}

var kanjiCounts = map[string]int{
	"": 1, "二": 2, "三": 3, "四": 4, "五": 5, "六": 6, "七": 7, "八": 8, "九": 9,
	"十": 10, "十一": 11, "十二": 12, "十三": 13, "十四": 14, "十五": 15, "十六": 16, "十七": 17, "十八": 18,
}

func parseHand(s string) (shogi.Hand, error) {
	var h shogi.Hand
	s = strings.TrimSpace(s)
	if s == "" || s == "なし" {
		return h, nil
	}
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == '　' || r == ' ' }) {
		kind, rest, ok := matchPiece(f)
		if !ok || !kind.Droppable() {
			return h, fmt.Errorf("%w: bad hand entry %q", ErrUnsupportedStart, f)
		}
		n, ok := kanjiCounts[rest]
		if !ok {
			return h, fmt.Errorf("%w: bad hand count %q", ErrUnsupportedStart, f)
		}
		h = h.With(kind, h.Count(kind)+n)
	}
	return h, nil
}
