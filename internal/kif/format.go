package kif

import (
	"fmt"
	"time"

	"shogi/internal/shogi"
)

var fwDigits = [...]string{"０", "１", "２", "３", "４", "５", "６", "７", "８", "９"}

var rankKanji = [...]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

var pieceJP = map[shogi.PieceKind]string{
	shogi.Pawn:      "歩",
	shogi.Lance:     "香",
	shogi.Knight:    "桂",
	shogi.Silver:    "銀",
	shogi.Gold:      "金",
	shogi.Bishop:    "角",
	shogi.Rook:      "飛",
	shogi.King:      "玉",
	shogi.ProPawn:   "と",
	shogi.ProLance:  "成香",
	shogi.ProKnight: "成桂",
	shogi.ProSilver: "成銀",
	shogi.Horse:     "馬",
	shogi.Dragon:    "龍",
}

// 盤面図用的单字名
var pieceBOD = map[shogi.PieceKind]string{
	shogi.Pawn:      "歩",
	shogi.Lance:     "香",
	shogi.Knight:    "桂",
	shogi.Silver:    "銀",
	shogi.Gold:      "金",
	shogi.Bishop:    "角",
	shogi.Rook:      "飛",
	shogi.King:      "玉",
	shogi.ProPawn:   "と",
	shogi.ProLance:  "杏",
	shogi.ProKnight: "圭",
	shogi.ProSilver: "全",
	shogi.Horse:     "馬",
	shogi.Dragon:    "龍",
}

// NowFunc 测试时替换，固定开始时间。
var NowFunc = time.Now

// 筋 = 9-col，段 = row+1
func fileRank(sq shogi.Square) (int, int) {
	return shogi.Cols - sq.Col, sq.Row + 1
}

func SquareToKIF(sq shogi.Square) string {
	f, r := fileRank(sq)
	return fwDigits[f] + rankKanji[r]
}

func squareToParen(sq shogi.Square) string {
	f, r := fileRank(sq)
	return fmt.Sprintf("(%d%d)", f, r)
}

func countKanji(n int) string {
	inv := map[int]string{
		1: "", 2: "二", 3: "三", 4: "四", 5: "五", 6: "六", 7: "七", 8: "八", 9: "九",
		10: "十", 11: "十一", 12: "十二", 13: "十三", 14: "十四", 15: "十五", 16: "十六", 17: "十七", 18: "十八",
	}
	if v, ok := inv[n]; ok {
		return v
	}
	return fmt.Sprintf("%d", n)
}

// handToKIF 例如 "飛　歩三　"，空为 "なし"。
func handToKIF(h shogi.Hand) string {
	order := []shogi.PieceKind{shogi.Rook, shogi.Bishop, shogi.Gold, shogi.Silver, shogi.Knight, shogi.Lance, shogi.Pawn}
	out := ""
	for _, k := range order {
		n := h.Count(k)
		if n <= 0 {
			continue
		}
		out += pieceJP[k] + countKanji(n) + "　"
	}
	if out == "" {
		return "なし"
	}
	return out
}

func formatClock(per, total time.Duration) string {
	ps := int(per.Seconds())
	ts := int(total.Seconds())
	return fmt.Sprintf("(%2d:%02d/%02d:%02d:%02d)", ps/60, ps%60, ts/3600, (ts/60)%60, ts%60)
}
