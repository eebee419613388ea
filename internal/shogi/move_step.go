package shogi

// 方向表均以 Near 视角书写（前方为 row-1），Far 只翻转 dr。
// 表内顺序决定走法输出顺序。
var (
	kingSteps = [][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	goldSteps = [][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, 0},
	}
	silverSteps = [][2]int{
		{-1, -1}, {-1, 0}, {-1, 1},
		{1, -1}, {1, 1},
	}
	knightJumps = [][2]int{{-2, -1}, {-2, 1}}
	pawnSteps   = [][2]int{{-1, 0}}

	rookDirs   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	lanceDirs  = [][2]int{{-1, 0}}
)

func orient(d [2]int, owner Owner) (int, int) {
	if owner == Far {
		return -d[0], d[1]
	}
	return d[0], d[1]
}

// 单步走子（桂的跳跃也走这里，不存在蹩脚）：落点在盘内且不是己方子即可。
func genSteps(b *Board, from Square, owner Owner, dirs [][2]int, out *[]Square) {
	for _, d := range dirs {
		dr, dc := orient(d, owner)
		r, c := from.Row+dr, from.Col+dc
		if !onBoard(r, c) {
			continue
		}
		if pc := b[r][c]; !pc.IsEmpty() && pc.Owner == owner {
			continue
		}
		*out = append(*out, Square{Row: r, Col: c})
	}
}
