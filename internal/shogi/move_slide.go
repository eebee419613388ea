package shogi

// 飞、角、香：沿射线走到己方子之前；遇到敌子可吃，然后停止。
func genRays(b *Board, from Square, owner Owner, dirs [][2]int, out *[]Square) {
	for _, d := range dirs {
		dr, dc := orient(d, owner)
		r, c := from.Row+dr, from.Col+dc
		for onBoard(r, c) {
			pc := b[r][c]
			if pc.IsEmpty() {
				*out = append(*out, Square{Row: r, Col: c})
			} else {
				if pc.Owner != owner {
					*out = append(*out, Square{Row: r, Col: c})
				}
				break
			}
			r += dr
			c += dc
		}
	}
}
