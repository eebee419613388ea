package shogi

// Generate 返回 from 上那枚棋子（必须属于 mover）的伪合法落点，不考虑自将。
// hand 目前不影响盘上走子，保留参数是为了与打入校验共用调用方式。
func Generate(b Board, from Square, hand Hand, mover Owner) []Square {
	if !from.InBounds() {
		return nil
	}
	pc := b[from.Row][from.Col]
	if pc.IsEmpty() || pc.Owner != mover {
		return nil
	}
	var out []Square
	genPieceMoves(&b, from, pc, &out)
	return out
}

func genPieceMoves(b *Board, from Square, pc Piece, out *[]Square) {
	owner := pc.Owner
	switch pc.Kind {
	case King:
		genSteps(b, from, owner, kingSteps, out)
	case Gold, ProSilver, ProKnight, ProLance, ProPawn:
		genSteps(b, from, owner, goldSteps, out)
	case Silver:
		genSteps(b, from, owner, silverSteps, out)
	case Knight:
		genSteps(b, from, owner, knightJumps, out)
	case Rook:
		genRays(b, from, owner, rookDirs, out)
	case Dragon:
		genRays(b, from, owner, rookDirs, out)
		genSteps(b, from, owner, bishopDirs, out)
	case Bishop:
		genRays(b, from, owner, bishopDirs, out)
	case Horse:
		genRays(b, from, owner, bishopDirs, out)
		genSteps(b, from, owner, rookDirs, out)
	case Lance:
		genRays(b, from, owner, lanceDirs, out)
	case Pawn:
		genSteps(b, from, owner, pawnSteps, out)
	}
}

// dropDeadRank 打入后再也动不了的段：步、香在最远一段，桂在最远两段。
func dropDeadRank(k PieceKind, owner Owner, row int) bool {
	depth := depthFromFarthest(owner, row)
	switch k {
	case Pawn, Lance:
		return depth < 1
	case Knight:
		return depth < 2
	}
	return false
}

// PseudoMoves 候选着法：先逐格扫描盘上棋子（row 优先），每个落点展开为
// 成/不成变体（必须成时只有成）；再按 HandKinds 顺序枚举打入，只过滤死段。
// 不检查自将、二步和打步诘。
func PseudoMoves(b Board, hand Hand, mover Owner) []Move {
	var moves []Move
	var dests []Square
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b[r][c]
			if pc.IsEmpty() || pc.Owner != mover {
				continue
			}
			from := Square{Row: r, Col: c}
			dests = dests[:0]
			genPieceMoves(&b, from, pc, &dests)
			for _, to := range dests {
				m := Move{From: from, To: to, Piece: pc}
				switch {
				case MustPromote(pc, to, mover):
					m.Promote = true
					moves = append(moves, m)
				case CanPromote(pc, from, to, mover):
					// 成在前，不成在后
					m.Promote = true
					moves = append(moves, m)
					m.Promote = false
					moves = append(moves, m)
				default:
					moves = append(moves, m)
				}
			}
		}
	}
	for _, k := range HandKinds {
		if hand.Count(k) <= 0 {
			continue
		}
		for r := 0; r < Rows; r++ {
			if dropDeadRank(k, mover, r) {
				continue
			}
			for c := 0; c < Cols; c++ {
				if !b[r][c].IsEmpty() {
					continue
				}
				moves = append(moves, Move{
					To:    Square{Row: r, Col: c},
					Drop:  true,
					Piece: Piece{Kind: k, Owner: mover},
				})
			}
		}
	}
	return moves
}

// LegalMoves 是 PseudoMoves 经 IsValid 过滤后的结果。
func LegalMoves(b Board, handNear, handFar Hand, mover Owner) []Move {
	hand := handNear
	if mover == Far {
		hand = handFar
	}
	pseudo := PseudoMoves(b, hand, mover)
	out := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if IsValid(b, m, handNear, handFar, mover) {
			out = append(out, m)
		}
	}
	return out
}
