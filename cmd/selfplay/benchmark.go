package main

import (
	"fmt"

	"shogi/internal/engine"
	"shogi/internal/shogi"
)

type pairing struct {
	a, b engine.Level
}

// runBenchmark 每对难度下 games 局，先后手轮换，打印胜负表。
func runBenchmark(e *engine.Engine, games, maxMoves int) {
	levels := []engine.Level{engine.Easy, engine.Medium, engine.Hard}
	var pairs []pairing
	for i := range levels {
		for j := i + 1; j < len(levels); j++ {
			pairs = append(pairs, pairing{levels[i], levels[j]})
		}
	}

	for _, p := range pairs {
		aWins, bWins, draws, plies := 0, 0, 0, 0
		for g := 0; g < games; g++ {
			near, far := p.a, p.b
			if g%2 == 1 {
				near, far = p.b, p.a
			}
			res := playGame(e, near, far, maxMoves, false)
			plies += len(res.moves)

			var winner engine.Level
			switch res.winner {
			case shogi.Near:
				winner = near
			case shogi.Far:
				winner = far
			default:
				draws++
				continue
			}
			if winner == p.a {
				aWins++
			} else {
				bWins++
			}
		}
		fmt.Printf("%-6s vs %-6s  %3d : %3d  draws %3d  avg plies %.1f\n",
			p.a, p.b, aWins, bWins, draws, float64(plies)/float64(games))
	}
}
