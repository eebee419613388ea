package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"shogi/internal/engine"
	"shogi/internal/kif"
	"shogi/internal/shogi"
)

func main() {
	nearLevel := flag.String("near", "hard", "level of the near (sente) side")
	farLevel := flag.String("far", "medium", "level of the far (gote) side")
	maxMoves := flag.Int("maxmoves", 300, "max plies per game")
	seed := flag.Int64("seed", 0, "random seed, 0 = time based")
	strict := flag.Bool("strict", false, "filter CPU candidates through the full legality check")
	kifDir := flag.String("kif", "", "write each game as KIF into this directory")
	bench := flag.Int("bench", 0, "play a round robin of N games per pairing instead of a single game")
	flag.Parse()

	e := engine.NewEngine(*seed)
	e.Strict = *strict

	if *bench > 0 {
		runBenchmark(e, *bench, *maxMoves)
		return
	}

	near, err := engine.ParseLevel(*nearLevel)
	if err != nil {
		log.Fatal(err)
	}
	far, err := engine.ParseLevel(*farLevel)
	if err != nil {
		log.Fatal(err)
	}

	res := playGame(e, near, far, *maxMoves, true)
	fmt.Printf("Result: %s (%s) after %d plies\n", res.winner, res.reason, len(res.moves))

	if *kifDir != "" {
		if err := os.MkdirAll(*kifDir, 0o755); err != nil {
			log.Fatal(err)
		}
		rec := kif.Record{
			Sente:  "CPU(" + near.String() + ")",
			Gote:   "CPU(" + far.String() + ")",
			Moves:  res.moves,
			Result: kif.Result{Winner: res.winner, Reason: res.reason},
		}
		data, err := kif.EncodeShiftJIS(kif.Write(rec))
		if err != nil {
			log.Fatal(err)
		}
		path := filepath.Join(*kifDir, fmt.Sprintf("selfplay-%s-%s.kif", near, far))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Println("KIF written to", path)
	}
}

type gameResult struct {
	winner shogi.Owner
	reason string
	moves  []shogi.Move
}

// playGame 双方都由引擎走。吃到玉、无子可走、千日手或到步数上限时结束。
func playGame(e *engine.Engine, near, far engine.Level, maxMoves int, verbose bool) gameResult {
	pos := shogi.NewInitialPosition()
	seen := map[uint64]int{pos.EnsureHash(): 1}
	var moves []shogi.Move

	for i := 0; i < maxMoves; i++ {
		level := near
		if pos.SideToMove == shogi.Far {
			level = far
		}
		res := e.Search(pos, level)
		if !res.OK {
			return gameResult{winner: pos.SideToMove.Opponent(), reason: kif.ReasonNoMoves, moves: moves}
		}
		if verbose {
			fmt.Printf("%3d %-5s %-6s %-7s score=%8.1f cands=%3d nodes=%6d time=%v\n",
				i+1, pos.SideToMove, level, res.BestMove, res.Score, res.Candidates, res.Nodes, res.TimeUsed)
		}

		next, ok := pos.ApplyMove(res.BestMove)
		if !ok {
			log.Printf("engine produced an unplayable move %s", res.BestMove)
			return gameResult{winner: pos.SideToMove.Opponent(), reason: kif.ReasonAbort, moves: moves}
		}
		moves = append(moves, res.BestMove)
		pos = next

		switch {
		case !pos.KingExists(shogi.Near):
			return gameResult{winner: shogi.Far, reason: kif.ReasonKingTaken, moves: moves}
		case !pos.KingExists(shogi.Far):
			return gameResult{winner: shogi.Near, reason: kif.ReasonKingTaken, moves: moves}
		}
		seen[pos.EnsureHash()]++
		if seen[pos.Hash] >= 4 {
			return gameResult{reason: kif.ReasonRepetition, moves: moves}
		}
	}
	return gameResult{reason: kif.ReasonAbort, moves: moves}
}
