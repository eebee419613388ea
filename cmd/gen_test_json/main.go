package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"shogi/internal/engine"
	"shogi/internal/shogi"
)

// TestCase 一个局面及其候选/合法着法，给前端或其他实现做对照。
type TestCase struct {
	SFEN       string   `json:"sfen"`
	InCheck    bool     `json:"in_check"`
	Candidates []string `json:"candidates"`
	Legal      []string `json:"legal"`
}

func usiList(ms []shogi.Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.String()
	}
	return out
}

func main() {
	numGames := flag.Int("games", 10, "number of random games")
	maxMoves := flag.Int("maxmoves", 200, "max plies per game")
	seed := flag.Int64("seed", 1, "random seed")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	flag.Parse()

	rng := engine.NewRand(*seed)
	var testCases []TestCase

	for g := 0; g < *numGames; g++ {
		pos := shogi.NewInitialPosition()
		for ply := 0; ply < *maxMoves; ply++ {
			legal := pos.LegalMoves()
			testCases = append(testCases, TestCase{
				SFEN:       shogi.EncodeSFEN(pos),
				InCheck:    pos.InCheck(),
				Candidates: usiList(pos.PseudoMoves()),
				Legal:      usiList(legal),
			})
			if len(legal) == 0 {
				break
			}

			// 随机选一步合法着法
			next, ok := pos.ApplyMove(legal[rng.Intn(len(legal))])
			if !ok {
				break
			}
			pos = next
		}
	}

	data, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
