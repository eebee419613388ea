package main

import (
	"flag"
	"fmt"
	"os"

	"shogi/internal/engine"
	"shogi/internal/shogi"
)

func main() {
	sfen := flag.String("sfen", "startpos", "position to inspect")
	flag.Parse()

	pos, err := shogi.DecodeSFEN(*sfen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("SFEN:", shogi.EncodeSFEN(pos))
	fmt.Printf("Hash: %016x\n", pos.EnsureHash())
	fmt.Println("Side to move:", pos.SideToMove, "in check:", pos.InCheck())
	fmt.Println("Pseudo legal moves:", len(pos.PseudoMoves()))
	legal := pos.LegalMoves()
	fmt.Println("Legal moves:", len(legal))
	for _, m := range legal {
		fmt.Print(m, " ")
	}
	fmt.Println()
	fmt.Printf("Eval (side to move): %.1f\n", engine.Evaluate(pos.Board, pos.HandNear, pos.HandFar, pos.SideToMove))
}
