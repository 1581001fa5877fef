// Command scoredump prints every legal move of a position with its score terms.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"chess-bot/boards"
	"chess-bot/engine"
)

func main() {
	fen := flag.String("fen", boards.StartFEN, "position to score")
	backendName := flag.String("backend", string(boards.Dragontooth), "move generator: dragontooth or goose")
	seed := flag.Uint64("seed", 1, "seed for the random default move")
	flag.Parse()

	backend, err := boards.ParseBackend(*backendName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	board, err := boards.New(backend, *fen)
	if err != nil {
		log.Fatalf("position: %v", err)
	}

	danger := engine.ScanDanger(board)
	if danger.Found {
		fmt.Printf("danger: %s %s on %s (%d)\n", danger.Piece.Color, danger.Piece.Kind, danger.Piece.Square, danger.Value())
	} else {
		fmt.Println("danger: none")
	}

	type row struct {
		m engine.Move
		b engine.Breakdown
	}
	moves := board.LegalMoves()
	rows := make([]row, len(moves))
	for i, m := range moves {
		rows[i] = row{m, engine.Explain(board, m, danger)}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].b.Score().Value() > rows[j].b.Score().Value() })
	for _, r := range rows {
		fmt.Printf("%-6s %s\n", r.m, r.b)
	}

	for _, policy := range []engine.Policy{engine.Greedy, engine.Exchange} {
		m, err := engine.NewBot(engine.WithPolicy(policy), engine.WithSeed(*seed)).Think(board)
		if err != nil {
			log.Fatalf("%s: %v", policy, err)
		}
		fmt.Printf("%s picks %s\n", policy, m)
	}
}
