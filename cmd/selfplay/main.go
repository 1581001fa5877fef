// Command selfplay plays a match between two bot policies.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"chess-bot/boards"
	"chess-bot/engine"
	"chess-bot/selfplay"
	"chess-bot/storage"
)

func main() {
	first := flag.String("first", "greedy", "policy of the first player")
	second := flag.String("second", "exchange", "policy of the second player")
	games := flag.Int("games", 10, "number of games; colours alternate")
	workers := flag.Int("workers", 4, "games played in parallel")
	maxPlies := flag.Int("maxplies", 200, "adjudicate a draw after this many plies")
	seed := flag.Uint64("seed", 1, "base seed for the bots")
	backendName := flag.String("backend", string(boards.Dragontooth), "move generator: dragontooth or goose")
	fen := flag.String("fen", boards.StartFEN, "start position")
	dbDir := flag.String("db", "", "badger directory for results (empty keeps them in memory)")
	pgn := flag.Bool("pgn", false, "print the PGN of every stored game")
	flag.Parse()

	p1, err := engine.ParsePolicy(*first)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	p2, err := engine.ParsePolicy(*second)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	backend, err := boards.ParseBackend(*backendName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	db, err := storage.Open(*dbDir)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := selfplay.Config{
		First:    selfplay.Player{Policy: p1},
		Second:   selfplay.Player{Policy: p2},
		Games:    *games,
		Workers:  *workers,
		MaxPlies: *maxPlies,
		Seed:     *seed,
		Backend:  backend,
		StartFEN: *fen,
	}
	sum, err := selfplay.Run(ctx, cfg, db)
	if err != nil {
		log.Printf("match aborted: %v", err)
		return
	}
	fmt.Println(sum)

	if *pgn {
		if err := db.Games(func(rec *storage.GameRecord) bool {
			fmt.Printf("%s\n\n", rec.PGN)
			return true
		}); err != nil {
			log.Printf("listing games: %v", err)
		}
	}
	for name := range sum.Wins {
		stats, err := db.LoadStats(name)
		if err != nil {
			log.Printf("stats %s: %v", name, err)
			continue
		}
		fmt.Printf("%s: %d games, %d wins, %d losses, %d draws (stored)\n", stats.Name, stats.Games, stats.Wins, stats.Losses, stats.Draws)
	}
}
