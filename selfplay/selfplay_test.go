package selfplay

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chess-bot/boards"
	"chess-bot/engine"
	"chess-bot/storage"
)

func TestPlayGameMateInOne(t *testing.T) {
	for _, backend := range boards.Backends {
		rec, err := PlayGame(context.Background(),
			Player{Name: "a", Policy: engine.Greedy},
			Player{Name: "b", Policy: engine.Greedy},
			backend, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", 50, 1)
		if err != nil {
			t.Fatalf("%s: %v", backend, err)
		}
		if diff := cmp.Diff([]string{"a1a8"}, rec.Moves); diff != "" {
			t.Fatalf("%s moves mismatch (-want +got):\n%s", backend, diff)
		}
		if rec.Result != "1-0" || rec.Method != "Checkmate" {
			t.Fatalf("%s: got %s by %s", backend, rec.Result, rec.Method)
		}
		if !strings.Contains(rec.PGN, `[White "a"]`) {
			t.Fatalf("%s: PGN lacks White tag:\n%s", backend, rec.PGN)
		}
	}
}

func TestPlayGameAdjudicatesAtMaxPlies(t *testing.T) {
	rec, err := PlayGame(context.Background(),
		Player{Name: "a", Policy: engine.Greedy},
		Player{Name: "b", Policy: engine.Exchange},
		boards.Goose, boards.StartFEN, 4, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Moves) != 4 || rec.Result != "1/2-1/2" || rec.Method != "DrawOffer" {
		t.Fatalf("got %d moves, %s by %s", len(rec.Moves), rec.Result, rec.Method)
	}
}

func TestRunRecordsEveryGame(t *testing.T) {
	db, err := storage.Open("")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	cfg := Config{
		First:    Player{Policy: engine.Greedy},
		Second:   Player{Policy: engine.Exchange},
		Games:    4,
		Workers:  2,
		MaxPlies: 40,
		Seed:     3,
	}
	sum, err := Run(context.Background(), cfg, db)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Games != 4 || sum.Wins["greedy"]+sum.Wins["exchange"]+sum.Draws+sum.Unfinished != 4 {
		t.Fatalf("summary does not add up: %s", sum)
	}

	var whites []string
	if err := db.Games(func(rec *storage.GameRecord) bool {
		whites = append(whites, rec.White)
		return true
	}); err != nil {
		t.Fatal(err)
	}
	if len(whites) != 4 {
		t.Fatalf("stored %d games", len(whites))
	}
	for _, name := range []string{"greedy", "exchange"} {
		stats, err := db.LoadStats(name)
		if err != nil {
			t.Fatal(err)
		}
		if stats.Games != 4 || stats.AsWhite != 2 {
			t.Errorf("%s: %+v", name, stats)
		}
	}
}

func TestRunSamePolicyGetsDistinctNames(t *testing.T) {
	cfg := Config{First: Player{Policy: engine.Greedy}, Second: Player{Policy: engine.Greedy}}.withDefaults()
	if cfg.First.Name == cfg.Second.Name {
		t.Fatalf("both players named %q", cfg.First.Name)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Games: 2}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
