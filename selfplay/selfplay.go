// Package selfplay runs bot-versus-bot matches. Moves come from engine.Bot on a
// boards.Board; notnil/chess follows along to adjudicate results and write PGN.
package selfplay

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/notnil/chess"
	"golang.org/x/sync/errgroup"

	"chess-bot/boards"
	"chess-bot/engine"
	"chess-bot/storage"
)

var ErrMoveRejected = errors.New("selfplay: move rejected by adjudicator")

type Player struct {
	Name   string
	Policy engine.Policy
}

type Config struct {
	First, Second Player
	Games         int
	Workers       int
	// MaxPlies ends a game as a draw once this many plies were played.
	MaxPlies int
	Seed     uint64
	Backend  boards.Backend
	StartFEN string
}

func (c Config) withDefaults() Config {
	if c.Games <= 0 {
		c.Games = 1
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.MaxPlies <= 0 {
		c.MaxPlies = 200
	}
	if c.Backend == "" {
		c.Backend = boards.Dragontooth
	}
	if c.StartFEN == "" {
		c.StartFEN = boards.StartFEN
	}
	if c.First.Name == "" {
		c.First.Name = c.First.Policy.String()
	}
	if c.Second.Name == "" {
		c.Second.Name = c.Second.Policy.String()
	}
	if c.First.Name == c.Second.Name {
		c.First.Name += "#1"
		c.Second.Name += "#2"
	}
	return c
}

// Recorder persists finished games. *storage.Storage satisfies it.
type Recorder interface {
	SaveGame(rec *storage.GameRecord) (uint64, error)
}

type Summary struct {
	Games      int
	Wins       map[string]int
	Draws      int
	Unfinished int
}

func (s Summary) String() string {
	names := make([]string, 0, len(s.Wins))
	for name := range s.Wins {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	fmt.Fprintf(&b, "games %d", s.Games)
	for _, name := range names {
		fmt.Fprintf(&b, " %s %d", name, s.Wins[name])
	}
	fmt.Fprintf(&b, " draws %d", s.Draws)
	if s.Unfinished > 0 {
		fmt.Fprintf(&b, " unfinished %d", s.Unfinished)
	}
	return b.String()
}

// Run plays cfg.Games games, alternating colours, on up to cfg.Workers
// goroutines. Every game has its own board and bots. rec may be nil.
func Run(ctx context.Context, cfg Config, rec Recorder) (Summary, error) {
	cfg = cfg.withDefaults()
	records := make([]*storage.GameRecord, cfg.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Games; i++ {
		g.Go(func() error {
			white, black := cfg.First, cfg.Second
			if i%2 == 1 {
				white, black = black, white
			}
			game, err := PlayGame(ctx, white, black, cfg.Backend, cfg.StartFEN, cfg.MaxPlies, cfg.Seed+uint64(2*i))
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			if rec != nil {
				if _, err := rec.SaveGame(game); err != nil {
					return fmt.Errorf("game %d: %w", i+1, err)
				}
			}
			records[i] = game
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Games: cfg.Games, Wins: map[string]int{cfg.First.Name: 0, cfg.Second.Name: 0}}
	for _, r := range records {
		switch chess.Outcome(r.Result) {
		case chess.WhiteWon:
			sum.Wins[r.White]++
		case chess.BlackWon:
			sum.Wins[r.Black]++
		case chess.Draw:
			sum.Draws++
		default:
			sum.Unfinished++
		}
	}
	return sum, nil
}

// PlayGame plays one game from fen. White's bot is seeded with seed and
// black's with seed+1.
func PlayGame(ctx context.Context, white, black Player, backend boards.Backend, fen string, maxPlies int, seed uint64) (*storage.GameRecord, error) {
	board, err := boards.New(backend, fen)
	if err != nil {
		return nil, err
	}
	fenOpt, err := chess.FEN(board.FEN())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", boards.ErrInvalidFEN, err)
	}
	game := chess.NewGame(fenOpt)
	game.AddTagPair("White", white.Name)
	game.AddTagPair("Black", black.Name)

	bots := [2]*engine.Bot{
		engine.NewBot(engine.WithPolicy(white.Policy), engine.WithSeed(seed)),
		engine.NewBot(engine.WithPolicy(black.Policy), engine.WithSeed(seed+1)),
	}
	rec := &storage.GameRecord{
		White:    white.Name,
		Black:    black.Name,
		StartFEN: board.FEN(),
		Backend:  string(backend),
	}

	for game.Outcome() == chess.NoOutcome {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(rec.Moves) >= maxPlies {
			if err := game.Draw(chess.DrawOffer); err != nil {
				return nil, err
			}
			break
		}
		if method, ok := claimableDraw(game); ok {
			if err := game.Draw(method); err != nil {
				return nil, err
			}
			break
		}

		m, err := bots[board.SideToMove()].Think(board)
		if err != nil {
			return nil, fmt.Errorf("selfplay: %s to move in %s: %w", board.SideToMove(), board.FEN(), err)
		}
		if err := follow(game, m.String()); err != nil {
			return nil, err
		}
		board.Apply(m)
		rec.Moves = append(rec.Moves, m.String())
	}

	rec.Result = game.Outcome().String()
	rec.Method = game.Method().String()
	rec.PGN = game.String()
	return rec, nil
}

// claimableDraw returns a repetition or fifty-move draw the side to move may claim.
func claimableDraw(game *chess.Game) (chess.Method, bool) {
	for _, m := range game.EligibleDraws() {
		if m == chess.ThreefoldRepetition || m == chess.FiftyMoveRule {
			return m, true
		}
	}
	return chess.NoMethod, false
}

// follow plays uci on the adjudicating game.
func follow(game *chess.Game, uci string) error {
	for _, m := range game.ValidMoves() {
		if m.String() == uci {
			return game.Move(m)
		}
	}
	return fmt.Errorf("%w: %s in %s", ErrMoveRejected, uci, game.Position().String())
}
