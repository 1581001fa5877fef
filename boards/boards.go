// Package boards adapts third-party move generators to engine.Position.
package boards

import (
	"errors"
	"fmt"
	"strings"

	"chess-bot/engine"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrInvalidFEN     = errors.New("boards: invalid FEN")
	ErrIllegalMove    = errors.New("boards: illegal move")
	ErrUnknownBackend = errors.New("boards: unknown backend")
)

type Backend string

const (
	Dragontooth Backend = "dragontooth"
	Goose       Backend = "goose"
)

var Backends = []Backend{Dragontooth, Goose}

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case Dragontooth, Goose:
		return b, nil
	case "":
		return Dragontooth, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// Board is a Position that can also report itself as FEN.
type Board interface {
	engine.Position
	FEN() string
}

func New(backend Backend, fen string) (Board, error) {
	switch backend {
	case Dragontooth, "":
		return NewDragon(fen)
	case Goose:
		return NewGoose(fen)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// FindMove looks up a UCI move string among the legal moves of pos.
func FindMove(pos engine.Position, uci string) (engine.Move, error) {
	want := strings.ToLower(strings.TrimSpace(uci))
	for _, m := range pos.LegalMoves() {
		if m.String() == want {
			return m, nil
		}
	}
	return engine.Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, uci)
}

// ApplyUCI plays a sequence of UCI moves permanently.
func ApplyUCI(pos engine.Position, moves ...string) error {
	for _, s := range moves {
		m, err := FindMove(pos, s)
		if err != nil {
			return err
		}
		pos.Apply(m)
	}
	return nil
}

// Perft counts leaf nodes of the legal move tree using only the Position interface.
func Perft(pos engine.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := pos.Apply(m)
		nodes += Perft(pos, depth-1)
		undo()
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(pos engine.Position, depth int) map[engine.Move]uint64 {
	div := make(map[engine.Move]uint64)
	for _, m := range pos.LegalMoves() {
		undo := pos.Apply(m)
		div[m] = Perft(pos, depth-1)
		undo()
	}
	return div
}

// checkFEN rejects FEN strings the generators would misread and fills in
// missing move counters.
func checkFEN(fen string) (string, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return "", fmt.Errorf("%w: want 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return "", fmt.Errorf("%w: want 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	kings := map[rune]int{}
	for _, rank := range ranks {
		files := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				files += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				files++
				kings[c]++
			default:
				return "", fmt.Errorf("%w: bad piece %q", ErrInvalidFEN, c)
			}
		}
		if files != 8 {
			return "", fmt.Errorf("%w: rank %q has %d files", ErrInvalidFEN, rank, files)
		}
	}
	if kings['K'] != 1 || kings['k'] != 1 {
		return "", fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return "", fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	if len(fields) == 4 {
		fields = append(fields, "0")
	}
	if len(fields) == 5 {
		fields = append(fields, "1")
	}
	return strings.Join(fields, " "), nil
}
