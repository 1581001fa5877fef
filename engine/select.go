package engine

import (
	"errors"
	"sort"
)

var ErrNoLegalMoves = errors.New("engine: no legal moves")

// Rand supplies the random default move. *rand.Rand from golang.org/x/exp/rand fits.
type Rand interface {
	Intn(n int) int
}

// SelectGreedy returns the best scoring legal move for the side to move. The
// running best starts as a random legal move at a threshold of 0, so when no
// move scores above 0 the random move is played. A decisive score is returned
// as soon as it is seen, and ties keep the earlier move.
func SelectGreedy(pos Position, rng Rand) (Move, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return Move{}, ErrNoLegalMoves
	}
	danger := ScanDanger(pos)

	best := moves[rng.Intn(len(moves))]
	bestValue := int64(0)
	for _, m := range moves {
		score := ScoreMove(pos, m, danger)
		if score.Decisive() {
			return m, nil
		}
		if score.Value() > bestValue {
			best, bestValue = m, score.Value()
		}
	}
	return best, nil
}

type scoredMove struct {
	move  Move
	score Score
}

type scoredMoves []scoredMove

// Highest first; used with sort.Stable so equal scores keep generation order.
func (s scoredMoves) Len() int           { return len(s) }
func (s scoredMoves) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s scoredMoves) Less(i, j int) bool { return s[i].score.Value() > s[j].score.Value() }

func rankMoves(pos Position, moves []Move) scoredMoves {
	danger := ScanDanger(pos)
	list := make(scoredMoves, len(moves))
	for i, m := range moves {
		list[i] = scoredMove{move: m, score: ScoreMove(pos, m, danger)}
	}
	sort.Stable(list)
	return list
}

// ExchangeLine is one of our moves together with the opponent's greedy answer.
type ExchangeLine struct {
	Move       Move
	Attack     Score
	Reply      Move
	HasReply   bool
	ReplyScore Score
	// Total is Attack minus ReplyScore on the Value scale.
	Total int64
}

// RankExchange scores every legal move, sorts them best first and looks one ply
// ahead at the opponent's greedy reply to each. The position is restored after
// every candidate.
func RankExchange(pos Position, rng Rand) []ExchangeLine {
	ranked := rankMoves(pos, pos.LegalMoves())
	lines := make([]ExchangeLine, len(ranked))
	for i, sm := range ranked {
		lines[i] = exchangeLine(pos, sm, rng)
	}
	return lines
}

func exchangeLine(pos Position, sm scoredMove, rng Rand) ExchangeLine {
	line := ExchangeLine{Move: sm.move, Attack: sm.score}
	undo := pos.Apply(sm.move)
	defer undo()

	reply, err := SelectGreedy(pos, rng)
	if err == nil {
		line.Reply = reply
		line.HasReply = true
		line.ReplyScore = ScoreMove(pos, reply, ScanDanger(pos))
	}
	line.Total = line.Attack.Value() - line.ReplyScore.Value()
	return line
}

// SelectExchange plays the best scoring move unless a later ranked move nets
// more than 0 after the opponent's reply and beats every earlier net total.
func SelectExchange(pos Position, rng Rand) (Move, error) {
	lines := RankExchange(pos, rng)
	if len(lines) == 0 {
		return Move{}, ErrNoLegalMoves
	}
	return pickExchange(lines), nil
}

func pickExchange(lines []ExchangeLine) Move {
	best := lines[0].Move
	bestTotal := int64(0)
	for _, line := range lines {
		if line.Total > bestTotal {
			best, bestTotal = line.Move, line.Total
		}
	}
	return best
}
