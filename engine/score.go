package engine

import (
	"fmt"
	"math"
)

const (
	CastleBonus = 100
	CheckBonus  = 20

	// WinningValue is what a decisive score is worth in comparisons.
	WinningValue int64 = math.MaxInt32
)

type Outcome uint8

const (
	Ordinary Outcome = iota
	Checkmate
	EnPassant
)

func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case EnPassant:
		return "en passant"
	}
	return "ordinary"
}

// Score is the heuristic worth of one move. Decisive outcomes carry no points and
// are selected as soon as they are seen.
type Score struct {
	Outcome Outcome
	Points  int
}

func (s Score) Decisive() bool {
	return s.Outcome != Ordinary
}

// Value orders scores on a single axis. Decisive scores rank above any sum of terms.
func (s Score) Value() int64 {
	if s.Decisive() {
		return WinningValue
	}
	return int64(s.Points)
}

func (s Score) String() string {
	if s.Decisive() {
		return s.Outcome.String()
	}
	return fmt.Sprintf("%d", s.Points)
}

// Breakdown holds each scoring term for one move.
type Breakdown struct {
	Outcome    Outcome
	Relief     int
	Capture    int
	Promotion  int
	Castle     int
	Exposure   int
	Check      int
	Visibility int
}

func (b Breakdown) Score() Score {
	if b.Outcome != Ordinary {
		return Score{Outcome: b.Outcome}
	}
	return Score{Points: b.Relief + b.Capture + b.Promotion + b.Castle + b.Exposure + b.Check + b.Visibility}
}

func (b Breakdown) String() string {
	if b.Outcome != Ordinary {
		return b.Outcome.String()
	}
	return fmt.Sprintf("relief %d capture %d promotion %d castle %d exposure %d check %d visibility %d total %d",
		b.Relief, b.Capture, b.Promotion, b.Castle, b.Exposure, b.Check, b.Visibility, b.Score().Points)
}

// Explain scores m term by term. danger must come from ScanDanger on the same
// position. The position is left exactly as it was found.
func Explain(pos Position, m Move, danger Danger) Breakdown {
	if leadsToMate(pos, m) {
		return Breakdown{Outcome: Checkmate}
	}
	if m.IsEnPassant() {
		return Breakdown{Outcome: EnPassant}
	}

	var b Breakdown
	moverValue := PieceValue(m.Piece)
	if danger.Found && m.From == danger.Piece.Square {
		b.Relief = moverValue
	}
	b.Capture = PieceValue(m.Captured)
	b.Promotion = PieceValue(m.Promotion)
	if m.IsCastle() {
		b.Castle = CastleBonus
	}
	if pos.SquareAttackedByOpponent(m.To) {
		b.Exposure = -moverValue
	}
	if DoesCheck(pos, m) {
		b.Check = CheckBonus
	}
	b.Visibility = VisibilityDelta(pos, m)
	return b
}

func ScoreMove(pos Position, m Move, danger Danger) Score {
	return Explain(pos, m, danger).Score()
}

func leadsToMate(pos Position, m Move) bool {
	undo := pos.Apply(m)
	defer undo()
	return pos.IsCheckmate()
}
