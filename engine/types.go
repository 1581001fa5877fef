package engine

import (
	"errors"
	"fmt"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

type PieceKind uint8

const (
	None PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Kinds in the order the danger scan visits them.
var pieceKinds = [6]PieceKind{Pawn, Knight, Bishop, Rook, Queen, King}

var kindLetters = [7]byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Square indexes the board from a1 (0) to h8 (63).
type Square uint8

var ErrBadSquare = errors.New("engine: bad square")

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

func (s Square) Bitboard() uint64 { return uint64(1) << s }

func (s Square) String() string {
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

func ParseSquare(coord string) (Square, error) {
	if len(coord) != 2 || coord[0] < 'a' || coord[0] > 'h' || coord[1] < '1' || coord[1] > '8' {
		return 0, fmt.Errorf("%w: %q", ErrBadSquare, coord)
	}
	return Square(int(coord[1]-'1')*8 + int(coord[0]-'a')), nil
}

type Piece struct {
	Kind   PieceKind
	Color  Color
	Square Square
}

// NoPiece stands in wherever a piece is absent. Its value is 0.
var NoPiece = Piece{}

type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagPromotion
	FlagCastle
	FlagEnPassant
)

// Move is a fully described legal move. Two moves are equal when every field is.
type Move struct {
	From      Square
	To        Square
	Piece     PieceKind
	Captured  PieceKind
	Promotion PieceKind
	Flags     MoveFlag
}

func (m Move) IsCapture() bool   { return m.Flags&FlagCapture != 0 }
func (m Move) IsPromotion() bool { return m.Flags&FlagPromotion != 0 }
func (m Move) IsCastle() bool    { return m.Flags&FlagCastle != 0 }
func (m Move) IsEnPassant() bool { return m.Flags&FlagEnPassant != 0 }

// String renders the move in UCI long algebraic form, e.g. e7e8q.
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != None {
		s += string(kindLetters[m.Promotion])
	}
	return s
}

// Position is the board collaborator a decision is made against. Implementations
// must restore the exact prior state when the closure returned by Apply is called.
type Position interface {
	LegalMoves() []Move
	SideToMove() Color
	// SquareAttackedByOpponent reports whether the side not to move attacks sq.
	SquareAttackedByOpponent(sq Square) bool
	// Pieces lists the pieces of one kind and color in ascending square order.
	Pieces(kind PieceKind, color Color) []Piece
	KingSquare(color Color) Square
	Occupancy() uint64
	Apply(m Move) (undo func())
	IsCheckmate() bool
}
