package boards

import (
	"fmt"
	"strings"

	gm "github.com/Oliverans/GooseEngineMG/goosemg"

	"chess-bot/engine"
)

type colored struct {
	kind  engine.PieceKind
	color engine.Color
}

var goosePieces = map[gm.Piece]colored{
	gm.WhitePawn:   {engine.Pawn, engine.White},
	gm.WhiteKnight: {engine.Knight, engine.White},
	gm.WhiteBishop: {engine.Bishop, engine.White},
	gm.WhiteRook:   {engine.Rook, engine.White},
	gm.WhiteQueen:  {engine.Queen, engine.White},
	gm.WhiteKing:   {engine.King, engine.White},
	gm.BlackPawn:   {engine.Pawn, engine.Black},
	gm.BlackKnight: {engine.Knight, engine.Black},
	gm.BlackBishop: {engine.Bishop, engine.Black},
	gm.BlackRook:   {engine.Rook, engine.Black},
	gm.BlackQueen:  {engine.Queen, engine.Black},
	gm.BlackKing:   {engine.King, engine.Black},
}

// Goose is an engine.Position backed by GooseEngineMG. The side to move is
// tracked here and flipped on every apply and undo.
type Goose struct {
	board *gm.Board
	side  engine.Color
}

func NewGoose(fen string) (*Goose, error) {
	fen, err := checkFEN(fen)
	if err != nil {
		return nil, err
	}
	b, err := gm.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	g := &Goose{board: b}
	if strings.Fields(fen)[1] == "b" {
		g.side = engine.Black
	}
	return g, nil
}

func (g *Goose) FEN() string { return g.board.ToFEN() }

func (g *Goose) SideToMove() engine.Color { return g.side }

func gooseColor(c engine.Color) gm.Color {
	if c == engine.White {
		return gm.White
	}
	return gm.Black
}

func (g *Goose) at(sq engine.Square) (colored, bool) {
	p, ok := goosePieces[g.board.PieceAt(gm.Square(sq))]
	return p, ok
}

func (g *Goose) Pieces(kind engine.PieceKind, c engine.Color) []engine.Piece {
	var pieces []engine.Piece
	for sq := engine.Square(0); sq < 64; sq++ {
		if p, ok := g.at(sq); ok && p.kind == kind && p.color == c {
			pieces = append(pieces, engine.Piece{Kind: kind, Color: c, Square: sq})
		}
	}
	return pieces
}

func (g *Goose) KingSquare(c engine.Color) engine.Square {
	for sq := engine.Square(0); sq < 64; sq++ {
		if p, ok := g.at(sq); ok && p.kind == engine.King && p.color == c {
			return sq
		}
	}
	return 0
}

func (g *Goose) Occupancy() uint64 {
	var occ uint64
	for sq := engine.Square(0); sq < 64; sq++ {
		if _, ok := g.at(sq); ok {
			occ |= sq.Bitboard()
		}
	}
	return occ
}

func (g *Goose) SquareAttackedByOpponent(sq engine.Square) bool {
	return g.board.IsSquareAttacked(gm.Square(sq), gooseColor(g.side.Other()))
}

func (g *Goose) LegalMoves() []engine.Move {
	native := g.board.GenerateMoves()
	moves := make([]engine.Move, len(native))
	for i, nm := range native {
		moves[i] = convertGoose(nm)
	}
	return moves
}

func convertGoose(nm gm.Move) engine.Move {
	m := engine.Move{
		From:  engine.Square(nm.From()),
		To:    engine.Square(nm.To()),
		Piece: goosePieces[nm.MovedPiece()].kind,
	}
	if captured, ok := goosePieces[nm.CapturedPiece()]; ok {
		m.Captured = captured.kind
		m.Flags |= engine.FlagCapture
	}
	if promo, ok := goosePieces[nm.PromotionPiece()]; ok {
		m.Promotion = promo.kind
		m.Flags |= engine.FlagPromotion
	}
	switch nm.Flags() {
	case gm.FlagCastle:
		m.Flags |= engine.FlagCastle
	case gm.FlagEnPassant:
		m.Flags |= engine.FlagEnPassant
	}
	return m
}

func (g *Goose) native(m engine.Move) (gm.Move, bool) {
	for _, nm := range g.board.GenerateMoves() {
		if engine.Square(nm.From()) == m.From && engine.Square(nm.To()) == m.To &&
			goosePieces[nm.PromotionPiece()].kind == m.Promotion {
			return nm, true
		}
	}
	return 0, false
}

// Apply plays m, which must be legal, and returns the closure that takes it back.
func (g *Goose) Apply(m engine.Move) func() {
	nm, ok := g.native(m)
	if !ok {
		panic(fmt.Sprintf("boards: %s is not legal in %s", m, g.FEN()))
	}
	made, st := g.board.MakeMove(nm)
	if !made {
		panic(fmt.Sprintf("boards: generator rejected %s in %s", m, g.FEN()))
	}
	g.side = g.side.Other()
	return func() {
		g.board.UnmakeMove(nm, st)
		g.side = g.side.Other()
	}
}

func (g *Goose) IsCheckmate() bool {
	return g.board.InCheckmate()
}
