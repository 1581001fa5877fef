package boards

import (
	"fmt"
	"math/bits"

	"github.com/dylhunn/dragontoothmg"

	"chess-bot/engine"
)

// Dragon is an engine.Position backed by dragontoothmg.
type Dragon struct {
	board dragontoothmg.Board
}

func NewDragon(fen string) (d *Dragon, err error) {
	fen, err = checkFEN(fen)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()
	return &Dragon{board: dragontoothmg.ParseFen(fen)}, nil
}

func (d *Dragon) FEN() string { return d.board.ToFen() }

func (d *Dragon) SideToMove() engine.Color {
	if d.board.Wtomove {
		return engine.White
	}
	return engine.Black
}

func (d *Dragon) bitboards(c engine.Color) *dragontoothmg.Bitboards {
	if c == engine.White {
		return &d.board.White
	}
	return &d.board.Black
}

// kindAt reports which of a side's pieces stands on sq.
func kindAt(sq uint8, bb *dragontoothmg.Bitboards) (engine.PieceKind, bool) {
	mask := uint64(1) << sq
	switch {
	case bb.Pawns&mask != 0:
		return engine.Pawn, true
	case bb.Knights&mask != 0:
		return engine.Knight, true
	case bb.Bishops&mask != 0:
		return engine.Bishop, true
	case bb.Rooks&mask != 0:
		return engine.Rook, true
	case bb.Queens&mask != 0:
		return engine.Queen, true
	case bb.Kings&mask != 0:
		return engine.King, true
	}
	return engine.None, false
}

func (d *Dragon) kindBitboard(kind engine.PieceKind, c engine.Color) uint64 {
	bb := d.bitboards(c)
	switch kind {
	case engine.Pawn:
		return bb.Pawns
	case engine.Knight:
		return bb.Knights
	case engine.Bishop:
		return bb.Bishops
	case engine.Rook:
		return bb.Rooks
	case engine.Queen:
		return bb.Queens
	case engine.King:
		return bb.Kings
	}
	return 0
}

func (d *Dragon) Pieces(kind engine.PieceKind, c engine.Color) []engine.Piece {
	bb := d.kindBitboard(kind, c)
	pieces := make([]engine.Piece, 0, bits.OnesCount64(bb))
	for bb != 0 {
		sq := bits.TrailingZeros64(bb)
		bb &= bb - 1
		pieces = append(pieces, engine.Piece{Kind: kind, Color: c, Square: engine.Square(sq)})
	}
	return pieces
}

func (d *Dragon) KingSquare(c engine.Color) engine.Square {
	return engine.Square(bits.TrailingZeros64(d.bitboards(c).Kings))
}

func (d *Dragon) Occupancy() uint64 {
	return d.board.White.All | d.board.Black.All
}

func (d *Dragon) SquareAttackedByOpponent(sq engine.Square) bool {
	// The opponent is black exactly when white is to move.
	return d.board.UnderDirectAttack(d.board.Wtomove, uint8(sq))
}

func (d *Dragon) LegalMoves() []engine.Move {
	native := d.board.GenerateLegalMoves()
	moves := make([]engine.Move, len(native))
	for i, nm := range native {
		moves[i] = d.convert(nm)
	}
	return moves
}

func (d *Dragon) convert(nm dragontoothmg.Move) engine.Move {
	us, them := d.SideToMove(), d.SideToMove().Other()
	m := engine.Move{From: engine.Square(nm.From()), To: engine.Square(nm.To())}
	m.Piece, _ = kindAt(nm.From(), d.bitboards(us))
	if captured, ok := kindAt(nm.To(), d.bitboards(them)); ok {
		m.Captured = captured
		m.Flags |= engine.FlagCapture
	}
	if promo := nm.Promote(); promo != dragontoothmg.Nothing {
		m.Promotion = engine.PieceKind(promo)
		m.Flags |= engine.FlagPromotion
	}
	switch m.Piece {
	case engine.Pawn:
		// A diagonal pawn step onto an empty square can only be en passant.
		if m.From.File() != m.To.File() && m.Captured == engine.None {
			m.Captured = engine.Pawn
			m.Flags |= engine.FlagCapture | engine.FlagEnPassant
		}
	case engine.King:
		if df := m.To.File() - m.From.File(); df == 2 || df == -2 {
			m.Flags |= engine.FlagCastle
		}
	}
	return m
}

func (d *Dragon) native(m engine.Move) (dragontoothmg.Move, bool) {
	for _, nm := range d.board.GenerateLegalMoves() {
		if engine.Square(nm.From()) == m.From && engine.Square(nm.To()) == m.To &&
			engine.PieceKind(nm.Promote()) == m.Promotion {
			return nm, true
		}
	}
	return 0, false
}

// Apply plays m, which must be legal, and returns the closure that takes it back.
func (d *Dragon) Apply(m engine.Move) func() {
	nm, ok := d.native(m)
	if !ok {
		panic(fmt.Sprintf("boards: %s is not legal in %s", m, d.FEN()))
	}
	return d.board.Apply(nm)
}

func (d *Dragon) IsCheckmate() bool {
	return d.board.OurKingInCheck() && len(d.board.GenerateLegalMoves()) == 0
}
