package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

var knightAttacks [64]uint64
var kingAttacks [64]uint64

// pawnAttacks[color][sq] holds the squares a pawn of that color captures on from sq.
var pawnAttacks [2][64]uint64

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func init() {
	initAttackTables()
}

func initAttackTables() {
	for sq := 0; sq < 64; sq++ {
		knightAttacks[sq] = offsetMask(sq, knightOffsets[:])
		kingAttacks[sq] = offsetMask(sq, kingOffsets[:])
		pawnAttacks[White][sq] = offsetMask(sq, [][2]int{{1, -1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetMask(sq, [][2]int{{-1, -1}, {-1, 1}})
	}
}

// offsetMask collects the on-board squares reached from sq by (rank, file) steps.
func offsetMask(sq int, offsets [][2]int) (mask uint64) {
	file, rank := sq%8, sq/8
	for _, off := range offsets {
		rf, ff := rank+off[0], file+off[1]
		if rf >= 0 && rf < 8 && ff >= 0 && ff < 8 {
			mask |= uint64(1) << (rf*8 + ff)
		}
	}
	return mask
}

// SliderAttacks returns the ray footprint of a slider standing on sq, stopping at
// (and including) the first occupied square in each direction. Any kind other than
// rook or bishop is treated as a queen.
func SliderAttacks(kind PieceKind, sq Square, occupancy uint64) uint64 {
	switch kind {
	case Rook:
		return dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occupancy)
	case Bishop:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occupancy)
	}
	return dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occupancy) |
		dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occupancy)
}

// AttackFootprint returns the squares a piece of the given kind would attack from
// sq on the current board. Pawns attack in the direction of the side to move.
func AttackFootprint(pos Position, sq Square, kind PieceKind) uint64 {
	switch kind {
	case Pawn:
		return pawnAttacks[pos.SideToMove()][sq]
	case Knight:
		return knightAttacks[sq]
	case King:
		return kingAttacks[sq]
	}
	return SliderAttacks(kind, sq, pos.Occupancy())
}

// DoesCheck reports whether the moved piece would attack the enemy king from its
// destination. The board is not updated first: occupancy still includes the
// origin square, so discovered checks are not seen. Promotions are tested with
// the pawn pattern.
func DoesCheck(pos Position, m Move) bool {
	king := pos.KingSquare(pos.SideToMove().Other())
	return AttackFootprint(pos, m.To, m.Piece)&king.Bitboard() != 0
}

// VisibilityDelta is the change in sliding-ray reach of the moved piece, measured
// with the pre-move occupancy. Non-sliders are measured with queen rays.
func VisibilityDelta(pos Position, m Move) int {
	occ := pos.Occupancy()
	after := bits.OnesCount64(SliderAttacks(m.Piece, m.To, occ))
	before := bits.OnesCount64(SliderAttacks(m.Piece, m.From, occ))
	return after - before
}
