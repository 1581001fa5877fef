package engine

// Danger is the most valuable friendly piece currently attacked, if any.
type Danger struct {
	Piece Piece
	Found bool
}

// Value is the piece value of the endangered piece, 0 when nothing is attacked.
func (d Danger) Value() int {
	if !d.Found {
		return 0
	}
	return PieceValue(d.Piece.Kind)
}

// ScanDanger walks the side to move's pieces from pawns up to the king and keeps
// the first attacked piece of strictly highest value.
func ScanDanger(pos Position) Danger {
	side := pos.SideToMove()
	var danger Danger
	for _, kind := range pieceKinds {
		for _, p := range pos.Pieces(kind, side) {
			if !pos.SquareAttackedByOpponent(p.Square) {
				continue
			}
			if PieceValue(p.Kind) > danger.Value() {
				danger = Danger{Piece: p, Found: true}
			}
		}
	}
	return danger
}
