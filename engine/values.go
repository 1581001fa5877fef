package engine

// Coarse piece weights used by every scoring term. The king weight only matters
// when a king is the piece in danger or the piece walking into an attack.
var pieceValues = [7]int{0, 10, 30, 30, 50, 90, 100}

func PieceValue(kind PieceKind) int {
	if int(kind) >= len(pieceValues) {
		return 0
	}
	return pieceValues[kind]
}
