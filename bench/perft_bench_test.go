package bench

import (
	"testing"

	"chess-bot/boards"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func newBoard(b *testing.B, backend boards.Backend, fen string) boards.Board {
	b.Helper()
	board, err := boards.New(backend, fen)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	return board
}

func benchPerft(b *testing.B, backend boards.Backend, fen string, depth int) {
	board := newBoard(b, backend, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = boards.Perft(board, depth)
	}
}

func BenchmarkPerft_Initial_D3_Dragontooth(b *testing.B) {
	benchPerft(b, boards.Dragontooth, boards.StartFEN, 3)
}

func BenchmarkPerft_Initial_D3_Goose(b *testing.B) {
	benchPerft(b, boards.Goose, boards.StartFEN, 3)
}

func BenchmarkPerft_Kiwipete_D2_Dragontooth(b *testing.B) {
	benchPerft(b, boards.Dragontooth, kiwipete, 2)
}

func BenchmarkPerft_Kiwipete_D2_Goose(b *testing.B) {
	benchPerft(b, boards.Goose, kiwipete, 2)
}
