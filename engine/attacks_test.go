package engine

import (
	"math/bits"
	"testing"
)

func square(coord string) Square {
	sq, err := ParseSquare(coord)
	if err != nil {
		panic(err)
	}
	return sq
}

func squares(coords ...string) (bb uint64) {
	for _, c := range coords {
		bb |= square(c).Bitboard()
	}
	return bb
}

func TestAttackTables(t *testing.T) {
	cases := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"knight a1", knightAttacks[square("a1")], squares("b3", "c2")},
		{"knight e4", knightAttacks[square("e4")], squares("d2", "f2", "c3", "g3", "c5", "g5", "d6", "f6")},
		{"king h8", kingAttacks[square("h8")], squares("g8", "g7", "h7")},
		{"white pawn a2", pawnAttacks[White][square("a2")], squares("b3")},
		{"white pawn e4", pawnAttacks[White][square("e4")], squares("d5", "f5")},
		{"black pawn e5", pawnAttacks[Black][square("e5")], squares("d4", "f4")},
		{"white pawn h8", pawnAttacks[White][square("h8")], 0},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %064b want %064b", tc.name, tc.got, tc.want)
		}
	}
}

func TestSliderAttacksEmptyBoard(t *testing.T) {
	cases := []struct {
		kind PieceKind
		sq   string
		want int
	}{
		{Rook, "a1", 14},
		{Bishop, "a1", 7},
		{Bishop, "d4", 13},
		{Queen, "d4", 27},
		// non-sliders are measured as queens
		{Pawn, "d4", 27},
		{Knight, "a1", 21},
		{King, "h8", 21},
	}
	for _, tc := range cases {
		got := bits.OnesCount64(SliderAttacks(tc.kind, square(tc.sq), 0))
		if got != tc.want {
			t.Errorf("%v on %s: got %d squares, want %d", tc.kind, tc.sq, got, tc.want)
		}
	}
}

func TestSliderAttacksStopAtFirstBlocker(t *testing.T) {
	occ := squares("a1", "a4", "d1")
	got := SliderAttacks(Rook, square("a1"), occ)
	want := squares("a2", "a3", "a4", "b1", "c1", "d1")
	if got != want {
		t.Fatalf("rook a1: got %064b want %064b", got, want)
	}
}

func TestParseSquare(t *testing.T) {
	if sq := square("h8"); sq != 63 || sq.String() != "h8" {
		t.Fatalf("h8 parsed as %d (%s)", sq, sq)
	}
	if sq := square("a1"); sq != 0 {
		t.Fatalf("a1 parsed as %d", sq)
	}
	for _, bad := range []string{"", "i1", "a9", "a10"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) accepted", bad)
		}
	}
}

func TestMoveString(t *testing.T) {
	m := Move{From: square("e7"), To: square("e8"), Piece: Pawn, Promotion: Queen, Flags: FlagPromotion}
	if m.String() != "e7e8q" {
		t.Fatalf("got %s", m)
	}
	if (Move{From: square("g1"), To: square("f3"), Piece: Knight}).String() != "g1f3" {
		t.Fatal("quiet move not rendered as g1f3")
	}
}

func TestPieceValues(t *testing.T) {
	want := map[PieceKind]int{None: 0, Pawn: 10, Knight: 30, Bishop: 30, Rook: 50, Queen: 90, King: 100}
	for kind, v := range want {
		if got := PieceValue(kind); got != v {
			t.Errorf("PieceValue(%v) = %d, want %d", kind, got, v)
		}
	}
	if PieceValue(PieceKind(42)) != 0 {
		t.Error("out of range kind should be worth 0")
	}
}

func TestScoreValue(t *testing.T) {
	if (Score{Outcome: Checkmate}).Value() != WinningValue || (Score{Outcome: EnPassant}).Value() != WinningValue {
		t.Fatal("decisive scores must be worth WinningValue")
	}
	if (Score{Points: -7}).Value() != -7 {
		t.Fatal("ordinary score value should equal its points")
	}
	b := Breakdown{Relief: 90, Exposure: -90, Check: 20, Visibility: -4}
	if got := b.Score(); got != (Score{Points: 16}) {
		t.Fatalf("breakdown sum: got %+v", got)
	}
}

func TestParsePolicy(t *testing.T) {
	for in, want := range map[string]Policy{"greedy": Greedy, "Exchange": Exchange, " GREEDY ": Greedy} {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParsePolicy("minimax"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
