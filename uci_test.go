package main

import (
	"bytes"
	"strings"
	"testing"
)

func runUCI(t *testing.T, script ...string) []string {
	t.Helper()
	var out bytes.Buffer
	uciLoop(strings.NewReader(strings.Join(script, "\n")+"\n"), &out)
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func lastBestMove(t *testing.T, lines []string) string {
	t.Helper()
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(lines[i], "bestmove ") {
			return strings.TrimPrefix(lines[i], "bestmove ")
		}
	}
	t.Fatalf("no bestmove in output:\n%s", strings.Join(lines, "\n"))
	return ""
}

func TestUCIHandshake(t *testing.T) {
	lines := runUCI(t, "uci", "isready", "quit", "isready")
	if lines[len(lines)-1] != "readyok" || lines[len(lines)-2] != "uciok" {
		t.Fatalf("unexpected handshake:\n%s", strings.Join(lines, "\n"))
	}
	if strings.Count(strings.Join(lines, "\n"), "readyok") != 1 {
		t.Fatal("commands after quit were processed")
	}
}

func TestUCIPlaysMate(t *testing.T) {
	for _, backend := range []string{"dragontooth", "goose"} {
		lines := runUCI(t,
			"setoption name Backend value "+backend,
			"position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
			"go wtime 1000 btime 1000",
		)
		if got := lastBestMove(t, lines); got != "a1a8" {
			t.Fatalf("%s: got bestmove %s", backend, got)
		}
	}
}

func TestUCIPositionWithMoves(t *testing.T) {
	lines := runUCI(t, "position startpos moves e2e4 e7e5", "d")
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	got := lines[len(lines)-1]
	// Generators differ on whether an unreachable en passant square is written.
	if got != want && got != strings.Replace(want, " e6 ", " - ", 1) {
		t.Fatalf("got %s", got)
	}
}

func TestUCIExchangePolicyAnswers(t *testing.T) {
	lines := runUCI(t, "setoption name Policy value exchange", "position startpos", "go depth 1")
	if m := lastBestMove(t, lines); len(m) < 4 {
		t.Fatalf("bad bestmove %q", m)
	}
}

func TestUCIReportsErrors(t *testing.T) {
	lines := runUCI(t,
		"bogus",
		"position fen 8/8/8/8/8/8/8/8 w - - 0 1",
		"position startpos moves e2e5",
		"setoption name Policy value minimax",
		"go wtime",
	)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{
		"info string Unknown command: bogus",
		"invalid FEN",
		"info string Move e2e5 not found",
		"unknown policy",
		"info string Malformed go command option wtime",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("output lacks %q:\n%s", want, joined)
		}
	}
}

func TestUCICheckmatedSideAnswersNullMove(t *testing.T) {
	lines := runUCI(t, "position fen R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1", "go")
	if got := lastBestMove(t, lines); got != "0000" {
		t.Fatalf("got %s", got)
	}
}

func TestUCIScores(t *testing.T) {
	lines := runUCI(t, "position fen 6k1/8/8/p3p3/1P1Q4/8/8/6K1 w - - 0 1", "scores")
	if !strings.Contains(lines[0], "danger queen on d4") {
		t.Fatalf("first line should name the queen in danger, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "d4") {
		t.Fatalf("best scored move should be a queen move, got %q", lines[1])
	}
}

func BenchmarkMain(b *testing.B) {
	script := "position startpos moves e2e4 e7e5 g1f3\ngo\n"
	var out bytes.Buffer
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		out.Reset()
		uciLoop(strings.NewReader(script), &out)
	}
}
