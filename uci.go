package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"chess-bot/boards"
	"chess-bot/engine"
)

func main() {
	uciLoop(os.Stdin, os.Stdout)
}

// uciState is what the host keeps between commands.
type uciState struct {
	out     io.Writer
	backend boards.Backend
	policy  engine.Policy
	seed    uint64
	debug   bool
	board   boards.Board
	bot     *engine.Bot
}

func newUCIState(out io.Writer) *uciState {
	s := &uciState{out: out, backend: boards.Dragontooth, policy: engine.Greedy, seed: 1}
	s.resetBot()
	s.board, _ = boards.New(s.backend, boards.StartFEN)
	return s
}

func (s *uciState) resetBot() {
	opts := []engine.Option{engine.WithPolicy(s.policy), engine.WithSeed(s.seed)}
	if s.debug {
		opts = append(opts, engine.WithLogger(log.New(s.out, "info string ", 0)))
	}
	s.bot = engine.NewBot(opts...)
}

func (s *uciState) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func uciLoop(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	s := newUCIState(out)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			s.println("id name chess-bot")
			s.println("id author chess-bot developers")
			s.println("option name Policy type combo default greedy var greedy var exchange")
			s.println("option name Backend type combo default dragontooth var dragontooth var goose")
			s.println("option name Seed type spin default 1 min 0 max 2147483647")
			s.println("option name Debug type check default false")
			s.println("uciok")
		case "isready":
			s.println("readyok")
		case "ucinewgame":
			s.board, _ = boards.New(s.backend, boards.StartFEN)
			s.resetBot()
		case "quit":
			return
		case "stop":
			// Decisions are synchronous; there is never a search to stop.
		case "go":
			s.goCommand(tokens[1:])
		case "position":
			s.positionCommand(tokens[1:])
		case "setoption":
			s.setOption(tokens[1:])
		case "d":
			s.println(s.board.FEN())
		case "scores":
			s.scoresCommand()
		default:
			s.println("info string Unknown command:", line)
		}
	}
}

// goCommand validates the search limits and answers immediately. Clock values
// are read but not used to budget the decision.
func (s *uciState) goCommand(args []string) {
	for i := 0; i < len(args); i++ {
		switch tok := strings.ToLower(args[i]); tok {
		case "infinite", "ponder":
			continue
		case "wtime", "btime", "winc", "binc", "movestogo", "depth", "nodes", "movetime":
			if i+1 >= len(args) {
				s.println("info string Malformed go command option", tok)
				continue
			}
			i++
			if _, err := strconv.Atoi(args[i]); err != nil {
				s.println("info string Malformed go command option; could not convert", tok)
			}
		default:
			s.println("info string Unknown go subcommand", tok)
		}
	}

	m, err := s.bot.Think(s.board)
	if err != nil {
		s.println("info string", err)
		s.println("bestmove 0000")
		return
	}
	s.println("bestmove", m)
}

func (s *uciState) positionCommand(args []string) {
	if len(args) == 0 {
		s.println("info string Malformed position command")
		return
	}
	var fen string
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		fen = boards.StartFEN
	case "fen":
		var fields []string
		for len(rest) > 0 && strings.ToLower(rest[0]) != "moves" {
			fields = append(fields, rest[0])
			rest = rest[1:]
		}
		if len(fields) == 0 {
			s.println("info string Invalid fen position")
			return
		}
		fen = strings.Join(fields, " ")
	default:
		s.println("info string Invalid position subcommand")
		return
	}

	board, err := boards.New(s.backend, fen)
	if err != nil {
		s.println("info string", err)
		return
	}
	s.board = board
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, mv := range rest[1:] {
		m, err := boards.FindMove(s.board, mv)
		if err != nil {
			s.println("info string Move", mv, "not found for position", s.board.FEN())
			return
		}
		s.board.Apply(m)
	}
}

// setOption handles "setoption name <id> [value <x>]".
func (s *uciState) setOption(args []string) {
	var name, value []string
	target := &name
	for _, tok := range args {
		switch strings.ToLower(tok) {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			*target = append(*target, tok)
		}
	}
	v := strings.Join(value, " ")
	switch strings.ToLower(strings.Join(name, " ")) {
	case "policy":
		p, err := engine.ParsePolicy(v)
		if err != nil {
			s.println("info string", err)
			return
		}
		s.policy = p
	case "backend":
		b, err := boards.ParseBackend(v)
		if err != nil {
			s.println("info string", err)
			return
		}
		board, err := boards.New(b, s.board.FEN())
		if err != nil {
			s.println("info string", err)
			return
		}
		s.backend, s.board = b, board
	case "seed":
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.println("info string Malformed setoption value", v)
			return
		}
		s.seed = seed
	case "debug":
		s.debug = strings.EqualFold(v, "true")
	default:
		s.println("info string Unknown option", strings.Join(name, " "))
		return
	}
	s.resetBot()
}

// scoresCommand prints every legal move with its score terms, best first.
func (s *uciState) scoresCommand() {
	danger := engine.ScanDanger(s.board)
	if danger.Found {
		s.println("info string danger", danger.Piece.Kind, "on", danger.Piece.Square)
	}
	type row struct {
		move engine.Move
		b    engine.Breakdown
	}
	var rows []row
	for _, m := range s.board.LegalMoves() {
		rows = append(rows, row{m, engine.Explain(s.board, m, danger)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].b.Score().Value() > rows[j].b.Score().Value() })
	for _, r := range rows {
		s.println("info string", r.move, r.b)
	}
}
