package engine

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/exp/rand"
)

var ErrUnknownPolicy = errors.New("engine: unknown policy")

type Policy uint8

const (
	Greedy Policy = iota
	Exchange
)

func (p Policy) String() string {
	if p == Exchange {
		return "exchange"
	}
	return "greedy"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "greedy":
		return Greedy, nil
	case "exchange":
		return Exchange, nil
	}
	return Greedy, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Bot picks one move per call to Think. A Bot owns its random generator and is
// not safe for concurrent use; give each game its own Bot.
type Bot struct {
	policy Policy
	rng    Rand
	logger *log.Logger
}

type Option func(*Bot)

func WithPolicy(p Policy) Option {
	return func(b *Bot) { b.policy = p }
}

func WithSeed(seed uint64) Option {
	return func(b *Bot) { b.rng = rand.New(rand.NewSource(seed)) }
}

func WithRand(r Rand) Option {
	return func(b *Bot) { b.rng = r }
}

// WithLogger enables a trace line per decision.
func WithLogger(l *log.Logger) Option {
	return func(b *Bot) { b.logger = l }
}

func NewBot(opts ...Option) *Bot {
	b := &Bot{policy: Greedy}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(1))
	}
	return b
}

func (b *Bot) Policy() Policy { return b.policy }

func (b *Bot) Name() string {
	return "chess-bot " + b.policy.String()
}

// Think chooses a move for the side to move. pos is left unchanged.
func (b *Bot) Think(pos Position) (Move, error) {
	var (
		m   Move
		err error
	)
	switch b.policy {
	case Exchange:
		m, err = SelectExchange(pos, b.rng)
	default:
		m, err = SelectGreedy(pos, b.rng)
	}
	if err != nil {
		return Move{}, err
	}
	if b.logger != nil {
		b.logger.Printf("%s %s: %s", b.policy, m, Explain(pos, m, ScanDanger(pos)))
	}
	return m, nil
}
