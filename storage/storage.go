// Package storage keeps finished self-play games and per-player tallies in BadgerDB.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	keyGameSeq    = "seq/game"
	prefixGame    = "game/"
	prefixStats   = "stats/"
	seqBandwidth  = 64
	resultWhite   = "1-0"
	resultBlack   = "0-1"
	resultDraw    = "1/2-1/2"
	resultUnknown = "*"
)

var ErrGameNotFound = errors.New("storage: game not found")

// GameRecord is one finished game.
type GameRecord struct {
	ID       uint64    `json:"id"`
	White    string    `json:"white"`
	Black    string    `json:"black"`
	Result   string    `json:"result"`
	Method   string    `json:"method"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	PGN      string    `json:"pgn,omitempty"`
	Backend  string    `json:"backend"`
	PlayedAt time.Time `json:"played_at"`
}

// Stats tallies results for one player name.
type Stats struct {
	Name    string `json:"name"`
	Games   int    `json:"games"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
	Draws   int    `json:"draws"`
	AsWhite int    `json:"as_white"`
}

func (s *Stats) record(rec *GameRecord) {
	s.Games++
	white := rec.White == s.Name
	if white {
		s.AsWhite++
	}
	switch rec.Result {
	case resultDraw:
		s.Draws++
	case resultWhite:
		if white {
			s.Wins++
		} else {
			s.Losses++
		}
	case resultBlack:
		if white {
			s.Losses++
		} else {
			s.Wins++
		}
	}
}

// Storage wraps BadgerDB for match results.
type Storage struct {
	db  *badger.DB
	seq *badger.Sequence
	// serialises read-modify-write of stats across concurrent games
	mu sync.Mutex
}

// Open opens the database in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open %q: %w", dir, err)
	}
	seq, err := db.GetSequence([]byte(keyGameSeq), seqBandwidth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: game sequence: %w", err)
	}
	return &Storage{db: db, seq: seq}, nil
}

func (s *Storage) Close() error {
	if s.seq != nil {
		if err := s.seq.Release(); err != nil {
			s.db.Close()
			return err
		}
	}
	return s.db.Close()
}

func gameKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%016d", prefixGame, id))
}

func statsKey(name string) []byte {
	return []byte(prefixStats + name)
}

// SaveGame assigns rec an ID, stores it and updates both players' stats.
func (s *Storage) SaveGame(rec *GameRecord) (uint64, error) {
	n, err := s.seq.Next()
	if err != nil {
		return 0, err
	}
	rec.ID = n + 1
	if rec.Result == "" {
		rec.Result = resultUnknown
	}
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(gameKey(rec.ID), data); err != nil {
			return err
		}
		names := []string{rec.White}
		if rec.Black != rec.White {
			names = append(names, rec.Black)
		}
		for _, name := range names {
			stats, err := loadStats(txn, name)
			if err != nil {
				return err
			}
			stats.record(rec)
			buf, err := json.Marshal(stats)
			if err != nil {
				return err
			}
			if err := txn.Set(statsKey(name), buf); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("storage: save game: %w", err)
	}
	return rec.ID, nil
}

func (s *Storage) LoadGame(id uint64) (*GameRecord, error) {
	var rec GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %d", ErrGameNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Games calls fn for every stored game in ID order until fn returns false.
func (s *Storage) Games(fn func(*GameRecord) bool) error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(prefixGame)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			if !fn(&rec) {
				return nil
			}
		}
		return nil
	})
}

// LoadStats returns the tallies for name, or empty stats if it never played.
func (s *Storage) LoadStats(name string) (*Stats, error) {
	var stats *Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn, name)
		return err
	})
	return stats, err
}

func loadStats(txn *badger.Txn, name string) (*Stats, error) {
	stats := &Stats{Name: name}
	item, err := txn.Get(statsKey(name))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	return stats, err
}
