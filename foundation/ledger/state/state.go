// Package state is the core API for the ledger and implements all the
// business rules for accepting transactions, mining blocks and validating
// the chain.
package state

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/mempool"
)

// DefaultDifficulty is the number of leading zeros required when the
// configuration doesn't specify one.
const DefaultDifficulty = 2

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger. A nil
// Difficulty selects DefaultDifficulty, zero is a valid difficulty.
type Config struct {
	Difficulty  *uint
	MaxAttempts uint64
	AutoMine    bool
	EvHandler   EventHandler
}

// State manages the chain of blocks and the pending transactions. The chain
// always holds the genesis block at index 0.
type State struct {
	difficulty  uint
	maxAttempts uint64
	autoMine    bool
	evHandler   EventHandler

	mu      sync.RWMutex
	mineMu  sync.Mutex
	chain   []database.Block
	mempool *mempool.Mempool

	Worker Worker
}

// New constructs a new ledger holding only the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	difficulty := uint(DefaultDifficulty)
	if cfg.Difficulty != nil {
		difficulty = *cfg.Difficulty
	}

	if difficulty > database.MaxDifficulty {
		return nil, fmt.Errorf("difficulty %d is larger than the max of %d", difficulty, database.MaxDifficulty)
	}

	genesis := database.Genesis()
	ev("state: New: genesis: blk[%s]", genesis.Hash)

	state := State{
		difficulty:  difficulty,
		maxAttempts: cfg.MaxAttempts,
		autoMine:    cfg.AutoMine,
		evHandler:   ev,
		chain:       []database.Block{genesis},
		mempool:     mempool.New(),
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the ledger.

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all mining activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}
}

// Difficulty returns the number of leading zeros required of a block hash.
func (s *State) Difficulty() uint {
	return s.difficulty
}
