package state

import (
	"context"
	"errors"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are no pending transactions.
var ErrNoTransactions = errors.New("no transactions to mine")

// =============================================================================

// MinePending builds a block from every pending transaction, solves the POW
// puzzle and appends the block to the chain. The chain append and the removal
// of the mined transactions from pending happen together. Transactions
// submitted while mining stay pending for the next block.
func (s *State) MinePending(ctx context.Context) (database.Block, error) {
	s.mineMu.Lock()
	defer s.mineMu.Unlock()

	s.evHandler("state: MinePending: MINING: check mempool count")

	s.mu.RLock()
	trans := s.mempool.Copy()
	latest := s.chain[len(s.chain)-1]
	s.mu.RUnlock()

	if len(trans) == 0 {
		s.evHandler("state: MinePending: MINING: no transactions to mine")
		return database.Block{}, ErrNoTransactions
	}

	s.evHandler("state: MinePending: MINING: perform POW: txs[%d]", len(trans))

	// Attempt to create a new block by solving the POW puzzle. This can be cancelled.
	block, err := database.POW(ctx, s.difficulty, latest, trans, s.maxAttempts, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MinePending: MINING: update local state: blk[%d]", block.Header.Number)

	s.mu.Lock()
	{
		s.chain = append(s.chain, block)
		s.mempool.Remove(len(trans))
	}
	s.mu.Unlock()

	return block.Copy(), nil
}
