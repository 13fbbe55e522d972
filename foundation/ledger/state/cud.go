package state

import (
	"github.com/ardanlabs/ledger/foundation/ledger/database"
)

// SubmitTransaction queues a transaction for the next block. A transaction
// that isn't well formed is not queued and the error wraps
// database.ErrInvalidTransaction.
func (s *State) SubmitTransaction(tx database.Tx) error {
	if err := tx.Validate(); err != nil {
		s.evHandler("state: SubmitTransaction: REJECTED: tx[%s]: %s", tx, err)
		return err
	}

	s.mu.Lock()
	n := s.mempool.Append(tx)
	s.mu.Unlock()

	s.evHandler("state: SubmitTransaction: QUEUED: tx[%s]: pending[%d]", tx, n)

	if s.autoMine && s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return nil
}
