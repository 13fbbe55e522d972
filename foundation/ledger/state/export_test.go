package state

import (
	"github.com/shopspring/decimal"
)

// The functions in this file are only compiled for tests. They provide the
// in place mutation of stored blocks that tamper detection is tested with.

// TamperAmount replaces the amount of a stored transaction without touching
// the merkle root or the block hash.
func (s *State) TamperAmount(number int, index int, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chain[number].Trans[index].Amount = amount
}

// TamperRehash recalculates and overwrites only the hash of a stored block.
func (s *State) TamperRehash(number int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chain[number].Hash = s.chain[number].CalculateHash()
}

// TamperPrevHash replaces the previous hash of a stored block.
func (s *State) TamperPrevHash(number int, prevHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chain[number].Header.PrevBlockHash = prevHash
}

// TamperSwap swaps two stored blocks.
func (s *State) TamperSwap(i int, j int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chain[i], s.chain[j] = s.chain[j], s.chain[i]
}
