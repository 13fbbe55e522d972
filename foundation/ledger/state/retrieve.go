package state

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
)

// ErrBlockNotFound is returned when the requested block number doesn't exist.
var ErrBlockNotFound = errors.New("block not found")

// Proof is the merkle proof for a single transaction of a block. Digests are
// hex encoded.
type Proof struct {
	Number uint64   `json:"number"`
	Index  int      `json:"index"`
	Leaf   string   `json:"leaf"`
	Hashes []string `json:"hashes"`
	Order  []int64  `json:"order"`
	Root   string   `json:"root"`
}

// =============================================================================

// LatestBlock returns a copy of the last block in the chain.
func (s *State) LatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.chain[len(s.chain)-1].Copy()
}

// Length returns the number of blocks in the chain, genesis included.
func (s *State) Length() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.chain)
}

// Blocks returns a copy of every block in the chain.
func (s *State) Blocks() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blocks := make([]database.Block, len(s.chain))
	for i, block := range s.chain {
		blocks[i] = block.Copy()
	}

	return blocks
}

// BlockByNumber returns a copy of the specified block.
func (s *State) BlockByNumber(number uint64) (database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if number >= uint64(len(s.chain)) {
		return database.Block{}, fmt.Errorf("block %d: %w", number, ErrBlockNotFound)
	}

	return s.chain[number].Copy(), nil
}

// Pending returns the transactions waiting to be mined in submission order.
func (s *State) Pending() []database.Tx {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Copy()
}

// PendingCount returns the number of transactions waiting to be mined.
func (s *State) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Count()
}

// MerkleProof returns the proof that the transaction at the index is part of
// the specified block.
func (s *State) MerkleProof(number uint64, index int) (Proof, error) {
	block, err := s.BlockByNumber(number)
	if err != nil {
		return Proof{}, err
	}

	leaf, hashes, order, err := block.Proof(index)
	if err != nil {
		return Proof{}, err
	}

	proof := Proof{
		Number: number,
		Index:  index,
		Leaf:   hex.EncodeToString(leaf),
		Hashes: make([]string, len(hashes)),
		Order:  order,
		Root:   block.Header.TransRoot,
	}
	for i, h := range hashes {
		proof.Hashes[i] = hex.EncodeToString(h)
	}

	return proof, nil
}

// Records returns the external representation of every block in the chain.
func (s *State) Records() []database.BlockData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]database.BlockData, len(s.chain))
	for i, block := range s.chain {
		records[i] = database.NewBlockData(block)
	}

	return records
}

// Export writes the external representation of the chain as JSON.
func (s *State) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(s.Records()); err != nil {
		return fmt.Errorf("encoding chain: %w", err)
	}

	return nil
}
