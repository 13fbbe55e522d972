package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/digest"
)

// ErrNoBlocks is returned when an exported chain holds no records.
var ErrNoBlocks = errors.New("chain has no blocks")

// Validate walks the chain from the first block after genesis, recalculating
// each block hash and merkle root and checking the link to the parent. It
// stops at the first failure and returns a *database.BlockError naming the
// block and the check.
func (s *State) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := validateChain(s.chain[1:], s.chain[0], s.evHandler); err != nil {
		s.evHandler("state: Validate: INVALID: %s", err)
		return err
	}

	return nil
}

// IsValid reports whether every block in the chain passes validation.
func (s *State) IsValid() bool {
	return s.Validate() == nil
}

// =============================================================================

// ValidateRecords checks a chain in its external record form. Unlike a live
// ledger the genesis record is checked too: its hash must match its fields
// and it must link to the genesis sentinel.
func ValidateRecords(records []database.BlockData, evHandler EventHandler) error {
	if evHandler == nil {
		evHandler = func(v string, args ...any) {}
	}

	if len(records) == 0 {
		return ErrNoBlocks
	}

	blocks := make([]database.Block, len(records))
	for i, record := range records {
		blocks[i] = database.ToBlock(record)
	}

	sentinel := database.Block{Hash: digest.GenesisHash}
	if err := validateChain(blocks, sentinel, evHandler); err != nil {
		evHandler("state: ValidateRecords: INVALID: %s", err)
		return err
	}

	return nil
}

// VerifyExport reads a chain written by Export and validates it. It returns
// the number of blocks read.
func VerifyExport(r io.Reader, evHandler EventHandler) (int, error) {
	var records []database.BlockData
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("decoding chain: %w", err)
	}

	return len(records), ValidateRecords(records, evHandler)
}

// validateChain validates each block against the one before it, starting
// with the specified parent.
func validateChain(blocks []database.Block, parent database.Block, evHandler EventHandler) error {
	for _, block := range blocks {
		if err := block.ValidateBlock(parent, evHandler); err != nil {
			return err
		}
		parent = block
	}

	return nil
}
