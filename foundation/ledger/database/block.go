package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/digest"
	"github.com/ardanlabs/ledger/foundation/ledger/merkle"
)

// TimeLayout is the layout used to fold a block timestamp into its hash.
const TimeLayout = "2006-01-02 15:04:05.000000"

// MaxDifficulty is the largest number of leading zeros a hex digest can have.
const MaxDifficulty = digest.Size

// ErrMiningExhausted is returned from POW when the attempt limit is reached
// before a solution was found.
var ErrMiningExhausted = errors.New("mining attempts exhausted")

// Set of checks performed when validating a block against its parent.
const (
	CheckHash       = "hash"
	CheckMerkleRoot = "merkle root"
	CheckPrevHash   = "previous hash"
)

// =============================================================================

// BlockHeader represents the sealed information for each block.
type BlockHeader struct {
	Number        uint64    `json:"number"`          // Position of the block in the chain.
	PrevBlockHash string    `json:"prev_block_hash"` // Bitcoin: Hash of the previous block in the chain.
	TimeStamp     time.Time `json:"timestamp"`       // Bitcoin: Time the block was constructed.
	TransRoot     string    `json:"trans_root"`      // Bitcoin/Ethereum: Represents the merkle tree root hash for the transactions in this block.
	Nonce         uint64    `json:"nonce"`           // Bitcoin: Value identified to solve the hash solution.
}

// Block represents a group of transactions batched together. Hash is a cache
// of the header hash as calculated when the block was sealed.
type Block struct {
	Header BlockHeader
	Hash   string
	Trans  []Tx
}

// Genesis constructs the first block of a chain. It holds no transactions
// and is not mined.
func Genesis() Block {
	return newBlock(0, digest.GenesisHash, nil, "")
}

// POW constructs a new Block on top of the previous block and performs the
// work to find a nonce that solves the cryptographic POW puzzle. A maxAttempts
// of zero means the search is only bounded by the context.
func POW(ctx context.Context, difficulty uint, prevBlock Block, trans []Tx, maxAttempts uint64, evHandler func(v string, args ...any)) (Block, error) {

	// Construct a merkle tree from the transactions for this block. The root
	// of this tree will be part of the block to be mined.
	root, err := merkle.RootHex(trans)
	if err != nil {
		return Block{}, err
	}

	nb := newBlock(prevBlock.Header.Number+1, prevBlock.Hash, trans, root)

	// Perform the proof of work mining operation.
	if err := nb.performPOW(ctx, difficulty, maxAttempts, evHandler); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// newBlock captures the construction time and calculates the initial hash.
func newBlock(number uint64, prevHash string, trans []Tx, root string) Block {
	b := Block{
		Header: BlockHeader{
			Number:        number,
			PrevBlockHash: prevHash,
			TimeStamp:     time.Now().UTC().Truncate(time.Microsecond),
			TransRoot:     root,
			Nonce:         0,
		},
		Trans: trans,
	}
	b.Hash = b.CalculateHash()

	return b
}

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being discovered.
func (b *Block) performPOW(ctx context.Context, difficulty uint, maxAttempts uint64, ev func(v string, args ...any)) error {
	ev("database: PerformPOW: MINING: started: blk[%d]: difficulty[%d]", b.Header.Number, difficulty)
	defer ev("database: PerformPOW: MINING: completed: blk[%d]", b.Header.Number)

	// Log the transactions that are a part of this potential block.
	for _, tx := range b.Trans {
		ev("database: PerformPOW: MINING: tx[%s]", tx)
	}

	if difficulty > MaxDifficulty {
		return fmt.Errorf("difficulty %d can't be solved, max %d", difficulty, MaxDifficulty)
	}

	var attempts uint64
	for !IsHashSolved(difficulty, b.Hash) {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: PerformPOW: MINING: attempts[%d]", attempts)
		}

		// Did we timeout trying to solve the problem.
		if attempts%1024 == 0 && ctx.Err() != nil {
			ev("database: PerformPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		if maxAttempts > 0 && attempts > maxAttempts {
			ev("database: PerformPOW: MINING: EXHAUSTED: attempts[%d]", maxAttempts)
			return ErrMiningExhausted
		}

		b.Header.Nonce++
		b.Hash = b.CalculateHash()
	}

	if ctx.Err() != nil {
		ev("database: PerformPOW: MINING: CANCELLED")
		return ctx.Err()
	}

	ev("database: PerformPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: attempts[%d]", b.Header.PrevBlockHash, b.Hash, attempts)

	return nil
}

// CalculateHash returns the hash of the block header from its stored fields.
// The transactions are covered through the merkle root.
func (b Block) CalculateHash() string {
	return HeaderHash(b.Header)
}

// HeaderHash hashes the timestamp, previous hash, merkle root and nonce of
// the header in that order.
func HeaderHash(h BlockHeader) string {
	s := h.TimeStamp.UTC().Format(TimeLayout) + h.PrevBlockHash + h.TransRoot + strconv.FormatUint(h.Nonce, 10)
	return digest.HexString(s)
}

// MerkleRoot recalculates the merkle root from the current transactions.
func (b Block) MerkleRoot() (string, error) {
	return merkle.RootHex(b.Trans)
}

// Proof returns the merkle proof for the transaction at the specified index.
func (b Block) Proof(index int) (leaf []byte, proof [][]byte, order []int64, err error) {
	if index < 0 || index >= len(b.Trans) {
		return nil, nil, nil, fmt.Errorf("transaction index %d out of range, block has %d", index, len(b.Trans))
	}

	tree, err := merkle.NewTree(b.Trans)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := tree.Verify(); err != nil {
		return nil, nil, nil, err
	}

	if err := tree.VerifyData(b.Trans[index]); err != nil {
		return nil, nil, nil, err
	}

	leaf, err = b.Trans[index].Hash()
	if err != nil {
		return nil, nil, nil, err
	}

	proof, order, err = tree.Proof(b.Trans[index])
	if err != nil {
		return nil, nil, nil, err
	}

	return leaf, proof, order, nil
}

// ValidateBlock takes a block and validates it against its parent. The
// returned error is a *BlockError naming the failed check.
func (b Block) ValidateBlock(previousBlock Block, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: validate: blk[%d]: check: block hash matches header", b.Header.Number)

	if hash := b.CalculateHash(); hash != b.Hash {
		return &BlockError{Number: b.Header.Number, Check: CheckHash, Err: fmt.Errorf("block hash doesn't match header, got %s, exp %s", b.Hash, hash)}
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: merkle root does match transactions", b.Header.Number)

	root, err := b.MerkleRoot()
	if err != nil {
		return &BlockError{Number: b.Header.Number, Check: CheckMerkleRoot, Err: err}
	}
	if root != b.Header.TransRoot {
		return &BlockError{Number: b.Header.Number, Check: CheckMerkleRoot, Err: fmt.Errorf("merkle root does not match transactions, got %s, exp %s", b.Header.TransRoot, root)}
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: parent hash does match parent block", b.Header.Number)

	if b.Header.PrevBlockHash != previousBlock.Hash {
		return &BlockError{Number: b.Header.Number, Check: CheckPrevHash, Err: fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.Header.PrevBlockHash, previousBlock.Hash)}
	}

	return nil
}

// Copy returns a block that shares no transaction storage with the original.
func (b Block) Copy() Block {
	if b.Trans != nil {
		trans := make([]Tx, len(b.Trans))
		copy(trans, b.Trans)
		b.Trans = trans
	}

	return b
}

// IsHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func IsHashSolved(difficulty uint, hash string) bool {
	return digest.LeadingZeros(hash, difficulty)
}

// =============================================================================

// BlockError identifies the block and the check that failed validation.
type BlockError struct {
	Number uint64
	Check  string
	Err    error
}

// Error implements the error interface.
func (be *BlockError) Error() string {
	return fmt.Sprintf("block %d: %s: %s", be.Number, be.Check, be.Err)
}

// Unwrap returns the underlying error.
func (be *BlockError) Unwrap() error {
	return be.Err
}
