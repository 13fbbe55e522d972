package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxData is the external representation of a transaction inside a block
// record. Only the hashed fields are carried.
type TxData struct {
	Sender   string          `json:"sender"`
	Receiver string          `json:"receiver"`
	Amount   decimal.Decimal `json:"amount"`
}

// BlockData is the external representation of a block. Each digest can be
// recalculated from the other fields.
type BlockData struct {
	Number       uint64    `json:"number"`
	TimeStamp    time.Time `json:"timestamp"`
	PrevHash     string    `json:"previousHash"`
	MerkleRoot   *string   `json:"merkleRoot"`
	Nonce        uint64    `json:"nonce"`
	Hash         string    `json:"hash"`
	Transactions []TxData  `json:"transactions"`
}

// NewBlockData constructs the value to serialize.
func NewBlockData(block Block) BlockData {
	trans := make([]TxData, len(block.Trans))
	for i, tx := range block.Trans {
		trans[i] = TxData{
			Sender:   tx.Sender,
			Receiver: tx.Receiver,
			Amount:   tx.Amount,
		}
	}

	var root *string
	if block.Header.TransRoot != "" {
		r := block.Header.TransRoot
		root = &r
	}

	bd := BlockData{
		Number:       block.Header.Number,
		TimeStamp:    block.Header.TimeStamp,
		PrevHash:     block.Header.PrevBlockHash,
		MerkleRoot:   root,
		Nonce:        block.Header.Nonce,
		Hash:         block.Hash,
		Transactions: trans,
	}

	return bd
}

// ToBlock converts a BlockData into a Block. The kind of each transaction
// isn't part of the record and is left empty.
func ToBlock(bd BlockData) Block {
	var trans []Tx
	if len(bd.Transactions) > 0 {
		trans = make([]Tx, len(bd.Transactions))
		for i, tx := range bd.Transactions {
			trans[i] = Tx{
				Sender:   tx.Sender,
				Receiver: tx.Receiver,
				Amount:   tx.Amount,
			}
		}
	}

	var root string
	if bd.MerkleRoot != nil {
		root = *bd.MerkleRoot
	}

	b := Block{
		Header: BlockHeader{
			Number:        bd.Number,
			PrevBlockHash: bd.PrevHash,
			TimeStamp:     bd.TimeStamp,
			TransRoot:     root,
			Nonce:         bd.Nonce,
		},
		Hash:  bd.Hash,
		Trans: trans,
	}

	return b
}
