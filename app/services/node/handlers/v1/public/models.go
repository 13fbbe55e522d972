package public

import (
	"errors"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/validate"
	"github.com/shopspring/decimal"
)

// newTx is the payload for submitting a transaction. The amount is carried
// as a string so no precision is lost in the JSON number conversion.
type newTx struct {
	Sender   string `json:"sender" validate:"required"`
	Receiver string `json:"receiver" validate:"required"`
	Amount   string `json:"amount" validate:"required"`
	Kind     string `json:"kind" validate:"required"`
}

// toTx parses the amount and constructs the ledger transaction. Amounts
// must be greater than zero.
func (ntx newTx) toTx() (database.Tx, error) {
	amount, err := decimal.NewFromString(ntx.Amount)
	if err != nil {
		return database.Tx{}, validate.FieldErrors{{Field: "amount", Err: "amount must be a decimal number"}}
	}

	if !amount.IsPositive() {
		return database.Tx{}, validate.FieldErrors{{Field: "amount", Err: "amount must be greater than zero"}}
	}

	return database.NewTx(ntx.Sender, ntx.Receiver, amount, database.Kind(ntx.Kind))
}

// tx is the view of a pending transaction.
type tx struct {
	Sender   string          `json:"sender"`
	Receiver string          `json:"receiver"`
	Amount   decimal.Decimal `json:"amount"`
	Kind     string          `json:"kind"`
}

func toTxs(trans []database.Tx) []tx {
	txs := make([]tx, len(trans))
	for i, tran := range trans {
		txs[i] = tx{
			Sender:   tran.Sender,
			Receiver: tran.Receiver,
			Amount:   tran.Amount,
			Kind:     string(tran.Kind),
		}
	}
	return txs
}

// validation is the result of walking the chain.
type validation struct {
	Valid  bool    `json:"valid"`
	Length int     `json:"length"`
	Block  *uint64 `json:"block,omitempty"`
	Check  string  `json:"check,omitempty"`
	Error  string  `json:"error,omitempty"`
}

func toValidation(length int, err error) validation {
	v := validation{
		Valid:  err == nil,
		Length: length,
	}

	if err != nil {
		v.Error = err.Error()

		var be *database.BlockError
		if errors.As(err, &be) {
			number := be.Number
			v.Block = &number
			v.Check = be.Check
			v.Error = be.Err.Error()
		}
	}

	return v
}

type status struct {
	Status string `json:"status"`
}
