package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ardanlabs/ledger/foundation/ledger/digest"
	"github.com/ardanlabs/ledger/foundation/validate"
	"github.com/shopspring/decimal"
)

// Pseudo accounts used by the banking application for value entering and
// leaving the system.
const (
	SystemAccount = "SYSTEM"
	ATMAccount    = "ATM"
)

// Kind tags the purpose of a transaction.
type Kind string

// Set of known transaction kinds. Any non-empty kind is accepted.
const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindTransfer   Kind = "transfer"
	KindSave       Kind = "save"
)

// ErrInvalidTransaction is returned when a transaction is not well formed.
var ErrInvalidTransaction = errors.New("invalid transaction")

// =============================================================================

// Tx is an immutable record of value moving between two parties.
type Tx struct {
	Sender   string          `json:"sender" validate:"required"`
	Receiver string          `json:"receiver" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Kind     Kind            `json:"kind" validate:"required"`
}

// NewTx constructs a transaction and checks it is well formed.
func NewTx(sender string, receiver string, amount decimal.Decimal, kind Kind) (Tx, error) {
	tx := Tx{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
		Kind:     kind,
	}

	if err := tx.Validate(); err != nil {
		return Tx{}, err
	}

	return tx, nil
}

// Validate checks the transaction is well formed. The returned error wraps
// ErrInvalidTransaction.
func (tx Tx) Validate() error {
	if err := validate.Check(tx); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTransaction, err)
	}

	// The canonical encoding can't carry invalid UTF-8 byte for byte.
	fields := []struct {
		name  string
		value string
	}{
		{"sender", tx.Sender},
		{"receiver", tx.Receiver},
		{"kind", string(tx.Kind)},
	}
	var fe validate.FieldErrors
	for _, fld := range fields {
		if !utf8.ValidString(fld.value) {
			fe = append(fe, validate.FieldError{Field: fld.name, Err: fld.name + " must be valid UTF-8"})
		}
	}
	if len(fe) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTransaction, fe)
	}

	return nil
}

// Canonical returns the byte stable encoding that is hashed for the merkle
// leaf of this transaction. The kind is metadata and is not part of it.
func (tx Tx) Canonical() ([]byte, error) {
	receiver, err := quote(tx.Receiver)
	if err != nil {
		return nil, err
	}

	sender, err := quote(tx.Sender)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(`{"amount": `)
	b.WriteString(tx.Amount.String())
	b.WriteString(`, "receiver": `)
	b.Write(receiver)
	b.WriteString(`, "sender": `)
	b.Write(sender)
	b.WriteString(`}`)

	return []byte(b.String()), nil
}

// Hash implements the merkle Hashable interface for providing the leaf
// digest of a transaction.
func (tx Tx) Hash() ([]byte, error) {
	data, err := tx.Canonical()
	if err != nil {
		return nil, err
	}

	return digest.Sum(data), nil
}

// Equals implements the merkle Hashable interface for providing an equality
// check between two transactions.
func (tx Tx) Equals(otherTx Tx) bool {
	return tx.Sender == otherTx.Sender &&
		tx.Receiver == otherTx.Receiver &&
		tx.Amount.Equal(otherTx.Amount) &&
		tx.Kind == otherTx.Kind
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%s:%s", tx.Sender, tx.Receiver, tx.Amount, tx.Kind)
}

// quote encodes the string as a JSON string without escaping HTML
// characters.
func quote(s string) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
