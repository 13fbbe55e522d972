package database_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/validate"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCanonical(t *testing.T) {
	type table struct {
		name      string
		tx        database.Tx
		canonical string
	}

	tt := []table{
		{
			name:      "integral",
			tx:        database.Tx{Sender: "Alice", Receiver: "Bob", Amount: decimal.NewFromInt(50), Kind: database.KindDeposit},
			canonical: `{"amount": 50, "receiver": "Bob", "sender": "Alice"}`,
		},
		{
			name:      "fraction",
			tx:        database.Tx{Sender: "Alice", Receiver: "Bob", Amount: decimal.RequireFromString("12.50"), Kind: database.KindTransfer},
			canonical: `{"amount": 12.5, "receiver": "Bob", "sender": "Alice"}`,
		},
		{
			name:      "quoted",
			tx:        database.Tx{Sender: `a"b`, Receiver: "c\\d", Amount: decimal.NewFromInt(1), Kind: database.KindSave},
			canonical: `{"amount": 1, "receiver": "c\\d", "sender": "a\"b"}`,
		},
		{
			name:      "html",
			tx:        database.Tx{Sender: "A&B", Receiver: "<x>", Amount: decimal.NewFromInt(50), Kind: database.KindTransfer},
			canonical: `{"amount": 50, "receiver": "<x>", "sender": "A&B"}`,
		},
	}

	t.Log("Given the need to serialize transactions canonically.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a %s amount.", testID, tst.name)
			{
				f := func(t *testing.T) {
					got, err := tst.tx.Canonical()
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to serialize: %v", failed, testID, err)
					}

					if string(got) != tst.canonical {
						t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
						t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.canonical)
						t.Fatalf("\t%s\tTest %d:\tShould get the canonical form.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the canonical form.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestLeafHash(t *testing.T) {
	t.Log("Given the need to hash transactions for the merkle tree.")
	{
		t.Logf("\tTest 0:\tWhen hashing a known transaction.")
		{
			const exp = "fd2aff1bbd25dca7091cbc385ccd82fc933a0f775d359ad067f46d4371bac73f"

			tx := database.Tx{Sender: "Alice", Receiver: "Bob", Amount: decimal.NewFromInt(50), Kind: database.KindDeposit}

			h, err := tx.Hash()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to hash: %v", failed, err)
			}

			if got := hex.EncodeToString(h); got != exp {
				t.Logf("\t%s\tTest 0:\tgot: %s", failed, got)
				t.Logf("\t%s\tTest 0:\texp: %s", failed, exp)
				t.Fatalf("\t%s\tTest 0:\tShould get the expected digest.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get the expected digest.", success)
		}

		t.Logf("\tTest 1:\tWhen two transactions differ only by kind.")
		{
			tx1 := database.Tx{Sender: "Alice", Receiver: "Bob", Amount: decimal.NewFromInt(50), Kind: database.KindDeposit}
			tx2 := tx1
			tx2.Kind = database.KindWithdrawal

			h1, _ := tx1.Hash()
			h2, _ := tx2.Hash()

			if hex.EncodeToString(h1) != hex.EncodeToString(h2) {
				t.Fatalf("\t%s\tTest 1:\tShould get the same digest since kind isn't hashed.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould get the same digest since kind isn't hashed.", success)

			if tx1.Equals(tx2) {
				t.Fatalf("\t%s\tTest 1:\tShould not be equal.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould not be equal.", success)
		}
	}
}

func TestNewTx(t *testing.T) {
	type table struct {
		name     string
		sender   string
		receiver string
		kind     database.Kind
		fields   []string
	}

	tt := []table{
		{name: "valid", sender: "Alice", receiver: "Bob", kind: database.KindTransfer},
		{name: "nosender", receiver: "Bob", kind: database.KindTransfer, fields: []string{"sender"}},
		{name: "noreceiver", sender: "Alice", kind: database.KindTransfer, fields: []string{"receiver"}},
		{name: "nokind", sender: "Alice", receiver: "Bob", fields: []string{"kind"}},
		{name: "empty", fields: []string{"sender", "receiver", "kind"}},
		{name: "badsender", sender: "\xff", receiver: "Bob", kind: database.KindTransfer, fields: []string{"sender"}},
		{name: "badreceiver", sender: "Alice", receiver: "B\xfeb", kind: database.KindTransfer, fields: []string{"receiver"}},
		{name: "badkind", sender: "Alice", receiver: "Bob", kind: database.Kind("\xc3"), fields: []string{"kind"}},
	}

	t.Log("Given the need to construct well formed transactions.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling the %s case.", testID, tst.name)
			{
				f := func(t *testing.T) {
					_, err := database.NewTx(tst.sender, tst.receiver, decimal.NewFromInt(10), tst.kind)

					if len(tst.fields) == 0 {
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to construct the transaction: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould be able to construct the transaction.", success, testID)
						return
					}

					if !errors.Is(err, database.ErrInvalidTransaction) {
						t.Fatalf("\t%s\tTest %d:\tShould get ErrInvalidTransaction, got %v.", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get ErrInvalidTransaction.", success, testID)

					fields := validate.GetFieldErrors(err).Fields()
					for _, field := range tst.fields {
						if _, exists := fields[field]; !exists {
							t.Fatalf("\t%s\tTest %d:\tShould get an error for field %q: %v", failed, testID, field, err)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get an error for each bad field.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
