package worker_test

import (
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/database"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/ledger/worker"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func tx(amount int64) database.Tx {
	return database.Tx{Sender: "Alice", Receiver: "Bob", Amount: decimal.NewFromInt(amount), Kind: database.KindTransfer}
}

func waitFor(cond func() bool, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestAutoMine(t *testing.T) {
	t.Log("Given the need to mine in the background.")
	{
		t.Logf("\tTest 0:\tWhen transactions are submitted with auto mining on.")
		{
			difficulty := uint(1)
			st, err := state.New(state.Config{Difficulty: &difficulty, AutoMine: true})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the ledger: %v", failed, err)
			}

			w := worker.Run(st, worker.Config{}, nil)
			defer st.Shutdown()

			if st.Worker != w {
				t.Fatalf("\t%s\tTest 0:\tShould register the worker with the ledger.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould register the worker with the ledger.", success)

			for i := 1; i <= 3; i++ {
				if err := st.SubmitTransaction(tx(int64(i))); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to submit: %v", failed, err)
				}
			}

			mined := func() bool {
				if len(st.Pending()) != 0 {
					return false
				}
				var n int
				for _, b := range st.Blocks() {
					n += len(b.Trans)
				}
				return n == 3
			}

			if !waitFor(mined, 5*time.Second) {
				t.Fatalf("\t%s\tTest 0:\tShould mine every transaction.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould mine every transaction.", success)

			if !st.IsValid() {
				t.Fatalf("\t%s\tTest 0:\tShould be a valid chain: %v", failed, st.Validate())
			}
			t.Logf("\t%s\tTest 0:\tShould be a valid chain.", success)
		}
	}
}

func TestTimeout(t *testing.T) {
	t.Log("Given the need to bound background mining.")
	{
		t.Logf("\tTest 0:\tWhen the block can't be solved before the timeout.")
		{
			difficulty := uint(database.MaxDifficulty)
			st, err := state.New(state.Config{Difficulty: &difficulty})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the ledger: %v", failed, err)
			}

			w := worker.Run(st, worker.Config{MiningTimeout: 50 * time.Millisecond}, nil)

			if err := st.SubmitTransaction(tx(1)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit: %v", failed, err)
			}
			w.SignalStartMining()

			time.Sleep(200 * time.Millisecond)

			if st.Length() != 1 || len(st.Pending()) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the chain and pending unchanged.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the chain and pending unchanged.", success)

			done := make(chan struct{})
			go func() {
				st.Shutdown()
				close(done)
			}()

			select {
			case <-done:
				t.Logf("\t%s\tTest 0:\tShould shut down while mining.", success)
			case <-time.After(5 * time.Second):
				t.Fatalf("\t%s\tTest 0:\tShould shut down while mining.", failed)
			}
		}
	}
}
