package merkle_test

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/merkle"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// Data uses the sha256 hashing algorithm for the merkle tree.
type Data struct {
	x string
}

// Hash hashes the values using sha256.
func (d Data) Hash() ([]byte, error) {
	h := sha256.Sum256([]byte(d.x))
	return h[:], nil
}

// Equals tests for equality of two piece of data.
func (d Data) Equals(other Data) bool {
	return d.x == other.x
}

func leaf(s string) []byte {
	h := sha256.Sum256([]byte(s))
	return h[:]
}

func pair(l, r []byte) []byte {
	h := sha256.Sum256([]byte(hex.EncodeToString(l) + hex.EncodeToString(r)))
	return h[:]
}

func values(xs ...string) []Data {
	data := make([]Data, len(xs))
	for i, x := range xs {
		data[i] = Data{x: x}
	}
	return data
}

// =============================================================================

func TestRoot(t *testing.T) {
	type table struct {
		name string
		data []Data
		exp  []byte
	}

	a, b, c, d := leaf("a"), leaf("b"), leaf("c"), leaf("d")

	tt := []table{
		{name: "one", data: values("a"), exp: a},
		{name: "two", data: values("a", "b"), exp: pair(a, b)},
		{name: "three", data: values("a", "b", "c"), exp: pair(pair(a, b), pair(c, c))},
		{name: "four", data: values("a", "b", "c", "d"), exp: pair(pair(a, b), pair(c, d))},
		{name: "five", data: values("a", "b", "c", "d", "a"), exp: pair(pair(pair(a, b), pair(c, d)), pair(pair(a, a), pair(a, a)))},
	}

	t.Log("Given the need to build merkle roots.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling %d values.", testID, len(tst.data))
			{
				f := func(t *testing.T) {
					tree, err := merkle.NewTree(tst.data)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to build the tree: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to build the tree.", success, testID)

					if !bytes.Equal(tree.MerkleRoot, tst.exp) {
						t.Logf("\t%s\tTest %d:\tgot: %x", failed, testID, tree.MerkleRoot)
						t.Logf("\t%s\tTest %d:\texp: %x", failed, testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected root.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected root.", success, testID)

					if tree.RootHex() != hex.EncodeToString(tst.exp) {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected hex root.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected hex root.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestOddPadding(t *testing.T) {
	t.Log("Given the need to pad an odd number of values.")
	{
		t.Logf("\tTest 0:\tWhen comparing three values to four with the last repeated.")
		{
			three, err := merkle.NewTree(values("a", "b", "c"))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to build the tree: %v", failed, err)
			}

			four, err := merkle.NewTree(values("a", "b", "c", "c"))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to build the tree: %v", failed, err)
			}

			if !bytes.Equal(three.MerkleRoot, four.MerkleRoot) {
				t.Fatalf("\t%s\tTest 0:\tShould get the same root.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get the same root.", success)
		}
	}
}

func TestDeterminism(t *testing.T) {
	t.Log("Given the need for roots to be reproducible and order sensitive.")
	{
		t.Logf("\tTest 0:\tWhen building the same values twice.")
		{
			r1, err := merkle.RootHex(values("a", "b", "c"))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to build the root: %v", failed, err)
			}

			r2, err := merkle.RootHex(values("a", "b", "c"))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to build the root: %v", failed, err)
			}

			if r1 != r2 {
				t.Fatalf("\t%s\tTest 0:\tShould get identical roots.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get identical roots.", success)
		}

		t.Logf("\tTest 1:\tWhen swapping two values.")
		{
			r1, _ := merkle.RootHex(values("a", "b", "c"))
			r2, _ := merkle.RootHex(values("b", "a", "c"))

			if r1 == r2 {
				t.Fatalf("\t%s\tTest 1:\tShould get different roots.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould get different roots.", success)
		}
	}
}

func TestEmpty(t *testing.T) {
	t.Log("Given the need to handle no values.")
	{
		t.Logf("\tTest 0:\tWhen building a tree with no values.")
		{
			if _, err := merkle.NewTree([]Data{}); !errors.Is(err, merkle.ErrNoValues) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrNoValues, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrNoValues.", success)

			root, err := merkle.RootHex([]Data{})
			if err != nil || root != "" {
				t.Fatalf("\t%s\tTest 0:\tShould get an absent root, got %q %v.", failed, root, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get an absent root.", success)
		}
	}
}

func TestProof(t *testing.T) {
	t.Log("Given the need to prove a value is part of the tree.")
	{
		for n := 1; n <= 7; n++ {
			t.Logf("\tTest %d:\tWhen handling a tree of %d values.", n, n)
			{
				f := func(t *testing.T) {
					var xs []string
					for i := 0; i < n; i++ {
						xs = append(xs, fmt.Sprintf("tx%d", i))
					}
					data := values(xs...)

					tree, err := merkle.NewTree(data)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to build the tree: %v", failed, n, err)
					}

					for _, d := range data {
						proof, order, err := tree.Proof(d)
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to get a proof for %s: %v", failed, n, d.x, err)
						}

						ok, err := merkle.VerifyProof(leaf(d.x), proof, order, tree.MerkleRoot)
						if err != nil || !ok {
							t.Fatalf("\t%s\tTest %d:\tShould be able to verify the proof for %s: %v", failed, n, d.x, err)
						}

						if err := tree.VerifyData(d); err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould be able to verify the data for %s: %v", failed, n, d.x, err)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould be able to prove every value.", success, n)

					if _, _, err := tree.Proof(Data{x: "missing"}); !errors.Is(err, merkle.ErrNotFound) {
						t.Fatalf("\t%s\tTest %d:\tShould get ErrNotFound for missing data, got %v.", failed, n, err)
					}
					t.Logf("\t%s\tTest %d:\tShould not prove missing data.", success, n)
				}

				t.Run(fmt.Sprintf("size%d", n), f)
			}
		}
	}
}

func TestVerify(t *testing.T) {
	t.Log("Given the need to detect a corrupted tree.")
	{
		t.Logf("\tTest 0:\tWhen the root hash is replaced.")
		{
			tree, err := merkle.NewTree(values("a", "b", "c"))
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to build the tree: %v", failed, err)
			}

			if err := tree.Verify(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould verify an untouched tree: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould verify an untouched tree.", success)

			tree.MerkleRoot = []byte{1}
			if err := tree.Verify(); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould fail to verify a corrupted tree.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould fail to verify a corrupted tree.", success)

			if err := tree.Generate(values("a", "b", "c")); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to rebuild the tree: %v", failed, err)
			}
			if err := tree.Verify(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould verify a rebuilt tree: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould verify a rebuilt tree.", success)
		}
	}
}
