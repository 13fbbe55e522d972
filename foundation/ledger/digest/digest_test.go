package digest_test

import (
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/digest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestHex(t *testing.T) {
	t.Log("Given the need to produce stable digests.")
	{
		t.Logf("\tTest 0:\tWhen hashing a known value.")
		{
			const exp = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

			got := digest.HexString("hello")
			if got != exp {
				t.Logf("\t%s\tTest 0:\tgot: %s", failed, got)
				t.Logf("\t%s\tTest 0:\texp: %s", failed, exp)
				t.Fatalf("\t%s\tTest 0:\tShould get the sha256 hex digest.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get the sha256 hex digest.", success)

			if got != digest.Hex([]byte("hello")) {
				t.Fatalf("\t%s\tTest 0:\tShould get the same digest for bytes and strings.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get the same digest for bytes and strings.", success)
		}
	}
}

func TestLeadingZeros(t *testing.T) {
	type table struct {
		name string
		hash string
		n    uint
		exp  bool
	}

	full := "00a" + strings.Repeat("f", digest.Size-3)

	tt := []table{
		{name: "zero", hash: full, n: 0, exp: true},
		{name: "two", hash: full, n: 2, exp: true},
		{name: "three", hash: full, n: 3, exp: false},
		{name: "short", hash: "00", n: 2, exp: false},
		{name: "toolarge", hash: full, n: digest.Size + 1, exp: false},
	}

	t.Log("Given the need to check proof of work difficulty.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				got := digest.LeadingZeros(tst.hash, tst.n)
				if got != tst.exp {
					t.Fatalf("\t%s\tTest %d:\tShould get %v for %d leading zeros, got %v.", failed, testID, tst.exp, tst.n, got)
				}
				t.Logf("\t%s\tTest %d:\tShould get %v for %d leading zeros.", success, testID, tst.exp, tst.n)
			}

			t.Run(tst.name, f)
		}
	}
}
