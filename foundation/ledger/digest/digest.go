// Package digest provides the hashing helpers shared by the ledger packages.
// Every digest in the ledger is a sha256 sum rendered as lowercase hex.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GenesisHash is the previous hash recorded by the genesis block.
const GenesisHash = "0"

// Size is the length of a hex encoded digest.
const Size = sha256.Size * 2

// Sum returns the raw sha256 sum of the data.
func Sum(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// Hex returns the hex encoded sha256 sum of the data.
func Hex(data []byte) string {
	return hex.EncodeToString(Sum(data))
}

// HexString returns the hex encoded sha256 sum of the string.
func HexString(s string) string {
	return Hex([]byte(s))
}

// LeadingZeros reports whether the first n characters of the hex digest
// are all '0'. A digest that isn't full length never qualifies.
func LeadingZeros(hash string, n uint) bool {
	if len(hash) != Size || n > Size {
		return false
	}

	return strings.Count(hash[:n], "0") == int(n)
}
