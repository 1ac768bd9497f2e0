// Package assetid derives the encoded asset id used on-chain from an asset
// symbol: "0x" followed by the lowercase hex keccak-256 of the symbol bytes.
package assetid

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Len is the length of an encoded id including the 0x prefix.
const Len = 2 + 2*32

// Encode returns the encoded id for symbol. The symbol is hashed as given;
// callers are expected to pass catalog symbols verbatim.
func Encode(symbol string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(symbol))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
