package hash

import (
	"encoding/binary"

	ecommon "github.com/ethereum/go-ethereum/common"
	ecrypto "github.com/ethereum/go-ethereum/crypto"
)

// Hash256 is the 32 byte keccak hash
type Hash256 = ecommon.Hash

// HashLength is the expected length of the hash
const HashLength = ecommon.HashLength

// Hash calculates and returns the Keccak256 hash of the input data.
func Hash(data ...[]byte) Hash256 {
	return Hash256(ecrypto.Keccak256Hash(data...))
}

// Uint64 returns the leading uint64 of the hash of the input data.
func Uint64(data ...[]byte) uint64 {
	h := Hash(data...)
	return binary.LittleEndian.Uint64(h[:])
}

// Hashes returns the result of Hash(h1+'h'+...)
func Hashes(hs ...Hash256) Hash256 {
	if len(hs) == 0 {
		return Hash()
	}
	data := make([]byte, 0, (HashLength+1)*len(hs)-1)
	for i, h := range hs {
		data = append(data, h[:]...)
		if i < len(hs)-1 {
			data = append(data, 'h')
		}
	}
	return Hash(data)
}

// HexToHash parses a hex string with or without the 0x prefix
func HexToHash(s string) Hash256 {
	return ecommon.HexToHash(s)
}
