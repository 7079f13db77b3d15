package common

import (
	"bytes"
	"encoding/hex"
	"sort"
	"strings"

	ecommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// Address identifies an account or a contract
type Address = ecommon.Address

// ZeroAddr is the empty address
var ZeroAddr = Address{}

// AddressLength is the expected length of the address
const AddressLength = ecommon.AddressLength

// BytesToAddress returns Address with value b.
// If b is larger than len(h), b will be cropped from the left.
func BytesToAddress(b []byte) Address {
	return ecommon.BytesToAddress(b)
}

// HexToAddress returns Address with byte values of s.
func HexToAddress(s string) Address {
	return ecommon.HexToAddress(s)
}

// ParseAddress parses the hex string with or without the 0x prefix
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != AddressLength*2 {
		return ZeroAddr, errors.WithStack(ErrInvalidAddressFormat)
	}
	h, err := hex.DecodeString(s)
	if err != nil {
		return ZeroAddr, errors.WithStack(err)
	}
	var addr Address
	copy(addr[:], h)
	return addr, nil
}

// MustParseAddress panics when the address is invalid
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// ContainsAddress reports whether addr is in the list
func ContainsAddress(list []Address, addr Address) bool {
	for _, v := range list {
		if v == addr {
			return true
		}
	}
	return false
}

// SortAddresses sorts the list in byte order
func SortAddresses(list []Address) {
	sort.Slice(list, func(i, j int) bool {
		return bytes.Compare(list[i][:], list[j][:]) < 0
	})
}
