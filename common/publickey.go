package common

import (
	"encoding/hex"

	ecrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// PublicKeySize is 65 bytes
const PublicKeySize = 65

// PublicKey is the uncompressed secp256k1 public key
type PublicKey [PublicKeySize]byte

// String returns the hex string of the public key
func (pubkey PublicKey) String() string {
	return hex.EncodeToString(pubkey[:])
}

// Address returns the account address derived from the public key
func (pubkey PublicKey) Address() Address {
	h := ecrypto.Keccak256(pubkey[1:])
	return BytesToAddress(h[12:])
}

// RecoverAddress returns the address that produced sig over h
func RecoverAddress(h []byte, sig Signature) (Address, error) {
	if len(sig) != SignatureSize {
		return ZeroAddr, errors.WithStack(ErrInvalidSignatureFormat)
	}
	bs, err := ecrypto.Ecrecover(h, sig)
	if err != nil {
		return ZeroAddr, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	if len(bs) != PublicKeySize {
		return ZeroAddr, errors.WithStack(ErrInvalidPublicKey)
	}
	var pubkey PublicKey
	copy(pubkey[:], bs)
	return pubkey.Address(), nil
}
