package key

import (
	"crypto/ecdsa"

	ecrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/hash"
)

// Key defines crypto key functions
type Key interface {
	Sign(h hash.Hash256) (common.Signature, error)
	Verify(h hash.Hash256, sig common.Signature) bool
	PublicKey() common.PublicKey
	Clear()
}

// MemoryKey is the secp256k1 private key held in memory
type MemoryKey struct {
	privkey *ecdsa.PrivateKey
	pubkey  common.PublicKey
}

// NewMemoryKey returns a freshly generated MemoryKey
func NewMemoryKey() (*MemoryKey, error) {
	privkey, err := ecrypto.GenerateKey()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return newMemoryKey(privkey), nil
}

// NewMemoryKeyFromBytes parses the 32 byte private key
func NewMemoryKeyFromBytes(pk []byte) (*MemoryKey, error) {
	privkey, err := ecrypto.ToECDSA(pk)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return newMemoryKey(privkey), nil
}

// NewMemoryKeyFromHex parses the hex encoded private key
func NewMemoryKeyFromHex(str string) (*MemoryKey, error) {
	privkey, err := ecrypto.HexToECDSA(str)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return newMemoryKey(privkey), nil
}

func newMemoryKey(privkey *ecdsa.PrivateKey) *MemoryKey {
	ac := &MemoryKey{
		privkey: privkey,
	}
	copy(ac.pubkey[:], ecrypto.FromECDSAPub(&privkey.PublicKey))
	return ac
}

// Sign returns the recoverable signature of the hash
func (ac *MemoryKey) Sign(h hash.Hash256) (common.Signature, error) {
	if ac.privkey == nil {
		return nil, errors.New("cleared key")
	}
	bs, err := ecrypto.Sign(h[:], ac.privkey)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return common.Signature(bs), nil
}

// Verify checks the signature with the public key
func (ac *MemoryKey) Verify(h hash.Hash256, sig common.Signature) bool {
	if len(sig) < 64 {
		return false
	}
	return ecrypto.VerifySignature(ac.pubkey[:], h[:], sig[:64])
}

// PublicKey returns the public key of the private key
func (ac *MemoryKey) PublicKey() common.PublicKey {
	return ac.pubkey
}

// Address returns the account address of the key
func (ac *MemoryKey) Address() common.Address {
	return ac.pubkey.Address()
}

// Bytes returns the raw private key
func (ac *MemoryKey) Bytes() []byte {
	if ac.privkey == nil {
		return nil
	}
	return ecrypto.FromECDSA(ac.privkey)
}

// Clear removes the private key from memory
func (ac *MemoryKey) Clear() {
	ac.privkey = nil
}
