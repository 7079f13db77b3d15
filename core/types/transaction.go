package types

import (
	"bytes"
	"io"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
	"github.com/meverselabs/partyround/common/hash"
	"github.com/pkg/errors"
)

const maxTransactionArgs = 16

// Transaction calls a contract method on behalf of the signer
type Transaction struct {
	Seq    uint64         `json:"seq"`
	To     common.Address `json:"to"`
	Method string         `json:"method"`
	Args   []string       `json:"args"`
}

// Hash returns the signing hash of the transaction
func (tx *Transaction) Hash() hash.Hash256 {
	var buffer bytes.Buffer
	if _, err := tx.WriteTo(&buffer); err != nil {
		panic(err)
	}
	return hash.Hash(buffer.Bytes())
}

// Arguments returns the arguments in the form the dispatcher takes
func (tx *Transaction) Arguments() []interface{} {
	args := make([]interface{}, 0, len(tx.Args))
	for _, a := range tx.Args {
		args = append(args, a)
	}
	return args
}

func (tx *Transaction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint64(w, tx.Seq); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, tx.To); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, tx.Method); err != nil {
		return sum, err
	}
	if len(tx.Args) > maxTransactionArgs {
		return sw.Sum(), errors.Wrapf(bin.ErrExceedLimit, "argument count %v", len(tx.Args))
	}
	if sum, err := sw.Uint8(w, uint8(len(tx.Args))); err != nil {
		return sum, err
	}
	for _, a := range tx.Args {
		if sum, err := sw.String(w, a); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (tx *Transaction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Uint64(r, &tx.Seq); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &tx.To); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &tx.Method); err != nil {
		return sum, err
	}
	var Len uint8
	if sum, err := sr.Uint8(r, &Len); err != nil {
		return sum, err
	}
	if Len > maxTransactionArgs {
		return sr.Sum(), errors.Wrapf(bin.ErrExceedLimit, "argument count %v", Len)
	}
	tx.Args = make([]string, Len)
	for i := range tx.Args {
		if sum, err := sr.String(r, &tx.Args[i]); err != nil {
			return sum, err
		}
	}
	return sr.Sum(), nil
}

// SignedTransaction carries the signature of the transaction hash
type SignedTransaction struct {
	Transaction *Transaction     `json:"tx"`
	Signature   common.Signature `json:"sig"`
}

// Signer recovers the address that signed the transaction
func (stx *SignedTransaction) Signer() (common.Address, error) {
	if stx.Transaction == nil {
		return common.ZeroAddr, errors.WithStack(ErrInvalidArgument)
	}
	h := stx.Transaction.Hash()
	return common.RecoverAddress(h[:], stx.Signature)
}
