package partyround

import (
	"io"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
)

// PartyRoundContractConstruction binds the entity to its two token ledgers.
// BaseToken carries the contributed value, OwnershipToken is issued to contributors
// and must list the entity as a minter before Initialize.
type PartyRoundContractConstruction struct {
	BaseToken      common.Address
	OwnershipToken common.Address
}

func (s *PartyRoundContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.BaseToken); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.OwnershipToken); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *PartyRoundContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.BaseToken); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.OwnershipToken); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
