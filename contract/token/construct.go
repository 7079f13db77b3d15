package token

import (
	"io"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
)

const (
	MaxNameLength = 32
	maxInitials   = 100
)

type TokenContractConstruction struct {
	Name             string
	Symbol           string
	InitialSupplyMap map[common.Address]uint64
}

func (s *TokenContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.LimitedString(w, s.Name, MaxNameLength); err != nil {
		return sum, err
	}
	if sum, err := sw.LimitedString(w, s.Symbol, MaxNameLength); err != nil {
		return sum, err
	}
	addrs := make([]common.Address, 0, len(s.InitialSupplyMap))
	for k := range s.InitialSupplyMap {
		addrs = append(addrs, k)
	}
	common.SortAddresses(addrs)
	if sum, err := sw.Addresses(w, addrs, maxInitials); err != nil {
		return sum, err
	}
	for _, k := range addrs {
		if sum, err := sw.Uint64(w, s.InitialSupplyMap[k]); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (s *TokenContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.LimitedString(r, &s.Name, MaxNameLength); err != nil {
		return sum, err
	}
	if sum, err := sr.LimitedString(r, &s.Symbol, MaxNameLength); err != nil {
		return sum, err
	}
	var addrs []common.Address
	if sum, err := sr.Addresses(r, &addrs, maxInitials); err != nil {
		return sum, err
	}
	s.InitialSupplyMap = map[common.Address]uint64{}
	for _, addr := range addrs {
		var am uint64
		if sum, err := sr.Uint64(r, &am); err != nil {
			return sum, err
		}
		s.InitialSupplyMap[addr] = am
	}
	return sr.Sum(), nil
}
