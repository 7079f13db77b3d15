package types

import (
	"github.com/meverselabs/partyround/common"
)

// Loader defines functions that load committed state below the context stack
type Loader interface {
	Data(cont common.Address, addr common.Address, name []byte) []byte
	ContractDefine(addr common.Address) (*ContractDefine, error)
	AddrSeq(addr common.Address) uint64
}

type emptyLoader struct{}

// newEmptyLoader is used for generating genesis state
func newEmptyLoader() Loader {
	return &emptyLoader{}
}

// Data returns nil
func (st *emptyLoader) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return nil
}

// ContractDefine returns ErrNotExistContract
func (st *emptyLoader) ContractDefine(addr common.Address) (*ContractDefine, error) {
	return nil, ErrNotExistContract
}

// AddrSeq returns 0
func (st *emptyLoader) AddrSeq(addr common.Address) uint64 {
	return 0
}
