package token

import (
	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/core/types"
)

func (cont *TokenContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *TokenContract
}

func (f *front) Transfer(cc *types.ContractContext, To common.Address, Amount uint64) (bool, error) {
	err := f.cont.Transfer(cc, To, Amount)
	return err == nil, err
}

func (f *front) Approve(cc *types.ContractContext, To common.Address, Amount uint64) (bool, error) {
	err := f.cont.Approve(cc, To, Amount)
	return err == nil, err
}

func (f *front) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount uint64) (bool, error) {
	err := f.cont.TransferFrom(cc, From, To, Amount)
	return err == nil, err
}

func (f *front) Burn(cc *types.ContractContext, Amount uint64) error {
	return f.cont.Burn(cc, Amount)
}

func (f *front) BurnFrom(cc *types.ContractContext, From common.Address, Amount uint64) error {
	return f.cont.BurnFrom(cc, From, Amount)
}

func (f *front) Mint(cc *types.ContractContext, To common.Address, Amount uint64) error {
	return f.cont.Mint(cc, To, Amount)
}

func (f *front) SetMinter(cc *types.ContractContext, To common.Address, Is bool) error {
	return f.cont.SetMinter(cc, To, Is)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Name(cc *types.ContractContext) string {
	return f.cont.Name(cc)
}

func (f *front) Symbol(cc *types.ContractContext) string {
	return f.cont.Symbol(cc)
}

func (f *front) TotalSupply(cc *types.ContractContext) uint64 {
	return f.cont.TotalSupply(cc)
}

func (f *front) BalanceOf(cc *types.ContractContext, from common.Address) uint64 {
	return f.cont.BalanceOf(cc, from)
}

func (f *front) IsMinter(cc *types.ContractContext, addr common.Address) bool {
	return f.cont.IsMinter(cc, addr)
}

func (f *front) Allowance(cc *types.ContractContext, _owner common.Address, _spender common.Address) uint64 {
	return f.cont.Allowance(cc, _owner, _spender)
}
