package token

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/amount"
	"github.com/meverselabs/partyround/common/bin"
	"github.com/meverselabs/partyround/core/types"
)

type TokenContract struct {
	addr   common.Address
	master common.Address
}

func (cont *TokenContract) Address() common.Address {
	return cont.addr
}

func (cont *TokenContract) Master() common.Address {
	return cont.master
}

func (cont *TokenContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *TokenContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &TokenContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagTokenName}, []byte(data.Name))
	cc.SetContractData([]byte{tagTokenSymbol}, []byte(data.Symbol))
	for k, v := range data.InitialSupplyMap {
		if err := cont.addBalance(cc, k, v); err != nil {
			return err
		}
	}
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *TokenContract) addBalance(cc *types.ContractContext, addr common.Address, am uint64) error {
	if am == 0 {
		return errors.WithStack(ErrInvalidAmount)
	}
	total, err := amount.Add(cont.TotalSupply(cc), am)
	if err != nil {
		return err
	}
	bal, err := amount.Add(cont.BalanceOf(cc, addr), am)
	if err != nil {
		return err
	}
	cc.SetAccountData(addr, []byte{tagTokenAmount}, bin.Uint64Bytes(bal))
	cc.SetContractData([]byte{tagTokenTotalSupply}, bin.Uint64Bytes(total))
	return nil
}

func (cont *TokenContract) subBalance(cc *types.ContractContext, addr common.Address, am uint64) error {
	if am == 0 {
		return errors.WithStack(ErrInvalidAmount)
	}
	bal := cont.BalanceOf(cc, addr)
	if bal < am {
		return errors.Wrapf(ErrExceedBalance, "%v has %v, requested %v", addr.String(), bal, am)
	}
	bal -= am
	if bal == 0 {
		cc.SetAccountData(addr, []byte{tagTokenAmount}, nil)
	} else {
		cc.SetAccountData(addr, []byte{tagTokenAmount}, bin.Uint64Bytes(bal))
	}
	total, err := amount.Sub(cont.TotalSupply(cc), am)
	if err != nil {
		return err
	}
	cc.SetContractData([]byte{tagTokenTotalSupply}, bin.Uint64Bytes(total))
	return nil
}

func (cont *TokenContract) move(cc *types.ContractContext, From common.Address, To common.Address, Amount uint64) error {
	if From == common.ZeroAddr || To == common.ZeroAddr {
		return errors.WithStack(ErrZeroAddress)
	}
	if Amount == 0 {
		return nil
	}
	if err := cont.subBalance(cc, From, Amount); err != nil {
		return err
	}
	if err := cont.addBalance(cc, To, Amount); err != nil {
		return err
	}
	cc.EmitEvent("Transfer",
		types.Attr{Key: "from", Value: From.String()},
		types.Attr{Key: "to", Value: To.String()},
		types.Attr{Key: "amount", Value: strconv.FormatUint(Amount, 10)},
	)
	return nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Transfer(cc *types.ContractContext, To common.Address, Amount uint64) error {
	return cont.move(cc, cc.From(), To, Amount)
}

func (cont *TokenContract) Approve(cc *types.ContractContext, spender common.Address, Amount uint64) error {
	if spender == common.ZeroAddr {
		return errors.WithStack(ErrZeroAddress)
	}
	cont._approve(cc, cc.From(), spender, Amount)
	return nil
}

func (cont *TokenContract) _approve(cc *types.ContractContext, owner common.Address, spender common.Address, Amount uint64) {
	if Amount == 0 {
		cc.SetAccountData(owner, MakeAllowanceTokenKey(spender), nil)
	} else {
		cc.SetAccountData(owner, MakeAllowanceTokenKey(spender), bin.Uint64Bytes(Amount))
	}
}

// TransferFrom moves the allowance the owner granted to the caller
func (cont *TokenContract) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount uint64) error {
	allowed := cont.Allowance(cc, From, cc.From())
	if allowed < Amount {
		return errors.Wrapf(ErrExceedAllowance, "allowed %v, requested %v", allowed, Amount)
	}
	if err := cont.move(cc, From, To, Amount); err != nil {
		return err
	}
	cont._approve(cc, From, cc.From(), allowed-Amount)
	return nil
}

func (cont *TokenContract) Burn(cc *types.ContractContext, Amount uint64) error {
	return cont.subBalance(cc, cc.From(), Amount)
}

// BurnFrom destroys tokens of the holder, only minters may call it
func (cont *TokenContract) BurnFrom(cc *types.ContractContext, From common.Address, Amount uint64) error {
	if !cont.IsMinter(cc, cc.From()) {
		return errors.Wrap(ErrNotMinter, cc.From().String())
	}
	if err := cont.subBalance(cc, From, Amount); err != nil {
		return err
	}
	cc.EmitEvent("Burn",
		types.Attr{Key: "from", Value: From.String()},
		types.Attr{Key: "amount", Value: strconv.FormatUint(Amount, 10)},
	)
	return nil
}

func (cont *TokenContract) Mint(cc *types.ContractContext, To common.Address, Amount uint64) error {
	if cc.From() != cont.Master() && !cont.IsMinter(cc, cc.From()) {
		return errors.Wrap(ErrNotMinter, cc.From().String())
	}
	if To == common.ZeroAddr {
		return errors.WithStack(ErrZeroAddress)
	}
	if Amount == 0 {
		return nil
	}
	if err := cont.addBalance(cc, To, Amount); err != nil {
		return err
	}
	cc.EmitEvent("Mint",
		types.Attr{Key: "to", Value: To.String()},
		types.Attr{Key: "amount", Value: strconv.FormatUint(Amount, 10)},
	)
	return nil
}

func (cont *TokenContract) SetMinter(cc *types.ContractContext, To common.Address, Is bool) error {
	if cc.From() != cont.Master() {
		return errors.WithStack(ErrNotMaster)
	}
	if Is {
		cc.SetAccountData(To, []byte{tagTokenMinter}, []byte{1})
	} else {
		cc.SetAccountData(To, []byte{tagTokenMinter}, nil)
	}
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Name(cc *types.ContractContext) string {
	return string(cc.ContractData([]byte{tagTokenName}))
}

func (cont *TokenContract) Symbol(cc *types.ContractContext) string {
	return string(cc.ContractData([]byte{tagTokenSymbol}))
}

func (cont *TokenContract) TotalSupply(cc *types.ContractContext) uint64 {
	return bin.Uint64(cc.ContractData([]byte{tagTokenTotalSupply}))
}

func (cont *TokenContract) BalanceOf(cc *types.ContractContext, from common.Address) uint64 {
	return bin.Uint64(cc.AccountData(from, []byte{tagTokenAmount}))
}

func (cont *TokenContract) IsMinter(cc *types.ContractContext, addr common.Address) bool {
	bs := cc.AccountData(addr, []byte{tagTokenMinter})
	return len(bs) == 1 && bs[0] == 1
}

func (cont *TokenContract) Allowance(cc *types.ContractContext, _owner common.Address, _spender common.Address) uint64 {
	return bin.Uint64(cc.AccountData(_owner, MakeAllowanceTokenKey(_spender)))
}
