package types

import (
	"github.com/meverselabs/partyround/common"
)

// ExecFunc calls a method of a deployed contract from inside a contract
type ExecFunc = func(Cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error)

// ContractContext is an context for the contract
type ContractContext struct {
	cont common.Address
	from common.Address
	ctx  *Context
	Exec ExecFunc
}

// From returns the caller, the signer or the calling contract
func (cc *ContractContext) From() common.Address {
	return cc.from
}

// ContractAddress returns the address of the running contract
func (cc *ContractContext) ContractAddress() common.Address {
	return cc.cont
}

// Timestamp returns the execution time in unix seconds
func (cc *ContractContext) Timestamp() int64 {
	return cc.ctx.Timestamp()
}

// IsContract returns is the contract
func (cc *ContractContext) IsContract(addr common.Address) bool {
	return cc.ctx.IsContract(addr)
}

// ContractData returns the contract data from the top snapshot
func (cc *ContractContext) ContractData(name []byte) []byte {
	return cc.ctx.Top().Data(cc.cont, common.ZeroAddr, name)
}

// SetContractData inserts the contract data to the top snapshot
func (cc *ContractContext) SetContractData(name []byte, value []byte) {
	cc.ctx.Top().SetData(cc.cont, common.ZeroAddr, name, value)
}

// AccountData returns the account data from the top snapshot
func (cc *ContractContext) AccountData(addr common.Address, name []byte) []byte {
	return cc.ctx.Top().Data(cc.cont, addr, name)
}

// SetAccountData inserts the account data to the top snapshot
func (cc *ContractContext) SetAccountData(addr common.Address, name []byte, value []byte) {
	cc.ctx.Top().SetData(cc.cont, addr, name, value)
}

// EmitEvent records an event of the running contract
func (cc *ContractContext) EmitEvent(Type string, attrs ...Attr) {
	top := cc.ctx.Top()
	top.EmitEvent(&Event{
		Index:    uint16(len(top.Events)),
		Contract: cc.cont,
		Type:     Type,
		Attrs:    attrs,
	})
}
