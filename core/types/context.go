package types

import (
	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/hash"
)

// Context is an in-memory state built as a stack of snapshots over the loader
type Context struct {
	loader    Loader
	timestamp int64
	stack     []*ContextData
}

// NewContext returns a Context
func NewContext(loader Loader, timestamp int64) *Context {
	ctx := &Context{
		loader:    loader,
		timestamp: timestamp,
	}
	ctx.stack = []*ContextData{NewContextData(ctx, nil)}
	return ctx
}

// NewEmptyContext returns a Context without committed state
func NewEmptyContext() *Context {
	return NewContext(newEmptyLoader(), 0)
}

// Timestamp returns the unix seconds of the transaction being executed
func (ctx *Context) Timestamp() int64 {
	return ctx.timestamp
}

// SetTimestamp updates the execution time
func (ctx *Context) SetTimestamp(ts int64) {
	ctx.timestamp = ts
}

// Hash returns the hash value of the top snapshot
func (ctx *Context) Hash() hash.Hash256 {
	return ctx.Top().Hash()
}

// Top returns the top snapshot
func (ctx *Context) Top() *ContextData {
	return ctx.stack[len(ctx.stack)-1]
}

// StackSize returns the size of the context data stack
func (ctx *Context) StackSize() int {
	return len(ctx.stack)
}

// IsContract returns is the contract
func (ctx *Context) IsContract(addr common.Address) bool {
	return ctx.Top().IsContract(addr)
}

// Contract returns the contract instance of the address
func (ctx *Context) Contract(addr common.Address) (Contract, error) {
	return ctx.Top().Contract(addr)
}

// DeployContract deploys the contract in its own snapshot
func (ctx *Context) DeployContract(sender common.Address, ClassID uint64, Args []byte) (Contract, error) {
	sn := ctx.Snapshot()
	cont, err := ctx.Top().DeployContract(sender, ClassID, Args)
	if err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	ctx.Commit(sn)
	return cont, nil
}

// Data returns the data from the top snapshot
func (ctx *Context) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return ctx.Top().Data(cont, addr, name)
}

// SetData inserts the data to the top snapshot
func (ctx *Context) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	ctx.Top().SetData(cont, addr, name, value)
}

// AddrSeq returns the sequence of the address
func (ctx *Context) AddrSeq(addr common.Address) uint64 {
	return ctx.Top().AddrSeq(addr)
}

// AddAddrSeq increases the sequence of the address
func (ctx *Context) AddAddrSeq(addr common.Address) {
	ctx.Top().AddAddrSeq(addr)
}

// Events returns the events of the top snapshot
func (ctx *Context) Events() []*Event {
	return ctx.Top().Events
}

// ContractContext returns a context bound to the contract with the given caller
func (ctx *Context) ContractContext(cont Contract, from common.Address) *ContractContext {
	return &ContractContext{
		cont: cont.Address(),
		from: from,
		ctx:  ctx,
		Exec: NewInteractor(ctx).Exec,
	}
}

// Dump prints the top context data of the context
func (ctx *Context) Dump() string {
	return ctx.Top().Dump()
}

// Snapshot push a snapshot and returns the snapshot number of it
func (ctx *Context) Snapshot() int {
	ctd := NewContextData(ctx, ctx.Top())
	ctx.Top().isTop = false
	ctx.stack = append(ctx.stack, ctd)
	return len(ctx.stack)
}

// Revert removes snapshots after the snapshot number
func (ctx *Context) Revert(sn int) {
	if sn > 1 && len(ctx.stack) >= sn {
		ctx.stack = ctx.stack[:sn-1]
	}
	ctx.Top().isTop = true
}

// Commit apply snapshots to the top after the snapshot number
func (ctx *Context) Commit(sn int) {
	for sn > 1 && len(ctx.stack) >= sn {
		ctd := ctx.Top()
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
		top := ctx.Top()
		for addr, cd := range ctd.ContractDefineMap {
			top.ContractDefineMap[addr] = cd
		}
		for addr, seq := range ctd.AddrSeqMap {
			top.AddrSeqMap[addr] = seq
		}
		for key, value := range ctd.DataMap {
			delete(top.DeletedDataMap, key)
			top.DataMap[key] = value
		}
		for key := range ctd.DeletedDataMap {
			delete(top.DataMap, key)
			top.DeletedDataMap[key] = true
		}
		top.Events = append(top.Events, ctd.Events...)
	}
	ctx.Top().isTop = true
}
