package types

import (
	"bytes"
	"encoding/hex"
	"strconv"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
	"github.com/meverselabs/partyround/common/hash"
	"github.com/pkg/errors"
)

// ContextData is a state layer of the context stack
type ContextData struct {
	ctx               *Context
	Parent            *ContextData
	ContractDefineMap map[common.Address]*ContractDefine
	AddrSeqMap        map[common.Address]uint64
	DataMap           map[string][]byte
	DeletedDataMap    map[string]bool
	Events            []*Event
	isTop             bool
}

// NewContextData returns a ContextData
func NewContextData(ctx *Context, Parent *ContextData) *ContextData {
	return &ContextData{
		ctx:               ctx,
		Parent:            Parent,
		ContractDefineMap: map[common.Address]*ContractDefine{},
		AddrSeqMap:        map[common.Address]uint64{},
		DataMap:           map[string][]byte{},
		DeletedDataMap:    map[string]bool{},
		Events:            []*Event{},
		isTop:             true,
	}
}

func dataKey(cont common.Address, addr common.Address, name []byte) string {
	return string(cont[:]) + string(addr[:]) + string(name)
}

// SplitDataKey returns the parts of a key built by the context
func SplitDataKey(key string) (common.Address, common.Address, []byte) {
	var cont, addr common.Address
	copy(cont[:], key[:common.AddressLength])
	copy(addr[:], key[common.AddressLength:2*common.AddressLength])
	return cont, addr, []byte(key[2*common.AddressLength:])
}

// IsContract returns is the contract
func (ctd *ContextData) IsContract(addr common.Address) bool {
	if _, has := ctd.ContractDefineMap[addr]; has {
		return true
	} else if ctd.Parent != nil {
		return ctd.Parent.IsContract(addr)
	}
	_, err := ctd.ctx.loader.ContractDefine(addr)
	return err == nil
}

// ContractDefine returns the define of the contract
func (ctd *ContextData) ContractDefine(addr common.Address) (*ContractDefine, error) {
	if cd, has := ctd.ContractDefineMap[addr]; has {
		return cd, nil
	} else if ctd.Parent != nil {
		return ctd.Parent.ContractDefine(addr)
	}
	return ctd.ctx.loader.ContractDefine(addr)
}

// Contract returns the contract
func (ctd *ContextData) Contract(addr common.Address) (Contract, error) {
	cd, err := ctd.ContractDefine(addr)
	if err != nil {
		return nil, err
	}
	return CreateContract(cd)
}

// DeployContract deploys the contract and runs its OnCreate on this layer
func (ctd *ContextData) DeployContract(sender common.Address, ClassID uint64, Args []byte) (Contract, error) {
	if !IsValidClassID(ClassID) {
		return nil, errors.WithStack(ErrInvalidClassID)
	}
	seq := bin.Uint64(ctd.Data(common.ZeroAddr, common.ZeroAddr, []byte{tagDeploySeq}))
	ctd.SetData(common.ZeroAddr, common.ZeroAddr, []byte{tagDeploySeq}, bin.Uint64Bytes(seq+1))

	base := make([]byte, 1+common.AddressLength+8+8)
	base[0] = 0xff
	copy(base[1:], sender[:])
	copy(base[1+common.AddressLength:], bin.Uint64Bytes(ClassID))
	copy(base[1+common.AddressLength+8:], bin.Uint64Bytes(seq))
	h := hash.Hash(base)
	addr := common.BytesToAddress(h[12:])
	if ctd.IsContract(addr) {
		return nil, errors.WithStack(ErrExistContract)
	}
	cd := &ContractDefine{
		Address: addr,
		Owner:   sender,
		ClassID: ClassID,
	}
	cont, err := CreateContract(cd)
	if err != nil {
		return nil, err
	}
	ctd.ContractDefineMap[addr] = cd
	if err := cont.OnCreate(ctd.ctx.ContractContext(cont, sender), Args); err != nil {
		delete(ctd.ContractDefineMap, addr)
		return nil, err
	}
	return cont, nil
}

// Data returns the data
func (ctd *ContextData) Data(cont common.Address, addr common.Address, name []byte) []byte {
	key := dataKey(cont, addr, name)
	if _, has := ctd.DeletedDataMap[key]; has {
		return nil
	}
	var value []byte
	if v, has := ctd.DataMap[key]; has {
		value = v
	} else if ctd.Parent != nil {
		value = ctd.Parent.Data(cont, addr, name)
	} else {
		value = ctd.ctx.loader.Data(cont, addr, name)
	}
	if len(value) == 0 {
		return nil
	}
	if ctd.isTop {
		nvalue := make([]byte, len(value))
		copy(nvalue, value)
		return nvalue
	}
	return value
}

// SetData inserts the data, an empty value deletes it
func (ctd *ContextData) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	key := dataKey(cont, addr, name)
	if len(value) == 0 {
		delete(ctd.DataMap, key)
		ctd.DeletedDataMap[key] = true
	} else {
		delete(ctd.DeletedDataMap, key)
		ctd.DataMap[key] = value
	}
}

// AddrSeq returns the number of transactions executed by the address
func (ctd *ContextData) AddrSeq(addr common.Address) uint64 {
	if seq, has := ctd.AddrSeqMap[addr]; has {
		return seq
	}
	if ctd.Parent != nil {
		return ctd.Parent.AddrSeq(addr)
	}
	return ctd.ctx.loader.AddrSeq(addr)
}

// AddAddrSeq increases the sequence of the address
func (ctd *ContextData) AddAddrSeq(addr common.Address) {
	ctd.AddrSeqMap[addr] = ctd.AddrSeq(addr) + 1
}

// EmitEvent appends the event to this layer
func (ctd *ContextData) EmitEvent(e *Event) {
	ctd.Events = append(ctd.Events, e)
}

// EachData iterates the changed and deleted data in key order
func (ctd *ContextData) EachData(fn func(key string, value []byte, deleted bool) error) error {
	os := newOrderedSet()
	for k, v := range ctd.DataMap {
		os.Put(k, v)
	}
	for k := range ctd.DeletedDataMap {
		os.Put(k, nil)
	}
	return os.Each(func(key string, value interface{}) error {
		bs, _ := value.([]byte)
		return fn(key, bs, bs == nil)
	})
}

// EachContractDefine iterates the deployed contracts in address order
func (ctd *ContextData) EachContractDefine(fn func(cd *ContractDefine) error) error {
	os := newOrderedSet()
	for addr, cd := range ctd.ContractDefineMap {
		os.Put(string(addr[:]), cd)
	}
	return os.Each(func(key string, value interface{}) error {
		return fn(value.(*ContractDefine))
	})
}

// EachAddrSeq iterates the sequences in address order
func (ctd *ContextData) EachAddrSeq(fn func(addr common.Address, seq uint64) error) error {
	os := newOrderedSet()
	for addr, seq := range ctd.AddrSeqMap {
		os.Put(string(addr[:]), seq)
	}
	return os.Each(func(key string, value interface{}) error {
		return fn(common.BytesToAddress([]byte(key)), value.(uint64))
	})
}

// Hash returns the hash value of it
func (ctd *ContextData) Hash() hash.Hash256 {
	var buffer bytes.Buffer
	buffer.WriteString("ContractDefineMap")
	ctd.EachContractDefine(func(cd *ContractDefine) error {
		buffer.Write(cd.Address[:])
		buffer.Write(cd.Owner[:])
		buffer.Write(bin.Uint64Bytes(cd.ClassID))
		return nil
	})
	buffer.WriteString("AddrSeqMap")
	ctd.EachAddrSeq(func(addr common.Address, seq uint64) error {
		buffer.Write(addr[:])
		buffer.Write(bin.Uint64Bytes(seq))
		return nil
	})
	buffer.WriteString("DataMap")
	ctd.EachData(func(key string, value []byte, deleted bool) error {
		buffer.WriteString(key)
		if deleted {
			buffer.WriteByte(0)
		} else {
			buffer.WriteByte(1)
			buffer.Write(value)
		}
		return nil
	})
	return hash.Hash(buffer.Bytes())
}

// Dump prints the context data
func (ctd *ContextData) Dump() string {
	var buffer bytes.Buffer
	buffer.WriteString("ContractDefineMap\n")
	ctd.EachContractDefine(func(cd *ContractDefine) error {
		buffer.WriteString(cd.Address.String())
		buffer.WriteString(":")
		buffer.WriteString(ContractName(cd.ClassID))
		buffer.WriteString("\n")
		return nil
	})
	buffer.WriteString("AddrSeqMap\n")
	ctd.EachAddrSeq(func(addr common.Address, seq uint64) error {
		buffer.WriteString(addr.String())
		buffer.WriteString(":")
		buffer.WriteString(strconv.FormatUint(seq, 10))
		buffer.WriteString("\n")
		return nil
	})
	buffer.WriteString("DataMap\n")
	ctd.EachData(func(key string, value []byte, deleted bool) error {
		buffer.WriteString(hex.EncodeToString([]byte(key)))
		buffer.WriteString(":")
		if deleted {
			buffer.WriteString("deleted")
		} else {
			buffer.WriteString(hash.Hash(value).String())
		}
		buffer.WriteString("\n")
		return nil
	})
	return buffer.String()
}
