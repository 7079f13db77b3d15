package store

import (
	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
)

// db tags
const (
	tagData           = byte(0x10)
	tagContractDefine = byte(0x11)
	tagAddrSeq        = byte(0x12)
	tagEvent          = byte(0x13)
	tagEventCount     = byte(0x14)
	tagStateHash      = byte(0x15)
)

func toDataKey(key string) []byte {
	bs := make([]byte, 1+len(key))
	bs[0] = tagData
	copy(bs[1:], key)
	return bs
}

func toContractDefineKey(addr common.Address) []byte {
	return append([]byte{tagContractDefine}, addr[:]...)
}

func toAddrSeqKey(addr common.Address) []byte {
	return append([]byte{tagAddrSeq}, addr[:]...)
}

func toEventKey(n uint64) []byte {
	return append([]byte{tagEvent}, bin.Uint64BEBytes(n)...)
}
