package partyround

import (
	"github.com/meverselabs/partyround/common/bin"
)

var (
	tagBaseToken      = byte(0x01)
	tagOwnershipToken = byte(0x02)
	tagState          = byte(0x03)
	tagGuard          = byte(0x04)
	tagMultisig       = byte(0x05)
	tagProposalCount  = byte(0x06)
	tagProposal       = byte(0x07)
)

func makeProposalKey(id uint64) []byte {
	bs := make([]byte, 9)
	bs[0] = tagProposal
	copy(bs[1:], bin.Uint64BEBytes(id))
	return bs
}
