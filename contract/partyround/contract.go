package partyround

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
	"github.com/meverselabs/partyround/core/types"
)

type PartyRoundContract struct {
	addr   common.Address
	master common.Address
}

func (cont *PartyRoundContract) Address() common.Address {
	return cont.addr
}

func (cont *PartyRoundContract) Master() common.Address {
	return cont.master
}

func (cont *PartyRoundContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

// OnCreate stores the token bindings and an uninitialized state owned by the deployer
func (cont *PartyRoundContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &PartyRoundContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	if data.BaseToken == data.OwnershipToken {
		return errors.Wrap(ErrInvalidParameter, "base and ownership token are the same")
	}
	if !cc.IsContract(data.BaseToken) {
		return errors.Wrapf(ErrInvalidParameter, "base token %v is not a contract", data.BaseToken.String())
	}
	if !cc.IsContract(data.OwnershipToken) {
		return errors.Wrapf(ErrInvalidParameter, "ownership token %v is not a contract", data.OwnershipToken.String())
	}
	cc.SetContractData([]byte{tagBaseToken}, data.BaseToken[:])
	cc.SetContractData([]byte{tagOwnershipToken}, data.OwnershipToken[:])
	return cont.saveState(cc, &FundraiseState{
		Authority: cc.From(),
		Allowlist: []common.Address{},
	})
}

func (cont *PartyRoundContract) loadState(cc *types.ContractContext) (*FundraiseState, error) {
	bs := cc.ContractData([]byte{tagState})
	st := &FundraiseState{}
	if len(bs) == 0 {
		return st, nil
	}
	if _, err := bin.ReadFromBytes(st, bs); err != nil {
		return nil, err
	}
	return st, nil
}

func (cont *PartyRoundContract) saveState(cc *types.ContractContext, st *FundraiseState) error {
	bs, _, err := bin.WriterToBytes(st)
	if err != nil {
		return err
	}
	cc.SetContractData([]byte{tagState}, bs)
	return nil
}

func (cont *PartyRoundContract) hasMultisig(cc *types.ContractContext) bool {
	return len(cc.ContractData([]byte{tagMultisig})) > 0
}

func (cont *PartyRoundContract) loadMultisig(cc *types.ContractContext) (*MultisigConfig, error) {
	bs := cc.ContractData([]byte{tagMultisig})
	if len(bs) == 0 {
		return nil, errors.WithStack(ErrMultisigNotExist)
	}
	cfg := &MultisigConfig{}
	if _, err := bin.ReadFromBytes(cfg, bs); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cont *PartyRoundContract) saveMultisig(cc *types.ContractContext, cfg *MultisigConfig) error {
	bs, _, err := bin.WriterToBytes(cfg)
	if err != nil {
		return err
	}
	cc.SetContractData([]byte{tagMultisig}, bs)
	return nil
}

func (cont *PartyRoundContract) loadProposal(cc *types.ContractContext, id uint64) (*Proposal, error) {
	bs := cc.ContractData(makeProposalKey(id))
	if len(bs) == 0 {
		return nil, errors.Wrapf(ErrProposalNotFound, "proposal %v", id)
	}
	p := &Proposal{}
	if _, err := bin.ReadFromBytes(p, bs); err != nil {
		return nil, err
	}
	return p, nil
}

func (cont *PartyRoundContract) saveProposal(cc *types.ContractContext, p *Proposal) error {
	bs, _, err := bin.WriterToBytes(p)
	if err != nil {
		return err
	}
	cc.SetContractData(makeProposalKey(p.ID), bs)
	return nil
}

func (cont *PartyRoundContract) proposalCount(cc *types.ContractContext) uint64 {
	return bin.Uint64(cc.ContractData([]byte{tagProposalCount}))
}
