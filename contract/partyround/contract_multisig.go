package partyround

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
	"github.com/meverselabs/partyround/core/types"
)

//////////////////////////////////////////////////
// Multisig Writer Functions
//////////////////////////////////////////////////

// CreateMultisig hands the privileged operations over to the owner set
func (cont *PartyRoundContract) CreateMultisig(cc *types.ContractContext, owners []common.Address, threshold uint8) error {
	return cont.run(cc, []check{requireInitialized, cont.requireNoMultisig, cont.requireAuthority}, func(st *FundraiseState) error {
		cfg, err := newMultisig(owners, threshold)
		if err != nil {
			return err
		}
		if err := cont.saveMultisig(cc, cfg); err != nil {
			return err
		}
		ls := make([]string, 0, len(cfg.Owners))
		for _, addr := range cfg.Owners {
			ls = append(ls, addr.String())
		}
		cc.EmitEvent("MultisigCreated",
			types.Attr{Key: "owners", Value: strings.Join(ls, ",")},
			types.Attr{Key: "threshold", Value: strconv.Itoa(int(cfg.Threshold))},
		)
		return nil
	})
}

// ProposeAction records a memo proposal
func (cont *PartyRoundContract) ProposeAction(cc *types.ContractContext, description string) (uint64, error) {
	return cont.Propose(cc, description, Action{Type: ActionMemo})
}

// Propose records a proposal that dispatches the action once approved
func (cont *PartyRoundContract) Propose(cc *types.ContractContext, description string, a Action) (uint64, error) {
	var id uint64
	err := cont.run(cc, []check{requireInitialized, cont.requireMultisig}, func(st *FundraiseState) error {
		cfg, err := cont.loadMultisig(cc)
		if err != nil {
			return err
		}
		p, err := newProposal(cfg, cont.proposalCount(cc)+1, cc.From(), description, a)
		if err != nil {
			return err
		}
		if err := cont.saveProposal(cc, p); err != nil {
			return err
		}
		cc.SetContractData([]byte{tagProposalCount}, bin.Uint64Bytes(p.ID))
		cc.EmitEvent("ProposalCreated",
			types.Attr{Key: "id", Value: strconv.FormatUint(p.ID, 10)},
			types.Attr{Key: "proposer", Value: p.Proposer.String()},
			types.Attr{Key: "action", Value: p.Action.String()},
			types.Attr{Key: "description", Value: p.Description},
		)
		id = p.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ApproveAction adds the caller's approval and executes the proposal at the threshold.
// A failing action reverts the approval with it.
func (cont *PartyRoundContract) ApproveAction(cc *types.ContractContext, id uint64) (bool, error) {
	var executed bool
	err := cont.run(cc, []check{requireInitialized, cont.requireMultisig}, func(st *FundraiseState) error {
		cfg, err := cont.loadMultisig(cc)
		if err != nil {
			return err
		}
		if !cfg.IsOwner(cc.From()) {
			return errors.Wrap(ErrUnauthorized, cc.From().String())
		}
		p, err := cont.loadProposal(cc, id)
		if err != nil {
			return err
		}
		next, execute, err := approveProposal(cfg, p, cc.From())
		if err != nil {
			return err
		}
		if err := cont.saveProposal(cc, next); err != nil {
			return err
		}
		cc.EmitEvent("ProposalApproved",
			types.Attr{Key: "id", Value: strconv.FormatUint(id, 10)},
			types.Attr{Key: "owner", Value: cc.From().String()},
			types.Attr{Key: "approvals", Value: strconv.Itoa(len(next.Approvals))},
		)
		if !execute {
			return nil
		}
		if err := cont.dispatch(cc, st, next.Action); err != nil {
			return err
		}
		cc.EmitEvent("ProposalExecuted",
			types.Attr{Key: "id", Value: strconv.FormatUint(id, 10)},
			types.Attr{Key: "action", Value: next.Action.String()},
		)
		executed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return executed, nil
}

//////////////////////////////////////////////////
// Multisig Reader Functions
//////////////////////////////////////////////////

func (cont *PartyRoundContract) HasMultisig(cc *types.ContractContext) bool {
	return cont.hasMultisig(cc)
}

func (cont *PartyRoundContract) Owners(cc *types.ContractContext) []common.Address {
	return cont.currentMultisig(cc).Owners
}

func (cont *PartyRoundContract) IsOwner(cc *types.ContractContext, addr common.Address) bool {
	return cont.currentMultisig(cc).IsOwner(addr)
}

func (cont *PartyRoundContract) Threshold(cc *types.ContractContext) uint8 {
	return cont.currentMultisig(cc).Threshold
}

func (cont *PartyRoundContract) OwnerSetSeqno(cc *types.ContractContext) uint64 {
	return cont.currentMultisig(cc).OwnerSetSeqno
}

func (cont *PartyRoundContract) ProposalCount(cc *types.ContractContext) uint64 {
	return cont.proposalCount(cc)
}

// Proposal returns the stored proposal with its status seen against the current owner set
func (cont *PartyRoundContract) Proposal(cc *types.ContractContext, id uint64) (*Proposal, error) {
	p, err := cont.loadProposal(cc, id)
	if err != nil {
		return nil, err
	}
	p.Status = p.StatusAt(cont.currentMultisig(cc).OwnerSetSeqno)
	return p, nil
}
