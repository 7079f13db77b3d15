package partyround

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/amount"
)

// InitParams are the fundraise terms fixed by Initialize
type InitParams struct {
	Name           string
	Symbol         string
	TotalSupply    uint64
	FundraiseEndTs int64
	TokenPrice     uint64
	Allowlist      []common.Address
}

// Allocation is the informational split of the raised treasury at close
type Allocation struct {
	Total uint64
	DeFi  uint64
	AMM   uint64
}

// allocation shares in percent
const (
	defiShare = 90
	ammShare  = 10
)

func initializeState(st *FundraiseState, p *InitParams) (*FundraiseState, error) {
	if st.Initialized {
		return nil, errors.WithStack(ErrAlreadyInitialized)
	}
	if len(p.Name) == 0 || len(p.Name) > MaxNameLength {
		return nil, errors.Wrapf(ErrInvalidParameter, "name length %v", len(p.Name))
	}
	if len(p.Symbol) == 0 || len(p.Symbol) > MaxNameLength {
		return nil, errors.Wrapf(ErrInvalidParameter, "symbol length %v", len(p.Symbol))
	}
	if p.TotalSupply == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "total supply is zero")
	}
	if p.TokenPrice == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "token price is zero")
	}
	if len(p.Allowlist) > MaxAllowlist {
		return nil, errors.Wrapf(ErrInvalidParameter, "allowlist size %v", len(p.Allowlist))
	}
	list := make([]common.Address, 0, len(p.Allowlist))
	for _, addr := range p.Allowlist {
		if addr == common.ZeroAddr {
			return nil, errors.WithStack(ErrAddressNotAllowed)
		}
		if !common.ContainsAddress(list, addr) {
			list = append(list, addr)
		}
	}
	next := st.Clone()
	next.Initialized = true
	next.Name = p.Name
	next.Symbol = p.Symbol
	next.TotalSupply = p.TotalSupply
	next.FundraiseEndTs = p.FundraiseEndTs
	next.TokenPrice = p.TokenPrice
	next.Allowlist = list
	next.FundraiseEnded = false
	return next, nil
}

// contributeState records a contribution and returns the token units to issue
func contributeState(st *FundraiseState, caller common.Address, am uint64, now int64) (*FundraiseState, uint64, error) {
	if !st.Initialized {
		return nil, 0, errors.WithStack(ErrNotInitialized)
	}
	if !st.IsOpen(now) {
		return nil, 0, errors.WithStack(ErrFundraiseEnded)
	}
	if !st.IsAllowed(caller) {
		return nil, 0, errors.Wrap(ErrNotAllowlisted, caller.String())
	}
	if am == 0 {
		return nil, 0, errors.WithStack(ErrInvalidContributionAmount)
	}
	tokens, err := amount.Mul(am, st.TokenPrice)
	if err != nil {
		return nil, 0, errors.Wrap(ErrInvalidContributionAmount, err.Error())
	}
	total, err := amount.Add(st.TotalContributions, am)
	if err != nil {
		return nil, 0, errors.Wrap(ErrInvalidContributionAmount, err.Error())
	}
	if st.TotalContributors == ^uint32(0) {
		return nil, 0, errors.Wrap(ErrInvalidContributionAmount, "contributor count overflow")
	}
	next := st.Clone()
	next.TotalContributions = total
	next.TotalContributors++
	return next, tokens, nil
}

// closeState ends the fundraise, override is true on the administrative path
func closeState(st *FundraiseState, now int64, override bool, treasury uint64) (*FundraiseState, *Allocation, error) {
	if !st.Initialized {
		return nil, nil, errors.WithStack(ErrNotInitialized)
	}
	if st.FundraiseEnded {
		return nil, nil, errors.WithStack(ErrFundraiseEnded)
	}
	if now <= st.FundraiseEndTs && !override {
		return nil, nil, errors.Wrapf(ErrFundraiseNotEnded, "ends at %v, now %v", st.FundraiseEndTs, now)
	}
	defi, err := amount.Percent(treasury, defiShare)
	if err != nil {
		return nil, nil, errors.Wrap(ErrInvalidParameter, err.Error())
	}
	amm, err := amount.Percent(treasury, ammShare)
	if err != nil {
		return nil, nil, errors.Wrap(ErrInvalidParameter, err.Error())
	}
	next := st.Clone()
	next.FundraiseEnded = true
	return next, &Allocation{Total: treasury, DeFi: defi, AMM: amm}, nil
}

// redemptionAmount returns floor(treasury * am / supply), the remainder stays in the treasury
func redemptionAmount(st *FundraiseState, am uint64, balance uint64, supply uint64, treasury uint64) (uint64, error) {
	if !st.Initialized {
		return 0, errors.WithStack(ErrNotInitialized)
	}
	if !st.FundraiseEnded {
		return 0, errors.WithStack(ErrFundraiseNotEnded)
	}
	if am == 0 || am > balance {
		return 0, errors.Wrapf(ErrInvalidRedemptionAmount, "amount %v, balance %v", am, balance)
	}
	if supply == 0 {
		return 0, errors.WithStack(ErrInsufficientTreasuryFunds)
	}
	v, err := amount.MulDiv(treasury, am, supply)
	if err != nil {
		return 0, errors.Wrap(ErrInsufficientTreasuryFunds, err.Error())
	}
	if v == 0 || v > treasury {
		return 0, errors.Wrapf(ErrInsufficientTreasuryFunds, "redemption %v, treasury %v", v, treasury)
	}
	return v, nil
}

func lockState(st *FundraiseState, lockEndTs int64) (*FundraiseState, error) {
	if !st.Initialized {
		return nil, errors.WithStack(ErrNotInitialized)
	}
	if st.LiquidityLocked {
		return nil, errors.WithStack(ErrLiquidityAlreadyLocked)
	}
	next := st.Clone()
	next.LiquidityLocked = true
	next.LockEndTs = lockEndTs
	return next, nil
}

func unlockState(st *FundraiseState, now int64) (*FundraiseState, error) {
	if !st.Initialized {
		return nil, errors.WithStack(ErrNotInitialized)
	}
	if !st.LiquidityLocked {
		return nil, errors.WithStack(ErrLiquidityNotLocked)
	}
	if now < st.LockEndTs {
		return nil, errors.Wrapf(ErrLiquidityStillLocked, "locked until %v, now %v", st.LockEndTs, now)
	}
	next := st.Clone()
	next.LiquidityLocked = false
	return next, nil
}

func validateOwners(owners []common.Address, threshold uint8) error {
	if len(owners) == 0 || len(owners) > MaxOwners {
		return errors.Wrapf(ErrInvalidOwnerCount, "%v owners", len(owners))
	}
	for i, addr := range owners {
		if addr == common.ZeroAddr {
			return errors.WithStack(ErrAddressNotAllowed)
		}
		for _, prev := range owners[:i] {
			if prev == addr {
				return errors.Wrap(ErrDuplicateOwner, addr.String())
			}
		}
	}
	if threshold == 0 || int(threshold) > len(owners) {
		return errors.Wrapf(ErrInvalidThreshold, "threshold %v, owners %v", threshold, len(owners))
	}
	return nil
}

func newMultisig(owners []common.Address, threshold uint8) (*MultisigConfig, error) {
	if err := validateOwners(owners, threshold); err != nil {
		return nil, err
	}
	return &MultisigConfig{
		Owners:        append([]common.Address{}, owners...),
		Threshold:     threshold,
		OwnerSetSeqno: 1,
	}, nil
}

// changeOwners applies an owner set action and bumps the owner set version
func changeOwners(cfg *MultisigConfig, a Action) (*MultisigConfig, error) {
	next := cfg.Clone()
	switch a.Type {
	case ActionAddOwner:
		if cfg.IsOwner(a.Owner) {
			return nil, errors.Wrap(ErrDuplicateOwner, a.Owner.String())
		}
		next.Owners = append(next.Owners, a.Owner)
	case ActionRemoveOwner:
		if !cfg.IsOwner(a.Owner) {
			return nil, errors.Wrapf(ErrUnauthorized, "%v is not an owner", a.Owner.String())
		}
		owners := make([]common.Address, 0, len(cfg.Owners))
		for _, addr := range cfg.Owners {
			if addr != a.Owner {
				owners = append(owners, addr)
			}
		}
		next.Owners = owners
	case ActionChangeThreshold:
		next.Threshold = a.Threshold
	default:
		return nil, errors.Wrap(ErrInvalidAction, a.String())
	}
	if err := validateOwners(next.Owners, next.Threshold); err != nil {
		return nil, err
	}
	next.OwnerSetSeqno++
	return next, nil
}

func newProposal(cfg *MultisigConfig, id uint64, proposer common.Address, description string, a Action) (*Proposal, error) {
	if !cfg.IsOwner(proposer) {
		return nil, errors.Wrap(ErrUnauthorized, proposer.String())
	}
	if len(description) > MaxDescriptionLength {
		return nil, errors.Wrapf(ErrInvalidParameter, "description length %v", len(description))
	}
	if _, has := actionNames[a.Type]; !has {
		return nil, errors.Wrapf(ErrInvalidAction, "type %v", uint8(a.Type))
	}
	return &Proposal{
		ID:            id,
		Proposer:      proposer,
		Description:   description,
		Action:        a,
		OwnerSetSeqno: cfg.OwnerSetSeqno,
		Approvals:     []common.Address{},
		Status:        StatusPending,
	}, nil
}

// approveProposal adds the approval and reports whether the action must run now
func approveProposal(cfg *MultisigConfig, p *Proposal, caller common.Address) (*Proposal, bool, error) {
	if !cfg.IsOwner(caller) {
		return nil, false, errors.Wrap(ErrUnauthorized, caller.String())
	}
	switch p.StatusAt(cfg.OwnerSetSeqno) {
	case StatusExecuted:
		return nil, false, errors.Wrapf(ErrProposalAlreadyExecuted, "proposal %v", p.ID)
	case StatusExpired:
		return nil, false, errors.Wrapf(ErrProposalExpired, "proposal %v seqno %v, current %v", p.ID, p.OwnerSetSeqno, cfg.OwnerSetSeqno)
	}
	if p.HasApproved(caller) {
		return nil, false, errors.Wrap(ErrAlreadyApproved, caller.String())
	}
	next := p.Clone()
	next.Approvals = append(next.Approvals, caller)
	if len(next.Approvals) >= int(cfg.Threshold) {
		next.Status = StatusExecuted
		return next, true, nil
	}
	return next, false, nil
}
