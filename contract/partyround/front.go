package partyround

import (
	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/core/types"
)

func (cont *PartyRoundContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *PartyRoundContract
}

func (f *front) Initialize(cc *types.ContractContext, Name string, Symbol string, TotalSupply uint64, FundraiseEndTs int64, TokenPrice uint64, Allowlist []common.Address) error {
	return f.cont.Initialize(cc, &InitParams{
		Name:           Name,
		Symbol:         Symbol,
		TotalSupply:    TotalSupply,
		FundraiseEndTs: FundraiseEndTs,
		TokenPrice:     TokenPrice,
		Allowlist:      Allowlist,
	})
}

func (f *front) Contribute(cc *types.ContractContext, Amount uint64) (uint64, error) {
	return f.cont.Contribute(cc, Amount)
}

func (f *front) CloseFundraise(cc *types.ContractContext) error {
	return f.cont.CloseFundraise(cc)
}

func (f *front) Redeem(cc *types.ContractContext, Amount uint64) (uint64, error) {
	return f.cont.Redeem(cc, Amount)
}

func (f *front) LockLiquidity(cc *types.ContractContext, LockEndTs int64) error {
	return f.cont.LockLiquidity(cc, LockEndTs)
}

func (f *front) WithdrawLockedLiquidity(cc *types.ContractContext) error {
	return f.cont.WithdrawLockedLiquidity(cc)
}

func (f *front) CreateMultisig(cc *types.ContractContext, Owners []common.Address, Threshold uint8) error {
	return f.cont.CreateMultisig(cc, Owners, Threshold)
}

func (f *front) ProposeAction(cc *types.ContractContext, Description string) (uint64, error) {
	return f.cont.ProposeAction(cc, Description)
}

// Propose takes the action by name, e.g. "lock_liquidity" with the deadline as Param
func (f *front) Propose(cc *types.ContractContext, Description string, Action string, Param string) (uint64, error) {
	a, err := ParseAction(Action, Param)
	if err != nil {
		return 0, err
	}
	return f.cont.Propose(cc, Description, a)
}

func (f *front) ApproveAction(cc *types.ContractContext, ProposalID uint64) (bool, error) {
	return f.cont.ApproveAction(cc, ProposalID)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) FundraiseState(cc *types.ContractContext) *FundraiseState {
	return f.cont.FundraiseState(cc)
}

func (f *front) Authority(cc *types.ContractContext) common.Address {
	return f.cont.Authority(cc)
}

func (f *front) IsInitialized(cc *types.ContractContext) bool {
	return f.cont.IsInitialized(cc)
}

func (f *front) Name(cc *types.ContractContext) string {
	return f.cont.Name(cc)
}

func (f *front) Symbol(cc *types.ContractContext) string {
	return f.cont.Symbol(cc)
}

func (f *front) TotalSupply(cc *types.ContractContext) uint64 {
	return f.cont.TotalSupply(cc)
}

func (f *front) FundraiseEndTs(cc *types.ContractContext) int64 {
	return f.cont.FundraiseEndTs(cc)
}

func (f *front) TokenPrice(cc *types.ContractContext) uint64 {
	return f.cont.TokenPrice(cc)
}

func (f *front) Allowlist(cc *types.ContractContext) []common.Address {
	return f.cont.Allowlist(cc)
}

func (f *front) IsOpen(cc *types.ContractContext) bool {
	return f.cont.IsOpen(cc)
}

func (f *front) FundraiseEnded(cc *types.ContractContext) bool {
	return f.cont.FundraiseEnded(cc)
}

func (f *front) TotalContributions(cc *types.ContractContext) uint64 {
	return f.cont.TotalContributions(cc)
}

func (f *front) TotalContributors(cc *types.ContractContext) uint32 {
	return f.cont.TotalContributors(cc)
}

func (f *front) LiquidityLocked(cc *types.ContractContext) bool {
	return f.cont.LiquidityLocked(cc)
}

func (f *front) LockEndTs(cc *types.ContractContext) int64 {
	return f.cont.LockEndTs(cc)
}

func (f *front) BaseToken(cc *types.ContractContext) common.Address {
	return f.cont.BaseToken(cc)
}

func (f *front) OwnershipToken(cc *types.ContractContext) common.Address {
	return f.cont.OwnershipToken(cc)
}

func (f *front) TreasuryBalance(cc *types.ContractContext) (uint64, error) {
	return f.cont.TreasuryBalance(cc)
}

func (f *front) TreasuryTokens(cc *types.ContractContext) (uint64, error) {
	return f.cont.TreasuryTokens(cc)
}

func (f *front) GuardInProgress(cc *types.ContractContext) bool {
	return f.cont.GuardInProgress(cc)
}

func (f *front) HasMultisig(cc *types.ContractContext) bool {
	return f.cont.HasMultisig(cc)
}

func (f *front) Owners(cc *types.ContractContext) []common.Address {
	return f.cont.Owners(cc)
}

func (f *front) IsOwner(cc *types.ContractContext, addr common.Address) bool {
	return f.cont.IsOwner(cc, addr)
}

func (f *front) Threshold(cc *types.ContractContext) uint8 {
	return f.cont.Threshold(cc)
}

func (f *front) OwnerSetSeqno(cc *types.ContractContext) uint64 {
	return f.cont.OwnerSetSeqno(cc)
}

func (f *front) ProposalCount(cc *types.ContractContext) uint64 {
	return f.cont.ProposalCount(cc)
}

func (f *front) Proposal(cc *types.ContractContext, ProposalID uint64) (*Proposal, error) {
	return f.cont.Proposal(cc, ProposalID)
}

func (f *front) ProposalStatus(cc *types.ContractContext, ProposalID uint64) (string, error) {
	p, err := f.cont.Proposal(cc, ProposalID)
	if err != nil {
		return "", err
	}
	return p.Status.String(), nil
}

func (f *front) ProposalApprovals(cc *types.ContractContext, ProposalID uint64) ([]common.Address, error) {
	p, err := f.cont.Proposal(cc, ProposalID)
	if err != nil {
		return nil, err
	}
	return p.Approvals, nil
}
