package partyround

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/core/types"
)

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

// Initialize fixes the fundraise terms and mints the whole supply into the treasury
func (cont *PartyRoundContract) Initialize(cc *types.ContractContext, p *InitParams) error {
	return cont.run(cc, []check{cont.requireAuthority}, func(st *FundraiseState) error {
		next, err := initializeState(st, p)
		if err != nil {
			return err
		}
		if err := cont.tokenCall(cc, cont.ownershipToken(cc), "Mint", cont.addr, next.TotalSupply); err != nil {
			return err
		}
		if err := cont.saveState(cc, next); err != nil {
			return err
		}
		cc.EmitEvent("Initialized",
			types.Attr{Key: "name", Value: next.Name},
			types.Attr{Key: "symbol", Value: next.Symbol},
			types.Attr{Key: "totalSupply", Value: strconv.FormatUint(next.TotalSupply, 10)},
			types.Attr{Key: "fundraiseEndTs", Value: strconv.FormatInt(next.FundraiseEndTs, 10)},
			types.Attr{Key: "tokenPrice", Value: strconv.FormatUint(next.TokenPrice, 10)},
		)
		return nil
	})
}

// Contribute takes am base units from the caller and issues am*price ownership tokens
func (cont *PartyRoundContract) Contribute(cc *types.ContractContext, am uint64) (uint64, error) {
	var issued uint64
	err := cont.run(cc, nil, func(st *FundraiseState) error {
		caller := cc.From()
		next, tokens, err := contributeState(st, caller, am, cc.Timestamp())
		if err != nil {
			return err
		}
		base := cont.baseToken(cc)
		own := cont.ownershipToken(cc)
		bal, err := cont.balanceOf(cc, base, caller)
		if err != nil {
			return err
		}
		if bal < am {
			return errors.Wrapf(ErrInsufficientBalance, "%v has %v, contributes %v", caller.String(), bal, am)
		}
		available, err := cont.balanceOf(cc, own, cont.addr)
		if err != nil {
			return err
		}
		if available < tokens {
			return errors.Wrapf(ErrInsufficientBalance, "treasury has %v tokens, requested %v", available, tokens)
		}

		if err := cont.tokenCall(cc, base, "TransferFrom", caller, cont.addr, am); err != nil {
			return err
		}
		if err := cont.tokenCall(cc, own, "Transfer", caller, tokens); err != nil {
			return err
		}
		if err := cont.saveState(cc, next); err != nil {
			return err
		}
		cc.EmitEvent("Contributed",
			types.Attr{Key: "contributor", Value: caller.String()},
			types.Attr{Key: "amount", Value: strconv.FormatUint(am, 10)},
			types.Attr{Key: "tokens", Value: strconv.FormatUint(tokens, 10)},
		)
		issued = tokens
		return nil
	})
	if err != nil {
		return 0, err
	}
	return issued, nil
}

// CloseFundraise ends the fundraise after the deadline, or earlier on the administrative path
func (cont *PartyRoundContract) CloseFundraise(cc *types.ContractContext) error {
	return cont.run(cc, []check{requireInitialized}, func(st *FundraiseState) error {
		return cont.closeFundraise(cc, st, cont.isAuthority(cc, st))
	})
}

// Redeem burns am ownership tokens of the caller for floor(treasury*am/supply) base units
func (cont *PartyRoundContract) Redeem(cc *types.ContractContext, am uint64) (uint64, error) {
	var paid uint64
	err := cont.run(cc, []check{requireInitialized}, func(st *FundraiseState) error {
		caller := cc.From()
		base := cont.baseToken(cc)
		own := cont.ownershipToken(cc)
		bal, err := cont.balanceOf(cc, own, caller)
		if err != nil {
			return err
		}
		supply, err := cont.totalSupply(cc, own)
		if err != nil {
			return err
		}
		treasury, err := cont.balanceOf(cc, base, cont.addr)
		if err != nil {
			return err
		}
		v, err := redemptionAmount(st, am, bal, supply, treasury)
		if err != nil {
			return err
		}

		if err := cont.tokenCall(cc, base, "Transfer", caller, v); err != nil {
			return err
		}
		if err := cont.tokenCall(cc, own, "BurnFrom", caller, am); err != nil {
			return err
		}
		cc.EmitEvent("Redeemed",
			types.Attr{Key: "redeemer", Value: caller.String()},
			types.Attr{Key: "tokens", Value: strconv.FormatUint(am, 10)},
			types.Attr{Key: "amount", Value: strconv.FormatUint(v, 10)},
		)
		paid = v
		return nil
	})
	if err != nil {
		return 0, err
	}
	return paid, nil
}

// LockLiquidity sets the logical liquidity lock, no value moves
func (cont *PartyRoundContract) LockLiquidity(cc *types.ContractContext, lockEndTs int64) error {
	return cont.run(cc, []check{requireInitialized, cont.requireAuthority}, func(st *FundraiseState) error {
		return cont.lockLiquidity(cc, st, lockEndTs)
	})
}

func (cont *PartyRoundContract) WithdrawLockedLiquidity(cc *types.ContractContext) error {
	return cont.run(cc, []check{requireInitialized, cont.requireAuthority}, func(st *FundraiseState) error {
		return cont.withdrawLockedLiquidity(cc, st)
	})
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *PartyRoundContract) FundraiseState(cc *types.ContractContext) *FundraiseState {
	return cont.currentState(cc)
}

func (cont *PartyRoundContract) Authority(cc *types.ContractContext) common.Address {
	return cont.currentState(cc).Authority
}

func (cont *PartyRoundContract) IsInitialized(cc *types.ContractContext) bool {
	return cont.currentState(cc).Initialized
}

func (cont *PartyRoundContract) Name(cc *types.ContractContext) string {
	return cont.currentState(cc).Name
}

func (cont *PartyRoundContract) Symbol(cc *types.ContractContext) string {
	return cont.currentState(cc).Symbol
}

func (cont *PartyRoundContract) TotalSupply(cc *types.ContractContext) uint64 {
	return cont.currentState(cc).TotalSupply
}

func (cont *PartyRoundContract) FundraiseEndTs(cc *types.ContractContext) int64 {
	return cont.currentState(cc).FundraiseEndTs
}

func (cont *PartyRoundContract) TokenPrice(cc *types.ContractContext) uint64 {
	return cont.currentState(cc).TokenPrice
}

func (cont *PartyRoundContract) Allowlist(cc *types.ContractContext) []common.Address {
	return cont.currentState(cc).Allowlist
}

func (cont *PartyRoundContract) IsOpen(cc *types.ContractContext) bool {
	return cont.currentState(cc).IsOpen(cc.Timestamp())
}

func (cont *PartyRoundContract) FundraiseEnded(cc *types.ContractContext) bool {
	return cont.currentState(cc).FundraiseEnded
}

func (cont *PartyRoundContract) TotalContributions(cc *types.ContractContext) uint64 {
	return cont.currentState(cc).TotalContributions
}

func (cont *PartyRoundContract) TotalContributors(cc *types.ContractContext) uint32 {
	return cont.currentState(cc).TotalContributors
}

func (cont *PartyRoundContract) LiquidityLocked(cc *types.ContractContext) bool {
	return cont.currentState(cc).LiquidityLocked
}

func (cont *PartyRoundContract) LockEndTs(cc *types.ContractContext) int64 {
	return cont.currentState(cc).LockEndTs
}

func (cont *PartyRoundContract) BaseToken(cc *types.ContractContext) common.Address {
	return cont.baseToken(cc)
}

func (cont *PartyRoundContract) OwnershipToken(cc *types.ContractContext) common.Address {
	return cont.ownershipToken(cc)
}

// TreasuryBalance returns the base units held by the entity
func (cont *PartyRoundContract) TreasuryBalance(cc *types.ContractContext) (uint64, error) {
	return cont.balanceOf(cc, cont.baseToken(cc), cont.addr)
}

// TreasuryTokens returns the unsold ownership tokens held by the entity
func (cont *PartyRoundContract) TreasuryTokens(cc *types.ContractContext) (uint64, error) {
	return cont.balanceOf(cc, cont.ownershipToken(cc), cont.addr)
}

func (cont *PartyRoundContract) GuardInProgress(cc *types.ContractContext) bool {
	return newGuard(cc).InProgress()
}
