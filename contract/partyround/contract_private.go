package partyround

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/rlog"
	"github.com/meverselabs/partyround/core/types"
)

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *PartyRoundContract) baseToken(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagBaseToken}))
}

func (cont *PartyRoundContract) ownershipToken(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagOwnershipToken}))
}

func (cont *PartyRoundContract) tokenUint64(cc *types.ContractContext, token common.Address, method string, args ...interface{}) (uint64, error) {
	if args == nil {
		args = []interface{}{}
	}
	is, err := cc.Exec(cc, token, method, args)
	if err != nil {
		return 0, err
	}
	if len(is) == 0 {
		return 0, errors.Errorf("%v of %v returns nothing", method, token.String())
	}
	v, ok := is[0].(uint64)
	if !ok {
		return 0, errors.Errorf("%v of %v returns %T", method, token.String(), is[0])
	}
	return v, nil
}

func (cont *PartyRoundContract) balanceOf(cc *types.ContractContext, token common.Address, addr common.Address) (uint64, error) {
	return cont.tokenUint64(cc, token, "BalanceOf", addr)
}

func (cont *PartyRoundContract) totalSupply(cc *types.ContractContext, token common.Address) (uint64, error) {
	return cont.tokenUint64(cc, token, "TotalSupply")
}

func (cont *PartyRoundContract) tokenCall(cc *types.ContractContext, token common.Address, method string, args ...interface{}) error {
	_, err := cc.Exec(cc, token, method, args)
	return err
}

func (cont *PartyRoundContract) closeFundraise(cc *types.ContractContext, st *FundraiseState, override bool) error {
	treasury, err := cont.balanceOf(cc, cont.baseToken(cc), cont.addr)
	if err != nil {
		return err
	}
	next, alloc, err := closeState(st, cc.Timestamp(), override, treasury)
	if err != nil {
		return err
	}
	if err := cont.saveState(cc, next); err != nil {
		return err
	}
	cc.EmitEvent("FundraiseClosed",
		types.Attr{Key: "total", Value: strconv.FormatUint(alloc.Total, 10)},
		types.Attr{Key: "defi", Value: strconv.FormatUint(alloc.DeFi, 10)},
		types.Attr{Key: "amm", Value: strconv.FormatUint(alloc.AMM, 10)},
	)
	return nil
}

func (cont *PartyRoundContract) lockLiquidity(cc *types.ContractContext, st *FundraiseState, lockEndTs int64) error {
	next, err := lockState(st, lockEndTs)
	if err != nil {
		return err
	}
	if err := cont.saveState(cc, next); err != nil {
		return err
	}
	cc.EmitEvent("LiquidityLocked",
		types.Attr{Key: "lockEndTs", Value: strconv.FormatInt(lockEndTs, 10)},
	)
	return nil
}

func (cont *PartyRoundContract) withdrawLockedLiquidity(cc *types.ContractContext, st *FundraiseState) error {
	next, err := unlockState(st, cc.Timestamp())
	if err != nil {
		return err
	}
	if err := cont.saveState(cc, next); err != nil {
		return err
	}
	cc.EmitEvent("LiquidityUnlocked",
		types.Attr{Key: "lockEndTs", Value: strconv.FormatInt(st.LockEndTs, 10)},
	)
	return nil
}

func (cont *PartyRoundContract) changeOwnerSet(cc *types.ContractContext, a Action) error {
	cfg, err := cont.loadMultisig(cc)
	if err != nil {
		return err
	}
	next, err := changeOwners(cfg, a)
	if err != nil {
		return err
	}
	if err := cont.saveMultisig(cc, next); err != nil {
		return err
	}
	cc.EmitEvent("OwnerSetChanged",
		types.Attr{Key: "action", Value: a.String()},
		types.Attr{Key: "threshold", Value: strconv.Itoa(int(next.Threshold))},
		types.Attr{Key: "seqno", Value: strconv.FormatUint(next.OwnerSetSeqno, 10)},
	)
	return nil
}

// dispatch runs the action of an executed proposal, the guard is already held
func (cont *PartyRoundContract) dispatch(cc *types.ContractContext, st *FundraiseState, a Action) error {
	rlog.Debugw("dispatch proposal action", "contract", cont.addr.String(), "action", a.String())
	switch a.Type {
	case ActionMemo:
		return nil
	case ActionCloseFundraise:
		return cont.closeFundraise(cc, st, true)
	case ActionLockLiquidity:
		return cont.lockLiquidity(cc, st, a.LockEndTs)
	case ActionWithdrawLockedLiquidity:
		return cont.withdrawLockedLiquidity(cc, st)
	case ActionAddOwner, ActionRemoveOwner, ActionChangeThreshold:
		return cont.changeOwnerSet(cc, a)
	}
	return errors.Wrap(ErrInvalidAction, a.String())
}

func (cont *PartyRoundContract) currentState(cc *types.ContractContext) *FundraiseState {
	st, err := cont.loadState(cc)
	if err != nil {
		rlog.Warnw("broken fundraise state", "contract", cont.addr.String(), "err", err)
		return &FundraiseState{}
	}
	return st
}

func (cont *PartyRoundContract) currentMultisig(cc *types.ContractContext) *MultisigConfig {
	if !cont.hasMultisig(cc) {
		return &MultisigConfig{Owners: []common.Address{}}
	}
	cfg, err := cont.loadMultisig(cc)
	if err != nil {
		rlog.Warnw("broken multisig config", "contract", cont.addr.String(), "err", err)
		return &MultisigConfig{Owners: []common.Address{}}
	}
	return cfg
}
