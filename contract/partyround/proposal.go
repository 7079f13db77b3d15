package partyround

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
)

// ActionType is the privileged operation a proposal dispatches
type ActionType uint8

// proposal actions
const (
	ActionMemo ActionType = iota + 1
	ActionCloseFundraise
	ActionLockLiquidity
	ActionWithdrawLockedLiquidity
	ActionAddOwner
	ActionRemoveOwner
	ActionChangeThreshold
)

var actionNames = map[ActionType]string{
	ActionMemo:                    "memo",
	ActionCloseFundraise:          "close_fundraise",
	ActionLockLiquidity:           "lock_liquidity",
	ActionWithdrawLockedLiquidity: "withdraw_locked_liquidity",
	ActionAddOwner:                "add_owner",
	ActionRemoveOwner:             "remove_owner",
	ActionChangeThreshold:         "change_threshold",
}

func (t ActionType) String() string {
	if name, has := actionNames[t]; has {
		return name
	}
	return "unknown"
}

// Action is a typed proposal payload, only one parameter is meaningful per type
type Action struct {
	Type      ActionType
	LockEndTs int64
	Owner     common.Address
	Threshold uint8
}

// ParseAction builds an action from its name and text parameter
func ParseAction(name string, param string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	param = strings.TrimSpace(param)
	var t ActionType
	for k, v := range actionNames {
		if v == name {
			t = k
			break
		}
	}
	if name == "" {
		t = ActionMemo
	}
	a := Action{Type: t}
	switch t {
	case ActionMemo, ActionCloseFundraise, ActionWithdrawLockedLiquidity:
	case ActionLockLiquidity:
		ts, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			return Action{}, errors.Wrap(ErrInvalidAction, err.Error())
		}
		a.LockEndTs = ts
	case ActionAddOwner, ActionRemoveOwner:
		addr, err := common.ParseAddress(param)
		if err != nil {
			return Action{}, errors.Wrap(ErrInvalidAction, err.Error())
		}
		a.Owner = addr
	case ActionChangeThreshold:
		n, err := strconv.ParseUint(param, 10, 8)
		if err != nil {
			return Action{}, errors.Wrap(ErrInvalidAction, err.Error())
		}
		a.Threshold = uint8(n)
	default:
		return Action{}, errors.Wrapf(ErrInvalidAction, "%q", name)
	}
	return a, nil
}

func (a Action) String() string {
	switch a.Type {
	case ActionLockLiquidity:
		return a.Type.String() + "(" + strconv.FormatInt(a.LockEndTs, 10) + ")"
	case ActionAddOwner, ActionRemoveOwner:
		return a.Type.String() + "(" + a.Owner.String() + ")"
	case ActionChangeThreshold:
		return a.Type.String() + "(" + strconv.Itoa(int(a.Threshold)) + ")"
	}
	return a.Type.String()
}

func (a *Action) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint8(w, uint8(a.Type)); err != nil {
		return sum, err
	}
	switch a.Type {
	case ActionLockLiquidity:
		if sum, err := sw.Int64(w, a.LockEndTs); err != nil {
			return sum, err
		}
	case ActionAddOwner, ActionRemoveOwner:
		if sum, err := sw.Address(w, a.Owner); err != nil {
			return sum, err
		}
	case ActionChangeThreshold:
		if sum, err := sw.Uint8(w, a.Threshold); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (a *Action) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	var t uint8
	if sum, err := sr.Uint8(r, &t); err != nil {
		return sum, err
	}
	a.Type = ActionType(t)
	switch a.Type {
	case ActionMemo, ActionCloseFundraise, ActionWithdrawLockedLiquidity:
	case ActionLockLiquidity:
		if sum, err := sr.Int64(r, &a.LockEndTs); err != nil {
			return sum, err
		}
	case ActionAddOwner, ActionRemoveOwner:
		if sum, err := sr.Address(r, &a.Owner); err != nil {
			return sum, err
		}
	case ActionChangeThreshold:
		if sum, err := sr.Uint8(r, &a.Threshold); err != nil {
			return sum, err
		}
	default:
		return sr.Sum(), errors.Wrapf(ErrInvalidAction, "type %v", t)
	}
	return sr.Sum(), nil
}

// ProposalStatus is the lifecycle of a proposal
type ProposalStatus uint8

// proposal statuses
const (
	StatusPending ProposalStatus = iota + 1
	StatusExecuted
	StatusExpired
)

func (s ProposalStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusExecuted:
		return "Executed"
	case StatusExpired:
		return "Expired"
	}
	return "Unknown"
}

// Proposal records a privileged action waiting for owner approvals
type Proposal struct {
	ID            uint64
	Proposer      common.Address
	Description   string
	Action        Action
	OwnerSetSeqno uint64
	Approvals     []common.Address
	Status        ProposalStatus
}

// StatusAt returns the status seen against the current owner set version
func (p *Proposal) StatusAt(seqno uint64) ProposalStatus {
	if p.Status == StatusPending && p.OwnerSetSeqno != seqno {
		return StatusExpired
	}
	return p.Status
}

func (p *Proposal) HasApproved(addr common.Address) bool {
	return common.ContainsAddress(p.Approvals, addr)
}

func (p *Proposal) Clone() *Proposal {
	c := *p
	c.Approvals = append([]common.Address{}, p.Approvals...)
	return &c
}

func (p *Proposal) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint64(w, p.ID); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, p.Proposer); err != nil {
		return sum, err
	}
	if sum, err := sw.LimitedString(w, p.Description, MaxDescriptionLength); err != nil {
		return sum, err
	}
	if sum, err := sw.WriterTo(w, &p.Action); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, p.OwnerSetSeqno); err != nil {
		return sum, err
	}
	if sum, err := sw.Addresses(w, p.Approvals, MaxOwners); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint8(w, uint8(p.Status)); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (p *Proposal) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Uint64(r, &p.ID); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &p.Proposer); err != nil {
		return sum, err
	}
	if sum, err := sr.LimitedString(r, &p.Description, MaxDescriptionLength); err != nil {
		return sum, err
	}
	if sum, err := sr.ReaderFrom(r, &p.Action); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &p.OwnerSetSeqno); err != nil {
		return sum, err
	}
	if sum, err := sr.Addresses(r, &p.Approvals, MaxOwners); err != nil {
		return sum, err
	}
	var status uint8
	if sum, err := sr.Uint8(r, &status); err != nil {
		return sum, err
	}
	p.Status = ProposalStatus(status)
	return sr.Sum(), nil
}
