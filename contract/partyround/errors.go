package partyround

import (
	"github.com/pkg/errors"
)

// Kind classifies a failure of the fundraise entity
type Kind uint8

// failure kinds
const (
	UnknownError Kind = iota
	LifecycleError
	AuthorizationError
	ValidationError
	FundsError
	LockStateError
	ReentrancyError
	GovernanceError
)

func (k Kind) String() string {
	switch k {
	case LifecycleError:
		return "LifecycleError"
	case AuthorizationError:
		return "AuthorizationError"
	case ValidationError:
		return "ValidationError"
	case FundsError:
		return "FundsError"
	case LockStateError:
		return "LockStateError"
	case ReentrancyError:
		return "ReentrancyError"
	case GovernanceError:
		return "GovernanceError"
	}
	return "UnknownError"
}

// Error is a named failure reason with its kind
type Error struct {
	kind Kind
	name string
	msg  string
}

func newError(kind Kind, name string, msg string) *Error {
	return &Error{kind: kind, name: name, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

// Name returns the failure reason reported to callers
func (e *Error) Name() string {
	return e.name
}

func (e *Error) Kind() Kind {
	return e.kind
}

// KindOf returns the kind of the first partyround error in the chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return UnknownError
}

// partyround errors
var (
	ErrFundraiseEnded     = newError(LifecycleError, "FundraiseEnded", "fundraise period has ended")
	ErrFundraiseNotEnded  = newError(LifecycleError, "FundraiseNotEnded", "fundraise period has not ended yet")
	ErrNotInitialized     = newError(LifecycleError, "NotInitialized", "fundraise is not initialized")
	ErrAlreadyInitialized = newError(LifecycleError, "AlreadyInitialized", "fundraise is already initialized")

	ErrNotAllowlisted    = newError(AuthorizationError, "NotAllowlisted", "address not in allowlist")
	ErrAddressNotAllowed = newError(AuthorizationError, "AddressNotAllowed", "address not allowed")
	ErrUnauthorized      = newError(AuthorizationError, "Unauthorized", "unauthorized caller")

	ErrInvalidContributionAmount = newError(ValidationError, "InvalidContributionAmount", "invalid contribution amount")
	ErrInvalidRedemptionAmount   = newError(ValidationError, "InvalidRedemptionAmount", "invalid redemption amount")
	ErrInvalidThreshold          = newError(ValidationError, "InvalidThreshold", "threshold exceeds number of owners")
	ErrInvalidOwnerCount         = newError(ValidationError, "InvalidOwnerCount", "invalid number of owners")
	ErrDuplicateOwner            = newError(ValidationError, "DuplicateOwner", "duplicate owner address")
	ErrInvalidParameter          = newError(ValidationError, "InvalidParameter", "invalid parameter")

	ErrInsufficientBalance       = newError(FundsError, "InsufficientBalance", "insufficient token balance")
	ErrInsufficientTreasuryFunds = newError(FundsError, "InsufficientTreasuryFunds", "treasury has insufficient funds")

	ErrLiquidityAlreadyLocked = newError(LockStateError, "LiquidityAlreadyLocked", "liquidity is already locked")
	ErrLiquidityNotLocked     = newError(LockStateError, "LiquidityNotLocked", "liquidity not locked")
	ErrLiquidityStillLocked   = newError(LockStateError, "LiquidityStillLocked", "liquidity is still locked")

	ErrReentrancyAttempt = newError(ReentrancyError, "ReentrancyAttempt", "reentrancy detected")

	ErrMultisigAlreadyExists   = newError(GovernanceError, "MultisigAlreadyExists", "multisig already exists")
	ErrMultisigNotExist        = newError(GovernanceError, "MultisigNotExist", "multisig not exist")
	ErrProposalNotFound        = newError(GovernanceError, "ProposalNotFound", "proposal not found")
	ErrProposalAlreadyExecuted = newError(GovernanceError, "ProposalAlreadyExecuted", "proposal already executed")
	ErrProposalExpired         = newError(GovernanceError, "ProposalExpired", "proposal expired by owner set change")
	ErrAlreadyApproved         = newError(GovernanceError, "AlreadyApproved", "owner already approved the proposal")
	ErrInvalidAction           = newError(GovernanceError, "InvalidAction", "invalid proposal action")
)
