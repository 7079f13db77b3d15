package partyround

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/core/types"
)

// check is one stage of the validation pass that runs before an operation body
type check func(cc *types.ContractContext, st *FundraiseState) error

// run executes a mutating operation: guard, state load, checks, body.
// The guard is released on every exit path of body.
func (cont *PartyRoundContract) run(cc *types.ContractContext, checks []check, body func(st *FundraiseState) error) error {
	release, err := newGuard(cc).acquire()
	if err != nil {
		return err
	}
	defer release()

	st, err := cont.loadState(cc)
	if err != nil {
		return err
	}
	for _, c := range checks {
		if err := c(cc, st); err != nil {
			return err
		}
	}
	return body(st)
}

func requireInitialized(cc *types.ContractContext, st *FundraiseState) error {
	if !st.Initialized {
		return errors.WithStack(ErrNotInitialized)
	}
	return nil
}

// requireAuthority admits the authority while no multisig governs the entity
func (cont *PartyRoundContract) requireAuthority(cc *types.ContractContext, st *FundraiseState) error {
	if cont.hasMultisig(cc) {
		return errors.Wrap(ErrUnauthorized, "privileged operations require an approved proposal")
	}
	if cc.From() != st.Authority {
		return errors.Wrap(ErrUnauthorized, cc.From().String())
	}
	return nil
}

func (cont *PartyRoundContract) requireMultisig(cc *types.ContractContext, st *FundraiseState) error {
	if !cont.hasMultisig(cc) {
		return errors.WithStack(ErrMultisigNotExist)
	}
	return nil
}

func (cont *PartyRoundContract) requireNoMultisig(cc *types.ContractContext, st *FundraiseState) error {
	if cont.hasMultisig(cc) {
		return errors.WithStack(ErrMultisigAlreadyExists)
	}
	return nil
}

// isAuthority reports whether the caller takes the administrative path directly
func (cont *PartyRoundContract) isAuthority(cc *types.ContractContext, st *FundraiseState) bool {
	return cont.requireAuthority(cc, st) == nil
}
