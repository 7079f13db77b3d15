package partyround

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/core/types"
)

// reentrancyGuard is the in-progress flag of one entity, kept in its contract data
type reentrancyGuard struct {
	cc *types.ContractContext
}

func newGuard(cc *types.ContractContext) *reentrancyGuard {
	return &reentrancyGuard{cc: cc}
}

func (g *reentrancyGuard) InProgress() bool {
	bs := g.cc.ContractData([]byte{tagGuard})
	return len(bs) == 1 && bs[0] == 1
}

func (g *reentrancyGuard) start() error {
	if g.InProgress() {
		return errors.WithStack(ErrReentrancyAttempt)
	}
	g.cc.SetContractData([]byte{tagGuard}, []byte{1})
	return nil
}

func (g *reentrancyGuard) complete() {
	g.cc.SetContractData([]byte{tagGuard}, nil)
}

// acquire starts the guard and returns its release, callers defer the release
// so the flag is cleared on success, error and panic alike
func (g *reentrancyGuard) acquire() (func(), error) {
	if err := g.start(); err != nil {
		return func() {}, err
	}
	return g.complete, nil
}
