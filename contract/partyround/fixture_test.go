package partyround_test

import (
	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
	"github.com/meverselabs/partyround/contract/partyround"
	"github.com/meverselabs/partyround/contract/token"
	"github.com/meverselabs/partyround/core/types"

	. "github.com/onsi/gomega"
)

const (
	startTs = int64(1000)
	endTs   = int64(2000)
)

var (
	admin = common.HexToAddress("0xad")
	alice = common.HexToAddress("0xa1")
	bob   = common.HexToAddress("0xb0")
	carol = common.HexToAddress("0xc0")
	dave  = common.HexToAddress("0xd0")
)

// party is a deployed entity with its base and ownership token ledgers
type party struct {
	ctx   *types.Context
	base  common.Address
	own   common.Address
	entry common.Address
}

func deployToken(ctx *types.Context, name string, initial map[common.Address]uint64) common.Address {
	classID, err := types.RegisterContractType(&token.TokenContract{})
	Expect(err).To(Succeed())
	bs, _, err := bin.WriterToBytes(&token.TokenContractConstruction{
		Name:             name,
		Symbol:           name,
		InitialSupplyMap: initial,
	})
	Expect(err).To(Succeed())
	v, err := ctx.DeployContract(admin, classID, bs)
	Expect(err).To(Succeed())
	return v.Address()
}

func deployParty(ctx *types.Context, base common.Address) *party {
	own := deployToken(ctx, "OWN", map[common.Address]uint64{})
	classID, err := types.RegisterContractType(&partyround.PartyRoundContract{})
	Expect(err).To(Succeed())
	bs, _, err := bin.WriterToBytes(&partyround.PartyRoundContractConstruction{
		BaseToken:      base,
		OwnershipToken: own,
	})
	Expect(err).To(Succeed())
	v, err := ctx.DeployContract(admin, classID, bs)
	Expect(err).To(Succeed())
	p := &party{
		ctx:   ctx,
		base:  base,
		own:   own,
		entry: v.Address(),
	}
	_, err = p.token(admin, own, "SetMinter", p.entry, true)
	Expect(err).To(Succeed())
	return p
}

func newParty() *party {
	ctx := types.NewEmptyContext()
	ctx.SetTimestamp(startTs)
	base := deployToken(ctx, "BASE", map[common.Address]uint64{
		alice: 1000000,
		bob:   1000000,
		carol: 1000000,
	})
	return deployParty(ctx, base)
}

func (p *party) exec(from common.Address, method string, args ...interface{}) ([]interface{}, error) {
	if args == nil {
		args = []interface{}{}
	}
	return types.ExecFrom(p.ctx, from, p.entry, method, args)
}

func (p *party) token(from common.Address, tokenAddr common.Address, method string, args ...interface{}) ([]interface{}, error) {
	if args == nil {
		args = []interface{}{}
	}
	return types.ExecFrom(p.ctx, from, tokenAddr, method, args)
}

func (p *party) view(method string, args ...interface{}) interface{} {
	is, err := p.exec(admin, method, args...)
	Expect(err).To(Succeed())
	Expect(is).NotTo(BeEmpty())
	return is[0]
}

func (p *party) initialize(supply uint64, price uint64, allowlist ...common.Address) {
	if allowlist == nil {
		allowlist = []common.Address{}
	}
	_, err := p.exec(admin, "Initialize", "Party", "PTY", supply, endTs, price, allowlist)
	Expect(err).To(Succeed())
}

func (p *party) approve(from common.Address, am uint64) {
	_, err := p.token(from, p.base, "Approve", p.entry, am)
	Expect(err).To(Succeed())
}

func (p *party) contribute(from common.Address, am uint64) (uint64, error) {
	is, err := p.exec(from, "Contribute", am)
	if err != nil {
		return 0, err
	}
	return is[0].(uint64), nil
}

func (p *party) redeem(from common.Address, am uint64) (uint64, error) {
	is, err := p.exec(from, "Redeem", am)
	if err != nil {
		return 0, err
	}
	return is[0].(uint64), nil
}

func (p *party) balance(tokenAddr common.Address, addr common.Address) uint64 {
	is, err := p.token(admin, tokenAddr, "BalanceOf", addr)
	Expect(err).To(Succeed())
	return is[0].(uint64)
}

func (p *party) supply() uint64 {
	is, err := p.token(admin, p.own, "TotalSupply")
	Expect(err).To(Succeed())
	return is[0].(uint64)
}

func (p *party) state() *partyround.FundraiseState {
	return p.view("FundraiseState").(*partyround.FundraiseState)
}

func (p *party) propose(from common.Address, description string, action string, param string) uint64 {
	is, err := p.exec(from, "Propose", description, action, param)
	Expect(err).To(Succeed())
	return is[0].(uint64)
}

func (p *party) approveAction(from common.Address, id uint64) (bool, error) {
	is, err := p.exec(from, "ApproveAction", id)
	if err != nil {
		return false, err
	}
	return is[0].(bool), nil
}

func (p *party) proposal(id uint64) *partyround.Proposal {
	return p.view("Proposal", id).(*partyround.Proposal)
}

func (p *party) lastEvent(typ string) *types.Event {
	evs := p.ctx.Events()
	for i := len(evs) - 1; i >= 0; i-- {
		if evs[i].Type == typ {
			return evs[i]
		}
	}
	return nil
}
