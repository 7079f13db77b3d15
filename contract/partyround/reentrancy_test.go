package partyround_test

import (
	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/contract/partyround"
	"github.com/meverselabs/partyround/core/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// callbackErr keeps the result of the nested call made by callbackToken
var callbackErr error

// callbackToken is a base ledger that calls back into the entity while moving value
type callbackToken struct {
	addr   common.Address
	master common.Address
}

func (cont *callbackToken) Address() common.Address { return cont.addr }
func (cont *callbackToken) Master() common.Address  { return cont.master }
func (cont *callbackToken) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}
func (cont *callbackToken) OnCreate(cc *types.ContractContext, Args []byte) error { return nil }
func (cont *callbackToken) Front() interface{}                                    { return &callbackFront{} }

type callbackFront struct{}

func (f *callbackFront) SetTarget(cc *types.ContractContext, target common.Address) {
	cc.SetContractData([]byte{0x01}, target[:])
}

func (f *callbackFront) BalanceOf(cc *types.ContractContext, addr common.Address) uint64 {
	return 1 << 40
}

func (f *callbackFront) TotalSupply(cc *types.ContractContext) uint64 {
	return 1 << 40
}

func (f *callbackFront) Transfer(cc *types.ContractContext, To common.Address, Amount uint64) (bool, error) {
	return true, nil
}

func (f *callbackFront) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount uint64) (bool, error) {
	target := common.BytesToAddress(cc.ContractData([]byte{0x01}))
	_, callbackErr = cc.Exec(cc, target, "Contribute", []interface{}{uint64(1)})
	return true, nil
}

var _ = Describe("ReentrancyGuard", func() {
	It("rejects a nested call into the entity", func() {
		callbackErr = nil
		ctx := types.NewEmptyContext()
		ctx.SetTimestamp(startTs)
		classID, err := types.RegisterContractType(&callbackToken{})
		Expect(err).To(Succeed())
		v, err := ctx.DeployContract(admin, classID, nil)
		Expect(err).To(Succeed())
		base := v.Address()

		p := deployParty(ctx, base)
		_, err = p.token(admin, base, "SetTarget", p.entry)
		Expect(err).To(Succeed())
		p.initialize(1000, 1)

		tokens, err := p.contribute(alice, 5)
		Expect(err).To(Succeed())
		Expect(tokens).To(Equal(uint64(5)))
		Expect(callbackErr).To(MatchError(partyround.ErrReentrancyAttempt))
		Expect(partyround.KindOf(callbackErr)).To(Equal(partyround.ReentrancyError))

		Expect(p.view("TotalContributors")).To(Equal(uint32(1)))
		Expect(p.view("TotalContributions")).To(Equal(uint64(5)))
		Expect(p.view("GuardInProgress")).To(BeFalse())
	})

	It("is released after failing operations", func() {
		p := newParty()
		p.initialize(1000, 1)
		p.approve(alice, 10)

		_, err := p.contribute(alice, 0)
		Expect(err).To(HaveOccurred())
		Expect(p.view("GuardInProgress")).To(BeFalse())
		_, err = p.exec(alice, "LockLiquidity", int64(10))
		Expect(err).To(HaveOccurred())
		Expect(p.view("GuardInProgress")).To(BeFalse())
		_, err = p.redeem(alice, 1)
		Expect(err).To(HaveOccurred())
		Expect(p.view("GuardInProgress")).To(BeFalse())

		_, err = p.contribute(alice, 1)
		Expect(err).To(Succeed())
	})
})
