package partyround_test

import (
	"math"
	"strings"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/contract/partyround"
	"github.com/meverselabs/partyround/contract/token"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PartyRound", func() {
	var p *party

	BeforeEach(func() {
		p = newParty()
	})

	Describe("Initialize", func() {
		It("stores the terms and mints the supply into the treasury", func() {
			p.initialize(10000, 1000)
			st := p.state()
			Expect(st.Initialized).To(BeTrue())
			Expect(st.Authority).To(Equal(admin))
			Expect(st.Name).To(Equal("Party"))
			Expect(st.Symbol).To(Equal("PTY"))
			Expect(st.TotalSupply).To(Equal(uint64(10000)))
			Expect(st.FundraiseEndTs).To(Equal(endTs))
			Expect(st.TokenPrice).To(Equal(uint64(1000)))
			Expect(st.FundraiseEnded).To(BeFalse())
			Expect(p.balance(p.own, p.entry)).To(Equal(uint64(10000)))
			Expect(p.supply()).To(Equal(uint64(10000)))
			Expect(p.view("IsOpen")).To(BeTrue())
		})

		It("is reserved to the authority and runs once", func() {
			_, err := p.exec(alice, "Initialize", "Party", "PTY", uint64(100), endTs, uint64(1), []common.Address{})
			Expect(err).To(MatchError(partyround.ErrUnauthorized))

			p.initialize(100, 1)
			_, err = p.exec(admin, "Initialize", "Party", "PTY", uint64(100), endTs, uint64(1), []common.Address{})
			Expect(err).To(MatchError(partyround.ErrAlreadyInitialized))
			Expect(p.supply()).To(Equal(uint64(100)))
		})

		It("rejects bad terms", func() {
			_, err := p.exec(admin, "Initialize", strings.Repeat("n", partyround.MaxNameLength+1), "PTY", uint64(100), endTs, uint64(1), []common.Address{})
			Expect(err).To(MatchError(partyround.ErrInvalidParameter))
			Expect(partyround.KindOf(err)).To(Equal(partyround.ValidationError))

			_, err = p.exec(admin, "Initialize", "Party", "PTY", uint64(100), endTs, uint64(0), []common.Address{})
			Expect(err).To(MatchError(partyround.ErrInvalidParameter))

			_, err = p.exec(admin, "Initialize", "Party", "PTY", uint64(100), endTs, uint64(1), []common.Address{common.ZeroAddr})
			Expect(err).To(MatchError(partyround.ErrAddressNotAllowed))

			Expect(p.view("IsInitialized")).To(BeFalse())
			Expect(p.view("GuardInProgress")).To(BeFalse())
		})

		It("rejects operations before initialization", func() {
			_, err := p.contribute(alice, 1)
			Expect(err).To(MatchError(partyround.ErrNotInitialized))
			Expect(partyround.KindOf(err)).To(Equal(partyround.LifecycleError))
			_, err = p.exec(admin, "CloseFundraise")
			Expect(err).To(MatchError(partyround.ErrNotInitialized))
		})

		It("keeps privileged operations closed until initialization", func() {
			_, err := p.exec(admin, "LockLiquidity", int64(5000))
			Expect(err).To(MatchError(partyround.ErrNotInitialized))
			Expect(p.view("LiquidityLocked")).To(BeFalse())
			_, err = p.exec(admin, "WithdrawLockedLiquidity")
			Expect(err).To(MatchError(partyround.ErrNotInitialized))

			_, err = p.exec(admin, "CreateMultisig", []common.Address{alice, bob}, uint8(1))
			Expect(err).To(MatchError(partyround.ErrNotInitialized))
			Expect(p.view("HasMultisig")).To(BeFalse())
			_, err = p.exec(alice, "ProposeAction", "early")
			Expect(err).To(MatchError(partyround.ErrNotInitialized))
			_, err = p.exec(alice, "Propose", "early", "close_fundraise", "")
			Expect(err).To(MatchError(partyround.ErrNotInitialized))
			_, err = p.exec(alice, "ApproveAction", uint64(1))
			Expect(err).To(MatchError(partyround.ErrNotInitialized))
			Expect(p.view("GuardInProgress")).To(BeFalse())

			p.initialize(100, 1)
			Expect(p.view("IsInitialized")).To(BeTrue())
			_, err = p.exec(admin, "CreateMultisig", []common.Address{alice, bob}, uint8(1))
			Expect(err).To(Succeed())
		})
	})

	Describe("Contribute", func() {
		It("issues amount times price tokens", func() {
			p.initialize(100000, 1000)
			p.approve(alice, 5)
			tokens, err := p.contribute(alice, 5)
			Expect(err).To(Succeed())
			Expect(tokens).To(Equal(uint64(5000)))
			Expect(p.balance(p.own, alice)).To(Equal(uint64(5000)))
			Expect(p.balance(p.base, p.entry)).To(Equal(uint64(5)))
			Expect(p.balance(p.base, alice)).To(Equal(uint64(1000000 - 5)))
			Expect(p.view("TotalContributions")).To(Equal(uint64(5)))
			Expect(p.view("TotalContributors")).To(Equal(uint32(1)))

			ev := p.lastEvent("Contributed")
			Expect(ev).NotTo(BeNil())
			v, _ := ev.Attr("tokens")
			Expect(v).To(Equal("5000"))
		})

		It("sums every accepted contribution", func() {
			p.initialize(1000000, 3)
			amounts := []struct {
				from common.Address
				am   uint64
			}{{alice, 3}, {bob, 7}, {alice, 11}, {carol, 1}}
			var sum, issued uint64
			for _, c := range amounts {
				p.approve(c.from, c.am)
				_, err := p.contribute(c.from, c.am)
				Expect(err).To(Succeed())
				sum += c.am
				issued += c.am * 3
			}
			Expect(p.view("TotalContributions")).To(Equal(sum))
			Expect(p.view("TotalContributors")).To(Equal(uint32(len(amounts))))
			Expect(p.balance(p.base, p.entry)).To(Equal(sum))
			Expect(p.balance(p.own, alice) + p.balance(p.own, bob) + p.balance(p.own, carol)).To(Equal(issued))
			Expect(p.balance(p.own, p.entry)).To(Equal(uint64(1000000) - issued))
		})

		It("rejects a zero amount", func() {
			p.initialize(1000, 1)
			_, err := p.contribute(alice, 0)
			Expect(err).To(MatchError(partyround.ErrInvalidContributionAmount))
		})

		It("rejects contributions after the deadline", func() {
			p.initialize(1000, 1)
			p.approve(alice, 10)
			p.ctx.SetTimestamp(endTs)
			_, err := p.contribute(alice, 1)
			Expect(err).To(Succeed())
			p.ctx.SetTimestamp(endTs + 1)
			_, err = p.contribute(alice, 1)
			Expect(err).To(MatchError(partyround.ErrFundraiseEnded))
			Expect(p.view("TotalContributions")).To(Equal(uint64(1)))
		})

		It("admits only the allowlist when one is set", func() {
			p.initialize(1000, 1, alice)
			p.approve(alice, 10)
			p.approve(bob, 10)
			_, err := p.contribute(bob, 1)
			Expect(err).To(MatchError(partyround.ErrNotAllowlisted))
			Expect(partyround.KindOf(err)).To(Equal(partyround.AuthorizationError))
			_, err = p.contribute(alice, 1)
			Expect(err).To(Succeed())
		})

		It("treats overflow of the issued amount as invalid", func() {
			p.initialize(1000, math.MaxUint64)
			p.approve(alice, 10)
			_, err := p.contribute(alice, 2)
			Expect(err).To(MatchError(partyround.ErrInvalidContributionAmount))
			Expect(p.balance(p.base, p.entry)).To(Equal(uint64(0)))
		})

		It("fails when the treasury cannot cover the tokens", func() {
			p.initialize(100, 10)
			p.approve(alice, 100)
			_, err := p.contribute(alice, 11)
			Expect(err).To(MatchError(partyround.ErrInsufficientBalance))
			Expect(partyround.KindOf(err)).To(Equal(partyround.FundsError))
		})

		It("fails when the contributor has no funds", func() {
			p.initialize(1000, 1)
			p.approve(dave, 10)
			_, err := p.contribute(dave, 1)
			Expect(err).To(MatchError(partyround.ErrInsufficientBalance))
		})

		It("leaves nothing behind when the value transfer fails", func() {
			p.initialize(1000, 1)
			p.approve(alice, 1)
			_, err := p.contribute(alice, 2)
			Expect(err).To(MatchError(token.ErrExceedAllowance))
			Expect(p.view("TotalContributions")).To(Equal(uint64(0)))
			Expect(p.view("TotalContributors")).To(Equal(uint32(0)))
			Expect(p.balance(p.own, alice)).To(Equal(uint64(0)))
			Expect(p.balance(p.own, p.entry)).To(Equal(uint64(1000)))
			Expect(p.view("GuardInProgress")).To(BeFalse())
		})
	})

	Describe("CloseFundraise", func() {
		BeforeEach(func() {
			p.initialize(100000, 1)
			p.approve(alice, 1000)
			_, err := p.contribute(alice, 1000)
			Expect(err).To(Succeed())
		})

		It("waits for the deadline unless the authority closes", func() {
			_, err := p.exec(alice, "CloseFundraise")
			Expect(err).To(MatchError(partyround.ErrFundraiseNotEnded))
			Expect(p.view("FundraiseEnded")).To(BeFalse())

			_, err = p.exec(admin, "CloseFundraise")
			Expect(err).To(Succeed())
			Expect(p.view("FundraiseEnded")).To(BeTrue())
		})

		It("lets anyone close after the deadline, once", func() {
			p.ctx.SetTimestamp(endTs + 1)
			_, err := p.exec(bob, "CloseFundraise")
			Expect(err).To(Succeed())

			ev := p.lastEvent("FundraiseClosed")
			Expect(ev).NotTo(BeNil())
			total, _ := ev.Attr("total")
			defi, _ := ev.Attr("defi")
			amm, _ := ev.Attr("amm")
			Expect(total).To(Equal("1000"))
			Expect(defi).To(Equal("900"))
			Expect(amm).To(Equal("100"))

			_, err = p.exec(bob, "CloseFundraise")
			Expect(err).To(MatchError(partyround.ErrFundraiseEnded))
			_, err = p.exec(admin, "CloseFundraise")
			Expect(err).To(MatchError(partyround.ErrFundraiseEnded))
			Expect(p.view("FundraiseEnded")).To(BeTrue())
		})

		It("stops contributions for good", func() {
			_, err := p.exec(admin, "CloseFundraise")
			Expect(err).To(Succeed())
			p.approve(bob, 10)
			_, err = p.contribute(bob, 1)
			Expect(err).To(MatchError(partyround.ErrFundraiseEnded))
			p.ctx.SetTimestamp(startTs)
			_, err = p.contribute(bob, 1)
			Expect(err).To(MatchError(partyround.ErrFundraiseEnded))
			Expect(p.view("IsOpen")).To(BeFalse())
		})
	})

	Describe("Redeem", func() {
		It("pays the proportional share of the treasury", func() {
			p.initialize(10000, 10)
			p.approve(alice, 250)
			p.approve(bob, 750)
			_, err := p.contribute(alice, 250)
			Expect(err).To(Succeed())
			_, err = p.contribute(bob, 750)
			Expect(err).To(Succeed())
			Expect(p.balance(p.own, alice)).To(Equal(uint64(2500)))
			Expect(p.supply()).To(Equal(uint64(10000)))
			Expect(p.balance(p.base, p.entry)).To(Equal(uint64(1000)))

			_, err = p.redeem(alice, 2500)
			Expect(err).To(MatchError(partyround.ErrFundraiseNotEnded))

			p.ctx.SetTimestamp(endTs + 1)
			_, err = p.exec(alice, "CloseFundraise")
			Expect(err).To(Succeed())

			paid, err := p.redeem(alice, 2500)
			Expect(err).To(Succeed())
			Expect(paid).To(Equal(uint64(250)))
			Expect(p.balance(p.base, alice)).To(Equal(uint64(1000000)))
			Expect(p.balance(p.base, p.entry)).To(Equal(uint64(750)))
			Expect(p.balance(p.own, alice)).To(Equal(uint64(0)))
			Expect(p.supply()).To(Equal(uint64(7500)))
		})

		It("rejects amounts outside the holder balance", func() {
			p.initialize(1000, 1)
			p.approve(alice, 10)
			_, err := p.contribute(alice, 10)
			Expect(err).To(Succeed())
			_, err = p.exec(admin, "CloseFundraise")
			Expect(err).To(Succeed())

			_, err = p.redeem(alice, 0)
			Expect(err).To(MatchError(partyround.ErrInvalidRedemptionAmount))
			_, err = p.redeem(alice, 11)
			Expect(err).To(MatchError(partyround.ErrInvalidRedemptionAmount))
			_, err = p.redeem(bob, 1)
			Expect(err).To(MatchError(partyround.ErrInvalidRedemptionAmount))
		})

		It("fails when the share rounds down to nothing", func() {
			p.initialize(6, 2)
			p.approve(alice, 1)
			p.approve(bob, 2)
			_, err := p.contribute(alice, 1)
			Expect(err).To(Succeed())
			_, err = p.contribute(bob, 2)
			Expect(err).To(Succeed())
			_, err = p.exec(admin, "CloseFundraise")
			Expect(err).To(Succeed())

			_, err = p.redeem(alice, 1)
			Expect(err).To(MatchError(partyround.ErrInsufficientTreasuryFunds))
			Expect(p.balance(p.own, alice)).To(Equal(uint64(2)))
		})

		It("keeps the rounding dust in the treasury", func() {
			p.initialize(7, 1)
			p.approve(alice, 2)
			p.approve(bob, 3)
			_, err := p.contribute(alice, 2)
			Expect(err).To(Succeed())
			_, err = p.contribute(bob, 3)
			Expect(err).To(Succeed())
			_, err = p.exec(admin, "CloseFundraise")
			Expect(err).To(Succeed())
			original := p.balance(p.base, p.entry)
			Expect(original).To(Equal(uint64(5)))

			paid, err := p.redeem(alice, 2)
			Expect(err).To(Succeed())
			Expect(paid).To(Equal(uint64(1)))

			paid, err = p.redeem(bob, 3)
			Expect(err).To(Succeed())
			Expect(paid).To(Equal(uint64(2)))

			left := p.balance(p.base, p.entry)
			Expect(left).To(Equal(uint64(2)))
			Expect(left).To(BeNumerically("<=", original))
			Expect(p.supply()).To(Equal(uint64(2)))
		})
	})

	Describe("LiquidityLock", func() {
		BeforeEach(func() {
			p.initialize(1000, 1)
		})

		It("alternates between lock and withdraw", func() {
			_, err := p.exec(admin, "WithdrawLockedLiquidity")
			Expect(err).To(MatchError(partyround.ErrLiquidityNotLocked))
			Expect(partyround.KindOf(err)).To(Equal(partyround.LockStateError))

			_, err = p.exec(admin, "LockLiquidity", int64(5000))
			Expect(err).To(Succeed())
			Expect(p.view("LiquidityLocked")).To(BeTrue())
			Expect(p.view("LockEndTs")).To(Equal(int64(5000)))

			_, err = p.exec(admin, "LockLiquidity", int64(6000))
			Expect(err).To(MatchError(partyround.ErrLiquidityAlreadyLocked))
			Expect(p.view("LockEndTs")).To(Equal(int64(5000)))

			p.ctx.SetTimestamp(4999)
			_, err = p.exec(admin, "WithdrawLockedLiquidity")
			Expect(err).To(MatchError(partyround.ErrLiquidityStillLocked))
			Expect(p.view("LiquidityLocked")).To(BeTrue())

			p.ctx.SetTimestamp(5000)
			_, err = p.exec(admin, "WithdrawLockedLiquidity")
			Expect(err).To(Succeed())
			Expect(p.view("LiquidityLocked")).To(BeFalse())

			_, err = p.exec(admin, "WithdrawLockedLiquidity")
			Expect(err).To(MatchError(partyround.ErrLiquidityNotLocked))
		})

		It("is reserved to the authority", func() {
			_, err := p.exec(alice, "LockLiquidity", int64(5000))
			Expect(err).To(MatchError(partyround.ErrUnauthorized))
			_, err = p.exec(admin, "LockLiquidity", int64(5000))
			Expect(err).To(Succeed())
			p.ctx.SetTimestamp(5000)
			_, err = p.exec(alice, "WithdrawLockedLiquidity")
			Expect(err).To(MatchError(partyround.ErrUnauthorized))
		})
	})
})
