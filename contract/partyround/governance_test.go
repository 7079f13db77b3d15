package partyround_test

import (
	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/contract/partyround"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MultisigGovernance", func() {
	var p *party

	BeforeEach(func() {
		p = newParty()
		p.initialize(100000, 1)
	})

	Describe("CreateMultisig", func() {
		It("rejects duplicate owners", func() {
			_, err := p.exec(admin, "CreateMultisig", []common.Address{alice, alice}, uint8(1))
			Expect(err).To(MatchError(partyround.ErrDuplicateOwner))
			Expect(partyround.KindOf(err)).To(Equal(partyround.ValidationError))
			Expect(p.view("HasMultisig")).To(BeFalse())
		})

		It("bounds the owner count and threshold", func() {
			_, err := p.exec(admin, "CreateMultisig", []common.Address{}, uint8(1))
			Expect(err).To(MatchError(partyround.ErrInvalidOwnerCount))

			many := make([]common.Address, 0, partyround.MaxOwners+1)
			for i := 1; i <= partyround.MaxOwners+1; i++ {
				many = append(many, common.BytesToAddress([]byte{0x10, byte(i)}))
			}
			_, err = p.exec(admin, "CreateMultisig", many, uint8(1))
			Expect(err).To(MatchError(partyround.ErrInvalidOwnerCount))

			_, err = p.exec(admin, "CreateMultisig", []common.Address{alice, bob}, uint8(3))
			Expect(err).To(MatchError(partyround.ErrInvalidThreshold))
			_, err = p.exec(admin, "CreateMultisig", []common.Address{alice, bob}, uint8(0))
			Expect(err).To(MatchError(partyround.ErrInvalidThreshold))

			_, err = p.exec(admin, "CreateMultisig", []common.Address{alice, common.ZeroAddr}, uint8(1))
			Expect(err).To(MatchError(partyround.ErrAddressNotAllowed))
		})

		It("is created once by the authority", func() {
			_, err := p.exec(alice, "CreateMultisig", []common.Address{alice, bob}, uint8(1))
			Expect(err).To(MatchError(partyround.ErrUnauthorized))

			_, err = p.exec(admin, "CreateMultisig", []common.Address{alice, bob, carol}, uint8(2))
			Expect(err).To(Succeed())
			Expect(p.view("Owners")).To(Equal([]common.Address{alice, bob, carol}))
			Expect(p.view("Threshold")).To(Equal(uint8(2)))
			Expect(p.view("OwnerSetSeqno")).To(Equal(uint64(1)))

			_, err = p.exec(admin, "CreateMultisig", []common.Address{alice}, uint8(1))
			Expect(err).To(MatchError(partyround.ErrMultisigAlreadyExists))
		})
	})

	Describe("Proposals", func() {
		BeforeEach(func() {
			_, err := p.exec(admin, "CreateMultisig", []common.Address{alice, bob, carol}, uint8(2))
			Expect(err).To(Succeed())
		})

		It("executes at the threshold and only once", func() {
			is, err := p.exec(alice, "ProposeAction", "hello")
			Expect(err).To(Succeed())
			id := is[0].(uint64)
			Expect(id).To(Equal(uint64(1)))
			Expect(p.view("ProposalCount")).To(Equal(uint64(1)))

			executed, err := p.approveAction(alice, id)
			Expect(err).To(Succeed())
			Expect(executed).To(BeFalse())
			Expect(p.proposal(id).Status).To(Equal(partyround.StatusPending))

			_, err = p.approveAction(alice, id)
			Expect(err).To(MatchError(partyround.ErrAlreadyApproved))

			executed, err = p.approveAction(bob, id)
			Expect(err).To(Succeed())
			Expect(executed).To(BeTrue())
			pr := p.proposal(id)
			Expect(pr.Status).To(Equal(partyround.StatusExecuted))
			Expect(pr.Approvals).To(Equal([]common.Address{alice, bob}))
			Expect(pr.Proposer).To(Equal(alice))
			Expect(pr.Description).To(Equal("hello"))

			_, err = p.approveAction(carol, id)
			Expect(err).To(MatchError(partyround.ErrProposalAlreadyExecuted))
			Expect(p.proposal(id).Approvals).To(HaveLen(2))
			Expect(p.view("ProposalStatus", id)).To(Equal("Executed"))
		})

		It("rejects outsiders and unknown proposals", func() {
			_, err := p.exec(dave, "ProposeAction", "hello")
			Expect(err).To(MatchError(partyround.ErrUnauthorized))

			id := p.propose(alice, "hello", "", "")
			_, err = p.approveAction(dave, id)
			Expect(err).To(MatchError(partyround.ErrUnauthorized))
			Expect(partyround.KindOf(err)).To(Equal(partyround.AuthorizationError))

			_, err = p.approveAction(alice, 99)
			Expect(err).To(MatchError(partyround.ErrProposalNotFound))

			_, err = p.exec(alice, "Propose", "bad", "self_destruct", "")
			Expect(err).To(MatchError(partyround.ErrInvalidAction))
		})

		It("routes privileged operations through proposals", func() {
			_, err := p.exec(admin, "LockLiquidity", int64(5000))
			Expect(err).To(MatchError(partyround.ErrUnauthorized))

			id := p.propose(bob, "lock for a year", "lock_liquidity", "5000")
			_, err = p.approveAction(bob, id)
			Expect(err).To(Succeed())
			Expect(p.view("LiquidityLocked")).To(BeFalse())
			_, err = p.approveAction(carol, id)
			Expect(err).To(Succeed())
			Expect(p.view("LiquidityLocked")).To(BeTrue())
			Expect(p.view("LockEndTs")).To(Equal(int64(5000)))
			Expect(p.lastEvent("ProposalExecuted")).NotTo(BeNil())

			id = p.propose(alice, "close early", "close_fundraise", "")
			_, err = p.approveAction(alice, id)
			Expect(err).To(Succeed())
			_, err = p.approveAction(bob, id)
			Expect(err).To(Succeed())
			Expect(p.view("FundraiseEnded")).To(BeTrue())
		})

		It("reverts the approval when the action fails", func() {
			id := p.propose(alice, "unlock", "withdraw_locked_liquidity", "")
			_, err := p.approveAction(alice, id)
			Expect(err).To(Succeed())
			_, err = p.approveAction(bob, id)
			Expect(err).To(MatchError(partyround.ErrLiquidityNotLocked))
			pr := p.proposal(id)
			Expect(pr.Status).To(Equal(partyround.StatusPending))
			Expect(pr.Approvals).To(Equal([]common.Address{alice}))
			Expect(p.view("GuardInProgress")).To(BeFalse())
		})

		It("expires pending proposals when the owner set changes", func() {
			stale := p.propose(alice, "memo", "", "")
			_, err := p.approveAction(alice, stale)
			Expect(err).To(Succeed())

			add := p.propose(alice, "add dave", "add_owner", dave.String())
			_, err = p.approveAction(alice, add)
			Expect(err).To(Succeed())
			_, err = p.approveAction(bob, add)
			Expect(err).To(Succeed())
			Expect(p.view("OwnerSetSeqno")).To(Equal(uint64(2)))
			Expect(p.view("IsOwner", dave)).To(BeTrue())

			Expect(p.proposal(stale).Status).To(Equal(partyround.StatusExpired))
			_, err = p.approveAction(bob, stale)
			Expect(err).To(MatchError(partyround.ErrProposalExpired))
			Expect(p.proposal(add).Status).To(Equal(partyround.StatusExecuted))

			th := p.propose(dave, "raise threshold", "change_threshold", "3")
			_, err = p.approveAction(dave, th)
			Expect(err).To(Succeed())
			_, err = p.approveAction(carol, th)
			Expect(err).To(Succeed())
			Expect(p.view("Threshold")).To(Equal(uint8(3)))
			Expect(p.view("OwnerSetSeqno")).To(Equal(uint64(3)))

			rm := p.propose(alice, "remove carol", "remove_owner", carol.String())
			for _, o := range []common.Address{alice, bob, dave} {
				_, err = p.approveAction(o, rm)
				Expect(err).To(Succeed())
			}
			Expect(p.view("Owners")).To(Equal([]common.Address{alice, bob, dave}))
			_, err = p.exec(carol, "ProposeAction", "still here?")
			Expect(err).To(MatchError(partyround.ErrUnauthorized))
		})

		It("validates owner set actions", func() {
			id := p.propose(alice, "add bob again", "add_owner", bob.String())
			_, err := p.approveAction(alice, id)
			Expect(err).To(Succeed())
			_, err = p.approveAction(bob, id)
			Expect(err).To(MatchError(partyround.ErrDuplicateOwner))

			id = p.propose(alice, "threshold four", "change_threshold", "4")
			_, err = p.approveAction(alice, id)
			Expect(err).To(Succeed())
			_, err = p.approveAction(bob, id)
			Expect(err).To(MatchError(partyround.ErrInvalidThreshold))
			Expect(p.view("OwnerSetSeqno")).To(Equal(uint64(1)))
		})
	})
})
