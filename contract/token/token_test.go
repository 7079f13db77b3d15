package token_test

import (
	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
	"github.com/meverselabs/partyround/contract/token"
	"github.com/meverselabs/partyround/core/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Token", func() {
	var (
		ctx              *types.Context
		tokenAddr        common.Address
		admin            = common.HexToAddress("0xad")
		alice            = common.HexToAddress("0xa1")
		bob              = common.HexToAddress("0xb0")
		exec             func(from common.Address, method string, args ...interface{}) ([]interface{}, error)
		balanceOf        func(addr common.Address) uint64
		tokenTotalSupply func() uint64
	)

	BeforeEach(func() {
		ctx = types.NewEmptyContext()
		classID, err := types.RegisterContractType(&token.TokenContract{})
		Expect(err).To(Succeed())
		bs, _, err := bin.WriterToBytes(&token.TokenContractConstruction{
			Name:             "Base",
			Symbol:           "BASE",
			InitialSupplyMap: map[common.Address]uint64{alice: 1000},
		})
		Expect(err).To(Succeed())
		v, err := ctx.DeployContract(admin, classID, bs)
		Expect(err).To(Succeed())
		tokenAddr = v.Address()

		exec = func(from common.Address, method string, args ...interface{}) ([]interface{}, error) {
			if args == nil {
				args = []interface{}{}
			}
			return types.ExecFrom(ctx, from, tokenAddr, method, args)
		}
		balanceOf = func(addr common.Address) uint64 {
			is, err := exec(admin, "BalanceOf", addr)
			Expect(err).To(Succeed())
			return is[0].(uint64)
		}
		tokenTotalSupply = func() uint64 {
			is, err := exec(admin, "TotalSupply")
			Expect(err).To(Succeed())
			return is[0].(uint64)
		}
	})

	It("Name, Symbol, initial supply", func() {
		is, err := exec(admin, "Name")
		Expect(err).To(Succeed())
		Expect(is[0]).To(Equal("Base"))
		is, err = exec(admin, "Symbol")
		Expect(err).To(Succeed())
		Expect(is[0]).To(Equal("BASE"))
		Expect(balanceOf(alice)).To(Equal(uint64(1000)))
		Expect(tokenTotalSupply()).To(Equal(uint64(1000)))
	})

	It("Transfer", func() {
		_, err := exec(alice, "Transfer", bob, uint64(300))
		Expect(err).To(Succeed())
		Expect(balanceOf(alice)).To(Equal(uint64(700)))
		Expect(balanceOf(bob)).To(Equal(uint64(300)))
		Expect(tokenTotalSupply()).To(Equal(uint64(1000)))

		_, err = exec(bob, "Transfer", alice, uint64(301))
		Expect(err).To(MatchError(ContainSubstring(token.ErrExceedBalance.Error())))
		Expect(balanceOf(bob)).To(Equal(uint64(300)))

		_, err = exec(bob, "Transfer", common.ZeroAddr, uint64(1))
		Expect(err).To(HaveOccurred())
	})

	It("Approve, TransferFrom", func() {
		_, err := exec(bob, "TransferFrom", alice, bob, uint64(1))
		Expect(err).To(MatchError(ContainSubstring(token.ErrExceedAllowance.Error())))

		_, err = exec(alice, "Approve", bob, uint64(100))
		Expect(err).To(Succeed())
		_, err = exec(bob, "TransferFrom", alice, bob, uint64(60))
		Expect(err).To(Succeed())

		is, err := exec(admin, "Allowance", alice, bob)
		Expect(err).To(Succeed())
		Expect(is[0]).To(Equal(uint64(40)))
		Expect(balanceOf(bob)).To(Equal(uint64(60)))
	})

	It("Mint, SetMinter, BurnFrom", func() {
		_, err := exec(alice, "Mint", alice, uint64(1))
		Expect(err).To(MatchError(ContainSubstring(token.ErrNotMinter.Error())))

		_, err = exec(admin, "Mint", bob, uint64(50))
		Expect(err).To(Succeed())
		Expect(tokenTotalSupply()).To(Equal(uint64(1050)))

		_, err = exec(bob, "BurnFrom", alice, uint64(10))
		Expect(err).To(MatchError(ContainSubstring(token.ErrNotMinter.Error())))

		_, err = exec(alice, "SetMinter", bob, true)
		Expect(err).To(MatchError(token.ErrNotMaster))
		_, err = exec(admin, "SetMinter", bob, true)
		Expect(err).To(Succeed())

		_, err = exec(bob, "BurnFrom", alice, uint64(10))
		Expect(err).To(Succeed())
		Expect(balanceOf(alice)).To(Equal(uint64(990)))
		Expect(tokenTotalSupply()).To(Equal(uint64(1040)))
	})

	It("rejects oversize names", func() {
		_, _, err := bin.WriterToBytes(&token.TokenContractConstruction{
			Name: "0123456789012345678901234567890123",
		})
		Expect(err).To(HaveOccurred())
	})
})
