package partyround

import (
	"io"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/bin"
)

// record bounds
const (
	MaxNameLength        = 32
	MaxAllowlist         = 100
	MaxOwners            = 10
	MaxDescriptionLength = 256
)

// FundraiseState is the single record of a fundraise entity
type FundraiseState struct {
	Authority          common.Address
	Initialized        bool
	Name               string
	Symbol             string
	TotalSupply        uint64
	FundraiseEndTs     int64
	TokenPrice         uint64
	Allowlist          []common.Address
	FundraiseEnded     bool
	TotalContributions uint64
	TotalContributors  uint32
	LiquidityLocked    bool
	LockEndTs          int64
}

// IsOpen reports whether contributions are accepted at now
func (s *FundraiseState) IsOpen(now int64) bool {
	return s.Initialized && !s.FundraiseEnded && now <= s.FundraiseEndTs
}

// IsAllowed reports whether addr may contribute, an empty allowlist admits everyone
func (s *FundraiseState) IsAllowed(addr common.Address) bool {
	if len(s.Allowlist) == 0 {
		return true
	}
	return common.ContainsAddress(s.Allowlist, addr)
}

func (s *FundraiseState) Clone() *FundraiseState {
	c := *s
	c.Allowlist = append([]common.Address{}, s.Allowlist...)
	return &c
}

func (s *FundraiseState) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Authority); err != nil {
		return sum, err
	}
	if sum, err := sw.Bool(w, s.Initialized); err != nil {
		return sum, err
	}
	if sum, err := sw.LimitedString(w, s.Name, MaxNameLength); err != nil {
		return sum, err
	}
	if sum, err := sw.LimitedString(w, s.Symbol, MaxNameLength); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.TotalSupply); err != nil {
		return sum, err
	}
	if sum, err := sw.Int64(w, s.FundraiseEndTs); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.TokenPrice); err != nil {
		return sum, err
	}
	if sum, err := sw.Addresses(w, s.Allowlist, MaxAllowlist); err != nil {
		return sum, err
	}
	if sum, err := sw.Bool(w, s.FundraiseEnded); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.TotalContributions); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, s.TotalContributors); err != nil {
		return sum, err
	}
	if sum, err := sw.Bool(w, s.LiquidityLocked); err != nil {
		return sum, err
	}
	if sum, err := sw.Int64(w, s.LockEndTs); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *FundraiseState) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Authority); err != nil {
		return sum, err
	}
	if sum, err := sr.Bool(r, &s.Initialized); err != nil {
		return sum, err
	}
	if sum, err := sr.LimitedString(r, &s.Name, MaxNameLength); err != nil {
		return sum, err
	}
	if sum, err := sr.LimitedString(r, &s.Symbol, MaxNameLength); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.TotalSupply); err != nil {
		return sum, err
	}
	if sum, err := sr.Int64(r, &s.FundraiseEndTs); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.TokenPrice); err != nil {
		return sum, err
	}
	if sum, err := sr.Addresses(r, &s.Allowlist, MaxAllowlist); err != nil {
		return sum, err
	}
	if sum, err := sr.Bool(r, &s.FundraiseEnded); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.TotalContributions); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &s.TotalContributors); err != nil {
		return sum, err
	}
	if sum, err := sr.Bool(r, &s.LiquidityLocked); err != nil {
		return sum, err
	}
	if sum, err := sr.Int64(r, &s.LockEndTs); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// MultisigConfig is the owner set gating privileged operations
type MultisigConfig struct {
	Owners        []common.Address
	Threshold     uint8
	OwnerSetSeqno uint64
}

func (m *MultisigConfig) IsOwner(addr common.Address) bool {
	return common.ContainsAddress(m.Owners, addr)
}

func (m *MultisigConfig) Clone() *MultisigConfig {
	return &MultisigConfig{
		Owners:        append([]common.Address{}, m.Owners...),
		Threshold:     m.Threshold,
		OwnerSetSeqno: m.OwnerSetSeqno,
	}
}

func (m *MultisigConfig) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Addresses(w, m.Owners, MaxOwners); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint8(w, m.Threshold); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, m.OwnerSetSeqno); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (m *MultisigConfig) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Addresses(r, &m.Owners, MaxOwners); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint8(r, &m.Threshold); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &m.OwnerSetSeqno); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
